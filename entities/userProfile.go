package entities

import "gorm.io/gorm"

const (
	DefaultProfileName   = "Billionaire"
	DefaultProfileAvatar = "https://images.unsplash.com/photo-1560250097-0b93528c311a?auto=format&fit=crop&q=80&w=100"
)

// UserProfile is the display name and avatar shown on the dashboard header.
type UserProfile struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string `gorm:"uniqueIndex;type:varchar(36)" json:"user_id"`
	Name      string `json:"name"`
	Avatar    string `gorm:"type:text" json:"avatar"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{UserID: userID, Name: DefaultProfileName, Avatar: DefaultProfileAvatar}
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) (err error) {
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

func (p *UserProfile) GetID() string           { return p.ID }
func (p *UserProfile) SetID(id string)         { p.ID = id }
func (p *UserProfile) GetUserID() string       { return p.UserID }
func (p *UserProfile) SetUserID(userID string) { p.UserID = userID }
func (p *UserProfile) Touch()                  { stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt) }

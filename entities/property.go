package entities

import (
	"slices"

	"gorm.io/gorm"
)

const (
	DefaultPropertyName    = "New Property"
	DefaultPropertyAddress = "No address"
)

type Property struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string         `gorm:"index;type:varchar(36)" json:"user_id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Rooms     []Room         `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"rooms"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	p.Touch()
	return nil
}

func (p *Property) GetID() string           { return p.ID }
func (p *Property) SetID(id string)         { p.ID = id }
func (p *Property) GetUserID() string       { return p.UserID }
func (p *Property) SetUserID(userID string) { p.UserID = userID }

func (p *Property) Clone() Property {
	c := *p
	c.Rooms = slices.Clone(p.Rooms)
	return c
}

func (p *Property) Touch() {
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if p.Name == "" {
		p.Name = DefaultPropertyName
	}
	if p.Address == "" {
		p.Address = DefaultPropertyAddress
	}
}

// Room is a rentable unit inside a property.
type Room struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string `gorm:"index;type:varchar(36)" json:"user_id"`
	PropertyID string `gorm:"index;type:varchar(36)" json:"property_id"`
	Number     string `json:"number"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return nil
}

func (r *Room) GetID() string           { return r.ID }
func (r *Room) SetID(id string)         { r.ID = id }
func (r *Room) GetUserID() string       { return r.UserID }
func (r *Room) SetUserID(userID string) { r.UserID = userID }
func (r *Room) Touch()                  { stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt) }

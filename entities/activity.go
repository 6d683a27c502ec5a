package entities

import "gorm.io/gorm"

type ActivityType string

const (
	ActivityPayment     ActivityType = "payment"
	ActivityLease       ActivityType = "lease"
	ActivityMaintenance ActivityType = "maintenance"
)

// Activity is a line in the dashboard's recent activity feed.
type Activity struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string       `gorm:"index;type:varchar(36)" json:"user_id"`
	Type      ActivityType `gorm:"type:varchar(16)" json:"type"`
	Title     string       `json:"title"`
	Details   string       `json:"details"`
	Amount    string       `json:"amount,omitempty"` // display string, e.g. "+$1,250"
	Timestamp string       `json:"timestamp"`
	Status    string       `json:"status,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	a.Touch()
	return nil
}

func (a *Activity) GetID() string           { return a.ID }
func (a *Activity) SetID(id string)         { a.ID = id }
func (a *Activity) GetUserID() string       { return a.UserID }
func (a *Activity) SetUserID(userID string) { a.UserID = userID }

func (a *Activity) Touch() {
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if a.Timestamp == "" {
		a.Timestamp = a.CreatedAt
	}
}

package entities

import "gorm.io/gorm"

type UtilityType string

const (
	UtilityWater       UtilityType = "Water"
	UtilityElectricity UtilityType = "Electricity"
	UtilityInternet    UtilityType = "Internet"
)

func (t UtilityType) Valid() bool {
	switch t {
	case UtilityWater, UtilityElectricity, UtilityInternet:
		return true
	}
	return false
}

type UtilityAccount struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string         `gorm:"index;type:varchar(36)" json:"user_id"`
	Type          UtilityType    `gorm:"type:varchar(32)" json:"type"`
	AccountNumber string         `json:"account_number"`
	Provider      string         `json:"provider"`
	PropertyID    string         `gorm:"index;type:varchar(36)" json:"property_id"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *UtilityAccount) BeforeCreate(tx *gorm.DB) (err error) {
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return nil
}

func (u *UtilityAccount) GetID() string           { return u.ID }
func (u *UtilityAccount) SetID(id string)         { u.ID = id }
func (u *UtilityAccount) GetUserID() string       { return u.UserID }
func (u *UtilityAccount) SetUserID(userID string) { u.UserID = userID }
func (u *UtilityAccount) Touch()                  { stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt) }

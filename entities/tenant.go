package entities

import (
	"slices"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantActive      TenantStatus = "Active"
	TenantMovingOut   TenantStatus = "Moving Out"
	TenantLatePayment TenantStatus = "Late Payment"
)

func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantMovingOut, TenantLatePayment:
		return true
	}
	return false
}

// Tenant is a person renting a unit. LeaseStart and LeaseEnd are calendar
// date strings; no ordering between them is enforced.
type Tenant struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string          `gorm:"index;type:varchar(36)" json:"user_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Property   string          `json:"property"`
	LeaseStart string          `json:"lease_start"`
	LeaseEnd   string          `json:"lease_end"`
	Status     TenantStatus    `gorm:"type:varchar(32)" json:"status"`
	Rent       decimal.Decimal `gorm:"type:decimal(12,2)" json:"rent"`
	Deposit    decimal.Decimal `gorm:"type:decimal(12,2)" json:"deposit"`
	Notes      string          `gorm:"type:text" json:"notes"`
	Avatar     string          `json:"avatar,omitempty"`
	Photos     []string        `gorm:"serializer:json" json:"photos"`
	IDPhoto    string          `json:"id_photo,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) (err error) {
	t.Touch()
	return nil
}

func (t *Tenant) GetID() string           { return t.ID }
func (t *Tenant) SetID(id string)         { t.ID = id }
func (t *Tenant) GetUserID() string       { return t.UserID }
func (t *Tenant) SetUserID(userID string) { t.UserID = userID }

// Clone returns a copy that shares no slices with t.
func (t *Tenant) Clone() Tenant {
	c := *t
	c.Photos = slices.Clone(t.Photos)
	return c
}

// Touch stamps id and timestamps and fills defaults.
func (t *Tenant) Touch() {
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if t.Status == "" {
		t.Status = TenantActive
	}
}

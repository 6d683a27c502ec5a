package entities

import (
	"slices"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryCleaning    ExpenseCategory = "Cleaning"
	CategoryUtilities   ExpenseCategory = "Utilities"
	CategoryRent        ExpenseCategory = "Rent"
	CategoryOther       ExpenseCategory = "Other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryMaintenance, CategoryCleaning, CategoryUtilities, CategoryRent, CategoryOther:
		return true
	}
	return false
}

type EntryType string

const (
	EntryIncome  EntryType = "Income"
	EntryExpense EntryType = "Expense"
)

func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// Expense is a money movement. Income rows share the table; a utility bill
// payment is an Expense whose UtilityAccountID points at the account.
type Expense struct {
	ID               string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string          `gorm:"index;type:varchar(36)" json:"user_id"`
	Title            string          `json:"title"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Date             string          `gorm:"index" json:"date"`
	Category         ExpenseCategory `gorm:"type:varchar(32)" json:"category"`
	Type             EntryType       `gorm:"type:varchar(16)" json:"type"`
	Photos           []string        `gorm:"serializer:json" json:"photos"`
	PropertyID       string          `gorm:"index;type:varchar(36)" json:"property_id,omitempty"`
	RoomID           string          `gorm:"type:varchar(36)" json:"room_id,omitempty"`
	UtilityAccountID string          `gorm:"index;type:varchar(36)" json:"utility_account_id,omitempty"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	e.Touch()
	return nil
}

func (e *Expense) GetID() string           { return e.ID }
func (e *Expense) SetID(id string)         { e.ID = id }
func (e *Expense) GetUserID() string       { return e.UserID }
func (e *Expense) SetUserID(userID string) { e.UserID = userID }

func (e *Expense) Clone() Expense {
	c := *e
	c.Photos = slices.Clone(e.Photos)
	return c
}

func (e *Expense) Touch() {
	stamp(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if e.Type == "" {
		e.Type = EntryExpense
	}
}

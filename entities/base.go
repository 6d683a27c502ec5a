package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// amounts travel as JSON numbers, the same as the mock data set
	decimal.MarshalJSONWithoutQuotes = true
}

// timestampLayout is fixed-width so created_at/updated_at sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Now returns the current time formatted the way rows store timestamps.
func Now() string {
	return time.Now().UTC().Format(timestampLayout)
}

// Scoped is implemented by every owner-scoped row.
type Scoped interface {
	GetID() string
	SetID(id string)
	GetUserID() string
	SetUserID(userID string)
	Touch()
}

// stamp fills the id and both timestamps of a row about to be inserted.
func stamp(id *string, createdAt, updatedAt *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
	now := Now()
	if *createdAt == "" {
		*createdAt = now
	}
	*updatedAt = now
}

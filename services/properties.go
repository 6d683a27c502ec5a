package services

import (
	"strings"
	"time"

	"rent-server/entities"
)

const NoRecord = "No record"

// LastCleaningDate returns the date of the newest Cleaning expense booked
// against the property.
func LastCleaningDate(propertyID string, expenses []entities.Expense) string {
	var (
		best    string
		bestDay time.Time
		found   bool
	)
	for _, e := range expenses {
		if e.Category != entities.CategoryCleaning || e.PropertyID != propertyID {
			continue
		}
		day, _ := ParseDate(e.Date, time.UTC)
		if !found || day.After(bestDay) {
			best, bestDay, found = e.Date, day, true
		}
	}
	if !found {
		return NoRecord
	}
	return best
}

const StatusFilterAll = "All"

// FilterTenants matches query case-insensitively against name, unit and
// property, and status exactly unless it is "All" or empty.
func FilterTenants(tenants []entities.Tenant, query, status string) []entities.Tenant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entities.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if status != "" && status != StatusFilterAll && string(t.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Unit), q) &&
			!strings.Contains(strings.ToLower(t.Property), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

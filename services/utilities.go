package services

import (
	"time"

	"rent-server/entities"
)

// PaymentWindowDays is how long a utility payment keeps its account paid.
const PaymentWindowDays = 30

const NeverPaid = "Never Paid"

// LastPayment returns the most recent expense recorded against accountID.
// Expenses with an unparseable date rank below every dated one.
func LastPayment(accountID string, expenses []entities.Expense, loc *time.Location) (*entities.Expense, time.Time, bool) {
	var (
		last    *entities.Expense
		lastDay time.Time
	)
	for i := range expenses {
		e := &expenses[i]
		if e.UtilityAccountID != accountID {
			continue
		}
		day, ok := ParseDate(e.Date, loc)
		if !ok {
			day = time.Time{}
		}
		if last == nil || day.After(lastDay) {
			last, lastDay = e, day
		}
	}
	return last, lastDay, last != nil
}

// UtilityStatus reports whether the account was paid within the last
// PaymentWindowDays days of today, and the date of the last payment. An
// account whose payments all carry unparseable dates counts as paid.
func UtilityStatus(accountID string, expenses []entities.Expense, today time.Time) (isPaid bool, lastDate string) {
	last, lastDay, ok := LastPayment(accountID, expenses, today.Location())
	if !ok {
		return false, NeverPaid
	}
	if lastDay.IsZero() {
		return true, last.Date
	}
	return DaysBetween(lastDay, Midnight(today)) <= PaymentWindowDays, last.Date
}

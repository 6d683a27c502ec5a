package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rent-server/repositories"
)

// Notifier is told after every successful change to a user's data.
type Notifier interface {
	Changed(ctx context.Context, userID string)
}

type nopNotifier struct{}

func (nopNotifier) Changed(context.Context, string) {}

// RentalUseCase is the application layer between the handlers and the
// Entity Store: validation, side records and change notification.
type RentalUseCase struct {
	stores   repositories.Source
	notifier Notifier
	now      func() time.Time
}

func NewRentalUseCase(stores repositories.Source, notifier Notifier) *RentalUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &RentalUseCase{
		stores:   stores,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetNotifier replaces the change notifier. The websocket feed needs the
// usecase to exist before it can be built.
func (uc *RentalUseCase) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	uc.notifier = n
}

func (uc *RentalUseCase) store(ctx context.Context, userID string) (*repositories.Store, error) {
	if userID == "" {
		return nil, repositories.ErrNotAuthenticated
	}
	return uc.stores.For(ctx, userID)
}

func (uc *RentalUseCase) changed(ctx context.Context, userID string) {
	uc.notifier.Changed(ctx, userID)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", repositories.ErrInvalid, fmt.Sprintf(format, args...))
}

// sideRecord logs instead of failing the request that caused it.
func sideRecord(userID, what string, err error) {
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warnf("could not record %s activity", what)
	}
}

// formatMoney renders an amount the way the activity feed shows it, e.g.
// "+$1,250" or "-$85.50".
func formatMoney(sign string, amount decimal.Decimal) string {
	amount = amount.Abs()
	whole := amount.Truncate(0).String()
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac := amount.Sub(amount.Truncate(0)); !frac.IsZero() {
		b.WriteString(strings.TrimPrefix(frac.StringFixed(2), "0"))
	}
	return sign + "$" + b.String()
}

func notFoundIn(kind, id, parentKind, parentID string) error {
	return fmt.Errorf("%w: %s %s in %s %s", repositories.ErrNotFound, kind, id, parentKind, parentID)
}

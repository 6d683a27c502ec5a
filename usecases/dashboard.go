package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rent-server/entities"
	"rent-server/services"
)

// Snapshot is the evaluator input: the caller's tenants, utility accounts
// and expenses as read at one point.
type Snapshot struct {
	Tenants  []entities.Tenant
	Accounts []entities.UtilityAccount
	Expenses []entities.Expense
}

// LoadSnapshot reads the three lists concurrently.
func (uc *RentalUseCase) LoadSnapshot(ctx context.Context, userID string) (Snapshot, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Tenants, err = store.Tenants.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snap.Accounts, err = store.UtilityAccounts.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snap.Expenses, err = store.Expenses.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Notifications evaluates the caller's current data into delinquency
// alerts.
func (uc *RentalUseCase) Notifications(ctx context.Context, userID string) ([]services.Alert, error) {
	snap, err := uc.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return services.Evaluate(snap.Tenants, snap.Accounts, snap.Expenses, uc.now()), nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"rent-server/cache"
)

// SeedStore writes seed into userID's scope with fresh ids, keeping the
// links between rows.
func SeedStore(ctx context.Context, store *Store, userID string, seed cache.Seed) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	ids := make(map[string]string)
	remap := func(id string) string {
		if id == "" {
			return ""
		}
		if fresh, ok := ids[id]; ok {
			return fresh
		}
		return id
	}

	for _, p := range seed.Properties {
		old := p.ID
		p.ID, p.Rooms = "", nil
		if err := store.Properties.Create(ctx, userID, &p); err != nil {
			return fmt.Errorf("seed property %s: %w", old, err)
		}
		ids[old] = p.ID
	}
	for _, r := range seed.Rooms {
		old := r.ID
		r.ID, r.PropertyID = "", remap(r.PropertyID)
		if err := store.Rooms.Create(ctx, userID, &r); err != nil {
			return fmt.Errorf("seed room %s: %w", old, err)
		}
		ids[old] = r.ID
	}
	for _, a := range seed.UtilityAccounts {
		old := a.ID
		a.ID, a.PropertyID = "", remap(a.PropertyID)
		if err := store.UtilityAccounts.Create(ctx, userID, &a); err != nil {
			return fmt.Errorf("seed utility account %s: %w", old, err)
		}
		ids[old] = a.ID
	}
	for _, t := range seed.Tenants {
		old := t.ID
		t.ID = ""
		if err := store.Tenants.Create(ctx, userID, &t); err != nil {
			return fmt.Errorf("seed tenant %s: %w", old, err)
		}
	}
	for _, e := range seed.Expenses {
		old := e.ID
		e.ID = ""
		e.PropertyID, e.RoomID, e.UtilityAccountID = remap(e.PropertyID), remap(e.RoomID), remap(e.UtilityAccountID)
		if err := store.Expenses.Create(ctx, userID, &e); err != nil {
			return fmt.Errorf("seed expense %s: %w", old, err)
		}
	}
	for _, a := range seed.Activities {
		old := a.ID
		a.ID = ""
		if err := store.Activities.Create(ctx, userID, &a); err != nil {
			return fmt.Errorf("seed activity %s: %w", old, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"properties": len(seed.Properties),
		"tenants":    len(seed.Tenants),
		"expenses":   len(seed.Expenses),
	}).Info("seeded store")
	return nil
}

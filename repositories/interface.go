package repositories

import (
	"context"

	"rent-server/entities"
)

// Repository is the per-kind Entity Store contract. Every call is scoped to
// userID; an empty userID fails with ErrNotAuthenticated.
type Repository[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	GetByID(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, userID string, row *T) error
	Update(ctx context.Context, userID string, row *T) error
	Delete(ctx context.Context, userID, id string) error
}

type (
	TenantRepository         = Repository[entities.Tenant]
	ExpenseRepository        = Repository[entities.Expense]
	UtilityAccountRepository = Repository[entities.UtilityAccount]
	PropertyRepository       = Repository[entities.Property]
	ActivityRepository       = Repository[entities.Activity]
)

type RoomRepository interface {
	Repository[entities.Room]
	ListByProperty(ctx context.Context, userID, propertyID string) ([]entities.Room, error)
}

type ProfileRepository interface {
	// Get returns the caller's profile, creating the default one on first use.
	Get(ctx context.Context, userID string) (*entities.UserProfile, error)
	Update(ctx context.Context, userID string, profile *entities.UserProfile) error
}

// ActivityFeedLimit caps how many activities List returns.
const ActivityFeedLimit = 10

// Store groups one repository per entity kind.
type Store struct {
	Tenants         TenantRepository
	Properties      PropertyRepository
	Rooms           RoomRepository
	Expenses        ExpenseRepository
	UtilityAccounts UtilityAccountRepository
	Activities      ActivityRepository
	Profiles        ProfileRepository
	Users           UserRepository

	// Mock is true for the in-memory store seeded with mock data.
	Mock bool

	stats func() map[string]interface{}
}

// Stats reports the store's backing tables or connection pool.
func (s *Store) Stats() map[string]interface{} {
	out := map[string]interface{}{"mock": s.Mock}
	if s.stats != nil {
		for k, v := range s.stats() {
			out[k] = v
		}
	}
	return out
}

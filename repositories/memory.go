package repositories

import (
	"context"
	"sort"

	"rent-server/cache"
	"rent-server/entities"
)

// memTable implements Repository[T] over a cache.Table. It backs the mock
// data mode used when no database is configured.
type memTable[T any, P cache.Row[T]] struct {
	table *cache.Table[T, P]
	sort  func(rows []T)
	limit int
}

func (r *memTable[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	rows := r.table.List(userID)
	if r.sort != nil {
		r.sort(rows)
	}
	if r.limit > 0 && len(rows) > r.limit {
		rows = rows[:r.limit]
	}
	return rows, nil
}

func (r *memTable[T, P]) GetByID(ctx context.Context, userID, id string) (*T, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	row, ok := r.table.Get(userID, id)
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *memTable[T, P]) Create(ctx context.Context, userID string, row *T) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	r.table.Insert(userID, row)
	return nil
}

func (r *memTable[T, P]) Update(ctx context.Context, userID string, row *T) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if !r.table.Replace(userID, row) {
		return ErrNotFound
	}
	return nil
}

func (r *memTable[T, P]) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if !r.table.Delete(userID, id) {
		return ErrNotFound
	}
	return nil
}

type memRooms struct {
	memTable[entities.Room, *entities.Room]
}

func (r *memRooms) ListByProperty(ctx context.Context, userID, propertyID string) ([]entities.Room, error) {
	rooms, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.PropertyID == propertyID {
			out = append(out, room)
		}
	}
	return out, nil
}

// memProperties attaches rooms from the room table on every read.
type memProperties struct {
	memTable[entities.Property, *entities.Property]
	rooms *memRooms
}

func (r *memProperties) withRooms(ctx context.Context, userID string, p *entities.Property) error {
	rooms, err := r.rooms.ListByProperty(ctx, userID, p.ID)
	if err != nil {
		return err
	}
	p.Rooms = rooms
	return nil
}

func (r *memProperties) List(ctx context.Context, userID string) ([]entities.Property, error) {
	props, err := r.memTable.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range props {
		if err := r.withRooms(ctx, userID, &props[i]); err != nil {
			return nil, err
		}
	}
	return props, nil
}

func (r *memProperties) GetByID(ctx context.Context, userID, id string) (*entities.Property, error) {
	p, err := r.memTable.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return p, r.withRooms(ctx, userID, p)
}

func (r *memProperties) Create(ctx context.Context, userID string, p *entities.Property) error {
	p.Rooms = nil
	return r.memTable.Create(ctx, userID, p)
}

func (r *memProperties) Update(ctx context.Context, userID string, p *entities.Property) error {
	rooms := p.Rooms
	p.Rooms = nil
	err := r.memTable.Update(ctx, userID, p)
	p.Rooms = rooms
	return err
}

func (r *memProperties) Delete(ctx context.Context, userID, id string) error {
	if err := r.memTable.Delete(ctx, userID, id); err != nil {
		return err
	}
	r.rooms.table.DeleteWhere(userID, func(room *entities.Room) bool { return room.PropertyID == id })
	return nil
}

type memProfiles struct {
	memTable[entities.UserProfile, *entities.UserProfile]
}

func (r *memProfiles) Get(ctx context.Context, userID string) (*entities.UserProfile, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	profiles := r.table.List(userID)
	if len(profiles) > 0 {
		return &profiles[0], nil
	}
	created := entities.DefaultProfile(userID)
	r.table.Insert(userID, created)
	return created, nil
}

func (r *memProfiles) Update(ctx context.Context, userID string, profile *entities.UserProfile) error {
	existing, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return r.memTable.Update(ctx, userID, profile)
}

// NewMemoryStore builds a Store kept entirely in memory. Every caller starts
// from their own copy of seed.
func NewMemoryStore(seed cache.Seed) *Store {
	rooms := &memRooms{memTable[entities.Room, *entities.Room]{
		table: cache.NewTable[entities.Room](seed.Rooms...),
	}}
	tenants := &memTable[entities.Tenant, *entities.Tenant]{
		table: cache.NewTable[entities.Tenant](seed.Tenants...),
	}
	properties := &memProperties{
		memTable: memTable[entities.Property, *entities.Property]{
			table: cache.NewTable[entities.Property](seed.Properties...),
		},
		rooms: rooms,
	}
	expenses := &memTable[entities.Expense, *entities.Expense]{
		table: cache.NewTable[entities.Expense](seed.Expenses...),
		sort: func(rows []entities.Expense) {
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
		},
	}
	accounts := &memTable[entities.UtilityAccount, *entities.UtilityAccount]{
		table: cache.NewTable[entities.UtilityAccount](seed.UtilityAccounts...),
	}
	activities := &memTable[entities.Activity, *entities.Activity]{
		table: cache.NewTable[entities.Activity](seed.Activities...),
		limit: ActivityFeedLimit,
	}
	profiles := &memProfiles{memTable[entities.UserProfile, *entities.UserProfile]{
		table: cache.NewTable[entities.UserProfile](),
	}}

	return &Store{
		Tenants:         tenants,
		Properties:      properties,
		Rooms:           rooms,
		Expenses:        expenses,
		UtilityAccounts: accounts,
		Activities:      activities,
		Profiles:        profiles,
		Users:           newMemUsers(),
		Mock:            true,
		stats: func() map[string]interface{} {
			return map[string]interface{}{
				"tenants":          tenants.table.Stats(),
				"properties":       properties.table.Stats(),
				"rooms":            rooms.table.Stats(),
				"expenses":         expenses.table.Stats(),
				"utility_accounts": accounts.table.Stats(),
				"activities":       activities.table.Stats(),
				"profiles":         profiles.table.Stats(),
			}
		},
	}
}

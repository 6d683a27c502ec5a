package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-server/cache"
	"rent-server/entities"
	"rent-server/repositories"
	"rent-server/services"
)

const owner = "owner-1"

type recorder struct {
	mu    sync.Mutex
	users []string
}

func (r *recorder) Changed(_ context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func newUseCase(t *testing.T, seed cache.Seed) (*RentalUseCase, *recorder) {
	t.Helper()
	rec := &recorder{}
	uc := NewRentalUseCase(repositories.StaticSource{Store: repositories.NewMemoryStore(seed)}, rec)
	uc.now = func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return uc, rec
}

func TestIdentityRequired(t *testing.T) {
	uc, _ := newUseCase(t, cache.Seed{})
	_, err := uc.ListTenants(context.Background(), "", "", "")
	assert.ErrorIs(t, err, repositories.ErrNotAuthenticated)
	_, err = uc.Notifications(context.Background(), "")
	assert.ErrorIs(t, err, repositories.ErrNotAuthenticated)
}

func TestCreateTenantValidatesAndRecordsLease(t *testing.T) {
	ctx := context.Background()
	uc, rec := newUseCase(t, cache.Seed{})

	err := uc.CreateTenant(ctx, owner, &entities.Tenant{Unit: "4B"})
	assert.ErrorIs(t, err, repositories.ErrInvalid)
	err = uc.CreateTenant(ctx, owner, &entities.Tenant{Name: "A", Unit: "1", Status: "Evicted"})
	assert.ErrorIs(t, err, repositories.ErrInvalid)
	assert.Zero(t, rec.count())

	tenant := &entities.Tenant{Name: "Sarah Jenkins", Unit: "4B", Rent: decimal.NewFromInt(1250)}
	require.NoError(t, uc.CreateTenant(ctx, owner, tenant))
	assert.Equal(t, entities.TenantActive, tenant.Status)
	assert.Equal(t, 1, rec.count())

	activities, err := uc.ListActivities(ctx, owner)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, entities.ActivityLease, activities[0].Type)
	assert.Equal(t, "Unit 4B - Sarah Jenkins", activities[0].Details)
}

func TestUpdateTenantMergesFields(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	tenant := &entities.Tenant{Name: "Sarah", Unit: "4B", Rent: decimal.NewFromInt(1000)}
	require.NoError(t, uc.CreateTenant(ctx, owner, tenant))

	updated, err := uc.UpdateTenant(ctx, owner, tenant.ID, entities.TenantPatch{Status: entities.TenantLatePayment})
	require.NoError(t, err)
	assert.Equal(t, "Sarah", updated.Name)
	assert.Equal(t, entities.TenantLatePayment, updated.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(updated.Rent))

	_, err = uc.UpdateTenant(ctx, owner, "missing", entities.TenantPatch{Name: "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateTenantClearsOptionalFields(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	tenant := &entities.Tenant{Name: "Sarah", Unit: "4B", Rent: decimal.NewFromInt(1000), Deposit: decimal.NewFromInt(500), Notes: "pets"}
	require.NoError(t, uc.CreateTenant(ctx, owner, tenant))

	zero, empty := decimal.Zero, ""
	updated, err := uc.UpdateTenant(ctx, owner, tenant.ID, entities.TenantPatch{Deposit: &zero, Notes: &empty})
	require.NoError(t, err)
	assert.True(t, updated.Deposit.IsZero())
	assert.Empty(t, updated.Notes)
	assert.True(t, decimal.NewFromInt(1000).Equal(updated.Rent))

	stored, err := uc.GetTenant(ctx, owner, tenant.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deposit.IsZero())
	assert.Empty(t, stored.Notes)
}

func TestListTenantsFilters(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.MockData())

	all, err := uc.ListTenants(ctx, owner, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	late, err := uc.ListTenants(ctx, owner, "", string(entities.TenantLatePayment))
	require.NoError(t, err)
	assert.Empty(t, late)

	byName, err := uc.ListTenants(ctx, owner, "sarah", services.StatusFilterAll)
	require.NoError(t, err)
	assert.Len(t, byName, 1)
}

func TestCreateExpenseSideRecords(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})

	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "June rent", Amount: decimal.NewFromInt(1250), Date: "2024-06-01",
		Category: entities.CategoryRent, Type: entities.EntryIncome,
	}))
	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "Pipe repair", Amount: decimal.RequireFromString("85.5"), Date: "2024-06-02",
		Category: entities.CategoryMaintenance,
	}))
	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "Paper", Amount: decimal.NewFromInt(3), Date: "2024-06-03",
	}))

	activities, err := uc.ListActivities(ctx, owner)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	byType := map[entities.ActivityType]entities.Activity{}
	for _, a := range activities {
		byType[a.Type] = a
	}
	assert.Equal(t, "Rent Received", byType[entities.ActivityPayment].Title)
	assert.Equal(t, "+$1,250", byType[entities.ActivityPayment].Amount)
	assert.Equal(t, "-$85.50", byType[entities.ActivityMaintenance].Amount)
}

func TestCreateExpenseValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	cases := map[string]*entities.Expense{
		"no title":        {Amount: decimal.NewFromInt(1)},
		"negative amount": {Title: "x", Amount: decimal.NewFromInt(-1)},
		"bad category":    {Title: "x", Category: "Food"},
		"bad type":        {Title: "x", Type: "Refund"},
		"bad date":        {Title: "x", Date: "yesterday"},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, uc.CreateExpense(ctx, owner, e), repositories.ErrInvalid)
		})
	}

	e := &entities.Expense{Title: "x", UtilityAccountID: "nope"}
	assert.ErrorIs(t, uc.CreateExpense(ctx, owner, e), repositories.ErrNotFound)
}

func TestCreateExpenseDefaults(t *testing.T) {
	uc, _ := newUseCase(t, cache.Seed{})
	e := &entities.Expense{Title: "Light bulbs", Amount: decimal.NewFromInt(12)}
	require.NoError(t, uc.CreateExpense(context.Background(), owner, e))
	assert.Equal(t, "2024-06-15", e.Date)
	assert.Equal(t, entities.CategoryOther, e.Category)
	assert.Equal(t, entities.EntryExpense, e.Type)
}

func TestFinanceSummary(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "rent", Amount: decimal.NewFromInt(1000), Date: "2024-06-01", Type: entities.EntryIncome,
	}))
	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "water", Amount: decimal.NewFromInt(40), Date: "2024-06-05", Category: entities.CategoryUtilities,
	}))
	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "old", Amount: decimal.NewFromInt(7), Date: "2024-05-05",
	}))

	sum, err := uc.FinanceSummary(ctx, owner, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", sum.Month)
	assert.True(t, decimal.NewFromInt(960).Equal(sum.NetBalance), sum.NetBalance.String())

	_, err = uc.FinanceSummary(ctx, owner, "June")
	assert.ErrorIs(t, err, repositories.ErrInvalid)

	months := uc.FinanceMonths()
	require.NotEmpty(t, months)
	assert.Equal(t, "2024-12", months[0].Value)
}

func TestRoomsBelongToTheirProperty(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	a := &entities.Property{Name: "A"}
	b := &entities.Property{}
	require.NoError(t, uc.CreateProperty(ctx, owner, a))
	require.NoError(t, uc.CreateProperty(ctx, owner, b))
	assert.Equal(t, entities.DefaultPropertyName, b.Name)

	room := &entities.Room{Number: "101"}
	require.NoError(t, uc.AddRoom(ctx, owner, a.ID, room))
	assert.ErrorIs(t, uc.AddRoom(ctx, owner, a.ID, &entities.Room{}), repositories.ErrInvalid)
	assert.ErrorIs(t, uc.AddRoom(ctx, owner, "missing", &entities.Room{Number: "1"}), repositories.ErrNotFound)

	_, err := uc.UpdateRoom(ctx, owner, b.ID, room.ID, &entities.Room{Number: "102"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	updated, err := uc.UpdateRoom(ctx, owner, a.ID, room.ID, &entities.Room{Number: "102"})
	require.NoError(t, err)
	assert.Equal(t, "102", updated.Number)

	require.NoError(t, uc.DeleteRoom(ctx, owner, a.ID, room.ID))
	props, err := uc.ListProperties(ctx, owner)
	require.NoError(t, err)
	for _, p := range props {
		assert.Empty(t, p.Rooms)
	}
}

func TestLastCleaning(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.MockData())

	date, err := uc.LastCleaning(ctx, owner, "p1")
	require.NoError(t, err)
	assert.NotEqual(t, services.NoRecord, date)

	date, err = uc.LastCleaning(ctx, owner, "p2")
	require.NoError(t, err)
	assert.Equal(t, services.NoRecord, date)

	_, err = uc.LastCleaning(ctx, owner, "nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUtilityAccountStatus(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})

	assert.ErrorIs(t, uc.CreateUtilityAccount(ctx, owner, &entities.UtilityAccount{Type: "Gas", AccountNumber: "1"}), repositories.ErrInvalid)
	account := &entities.UtilityAccount{Type: entities.UtilityWater, AccountNumber: "W-1"}
	require.NoError(t, uc.CreateUtilityAccount(ctx, owner, account))

	status, err := uc.UtilityAccountStatus(ctx, owner, account.ID)
	require.NoError(t, err)
	assert.False(t, status.IsPaid)
	assert.Equal(t, services.NeverPaid, status.LastDate)

	require.NoError(t, uc.CreateExpense(ctx, owner, &entities.Expense{
		Title: "water bill", Amount: decimal.NewFromInt(30), Date: "2024-06-01",
		Category: entities.CategoryUtilities, UtilityAccountID: account.ID,
	}))
	status, err = uc.UtilityAccountStatus(ctx, owner, account.ID)
	require.NoError(t, err)
	assert.True(t, status.IsPaid)
	assert.Equal(t, "2024-06-01", status.LastDate)
}

func TestUpdateExpenseUnlinksUtilityAccount(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	account := &entities.UtilityAccount{Type: entities.UtilityWater, AccountNumber: "W-1"}
	require.NoError(t, uc.CreateUtilityAccount(ctx, owner, account))
	payment := &entities.Expense{
		Title: "water bill", Amount: decimal.NewFromInt(30), Date: "2024-06-01",
		Category: entities.CategoryUtilities, UtilityAccountID: account.ID,
	}
	require.NoError(t, uc.CreateExpense(ctx, owner, payment))

	missing := "no-such-account"
	_, err := uc.UpdateExpense(ctx, owner, payment.ID, entities.ExpensePatch{UtilityAccountID: &missing})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	zero, empty := decimal.Zero, ""
	updated, err := uc.UpdateExpense(ctx, owner, payment.ID, entities.ExpensePatch{Amount: &zero, UtilityAccountID: &empty})
	require.NoError(t, err)
	assert.True(t, updated.Amount.IsZero())
	assert.Empty(t, updated.UtilityAccountID)
	assert.Equal(t, "water bill", updated.Title)

	status, err := uc.UtilityAccountStatus(ctx, owner, account.ID)
	require.NoError(t, err)
	assert.False(t, status.IsPaid)
	assert.Equal(t, services.NeverPaid, status.LastDate)
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})

	alerts, err := uc.Notifications(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)

	require.NoError(t, uc.CreateUtilityAccount(ctx, owner, &entities.UtilityAccount{
		Type: entities.UtilityElectricity, AccountNumber: "E-1", Provider: "City Power",
	}))
	require.NoError(t, uc.CreateTenant(ctx, owner, &entities.Tenant{
		Name: "Bob", Unit: "2A", LeaseEnd: "2024-01-31", Rent: decimal.NewFromInt(900),
	}))

	alerts, err = uc.Notifications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, services.AlertUtility, alerts[0].Category)
	assert.Equal(t, services.AlertTenant, alerts[1].Category)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})

	profile, err := uc.GetProfile(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultProfileName, profile.Name)

	updated, err := uc.UpdateProfile(ctx, owner, &entities.UserProfile{Name: "Jo"})
	require.NoError(t, err)
	assert.Equal(t, "Jo", updated.Name)
	assert.Equal(t, entities.DefaultProfileAvatar, updated.Avatar)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"1250":    "+$1,250",
		"85.5":    "+$85.50",
		"1234567": "+$1,234,567",
		"0":       "+$0",
		"999.99":  "+$999.99",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney("+", decimal.RequireFromString(in)), in)
	}
}

// stalledPublisher never finishes a send until release is closed.
type stalledPublisher struct {
	release chan struct{}
}

func (p *stalledPublisher) SendToUser(string, []byte) error {
	<-p.release
	return nil
}

func (p *stalledPublisher) List() []string { return nil }

func TestMutationsDoNotWaitForAlertDelivery(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, cache.Seed{})
	pub := &stalledPublisher{release: make(chan struct{})}
	defer close(pub.release)
	uc.SetNotifier(services.NewAlertProcessor(uc.Notifications, pub, time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- uc.CreateTenant(ctx, owner, &entities.Tenant{Name: "Sarah", Unit: "4B"})
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("CreateTenant waited on the websocket push")
	}
}

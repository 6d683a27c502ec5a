package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-server/entities"
)

func entry(date string, amount int64, typ entities.EntryType, category entities.ExpenseCategory) entities.Expense {
	return entities.Expense{
		ID:       date + string(typ),
		Title:    "entry",
		Date:     date,
		Amount:   decimal.NewFromInt(amount),
		Type:     typ,
		Category: category,
	}
}

func TestSummarizeMonth(t *testing.T) {
	expenses := []entities.Expense{
		entry("2024-03-01", 1250, entities.EntryIncome, entities.CategoryRent),
		entry("2024-03-15", 250, entities.EntryExpense, entities.CategoryMaintenance),
		entry("2024-03-31", 120, entities.EntryExpense, entities.CategoryCleaning),
		entry("2024-04-01", 999, entities.EntryExpense, entities.CategoryOther),
		entry("bad", 5, entities.EntryExpense, entities.CategoryOther),
	}

	summary := SummarizeMonth(expenses, "2024-03")

	require.Len(t, summary.Expenses, 3)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(1250)))
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(370)))
	assert.True(t, summary.NetBalance.Equal(decimal.NewFromInt(880)))
}

func TestSummarizeMonth_Empty(t *testing.T) {
	summary := SummarizeMonth(nil, "2024-03")
	assert.NotNil(t, summary.Expenses)
	assert.True(t, summary.NetBalance.IsZero())
}

func TestMonthOptions(t *testing.T) {
	opts := MonthOptions(time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))

	require.Len(t, opts, 9)
	assert.Equal(t, MonthOption{Value: "2024-09", Label: "September 2024"}, opts[0])
	assert.Equal(t, "2024-01", opts[len(opts)-1].Value)
}

func TestUtilityStatus(t *testing.T) {
	paid, last := UtilityStatus("u1", nil, today)
	assert.False(t, paid)
	assert.Equal(t, NeverPaid, last)

	paid, last = UtilityStatus("u1", []entities.Expense{payment("u1", "2024-06-01")}, today)
	assert.True(t, paid)
	assert.Equal(t, "2024-06-01", last)

	paid, last = UtilityStatus("u1", []entities.Expense{payment("u1", "soon")}, today)
	assert.True(t, paid)
	assert.Equal(t, "soon", last)
}

func TestLastCleaningDate(t *testing.T) {
	clean := func(property, date string) entities.Expense {
		return entities.Expense{Category: entities.CategoryCleaning, PropertyID: property, Date: date}
	}
	expenses := []entities.Expense{
		clean("p1", "2024-03-10"),
		clean("p1", "2024-04-02"),
		clean("p2", "2024-05-01"),
		{Category: entities.CategoryMaintenance, PropertyID: "p1", Date: "2024-06-01"},
	}

	assert.Equal(t, "2024-04-02", LastCleaningDate("p1", expenses))
	assert.Equal(t, NoRecord, LastCleaningDate("p3", expenses))
}

func TestFilterTenants(t *testing.T) {
	tenants := []entities.Tenant{
		{ID: "1", Name: "Sarah Jenkins", Unit: "4B", Property: "The Aviary", Status: entities.TenantMovingOut},
		{ID: "2", Name: "Marcus Cole", Unit: "10C", Property: "The Aviary", Status: entities.TenantActive},
		{ID: "3", Name: "Ana Ruiz", Unit: "2A", Property: "Greenwood Heights", Status: entities.TenantLatePayment},
	}

	assert.Len(t, FilterTenants(tenants, "", StatusFilterAll), 3)
	assert.Len(t, FilterTenants(tenants, "aviary", ""), 2)
	assert.Len(t, FilterTenants(tenants, "4b", ""), 1)

	late := FilterTenants(tenants, "", string(entities.TenantLatePayment))
	require.Len(t, late, 1)
	assert.Equal(t, "3", late[0].ID)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-10-24", "Oct 24, 2024", "October 24, 2024", "10/24/2024", "2024-10-24T09:00:00Z"} {
		day, ok := ParseDate(s, time.UTC)
		require.True(t, ok, s)
		assert.Equal(t, time.Date(2024, time.October, 24, 0, 0, 0, 0, time.UTC), day, s)
	}
	_, ok := ParseDate("", time.UTC)
	assert.False(t, ok)
}

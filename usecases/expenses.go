package usecases

import (
	"context"
	"time"

	"rent-server/entities"
	"rent-server/services"
)

func validateExpense(e *entities.Expense) error {
	if e.Title == "" {
		return invalid("expense title is required")
	}
	if e.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if e.Category != "" && !e.Category.Valid() {
		return invalid("unknown expense category %q", e.Category)
	}
	if e.Type != "" && !e.Type.Valid() {
		return invalid("unknown entry type %q", e.Type)
	}
	if e.Date != "" {
		if _, ok := services.ParseDate(e.Date, time.UTC); !ok {
			return invalid("unreadable date %q", e.Date)
		}
	}
	return nil
}

func (uc *RentalUseCase) ListExpenses(ctx context.Context, userID string) ([]entities.Expense, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Expenses.List(ctx, userID)
}

// CreateExpense books an expense or income entry. Income records a payment
// activity and Maintenance records a maintenance activity.
func (uc *RentalUseCase) CreateExpense(ctx context.Context, userID string, expense *entities.Expense) error {
	if err := validateExpense(expense); err != nil {
		return err
	}
	if expense.Date == "" {
		expense.Date = uc.now().Format("2006-01-02")
	}
	if expense.Category == "" {
		expense.Category = entities.CategoryOther
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if expense.UtilityAccountID != "" {
		if _, err := store.UtilityAccounts.GetByID(ctx, userID, expense.UtilityAccountID); err != nil {
			return err
		}
	}
	if err := store.Expenses.Create(ctx, userID, expense); err != nil {
		return err
	}

	switch {
	case expense.Type == entities.EntryIncome:
		title := "Payment Received"
		if expense.Category == entities.CategoryRent {
			title = "Rent Received"
		}
		sideRecord(userID, "payment", store.Activities.Create(ctx, userID, &entities.Activity{
			Type:    entities.ActivityPayment,
			Title:   title,
			Details: expense.Title,
			Amount:  formatMoney("+", expense.Amount),
			Status:  "completed",
		}))
	case expense.Category == entities.CategoryMaintenance:
		sideRecord(userID, "maintenance", store.Activities.Create(ctx, userID, &entities.Activity{
			Type:    entities.ActivityMaintenance,
			Title:   "Maintenance Logged",
			Details: expense.Title,
			Amount:  formatMoney("-", expense.Amount),
		}))
	}
	uc.changed(ctx, userID)
	return nil
}

func (uc *RentalUseCase) UpdateExpense(ctx context.Context, userID, id string, patch entities.ExpensePatch) (*entities.Expense, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := store.Expenses.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(existing)

	if patch.UtilityAccountID != nil && existing.UtilityAccountID != "" {
		if _, err := store.UtilityAccounts.GetByID(ctx, userID, existing.UtilityAccountID); err != nil {
			return nil, err
		}
	}
	if err := validateExpense(existing); err != nil {
		return nil, err
	}
	if err := store.Expenses.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	uc.changed(ctx, userID)
	return existing, nil
}

func (uc *RentalUseCase) DeleteExpense(ctx context.Context, userID, id string) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.Expenses.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

// FinanceSummary totals the caller's entries dated in month (YYYY-MM).
// An empty month means the current one.
func (uc *RentalUseCase) FinanceSummary(ctx context.Context, userID, month string) (services.MonthSummary, error) {
	if month == "" {
		month = uc.now().Format("2006-01")
	} else if _, err := time.Parse("2006-01", month); err != nil {
		return services.MonthSummary{}, invalid("month must look like YYYY-MM, got %q", month)
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return services.MonthSummary{}, err
	}
	expenses, err := store.Expenses.List(ctx, userID)
	if err != nil {
		return services.MonthSummary{}, err
	}
	return services.SummarizeMonth(expenses, month), nil
}

func (uc *RentalUseCase) FinanceMonths() []services.MonthOption {
	return services.MonthOptions(uc.now())
}

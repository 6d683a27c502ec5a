package usecases

import (
	"context"

	"rent-server/entities"
	"rent-server/services"
)

func validateUtilityAccount(a *entities.UtilityAccount) error {
	if !a.Type.Valid() {
		return invalid("utility type must be Water, Electricity or Internet, got %q", a.Type)
	}
	if a.AccountNumber == "" {
		return invalid("account number is required")
	}
	return nil
}

func (uc *RentalUseCase) ListUtilityAccounts(ctx context.Context, userID string) ([]entities.UtilityAccount, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.UtilityAccounts.List(ctx, userID)
}

func (uc *RentalUseCase) CreateUtilityAccount(ctx context.Context, userID string, account *entities.UtilityAccount) error {
	if err := validateUtilityAccount(account); err != nil {
		return err
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.UtilityAccounts.Create(ctx, userID, account); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

func (uc *RentalUseCase) UpdateUtilityAccount(ctx context.Context, userID, id string, patch *entities.UtilityAccount) (*entities.UtilityAccount, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := store.UtilityAccounts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Type != "" {
		existing.Type = patch.Type
	}
	if patch.AccountNumber != "" {
		existing.AccountNumber = patch.AccountNumber
	}
	if patch.Provider != "" {
		existing.Provider = patch.Provider
	}
	if patch.PropertyID != "" {
		existing.PropertyID = patch.PropertyID
	}
	if err := validateUtilityAccount(existing); err != nil {
		return nil, err
	}
	if err := store.UtilityAccounts.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	uc.changed(ctx, userID)
	return existing, nil
}

func (uc *RentalUseCase) DeleteUtilityAccount(ctx context.Context, userID, id string) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.UtilityAccounts.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

// UtilityStatus is the paid state the finance view shows per account.
type UtilityStatus struct {
	AccountID string `json:"account_id"`
	IsPaid    bool   `json:"is_paid"`
	LastDate  string `json:"last_date"`
}

func (uc *RentalUseCase) UtilityAccountStatus(ctx context.Context, userID, id string) (UtilityStatus, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return UtilityStatus{}, err
	}
	if _, err := store.UtilityAccounts.GetByID(ctx, userID, id); err != nil {
		return UtilityStatus{}, err
	}
	expenses, err := store.Expenses.List(ctx, userID)
	if err != nil {
		return UtilityStatus{}, err
	}
	paid, last := services.UtilityStatus(id, expenses, uc.now())
	return UtilityStatus{AccountID: id, IsPaid: paid, LastDate: last}, nil
}

package usecases

import (
	"context"
	"fmt"

	"rent-server/entities"
	"rent-server/services"
)

func validateTenant(t *entities.Tenant) error {
	if t.Name == "" {
		return invalid("tenant name is required")
	}
	if t.Unit == "" {
		return invalid("tenant unit is required")
	}
	if t.Rent.IsNegative() {
		return invalid("rent must not be negative")
	}
	if t.Deposit.IsNegative() {
		return invalid("deposit must not be negative")
	}
	if t.Status != "" && !t.Status.Valid() {
		return invalid("unknown tenant status %q", t.Status)
	}
	return nil
}

// ListTenants returns the caller's tenants matching query (name or unit)
// and status ("" or "All" for any).
func (uc *RentalUseCase) ListTenants(ctx context.Context, userID, query, status string) ([]entities.Tenant, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	tenants, err := store.Tenants.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = services.StatusFilterAll
	}
	return services.FilterTenants(tenants, query, status), nil
}

func (uc *RentalUseCase) GetTenant(ctx context.Context, userID, id string) (*entities.Tenant, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Tenants.GetByID(ctx, userID, id)
}

// CreateTenant adds a tenant and records a lease activity for it.
func (uc *RentalUseCase) CreateTenant(ctx context.Context, userID string, tenant *entities.Tenant) error {
	if err := validateTenant(tenant); err != nil {
		return err
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.Tenants.Create(ctx, userID, tenant); err != nil {
		return err
	}

	sideRecord(userID, "lease", store.Activities.Create(ctx, userID, &entities.Activity{
		Type:    entities.ActivityLease,
		Title:   "New Lease Signed",
		Details: fmt.Sprintf("Unit %s - %s", tenant.Unit, tenant.Name),
	}))
	uc.changed(ctx, userID)
	return nil
}

// UpdateTenant applies patch to tenant id.
func (uc *RentalUseCase) UpdateTenant(ctx context.Context, userID, id string, patch entities.TenantPatch) (*entities.Tenant, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := store.Tenants.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(existing)

	if err := validateTenant(existing); err != nil {
		return nil, err
	}
	if err := store.Tenants.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	uc.changed(ctx, userID)
	return existing, nil
}

func (uc *RentalUseCase) DeleteTenant(ctx context.Context, userID, id string) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.Tenants.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

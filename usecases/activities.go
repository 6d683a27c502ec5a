package usecases

import (
	"context"

	"rent-server/entities"
)

// ListActivities returns the caller's most recent activities.
func (uc *RentalUseCase) ListActivities(ctx context.Context, userID string) ([]entities.Activity, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Activities.List(ctx, userID)
}

func (uc *RentalUseCase) CreateActivity(ctx context.Context, userID string, activity *entities.Activity) error {
	if activity.Title == "" {
		return invalid("activity title is required")
	}
	switch activity.Type {
	case entities.ActivityPayment, entities.ActivityLease, entities.ActivityMaintenance:
	default:
		return invalid("unknown activity type %q", activity.Type)
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	return store.Activities.Create(ctx, userID, activity)
}

func (uc *RentalUseCase) GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Profiles.Get(ctx, userID)
}

// UpdateProfile changes the display name and avatar; empty fields keep
// their current value.
func (uc *RentalUseCase) UpdateProfile(ctx context.Context, userID string, patch *entities.UserProfile) (*entities.UserProfile, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := store.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Avatar != "" {
		existing.Avatar = patch.Avatar
	}
	if err := store.Profiles.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rent-server/db"
	"rent-server/entities"
)

type profilePgRepository struct {
	pgTable[entities.UserProfile, *entities.UserProfile]
}

func NewProfilePgRepository(database db.Database) ProfileRepository {
	return &profilePgRepository{pgTable[entities.UserProfile, *entities.UserProfile]{
		db:   database,
		kind: "user_profile",
	}}
}

func (r *profilePgRepository) Get(ctx context.Context, userID string) (*entities.UserProfile, error) {
	q, err := r.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var profile entities.UserProfile
	err = q.First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.fail("get", userID, "", err)
	}

	created := entities.DefaultProfile(userID)
	if err := r.Create(ctx, userID, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *profilePgRepository) Update(ctx context.Context, userID string, profile *entities.UserProfile) error {
	existing, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	profile.ID = existing.ID
	return r.pgTable.Update(ctx, userID, profile)
}

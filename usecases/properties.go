package usecases

import (
	"context"
	"strings"

	"rent-server/entities"
	"rent-server/services"
)

func (uc *RentalUseCase) ListProperties(ctx context.Context, userID string) ([]entities.Property, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Properties.List(ctx, userID)
}

// CreateProperty adds a property. Missing name and address get defaults.
func (uc *RentalUseCase) CreateProperty(ctx context.Context, userID string, property *entities.Property) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	property.Name = strings.TrimSpace(property.Name)
	property.Address = strings.TrimSpace(property.Address)
	if err := store.Properties.Create(ctx, userID, property); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

func (uc *RentalUseCase) UpdateProperty(ctx context.Context, userID, id string, patch *entities.Property) (*entities.Property, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := store.Properties.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(patch.Name); name != "" {
		existing.Name = name
	}
	if address := strings.TrimSpace(patch.Address); address != "" {
		existing.Address = address
	}
	if err := store.Properties.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	uc.changed(ctx, userID)
	return existing, nil
}

// DeleteProperty removes the property and its rooms.
func (uc *RentalUseCase) DeleteProperty(ctx context.Context, userID, id string) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.Properties.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

func (uc *RentalUseCase) AddRoom(ctx context.Context, userID, propertyID string, room *entities.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		return invalid("room number is required")
	}
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := store.Properties.GetByID(ctx, userID, propertyID); err != nil {
		return err
	}
	room.PropertyID = propertyID
	if err := store.Rooms.Create(ctx, userID, room); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

func (uc *RentalUseCase) UpdateRoom(ctx context.Context, userID, propertyID, roomID string, patch *entities.Room) (*entities.Room, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.roomOf(ctx, userID, propertyID, roomID)
	if err != nil {
		return nil, err
	}
	if number := strings.TrimSpace(patch.Number); number != "" {
		existing.Number = number
	}
	if err := store.Rooms.Update(ctx, userID, existing); err != nil {
		return nil, err
	}
	uc.changed(ctx, userID)
	return existing, nil
}

func (uc *RentalUseCase) DeleteRoom(ctx context.Context, userID, propertyID, roomID string) error {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := uc.roomOf(ctx, userID, propertyID, roomID); err != nil {
		return err
	}
	if err := store.Rooms.Delete(ctx, userID, roomID); err != nil {
		return err
	}
	uc.changed(ctx, userID)
	return nil
}

// roomOf fetches a room, treating a room of another property as missing.
func (uc *RentalUseCase) roomOf(ctx context.Context, userID, propertyID, roomID string) (*entities.Room, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	room, err := store.Rooms.GetByID(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if room.PropertyID != propertyID {
		return nil, notFoundIn("room", roomID, "property", propertyID)
	}
	return room, nil
}

// LastCleaning returns the date of the property's latest Cleaning expense,
// or services.NoRecord.
func (uc *RentalUseCase) LastCleaning(ctx context.Context, userID, propertyID string) (string, error) {
	store, err := uc.store(ctx, userID)
	if err != nil {
		return "", err
	}
	if _, err := store.Properties.GetByID(ctx, userID, propertyID); err != nil {
		return "", err
	}
	expenses, err := store.Expenses.List(ctx, userID)
	if err != nil {
		return "", err
	}
	return services.LastCleaningDate(propertyID, expenses), nil
}

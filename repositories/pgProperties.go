package repositories

import (
	"context"

	"gorm.io/gorm"

	"rent-server/db"
	"rent-server/entities"
)

type propertyPgRepository struct {
	pgTable[entities.Property, *entities.Property]
}

func NewPropertyPgRepository(database db.Database) PropertyRepository {
	return &propertyPgRepository{pgTable[entities.Property, *entities.Property]{
		db:    database,
		kind:  "property",
		order: "created_at DESC",
		preload: func(q *gorm.DB) *gorm.DB {
			return q.Preload("Rooms", func(rooms *gorm.DB) *gorm.DB {
				return rooms.Order("created_at ASC")
			})
		},
	}}
}

// Delete removes the property together with its rooms.
func (r *propertyPgRepository) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("property_id = ? AND user_id = ?", id, userID).Delete(&entities.Room{}).Error
	})
	if err != nil {
		return r.fail("delete", userID, id, err)
	}
	return nil
}

type roomPgRepository struct {
	pgTable[entities.Room, *entities.Room]
}

func NewRoomPgRepository(database db.Database) RoomRepository {
	return &roomPgRepository{pgTable[entities.Room, *entities.Room]{
		db:    database,
		kind:  "room",
		order: "created_at ASC",
	}}
}

func (r *roomPgRepository) ListByProperty(ctx context.Context, userID, propertyID string) ([]entities.Room, error) {
	q, err := r.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	rooms := make([]entities.Room, 0)
	if err := q.Where("property_id = ?", propertyID).Order(r.order).Find(&rooms).Error; err != nil {
		return nil, r.fail("list", userID, propertyID, err)
	}
	return rooms, nil
}

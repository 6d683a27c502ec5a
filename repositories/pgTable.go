package repositories

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rent-server/cache"
	"rent-server/db"
)

// pgTable implements Repository[T] on top of gorm. The kind-specific
// repositories embed it and set ordering, limits and preloads.
type pgTable[T any, P cache.Row[T]] struct {
	db      db.Database
	kind    string
	order   string
	limit   int
	preload func(q *gorm.DB) *gorm.DB
}

func (r *pgTable[T, P]) scoped(ctx context.Context, userID string) (*gorm.DB, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	q := r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID)
	if r.preload != nil {
		q = r.preload(q)
	}
	return q, nil
}

func (r *pgTable[T, P]) fail(op, userID, id string, err error) error {
	if err == ErrNotFound || err == ErrNotAuthenticated {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"kind":    r.kind,
		"op":      op,
		"user_id": userID,
		"id":      id,
	}).WithError(err).Error("store call failed")
	return err
}

func (r *pgTable[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	q, err := r.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.order != "" {
		q = q.Order(r.order)
	}
	if r.limit > 0 {
		q = q.Limit(r.limit)
	}
	rows := make([]T, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, r.fail("list", userID, "", err)
	}
	return rows, nil
}

func (r *pgTable[T, P]) GetByID(ctx context.Context, userID, id string) (*T, error) {
	q, err := r.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	var row T
	if err := q.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.fail("get", userID, id, notFound(err))
	}
	return &row, nil
}

func (r *pgTable[T, P]) Create(ctx context.Context, userID string, row *T) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	P(row).SetUserID(userID)
	if err := r.db.GetDB().WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return r.fail("create", userID, P(row).GetID(), err)
	}
	return nil
}

// Update overwrites every column of the caller's row with the same id.
func (r *pgTable[T, P]) Update(ctx context.Context, userID string, row *T) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	p := P(row)
	p.SetUserID(userID)
	p.Touch()
	res := r.db.GetDB().WithContext(ctx).
		Model(row).
		Where("user_id = ?", userID).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return r.fail("update", userID, p.GetID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgTable[T, P]) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	res := r.db.GetDB().WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(P(new(T)))
	if res.Error != nil {
		return r.fail("delete", userID, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

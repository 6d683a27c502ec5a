package repositories

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"rent-server/db"
	"rent-server/entities"
)

// UserRepository keeps login accounts. Accounts are not owner-scoped.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, user *entities.User) error {
	var taken int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.User{}).
		Where("username = ? OR email = ?", user.Username, user.Email).
		Count(&taken).Error
	if err != nil {
		return err
	}
	if taken > 0 {
		return ErrDuplicate
	}
	return r.db.GetDB().WithContext(ctx).Create(user).Error
}

func (r *userPgRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.GetDB().WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

type memUsers struct {
	mu    sync.RWMutex
	users map[string]entities.User // username -> user
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]entities.User)}
}

func (r *memUsers) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = entities.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = *user
	return nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

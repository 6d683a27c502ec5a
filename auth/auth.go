package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"rent-server/entities"
	"rent-server/repositories"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Users is where accounts are kept.
type Users = repositories.UserRepository

// Service registers users, checks passwords and resolves session tokens
// into the caller identity.
type Service struct {
	users Users

	mu       sync.RWMutex
	sessions map[string]string // token -> userID
}

func NewService(users Users) *Service {
	return &Service{
		users:    users,
		sessions: make(map[string]string),
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", repositories.ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Login checks the password and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (token string, user *entities.User, err error) {
	user, err = s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token = uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = user.ID
	s.mu.Unlock()
	return token, user, nil
}

// Identity returns the user behind token, or "" when there is none.
func (s *Service) Identity(token string) string {
	if token == "" {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[token]
}

func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

type Service struct {
	users  storage.UserStore
	hasher Hasher
}

func NewService(users storage.UserStore, hasher Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Register stores a non-admin account. A taken username yields storage.ErrConflict.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.create(ctx, username, password, false)
}

func (s *Service) create(ctx context.Context, username, password string, admin bool) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.users.CreateUser(ctx, domain.User{
		Username: username,
		Password: hash,
		IsAdmin:  admin,
	})
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		slog.Warn("admin bootstrap skipped, ADMIN_USERNAME or ADMIN_PASSWORD not set")
		return nil
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		slog.Debug("admin account already exists", "username", username)
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	if _, err := s.create(ctx, username, password, true); err != nil && !errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	slog.Info("admin account created", "username", username)
	return nil
}

// lookup resolves a user id into a fresh identity so revoked rights apply immediately.
func lookup(ctx context.Context, users storage.UserStore, id int64) (*Identity, error) {
	user, err := users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Identity{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

package in_mem

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

func (s *InMemStorer) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("user %q: %w", user.Username, storage.ErrConflict)
		}
	}

	user.ID = s.nextID("users")
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *InMemStorer) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return &user, nil
}

func (s *InMemStorer) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
}

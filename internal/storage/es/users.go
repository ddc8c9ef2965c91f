package es

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
)

// Users are keyed by username so the _create endpoint enforces uniqueness.
func (e *Storer) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	id, err := e.nextID(ctx, "users")
	if err != nil {
		return nil, err
	}

	user.ID = id
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err = e.client.Create(e.indices.users, user.Username).
		Document(toUserDocument(user)).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		if isStatus(err, http.StatusConflict) {
			return nil, fmt.Errorf("user %q: %w", user.Username, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (e *Storer) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := termQuery("id", id)
	hits, err := e.search(ctx, e.indices.users, &query, 1, asc("id"), asc("created_at"))
	if err != nil {
		return nil, err
	}
	docs, err := decodeHits[userDocument](hits)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	u := docs[0].toDomain()
	return &u, nil
}

func (e *Storer) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	found, err := e.get(ctx, e.indices.users, username, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
	}
	u := doc.toDomain()
	return &u, nil
}

package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password, is_admin, created_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (s *Storer) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO users (username, password, is_admin, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRow(ctx, cmd, user.Username, user.Password, user.IsAdmin, user.CreatedAt))
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("user %q: %w", user.Username, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &created, nil
}

func (s *Storer) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return &u, nil
}

func (s *Storer) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	return &u, nil
}

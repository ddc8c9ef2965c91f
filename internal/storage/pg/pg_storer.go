package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Storer persists every entity in PostgreSQL. Counter updates are single
// UPDATE statements so the row lock makes them atomic.
type Storer struct {
	db     *pgxpool.Pool
	health *HealthChecker
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{
		db:     pool.GetConn(),
		health: NewHealthChecker(pool),
	}, nil
}

func (s *Storer) Healthy(ctx context.Context) bool {
	return s.health.Healthy(ctx)
}

func (s *Storer) Close() error {
	s.db.Close()
	return nil
}

// notFound maps pgx.ErrNoRows to storage.ErrNotFound and wraps anything else.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func langPtr(l *domain.Language) *string {
	if l == nil {
		return nil
	}
	s := string(*l)
	return &s
}

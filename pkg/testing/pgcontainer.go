package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:17.5"
	pgDatabase = "nouvel_test_db"
	pgUser     = "test"
	pgPassword = "test"
)

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

// NewPGContainer starts Postgres with every up migration applied as an init
// script and terminates it when tb finishes.
func NewPGContainer(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	scripts, err := migrationScripts()
	if err != nil {
		tb.Fatalf("failed to find migrations: %v", err)
	}

	pgContainer, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDatabase),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPassword),
		postgres.WithInitScripts(scripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("failed to get connection string: %v", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}
}

// migrationScripts lists db/migrations/*.up.sql in apply order.
func migrationScripts() ([]string, error) {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")

	scripts, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no up migrations in %s", dir)
	}
	sort.Strings(scripts)
	return scripts, nil
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/contractwatch/riskengine/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container and registers its
// teardown with t.Cleanup.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("riskengine"),
		tcpostgres.WithUsername("risk"),
		tcpostgres.WithPassword("risk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	pc := &PostgresContainer{Container: container}
	t.Cleanup(func() { pc.terminate(t) })

	pc.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pc.Pool, err = postgres.NewPool(ctx, postgres.Config{URL: pc.DSN})
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	return pc
}

// Migrate applies the migrations in dir through golang-migrate.
func (pc *PostgresContainer) Migrate(t *testing.T, dir string) {
	t.Helper()
	if err := postgres.RunMigrations(pc.DSN, dir); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

// Rollback reverts every migration in dir.
func (pc *PostgresContainer) Rollback(t *testing.T, dir string) {
	t.Helper()
	if err := postgres.RunMigrationsDown(pc.DSN, dir); err != nil {
		t.Fatalf("failed to roll back migrations: %v", err)
	}
}

func (pc *PostgresContainer) terminate(t *testing.T) {
	if pc.Pool != nil {
		pc.Pool.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate postgres container: %v", err)
	}
}

package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDatabaseSetup holds the database repository tests run against
type TestDatabaseSetup struct {
	DB        *database.DB
	container *postgres.PostgresContainer
}

// NewTestDatabase connects to TEST_DATABASE_URL, or starts a disposable Postgres
// container when it is unset
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	setup := &TestDatabaseSetup{}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		container, err := postgres.RunContainer(ctx,
			testcontainers.WithImage("postgres:16-alpine"),
			postgres.WithDatabase("cmlabs_hris_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("root"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start postgres container: %w", err)
		}
		setup.container = container

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			setup.Close(ctx)
			return nil, fmt.Errorf("failed to get container connection string: %w", err)
		}
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		setup.Close(ctx)
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	setup.DB = db

	return setup, nil
}

// ApplySchema runs the DDL file at path; statements must be idempotent
func (t *TestDatabaseSetup) ApplySchema(ctx context.Context, path string) error {
	ddl, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := t.DB.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close releases the pool and terminates the container, if one was started
func (t *TestDatabaseSetup) Close(ctx context.Context) {
	if t.DB != nil {
		t.DB.Close()
	}
	if t.container != nil {
		_ = t.container.Terminate(ctx)
	}
}

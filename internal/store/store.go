package store

import (
	"context"
	"time"

	"github.com/feral-file/yield-ingester/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Ping checks that the database accepts queries
	Ping(ctx context.Context) error
	// WithTransaction runs fn inside a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error

	// UpsertChain returns the id of the chain with the given name, creating it if absent
	UpsertChain(ctx context.Context, name string) (int64, error)
	// UpsertProject returns the id of the project with the given name, creating a
	// name-only row if absent. Existing metadata is never touched.
	UpsertProject(ctx context.Context, name string) (int64, error)
	// UpsertProjectMetadata inserts the project or fully replaces its descriptive
	// and financial fields, keyed on name. Name and created_at are never altered.
	UpsertProjectMetadata(ctx context.Context, project *schema.Project) error
	// UpsertPool inserts the pool or overwrites its attributes, keyed on pool_id
	UpsertPool(ctx context.Context, pool *schema.Pool) error
	// UpsertPoolSnapshot inserts the day's snapshot or overwrites its metrics,
	// keyed on (pool_id, snapshot_date). The original created_at is preserved.
	UpsertPoolSnapshot(ctx context.Context, snapshot *schema.PoolSnapshot) error

	// GetChainByName retrieves a chain by name, nil when absent
	GetChainByName(ctx context.Context, name string) (*schema.Chain, error)
	// GetProjectByName retrieves a project by name, nil when absent
	GetProjectByName(ctx context.Context, name string) (*schema.Project, error)
	// GetPool retrieves a pool by its external id, nil when absent
	GetPool(ctx context.Context, poolID string) (*schema.Pool, error)
	// GetPoolSnapshot retrieves the snapshot of a pool for a UTC day, nil when absent
	GetPoolSnapshot(ctx context.Context, poolID string, snapshotDate time.Time) (*schema.PoolSnapshot, error)
	// CountPools returns the number of rows in pools
	CountPools(ctx context.Context) (int64, error)
	// CountPoolSnapshots returns the number of rows in pool_snapshots
	CountPoolSnapshots(ctx context.Context) (int64, error)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/yield-ingester/internal/domain"
	"github.com/feral-file/yield-ingester/internal/store/schema"
)

// projectMetadataColumns are overwritten on every metadata sync (full replace, not merge)
var projectMetadataColumns = []string{
	"slug", "symbol", "chain", "chains", "category", "description", "twitter", "listed_at",
	"tvl", "tvl_prev_day", "tvl_prev_week", "tvl_prev_month", "mcap", "fdv",
	"change_1h", "change_1d", "change_7d", "chain_tvls", "tokens",
	"audits", "audit_note", "forked_from", "oracles", "parent_protocols", "other_chains",
	"updated_at",
}

// poolColumns are overwritten whenever a pool is seen again, including its attribution
var poolColumns = []string{
	"chain_id", "project_id", "symbol", "stablecoin", "il_risk", "exposure",
	"reward_tokens", "underlying_tokens", "pool_meta", "updated_at",
}

// poolSnapshotColumns are overwritten by a second pull on the same day.
// created_at is deliberately absent: it records the first observation of the day.
var poolSnapshotColumns = []string{
	"fetched_at", "tvl_usd", "apy_base", "apy_reward", "apy",
	"apy_pct_1d", "apy_pct_7d", "apy_pct_30d", "il_7d", "apy_base_7d", "apy_mean_30d",
	"volume_usd_1d", "volume_usd_7d", "apy_base_inception", "mu", "sigma",
	"observation_count", "outlier",
	"predicted_class", "predicted_probability", "predicted_confidence_bin", "predictions",
}

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to defaults sized for a single-threaded ingester:
//   - MaxOpenConns: 4
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 5 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 4
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 5 * time.Minute
	}
	maxIdleConns = min(maxIdleConns, maxOpenConns)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// Ping checks that the database accepts queries
func (s *pgStore) Ping(ctx context.Context) error {
	var now time.Time
	if err := s.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside a single database transaction
func (s *pgStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// UpsertChain returns the id of the chain with the given name, creating it if absent.
// On conflict the name is re-asserted so that RETURNING yields the existing id in
// a single round trip.
func (s *pgStore) UpsertChain(ctx context.Context, name string) (int64, error) {
	chain := schema.Chain{Name: name}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"name": gorm.Expr("EXCLUDED.name")}),
	}).Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(&chain).Error; err != nil {
		return 0, fmt.Errorf("failed to upsert chain: %w", err)
	}

	return chain.ID, nil
}

// UpsertProject returns the id of the project with the given name, creating a name-only row if absent
func (s *pgStore) UpsertProject(ctx context.Context, name string) (int64, error) {
	project := schema.Project{Name: name}
	if err := s.db.WithContext(ctx).
		Select("name").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"name": gorm.Expr("EXCLUDED.name")}),
		}).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(&project).Error; err != nil {
		return 0, fmt.Errorf("failed to upsert project: %w", err)
	}

	return project.ID, nil
}

// UpsertProjectMetadata inserts the project or replaces its metadata, keyed on name
func (s *pgStore) UpsertProjectMetadata(ctx context.Context, project *schema.Project) error {
	if project.Name == "" {
		return fmt.Errorf("failed to upsert project metadata: empty name")
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns(projectMetadataColumns),
	}).Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(project).Error; err != nil {
		return fmt.Errorf("failed to upsert project metadata: %w", err)
	}

	return nil
}

// UpsertPool inserts the pool or overwrites its attributes, keyed on pool_id
func (s *pgStore) UpsertPool(ctx context.Context, pool *schema.Pool) error {
	if err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pool_id"}},
			DoUpdates: clause.AssignmentColumns(poolColumns),
		}).
		Create(pool).Error; err != nil {
		return fmt.Errorf("failed to upsert pool: %w", err)
	}

	return nil
}

// UpsertPoolSnapshot inserts the day's snapshot or overwrites its metrics
func (s *pgStore) UpsertPoolSnapshot(ctx context.Context, snapshot *schema.PoolSnapshot) error {
	snapshot.SnapshotDate = domain.SnapshotDate(snapshot.SnapshotDate)

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pool_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns(poolSnapshotColumns),
	}).Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to upsert pool snapshot: %w", err)
	}

	return nil
}

// GetChainByName retrieves a chain by name
func (s *pgStore) GetChainByName(ctx context.Context, name string) (*schema.Chain, error) {
	var chain schema.Chain
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&chain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chain: %w", err)
	}
	return &chain, nil
}

// GetProjectByName retrieves a project by name
func (s *pgStore) GetProjectByName(ctx context.Context, name string) (*schema.Project, error) {
	var project schema.Project
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// GetPool retrieves a pool by its external id
func (s *pgStore) GetPool(ctx context.Context, poolID string) (*schema.Pool, error) {
	var pool schema.Pool
	err := s.db.WithContext(ctx).Where("pool_id = ?", poolID).First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return &pool, nil
}

// GetPoolSnapshot retrieves the snapshot of a pool for a UTC day
func (s *pgStore) GetPoolSnapshot(ctx context.Context, poolID string, snapshotDate time.Time) (*schema.PoolSnapshot, error) {
	var snapshot schema.PoolSnapshot
	err := s.db.WithContext(ctx).
		Where("pool_id = ? AND snapshot_date = ?", poolID, domain.SnapshotDate(snapshotDate).Format(time.DateOnly)).
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pool snapshot: %w", err)
	}
	return &snapshot, nil
}

// CountPools returns the number of rows in pools
func (s *pgStore) CountPools(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Pool{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pools: %w", err)
	}
	return count, nil
}

// CountPoolSnapshots returns the number of rows in pool_snapshots
func (s *pgStore) CountPoolSnapshots(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.PoolSnapshot{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pool snapshots: %w", err)
	}
	return count, nil
}

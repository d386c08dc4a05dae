package store

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/yield-ingester/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var (
	testDay      = time.Date(2024, 5, 24, 0, 0, 0, 0, time.UTC)
	testMorning  = time.Date(2024, 5, 24, 8, 0, 0, 0, time.UTC)
	testEvening  = time.Date(2024, 5, 24, 20, 30, 0, 0, time.UTC)
	testTomorrow = time.Date(2024, 5, 25, 8, 0, 0, 0, time.UTC)
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func stringPtr(s string) *string {
	return &s
}

func buildTestPool(poolID string, chainID, projectID int64, now time.Time) *schema.Pool {
	return &schema.Pool{
		PoolID:           poolID,
		ChainID:          chainID,
		ProjectID:        projectID,
		Symbol:           stringPtr("USDC"),
		UnderlyingTokens: pq.StringArray{"0xa0b8"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func buildTestSnapshot(poolID string, tvl string, fetchedAt time.Time) *schema.PoolSnapshot {
	return &schema.PoolSnapshot{
		PoolID:       poolID,
		SnapshotDate: fetchedAt,
		FetchedAt:    fetchedAt,
		TVLUsd:       decimalPtr(tvl),
		APY:          decimalPtr("4.2"),
		CreatedAt:    fetchedAt,
	}
}

// seedPool creates chain, project and pool rows and returns their ids
func seedPool(t *testing.T, store Store, poolID, chain, project string) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	chainID, err := store.UpsertChain(ctx, chain)
	require.NoError(t, err)
	projectID, err := store.UpsertProject(ctx, project)
	require.NoError(t, err)
	require.NoError(t, store.UpsertPool(ctx, buildTestPool(poolID, chainID, projectID, testMorning)))

	return chainID, projectID
}

// execIsolated runs a raw statement in a savepoint so that a failure does not
// abort the surrounding test transaction
func execIsolated(store Store, sql string, args ...interface{}) error {
	return store.WithTransaction(context.Background(), func(tx Store) error {
		return tx.(*pgStore).db.Exec(sql, args...).Error
	})
}

// =============================================================================
// Tests
// =============================================================================

func testUpsertChain(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns the same id for the same name", func(t *testing.T) {
		first, err := store.UpsertChain(ctx, "Ethereum")
		require.NoError(t, err)
		second, err := store.UpsertChain(ctx, "Ethereum")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		other, err := store.UpsertChain(ctx, "Arbitrum")
		require.NoError(t, err)
		assert.NotEqual(t, first, other)
	})

	t.Run("lookup by name", func(t *testing.T) {
		id, err := store.UpsertChain(ctx, "Base")
		require.NoError(t, err)

		chain, err := store.GetChainByName(ctx, "Base")
		require.NoError(t, err)
		require.NotNil(t, chain)
		assert.Equal(t, id, chain.ID)

		missing, err := store.GetChainByName(ctx, "Nonexistent")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func testUpsertProject(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("name-only upsert does not wipe metadata", func(t *testing.T) {
		require.NoError(t, store.UpsertProjectMetadata(ctx, &schema.Project{
			Name:      "aave-v3",
			Slug:      stringPtr("aave-v3"),
			Category:  stringPtr("Lending"),
			TVL:       decimalPtr("1000"),
			CreatedAt: testMorning,
			UpdatedAt: testMorning,
		}))

		before, err := store.GetProjectByName(ctx, "aave-v3")
		require.NoError(t, err)
		require.NotNil(t, before)

		id, err := store.UpsertProject(ctx, "aave-v3")
		require.NoError(t, err)
		assert.Equal(t, before.ID, id)

		after, err := store.GetProjectByName(ctx, "aave-v3")
		require.NoError(t, err)
		require.NotNil(t, after.Category)
		assert.Equal(t, "Lending", *after.Category)
		require.NotNil(t, after.TVL)
		assert.True(t, decimal.RequireFromString("1000").Equal(*after.TVL))
	})

	t.Run("new name creates a bare row", func(t *testing.T) {
		id, err := store.UpsertProject(ctx, "fresh-project")
		require.NoError(t, err)
		assert.NotZero(t, id)

		project, err := store.GetProjectByName(ctx, "fresh-project")
		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Nil(t, project.Slug)
		assert.Nil(t, project.TVL)
	})
}

func testUpsertProjectMetadata(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("fills metadata of a project first seen in the pools feed", func(t *testing.T) {
		id, err := store.UpsertProject(ctx, "curve-dex")
		require.NoError(t, err)

		require.NoError(t, store.UpsertProjectMetadata(ctx, &schema.Project{
			Name:       "curve-dex",
			Slug:       stringPtr("curve-dex"),
			Chains:     pq.StringArray{"Ethereum", "Arbitrum"},
			ChainTVLs:  datatypes.JSON(`{"Ethereum":{"tvl":1}}`),
			ListedAt:   &testDay,
			TVL:        decimalPtr("0.123456789012345678901234567890"),
			CreatedAt:  testEvening,
			UpdatedAt:  testEvening,
			ForkedFrom: nil,
		}))

		project, err := store.GetProjectByName(ctx, "curve-dex")
		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Equal(t, id, project.ID)
		assert.Equal(t, []string{"Ethereum", "Arbitrum"}, []string(project.Chains))
		assert.JSONEq(t, `{"Ethereum":{"tvl":1}}`, string(project.ChainTVLs))
		require.NotNil(t, project.TVL)
		assert.Equal(t, "0.12345678901234567890123456789", project.TVL.String())
		require.NotNil(t, project.ListedAt)
		assert.True(t, testDay.Equal(*project.ListedAt))
	})

	t.Run("full replace clears fields absent from the new record", func(t *testing.T) {
		require.NoError(t, store.UpsertProjectMetadata(ctx, &schema.Project{
			Name:        "lido",
			Slug:        stringPtr("lido"),
			Description: stringPtr("liquid staking"),
			Mcap:        decimalPtr("500"),
			CreatedAt:   testMorning,
			UpdatedAt:   testMorning,
		}))
		require.NoError(t, store.UpsertProjectMetadata(ctx, &schema.Project{
			Name:      "lido",
			Slug:      stringPtr("lido"),
			CreatedAt: testEvening,
			UpdatedAt: testEvening,
		}))

		project, err := store.GetProjectByName(ctx, "lido")
		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Nil(t, project.Description)
		assert.Nil(t, project.Mcap)
		assert.True(t, testMorning.Equal(project.CreatedAt))
		assert.True(t, testEvening.Equal(project.UpdatedAt))
	})

	t.Run("slug collision between names is rejected", func(t *testing.T) {
		require.NoError(t, store.UpsertProjectMetadata(ctx, &schema.Project{
			Name: "uniswap-v3", Slug: stringPtr("uniswap"), CreatedAt: testMorning, UpdatedAt: testMorning,
		}))

		err := store.WithTransaction(ctx, func(tx Store) error {
			return tx.UpsertProjectMetadata(ctx, &schema.Project{
				Name: "uniswap-v2", Slug: stringPtr("uniswap"), CreatedAt: testMorning, UpdatedAt: testMorning,
			})
		})
		assert.Error(t, err)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		err := store.UpsertProjectMetadata(ctx, &schema.Project{})
		assert.Error(t, err)
	})
}

func testUpsertPool(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("re-ingest overwrites attributes and attribution", func(t *testing.T) {
		_, _ = seedPool(t, store, "pool-attr", "Ethereum", "aave-v3")

		newChainID, err := store.UpsertChain(ctx, "Optimism")
		require.NoError(t, err)
		newProjectID, err := store.UpsertProject(ctx, "aave-v2")
		require.NoError(t, err)

		updated := buildTestPool("pool-attr", newChainID, newProjectID, testEvening)
		updated.Symbol = stringPtr("USDT")
		updated.UnderlyingTokens = nil
		require.NoError(t, store.UpsertPool(ctx, updated))

		pool, err := store.GetPool(ctx, "pool-attr")
		require.NoError(t, err)
		require.NotNil(t, pool)
		assert.Equal(t, newChainID, pool.ChainID)
		assert.Equal(t, newProjectID, pool.ProjectID)
		require.NotNil(t, pool.Symbol)
		assert.Equal(t, "USDT", *pool.Symbol)
		assert.Nil(t, pool.UnderlyingTokens)
		assert.True(t, testMorning.Equal(pool.CreatedAt))
		assert.True(t, testEvening.Equal(pool.UpdatedAt))
	})

	t.Run("unknown chain id is rejected", func(t *testing.T) {
		err := store.WithTransaction(ctx, func(tx Store) error {
			return tx.UpsertPool(ctx, buildTestPool("pool-orphan", 999999, 999999, testMorning))
		})
		assert.Error(t, err)
	})

	t.Run("missing pool", func(t *testing.T) {
		pool, err := store.GetPool(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, pool)
	})
}

func testUpsertPoolSnapshot(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("first ingest creates one row per table", func(t *testing.T) {
		seedPool(t, store, "p1", "Ethereum", "aave-v3")
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p1", "1000000", testMorning)))

		pools, err := store.CountPools(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pools)
		snapshots, err := store.CountPoolSnapshots(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), snapshots)

		snapshot, err := store.GetPoolSnapshot(ctx, "p1", testDay)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.True(t, testDay.Equal(snapshot.SnapshotDate))
		require.NotNil(t, snapshot.TVLUsd)
		assert.True(t, decimal.RequireFromString("1000000").Equal(*snapshot.TVLUsd))
	})

	t.Run("same-day re-ingest updates metrics and keeps created_at", func(t *testing.T) {
		seedPool(t, store, "p2", "Ethereum", "aave-v3")
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p2", "123.45", testMorning)))
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p2", "200.00", testEvening)))

		var count int64
		require.NoError(t, store.(*pgStore).db.Model(&schema.PoolSnapshot{}).Where("pool_id = ?", "p2").Count(&count).Error)
		assert.Equal(t, int64(1), count)

		snapshot, err := store.GetPoolSnapshot(ctx, "p2", testEvening)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		require.NotNil(t, snapshot.TVLUsd)
		assert.True(t, decimal.RequireFromString("200").Equal(*snapshot.TVLUsd))
		assert.Equal(t, "200.00", schema.NumericText(*snapshot.TVLUsd))
		assert.True(t, testMorning.Equal(snapshot.CreatedAt))

		// The scale of the feed value is kept in the column
		var tvlText string
		require.NoError(t, store.(*pgStore).db.Raw("SELECT tvl_usd::text FROM pool_snapshots WHERE pool_id = ?", "p2").Scan(&tvlText).Error)
		assert.Equal(t, "200.00", tvlText)
		assert.True(t, testEvening.Equal(snapshot.FetchedAt))
	})

	t.Run("next day adds a new row", func(t *testing.T) {
		seedPool(t, store, "p3", "Ethereum", "aave-v3")
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p3", "1", testMorning)))
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p3", "2", testTomorrow)))

		today, err := store.GetPoolSnapshot(ctx, "p3", testDay)
		require.NoError(t, err)
		require.NotNil(t, today)
		tomorrow, err := store.GetPoolSnapshot(ctx, "p3", testTomorrow)
		require.NoError(t, err)
		require.NotNil(t, tomorrow)
		assert.NotEqual(t, today.ID, tomorrow.ID)
	})

	t.Run("null metrics are stored as null", func(t *testing.T) {
		seedPool(t, store, "p4", "Ethereum", "aave-v3")
		snapshot := buildTestSnapshot("p4", "1", testMorning)
		snapshot.TVLUsd = nil
		snapshot.Predictions = nil
		require.NoError(t, store.UpsertPoolSnapshot(ctx, snapshot))

		got, err := store.GetPoolSnapshot(ctx, "p4", testDay)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.TVLUsd)
		assert.Nil(t, got.Predictions)
	})

	t.Run("snapshot for unknown pool is rejected", func(t *testing.T) {
		err := store.WithTransaction(ctx, func(tx Store) error {
			return tx.UpsertPoolSnapshot(ctx, buildTestSnapshot("ghost", "1", testMorning))
		})
		assert.Error(t, err)
	})
}

func testReferentialIntegrity(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("deleting a referenced chain or project is rejected", func(t *testing.T) {
		chainID, projectID := seedPool(t, store, "p-restrict", "Ethereum", "aave-v3")

		assert.Error(t, execIsolated(store, "DELETE FROM chains WHERE id = ?", chainID))
		assert.Error(t, execIsolated(store, "DELETE FROM projects WHERE id = ?", projectID))

		chain, err := store.GetChainByName(ctx, "Ethereum")
		require.NoError(t, err)
		assert.NotNil(t, chain)
	})

	t.Run("deleting a pool removes its snapshots", func(t *testing.T) {
		seedPool(t, store, "p-cascade", "Ethereum", "aave-v3")
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p-cascade", "1", testMorning)))
		require.NoError(t, store.UpsertPoolSnapshot(ctx, buildTestSnapshot("p-cascade", "2", testTomorrow)))

		require.NoError(t, execIsolated(store, "DELETE FROM pools WHERE pool_id = ?", "p-cascade"))

		snapshot, err := store.GetPoolSnapshot(ctx, "p-cascade", testDay)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}

func testWithTransaction(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("error rolls back every write", func(t *testing.T) {
		err := store.WithTransaction(ctx, func(tx Store) error {
			chainID, err := tx.UpsertChain(ctx, "Rollbackchain")
			if err != nil {
				return err
			}
			projectID, err := tx.UpsertProject(ctx, "rollback-project")
			if err != nil {
				return err
			}
			if err := tx.UpsertPool(ctx, buildTestPool("p-rollback", chainID, projectID, testMorning)); err != nil {
				return err
			}
			return tx.UpsertPoolSnapshot(ctx, buildTestSnapshot("p-unknown", "1", testMorning))
		})
		require.Error(t, err)

		pool, err := store.GetPool(ctx, "p-rollback")
		require.NoError(t, err)
		assert.Nil(t, pool)
		chain, err := store.GetChainByName(ctx, "Rollbackchain")
		require.NoError(t, err)
		assert.Nil(t, chain)
	})
}

func testPing(t *testing.T, store Store) {
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, WaitForDatabase(context.Background(), store, 3, time.Millisecond))
}

// RunStoreTests runs all store tests against the given store initializer
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Ping", testPing},
		{"UpsertChain", testUpsertChain},
		{"UpsertProject", testUpsertProject},
		{"UpsertProjectMetadata", testUpsertProjectMetadata},
		{"UpsertPool", testUpsertPool},
		{"UpsertPoolSnapshot", testUpsertPoolSnapshot},
		{"ReferentialIntegrity", testReferentialIntegrity},
		{"WithTransaction", testWithTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

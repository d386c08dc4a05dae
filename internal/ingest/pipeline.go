// Package ingest drives the two feeds into the store.
//
// A run is a stateless, idempotent pass: protocol metadata is synced first in
// its own transaction, then every pool record is written inside a single
// transaction so that a reader never sees a pool without its same-day
// snapshot. The two stages fail independently.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/yield-ingester/internal/adapter"
	"github.com/feral-file/yield-ingester/internal/domain"
	"github.com/feral-file/yield-ingester/internal/logger"
	"github.com/feral-file/yield-ingester/internal/metrics"
	"github.com/feral-file/yield-ingester/internal/providers/defillama"
	"github.com/feral-file/yield-ingester/internal/store"
)

const maxLoggedPayload = domain.MAX_LOGGED_PAYLOAD

// RunResult summarizes one pipeline run
type RunResult struct {
	RunID        string
	SnapshotDate time.Time
	FetchedAt    time.Time

	// ProjectsSynced is the number of protocol records written
	ProjectsSynced int
	// MetadataErr is set when the protocol stage failed; pool ingestion still ran
	MetadataErr error

	// Ingested is the number of pool+snapshot pairs committed
	Ingested int
	// Skipped is the number of pool records dropped for missing identifiers
	Skipped int
}

// Pipeline orchestrates one ingestion run
type Pipeline struct {
	store   store.Store
	client  defillama.Client
	clock   adapter.Clock
	metrics *metrics.Recorder
}

// NewPipeline creates a new pipeline. recorder may be nil.
func NewPipeline(s store.Store, client defillama.Client, clock adapter.Clock, recorder *metrics.Recorder) *Pipeline {
	return &Pipeline{
		store:   s,
		client:  client,
		clock:   clock,
		metrics: recorder,
	}
}

// Run pulls both feeds and writes them. The returned error only reflects the
// pool stage; a metadata failure is reported through RunResult.MetadataErr.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	fetchedAt := p.clock.Now().UTC()
	result := &RunResult{
		RunID:        uuid.NewString(),
		SnapshotDate: domain.SnapshotDate(fetchedAt),
		FetchedAt:    fetchedAt,
	}
	ctx = logger.WithRunInfo(ctx, &logger.RunInfo{RunID: result.RunID, SnapshotDate: result.SnapshotDate})
	logger.InfoCtx(ctx, "Starting ingestion run")

	// Stage 1: protocol metadata
	started := p.clock.Now()
	synced, err := p.syncProtocols(ctx, fetchedAt)
	p.metrics.ObserveStage(domain.StageProtocols, err, started, p.clock.Now())
	if err != nil {
		result.MetadataErr = err
		logger.ErrorCtx(ctx, err, zap.String("stage", string(domain.StageProtocols)))
	} else {
		result.ProjectsSynced = synced
		p.metrics.AddRecords(domain.StageProtocols, metrics.OutcomeSynced, synced)
	}

	// Stage 2: pools and snapshots, attempted regardless of stage 1
	started = p.clock.Now()
	ingested, skipped, err := p.ingestPools(ctx, result.SnapshotDate, fetchedAt)
	p.metrics.ObserveStage(domain.StagePools, err, started, p.clock.Now())
	if err != nil {
		return result, fmt.Errorf("failed to ingest pools: %w", err)
	}
	result.Ingested = ingested
	result.Skipped = skipped
	p.metrics.AddRecords(domain.StagePools, metrics.OutcomeIngested, ingested)
	p.metrics.AddRecords(domain.StagePools, metrics.OutcomeSkipped, skipped)

	logger.InfoCtx(ctx, "Successfully ingested records",
		zap.Int("ingested", ingested),
		zap.Int("skipped", skipped),
		zap.Int("projects_synced", result.ProjectsSynced),
	)
	p.logTableSizes(ctx)

	return result, nil
}

func (p *Pipeline) syncProtocols(ctx context.Context, now time.Time) (int, error) {
	records, err := p.client.FetchProtocols(ctx)
	if err != nil {
		return 0, err
	}
	return SyncProjects(ctx, p.store, records, now)
}

func (p *Pipeline) ingestPools(ctx context.Context, snapshotDate, fetchedAt time.Time) (int, int, error) {
	records, err := p.client.FetchPools(ctx)
	if err != nil {
		return 0, 0, err
	}

	var ingested, skipped int
	err = p.store.WithTransaction(ctx, func(tx store.Store) error {
		ingested, skipped = 0, 0
		for _, rec := range records {
			ok, err := IngestPool(ctx, tx, rec, snapshotDate, fetchedAt)
			if err != nil {
				return err
			}
			if !ok {
				skipped++
				continue
			}
			ingested++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return ingested, skipped, nil
}

// IngestPool writes one pool record: identities, registry row and the day's
// snapshot. It returns false without writing anything when the pool id, chain
// or project is missing.
func IngestPool(ctx context.Context, tx store.Store, rec defillama.PoolRecord, snapshotDate, fetchedAt time.Time) (bool, error) {
	poolID, chain, project := rec.PoolID(), rec.Chain(), rec.Project()
	if poolID == "" || chain == "" || project == "" {
		logger.WarnCtx(ctx, "Skipping record due to missing identifiers",
			zap.String("pool", poolID),
			zap.String("reason", string(domain.SkipReasonMissingIdentifier)),
			zap.Error(domain.ErrMissingIdentifier),
			logger.Payload(rec.Raw(), maxLoggedPayload),
		)
		return false, nil
	}

	chainID, err := tx.UpsertChain(ctx, chain)
	if err != nil {
		return false, fmt.Errorf("pool %s: %w", poolID, err)
	}
	projectID, err := tx.UpsertProject(ctx, project)
	if err != nil {
		return false, fmt.Errorf("pool %s: %w", poolID, err)
	}
	if err := tx.UpsertPool(ctx, PoolFromRecord(rec, chainID, projectID, fetchedAt)); err != nil {
		return false, fmt.Errorf("pool %s: %w", poolID, err)
	}
	if err := tx.UpsertPoolSnapshot(ctx, SnapshotFromRecord(rec, snapshotDate, fetchedAt)); err != nil {
		return false, fmt.Errorf("pool %s: %w", poolID, err)
	}

	return true, nil
}

func (p *Pipeline) logTableSizes(ctx context.Context) {
	pools, err := p.store.CountPools(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to count pools", zap.Error(err))
		return
	}
	snapshots, err := p.store.CountPoolSnapshots(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to count pool snapshots", zap.Error(err))
		return
	}
	logger.InfoCtx(ctx, "Table sizes", zap.Int64("pools", pools), zap.Int64("pool_snapshots", snapshots))
}

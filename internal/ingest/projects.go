package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/yield-ingester/internal/domain"
	"github.com/feral-file/yield-ingester/internal/logger"
	"github.com/feral-file/yield-ingester/internal/providers/defillama"
	"github.com/feral-file/yield-ingester/internal/store"
)

// SyncProjects merges protocol metadata into the projects table in one transaction.
// Records without a name are skipped silently. Either every named record is
// written or, on error, none is; the returned count is zero in that case.
func SyncProjects(ctx context.Context, s store.Store, records []defillama.ProtocolRecord, now time.Time) (int, error) {
	upserted := 0

	err := s.WithTransaction(ctx, func(tx store.Store) error {
		upserted = 0
		for _, rec := range records {
			name := rec.Name()
			if name == "" {
				logger.DebugCtx(ctx, "Skipping protocol without name",
					zap.String("reason", string(domain.SkipReasonMissingName)),
					logger.Payload(rec.Raw(), maxLoggedPayload),
				)
				continue
			}

			if err := tx.UpsertProjectMetadata(ctx, ProjectFromRecord(rec, now)); err != nil {
				return fmt.Errorf("project %q: %w", name, err)
			}
			upserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sync projects: %w", err)
	}

	logger.InfoCtx(ctx, "Synced project metadata",
		zap.Int("upserted", upserted),
		zap.Int("received", len(records)),
	)
	return upserted, nil
}

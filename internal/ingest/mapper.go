package ingest

import (
	"time"

	"github.com/feral-file/yield-ingester/internal/providers/defillama"
	"github.com/feral-file/yield-ingester/internal/store/schema"
)

// ProjectFromRecord maps a protocol record to a full project row
func ProjectFromRecord(rec defillama.ProtocolRecord, now time.Time) *schema.Project {
	return &schema.Project{
		Name:            rec.Name(),
		Slug:            rec.Slug(),
		Symbol:          rec.Symbol(),
		Chain:           rec.Chain(),
		Chains:          rec.Chains(),
		Category:        rec.Category(),
		Description:     rec.Description(),
		Twitter:         rec.Twitter(),
		ListedAt:        rec.ListedAt(),
		TVL:             rec.TVL(),
		TVLPrevDay:      rec.TVLPrevDay(),
		TVLPrevWeek:     rec.TVLPrevWeek(),
		TVLPrevMonth:    rec.TVLPrevMonth(),
		Mcap:            rec.Mcap(),
		FDV:             rec.FDV(),
		Change1h:        rec.Change1h(),
		Change1d:        rec.Change1d(),
		Change7d:        rec.Change7d(),
		ChainTVLs:       rec.ChainTVLs(),
		Tokens:          rec.Tokens(),
		Audits:          rec.Audits(),
		AuditNote:       rec.AuditNote(),
		ForkedFrom:      rec.ForkedFrom(),
		Oracles:         rec.Oracles(),
		ParentProtocols: rec.ParentProtocols(),
		OtherChains:     rec.OtherChains(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// PoolFromRecord maps a pool record and its resolved identities to a pool row
func PoolFromRecord(rec defillama.PoolRecord, chainID, projectID int64, now time.Time) *schema.Pool {
	return &schema.Pool{
		PoolID:           rec.PoolID(),
		ChainID:          chainID,
		ProjectID:        projectID,
		Symbol:           rec.Symbol(),
		Stablecoin:       rec.Stablecoin(),
		ILRisk:           rec.ILRisk(),
		Exposure:         rec.Exposure(),
		RewardTokens:     rec.RewardTokens(),
		UnderlyingTokens: rec.UnderlyingTokens(),
		PoolMeta:         rec.PoolMeta(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// SnapshotFromRecord maps a pool record to the snapshot row of snapshotDate.
// CreatedAt is set to fetchedAt and only survives on first insert of the day.
func SnapshotFromRecord(rec defillama.PoolRecord, snapshotDate, fetchedAt time.Time) *schema.PoolSnapshot {
	predictions := rec.Predictions()

	return &schema.PoolSnapshot{
		PoolID:                 rec.PoolID(),
		SnapshotDate:           snapshotDate,
		FetchedAt:              fetchedAt,
		TVLUsd:                 rec.TVLUsd(),
		APYBase:                rec.APYBase(),
		APYReward:              rec.APYReward(),
		APY:                    rec.APY(),
		APYPct1D:               rec.APYPct1D(),
		APYPct7D:               rec.APYPct7D(),
		APYPct30D:              rec.APYPct30D(),
		IL7d:                   rec.IL7d(),
		APYBase7d:              rec.APYBase7d(),
		APYMean30d:             rec.APYMean30d(),
		VolumeUsd1d:            rec.VolumeUsd1d(),
		VolumeUsd7d:            rec.VolumeUsd7d(),
		APYBaseInception:       rec.APYBaseInception(),
		Mu:                     rec.Mu(),
		Sigma:                  rec.Sigma(),
		ObservationCount:       rec.Count(),
		Outlier:                rec.Outlier(),
		PredictedClass:         predictions.PredictedClass(),
		PredictedProbability:   predictions.PredictedProbability(),
		PredictedConfidenceBin: predictions.BinnedConfidence(),
		Predictions:            predictions.Blob(),
		CreatedAt:              fetchedAt,
	}
}

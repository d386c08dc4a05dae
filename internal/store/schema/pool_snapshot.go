package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PoolSnapshot represents the pool_snapshots table - one observation per pool per UTC day
type PoolSnapshot struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PoolID references the observed pool (ON DELETE CASCADE)
	PoolID string `gorm:"column:pool_id;not null;type:text;uniqueIndex:uq_pool_snapshots_pool_id_snapshot_date,priority:1"`
	// SnapshotDate is the UTC calendar day of the observation, the dedup key
	SnapshotDate time.Time `gorm:"column:snapshot_date;not null;type:date;uniqueIndex:uq_pool_snapshots_pool_id_snapshot_date,priority:2"`
	// FetchedAt is the time of the latest pull that wrote this row
	FetchedAt time.Time `gorm:"column:fetched_at;not null;default:now();type:timestamptz"`

	TVLUsd           *decimal.Decimal `gorm:"column:tvl_usd;type:numeric;serializer:numeric"`
	APYBase          *decimal.Decimal `gorm:"column:apy_base;type:numeric;serializer:numeric"`
	APYReward        *decimal.Decimal `gorm:"column:apy_reward;type:numeric;serializer:numeric"`
	APY              *decimal.Decimal `gorm:"column:apy;type:numeric;serializer:numeric"`
	APYPct1D         *decimal.Decimal `gorm:"column:apy_pct_1d;type:numeric;serializer:numeric"`
	APYPct7D         *decimal.Decimal `gorm:"column:apy_pct_7d;type:numeric;serializer:numeric"`
	APYPct30D        *decimal.Decimal `gorm:"column:apy_pct_30d;type:numeric;serializer:numeric"`
	IL7d             *decimal.Decimal `gorm:"column:il_7d;type:numeric;serializer:numeric"`
	APYBase7d        *decimal.Decimal `gorm:"column:apy_base_7d;type:numeric;serializer:numeric"`
	APYMean30d       *decimal.Decimal `gorm:"column:apy_mean_30d;type:numeric;serializer:numeric"`
	VolumeUsd1d      *decimal.Decimal `gorm:"column:volume_usd_1d;type:numeric;serializer:numeric"`
	VolumeUsd7d      *decimal.Decimal `gorm:"column:volume_usd_7d;type:numeric;serializer:numeric"`
	APYBaseInception *decimal.Decimal `gorm:"column:apy_base_inception;type:numeric;serializer:numeric"`
	// Mu and Sigma are the mean and standard deviation of historical APY
	Mu               *decimal.Decimal `gorm:"column:mu;type:numeric;serializer:numeric"`
	Sigma            *decimal.Decimal `gorm:"column:sigma;type:numeric;serializer:numeric"`
	ObservationCount *int             `gorm:"column:observation_count;type:integer"`
	Outlier          *bool            `gorm:"column:outlier"`

	// Prediction fields are stored as published, never computed here
	PredictedClass         *string          `gorm:"column:predicted_class;type:text"`
	PredictedProbability   *decimal.Decimal `gorm:"column:predicted_probability;type:numeric;serializer:numeric"`
	PredictedConfidenceBin *int             `gorm:"column:predicted_confidence_bin;type:integer"`
	Predictions            datatypes.JSON   `gorm:"column:predictions;type:jsonb"`

	// CreatedAt is the first time this pool was observed on SnapshotDate
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PoolSnapshot model
func (PoolSnapshot) TableName() string {
	return "pool_snapshots"
}

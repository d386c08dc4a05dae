package schema

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Pool represents the pools table - the latest slowly-changing attributes of a yield pool
type Pool struct {
	// PoolID is the opaque external pool identifier from the pools feed
	PoolID string `gorm:"column:pool_id;primaryKey;type:text"`
	// ChainID references the chain the pool lives on (ON DELETE RESTRICT)
	ChainID int64 `gorm:"column:chain_id;not null;index:idx_pools_chain_id"`
	// ProjectID references the owning project (ON DELETE RESTRICT)
	ProjectID int64 `gorm:"column:project_id;not null;index:idx_pools_project_id"`

	Symbol           *string        `gorm:"column:symbol;type:text"`
	Stablecoin       *bool          `gorm:"column:stablecoin"`
	ILRisk           *string        `gorm:"column:il_risk;type:text"`
	Exposure         *string        `gorm:"column:exposure;type:text"`
	RewardTokens     pq.StringArray `gorm:"column:reward_tokens;type:text[]"`
	UnderlyingTokens pq.StringArray `gorm:"column:underlying_tokens;type:text[]"`
	// PoolMeta is the free-form pool metadata value
	PoolMeta datatypes.JSON `gorm:"column:pool_meta;type:jsonb"`

	// CreatedAt is the timestamp when the pool was first ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the latest ingestion that touched the pool
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Chain     Chain          `gorm:"foreignKey:ChainID;constraint:OnDelete:RESTRICT"`
	Project   Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Snapshots []PoolSnapshot `gorm:"foreignKey:PoolID;references:PoolID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Pool model
func (Pool) TableName() string {
	return "pools"
}

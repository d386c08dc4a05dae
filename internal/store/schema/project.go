package schema

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Project represents the projects table - protocol identities shared by both feeds.
// A row may carry only a name when it was created by pool ingestion before any
// protocol metadata arrived.
type Project struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the join key between the pools feed `project` and the protocols feed `name`
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
	// Slug is the protocol slug, unique when present
	Slug *string `gorm:"column:slug;uniqueIndex;type:text"`

	Symbol      *string        `gorm:"column:symbol;type:text"`
	Chain       *string        `gorm:"column:chain;type:text"`
	Chains      pq.StringArray `gorm:"column:chains;type:text[]"`
	Category    *string        `gorm:"column:category;type:text"`
	Description *string        `gorm:"column:description;type:text"`
	Twitter     *string        `gorm:"column:twitter;type:text"`
	ListedAt    *time.Time     `gorm:"column:listed_at;type:timestamptz"`

	// Financial snapshot as of the last metadata sync
	TVL          *decimal.Decimal `gorm:"column:tvl;type:numeric;serializer:numeric"`
	TVLPrevDay   *decimal.Decimal `gorm:"column:tvl_prev_day;type:numeric;serializer:numeric"`
	TVLPrevWeek  *decimal.Decimal `gorm:"column:tvl_prev_week;type:numeric;serializer:numeric"`
	TVLPrevMonth *decimal.Decimal `gorm:"column:tvl_prev_month;type:numeric;serializer:numeric"`
	Mcap         *decimal.Decimal `gorm:"column:mcap;type:numeric;serializer:numeric"`
	FDV          *decimal.Decimal `gorm:"column:fdv;type:numeric;serializer:numeric"`
	Change1h     *decimal.Decimal `gorm:"column:change_1h;type:numeric;serializer:numeric"`
	Change1d     *decimal.Decimal `gorm:"column:change_1d;type:numeric;serializer:numeric"`
	Change7d     *decimal.Decimal `gorm:"column:change_7d;type:numeric;serializer:numeric"`

	// ChainTVLs is the per-chain TVL breakdown
	ChainTVLs datatypes.JSON `gorm:"column:chain_tvls;type:jsonb"`
	// Tokens is the token holdings breakdown
	Tokens datatypes.JSON `gorm:"column:tokens;type:jsonb"`

	// Audits is the audit count or firms as free text
	Audits          *string        `gorm:"column:audits;type:text"`
	AuditNote       *string        `gorm:"column:audit_note;type:text"`
	ForkedFrom      pq.StringArray `gorm:"column:forked_from;type:text[]"`
	Oracles         pq.StringArray `gorm:"column:oracles;type:text[]"`
	ParentProtocols pq.StringArray `gorm:"column:parent_protocols;type:text[]"`
	OtherChains     pq.StringArray `gorm:"column:other_chains;type:text[]"`

	// CreatedAt is the timestamp when the project was first seen by either feed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last metadata sync
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

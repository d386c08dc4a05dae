package defillama

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/yield-ingester/internal/coerce"
)

// Record is a raw feed object. Accessors default to nil for missing keys.
type Record map[string]interface{}

// Raw returns the JSON encoding of the record for logging
func (r Record) Raw() []byte {
	b, err := json.Marshal(map[string]interface{}(r))
	if err != nil {
		return nil
	}
	return b
}

func (r Record) field(key string) interface{} {
	if r == nil {
		return nil
	}
	return r[key]
}

// PoolRecord is one element of the pools feed `data` list
type PoolRecord struct {
	Record
}

// PoolID returns the external pool identifier, empty when missing
func (p PoolRecord) PoolID() string { return identifier(p.field("pool")) }

// Chain returns the chain name, empty when missing
func (p PoolRecord) Chain() string { return identifier(p.field("chain")) }

// Project returns the project name, empty when missing
func (p PoolRecord) Project() string { return identifier(p.field("project")) }

func (p PoolRecord) Symbol() *string { return coerce.String(p.field("symbol")) }
func (p PoolRecord) Stablecoin() *bool { return coerce.Bool(p.field("stablecoin")) }
func (p PoolRecord) ILRisk() *string { return coerce.String(p.field("ilRisk")) }
func (p PoolRecord) Exposure() *string { return coerce.String(p.field("exposure")) }
func (p PoolRecord) RewardTokens() pq.StringArray { return coerce.StringList(p.field("rewardTokens")) }
func (p PoolRecord) UnderlyingTokens() pq.StringArray { return coerce.StringList(p.field("underlyingTokens")) }
func (p PoolRecord) PoolMeta() datatypes.JSON { return coerce.Structured(p.field("poolMeta")) }

func (p PoolRecord) TVLUsd() *decimal.Decimal { return coerce.Decimal(p.field("tvlUsd")) }
func (p PoolRecord) APYBase() *decimal.Decimal { return coerce.Decimal(p.field("apyBase")) }
func (p PoolRecord) APYReward() *decimal.Decimal { return coerce.Decimal(p.field("apyReward")) }
func (p PoolRecord) APY() *decimal.Decimal { return coerce.Decimal(p.field("apy")) }
func (p PoolRecord) APYPct1D() *decimal.Decimal { return coerce.Decimal(p.field("apyPct1D")) }
func (p PoolRecord) APYPct7D() *decimal.Decimal { return coerce.Decimal(p.field("apyPct7D")) }
func (p PoolRecord) APYPct30D() *decimal.Decimal { return coerce.Decimal(p.field("apyPct30D")) }
func (p PoolRecord) IL7d() *decimal.Decimal { return coerce.Decimal(p.field("il7d")) }
func (p PoolRecord) APYBase7d() *decimal.Decimal { return coerce.Decimal(p.field("apyBase7d")) }
func (p PoolRecord) APYMean30d() *decimal.Decimal { return coerce.Decimal(p.field("apyMean30d")) }
func (p PoolRecord) VolumeUsd1d() *decimal.Decimal { return coerce.Decimal(p.field("volumeUsd1d")) }
func (p PoolRecord) VolumeUsd7d() *decimal.Decimal { return coerce.Decimal(p.field("volumeUsd7d")) }
func (p PoolRecord) APYBaseInception() *decimal.Decimal { return coerce.Decimal(p.field("apyBaseInception")) }
func (p PoolRecord) Mu() *decimal.Decimal { return coerce.Decimal(p.field("mu")) }
func (p PoolRecord) Sigma() *decimal.Decimal { return coerce.Decimal(p.field("sigma")) }
func (p PoolRecord) Count() *int { return coerce.Int(p.field("count")) }
func (p PoolRecord) Outlier() *bool { return coerce.Bool(p.field("outlier")) }

// Predictions returns the nested predictions object, empty when absent or not an object
func (p PoolRecord) Predictions() Predictions {
	obj, _ := p.field("predictions").(map[string]interface{})
	return Predictions{Record: obj}
}

// Predictions is the nested classifier output carried by a pool record
type Predictions struct {
	Record
}

// IsEmpty reports whether the predictions object is absent or has no keys
func (p Predictions) IsEmpty() bool { return len(p.Record) == 0 }

func (p Predictions) PredictedClass() *string { return coerce.Text(p.field("predictedClass")) }
func (p Predictions) PredictedProbability() *decimal.Decimal { return coerce.Decimal(p.field("predictedProbability")) }
func (p Predictions) BinnedConfidence() *int { return coerce.Int(p.field("binnedConfidence")) }

// Blob returns the whole predictions object as jsonb, nil when empty
func (p Predictions) Blob() datatypes.JSON {
	if p.IsEmpty() {
		return nil
	}
	b, err := json.Marshal(map[string]interface{}(p.Record))
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// ProtocolRecord is one element of the protocols feed
type ProtocolRecord struct {
	Record
}

// Name returns the protocol name, the join key with pool projects
func (p ProtocolRecord) Name() string { return identifier(p.field("name")) }

func (p ProtocolRecord) Slug() *string { return coerce.String(p.field("slug")) }
func (p ProtocolRecord) Symbol() *string { return coerce.Text(p.field("symbol")) }
func (p ProtocolRecord) Chain() *string { return coerce.String(p.field("chain")) }
func (p ProtocolRecord) Category() *string { return coerce.String(p.field("category")) }
func (p ProtocolRecord) Description() *string { return coerce.String(p.field("description")) }
func (p ProtocolRecord) Twitter() *string { return coerce.String(p.field("twitter")) }
func (p ProtocolRecord) Audits() *string { return coerce.Text(p.field("audits")) }
func (p ProtocolRecord) AuditNote() *string { return coerce.Text(p.field("audit_note")) }

func (p ProtocolRecord) Chains() pq.StringArray { return coerce.StringList(p.field("chains")) }
func (p ProtocolRecord) ForkedFrom() pq.StringArray { return coerce.StringList(p.field("forkedFrom")) }
func (p ProtocolRecord) Oracles() pq.StringArray { return coerce.StringList(p.field("oracles")) }
func (p ProtocolRecord) ParentProtocols() pq.StringArray { return coerce.StringList(p.field("parentProtocol")) }
func (p ProtocolRecord) OtherChains() pq.StringArray { return coerce.StringList(p.field("otherChains")) }

func (p ProtocolRecord) TVL() *decimal.Decimal { return coerce.Decimal(p.field("tvl")) }
func (p ProtocolRecord) TVLPrevDay() *decimal.Decimal { return coerce.Decimal(p.field("tvlPrevDay")) }
func (p ProtocolRecord) TVLPrevWeek() *decimal.Decimal { return coerce.Decimal(p.field("tvlPrevWeek")) }
func (p ProtocolRecord) TVLPrevMonth() *decimal.Decimal { return coerce.Decimal(p.field("tvlPrevMonth")) }
func (p ProtocolRecord) Mcap() *decimal.Decimal { return coerce.Decimal(p.field("mcap")) }
func (p ProtocolRecord) FDV() *decimal.Decimal { return coerce.Decimal(p.field("fdv")) }
func (p ProtocolRecord) Change1h() *decimal.Decimal { return coerce.Decimal(p.field("change_1h")) }
func (p ProtocolRecord) Change1d() *decimal.Decimal { return coerce.Decimal(p.field("change_1d")) }
func (p ProtocolRecord) Change7d() *decimal.Decimal { return coerce.Decimal(p.field("change_7d")) }

func (p ProtocolRecord) ChainTVLs() datatypes.JSON { return coerce.Structured(p.field("chainTvls")) }
func (p ProtocolRecord) Tokens() datatypes.JSON { return coerce.Structured(p.field("tokens")) }

// ListedAt returns the listing time from epoch seconds
func (p ProtocolRecord) ListedAt() *time.Time { return coerce.UTCTimestamp(p.field("listedAt")) }

// identifier returns a required key as a string, empty when missing or not a string
func identifier(raw interface{}) string {
	s, _ := raw.(string)
	return s
}

package domain

import "time"

// Stage identifies one independently-failable part of an ingestion run
type Stage string

const (
	// StageProtocols is the protocol metadata synchronization stage
	StageProtocols Stage = "protocols"
	// StagePools is the pool registry and snapshot stage
	StagePools Stage = "pools"
)

// SkipReason explains why a feed record was not written
type SkipReason string

const (
	SkipReasonMissingIdentifier SkipReason = "missing_identifier"
	SkipReasonMissingName       SkipReason = "missing_name"
	SkipReasonMalformed         SkipReason = "malformed"
)

// SnapshotDate truncates t to its UTC calendar day
// Snapshots are deduplicated on this value, not on the fetch timestamp
func SnapshotDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

package logger

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

type runInfoKey struct{}

// RunInfo identifies one ingestion run in log lines
type RunInfo struct {
	RunID        string
	SnapshotDate time.Time
}

// Fields returns the zap fields describing the run
func (r *RunInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.RunID),
		zap.String("snapshot_date", r.SnapshotDate.Format(time.DateOnly)),
	}
}

// WithRunInfo attaches run information to ctx so that FromContext includes it
func WithRunInfo(ctx context.Context, info *RunInfo) context.Context {
	return context.WithValue(ctx, runInfoKey{}, info)
}

// RunInfoFromContext returns the run information stored in ctx, if any
func RunInfoFromContext(ctx context.Context) *RunInfo {
	info, _ := ctx.Value(runInfoKey{}).(*RunInfo)
	return info
}

// Payload returns a field holding raw truncated to at most limit bytes
func Payload(raw []byte, limit int) zap.Field {
	if len(raw) <= limit {
		return zap.ByteString("payload", raw)
	}
	cut := raw[:limit]
	// Do not split a multi-byte rune
	for len(cut) > 0 && !utf8.Valid(cut) {
		cut = cut[:len(cut)-1]
	}
	return zap.ByteString("payload", cut)
}

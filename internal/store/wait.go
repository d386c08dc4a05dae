package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/yield-ingester/internal/domain"
	"github.com/feral-file/yield-ingester/internal/logger"
)

// WaitForDatabase blocks until the store answers a ping, retrying with a fixed
// delay at most maxAttempts times. It returns domain.ErrDatabaseUnavailable
// once the attempts are exhausted.
func WaitForDatabase(ctx context.Context, s Store, maxAttempts int, delay time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempt := 0
	operation := func() error {
		attempt++
		return s.Ping(ctx)
	}
	notify := func(err error, next time.Duration) {
		logger.InfoCtx(ctx, "Database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(maxAttempts-1)) //nolint:gosec,G115
	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}

	logger.InfoCtx(ctx, "Database connection established", zap.Int("attempts", attempt))
	return nil
}

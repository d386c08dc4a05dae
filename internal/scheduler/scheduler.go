package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/feral-file/yield-ingester/internal/logger"
)

// Scheduler defines the interface for long-running periodic tasks
type Scheduler interface {
	// Start begins the schedule
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the schedule
	// It waits for an in-progress run to complete
	Stop(ctx context.Context) error

	// Name returns the scheduler's name for logging and identification
	Name() string
}

// Job is one scheduled unit of work
type Job func(ctx context.Context) error

// specParser accepts five-field specs, six-field specs with a leading seconds
// field, and descriptors such as @hourly
var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSpec reports whether spec is a valid cron schedule
func ValidateSpec(spec string) error {
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

type cronScheduler struct {
	name       string
	spec       string
	runTimeout time.Duration
	job        Job
	cron       *cron.Cron

	ctx       context.Context
	running   atomic.Bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewCronScheduler creates a scheduler that runs job on every tick of spec.
// Each run is bounded by runTimeout when it is positive. A tick that fires
// while the previous run is still in progress is skipped.
func NewCronScheduler(name, spec string, runTimeout time.Duration, job Job) (Scheduler, error) {
	s := &cronScheduler{
		name:       name,
		spec:       spec,
		runTimeout: runTimeout,
		job:        job,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}

	cronLog := newCronLogger(logger.Default())
	s.cron = cron.New(
		cron.WithParser(specParser),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	return s, nil
}

// Name returns the scheduler's name
func (s *cronScheduler) Name() string {
	return s.name
}

// Start runs the cron loop until ctx is canceled or Stop is called
func (s *cronScheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	select {
	case <-s.stoppedCh:
		s.running.Store(false)
		return fmt.Errorf("scheduler already stopped")
	default:
	}

	s.ctx = ctx
	s.cron.Start()
	logger.InfoCtx(ctx, "Scheduler started",
		zap.String("name", s.name),
		zap.String("schedule", s.spec),
		zap.Duration("run_timeout", s.runTimeout),
	)

	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Scheduler stopping due to context cancellation", zap.String("name", s.name))
	case <-s.stopChan:
		logger.InfoCtx(ctx, "Scheduler stop requested", zap.String("name", s.name))
	}

	// Wait for an in-progress run
	<-s.cron.Stop().Done()
	close(s.stoppedCh)
	s.running.Store(false)
	return nil
}

// Stop signals the loop to exit and waits for it, bounded by ctx.
// It returns once any in-progress run has finished.
func (s *cronScheduler) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil // Not started or already stopped
	}

	s.stopOnce.Do(func() { close(s.stopChan) })

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Scheduler stopped gracefully", zap.String("name", s.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Scheduler stop interrupted by context timeout", zap.String("name", s.name))
		return ctx.Err()
	}
}

func (s *cronScheduler) run() {
	ctx := s.ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	if err := s.job(ctx); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("scheduled run failed: %w", err), zap.String("name", s.name))
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	l *zap.SugaredLogger
}

func newCronLogger(l *zap.Logger) cron.Logger {
	return &cronLogger{l: l.Sugar()}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}

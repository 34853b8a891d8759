package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
)

// StandingsSource computes the current league table
type StandingsSource interface {
	GetStandings(ctx context.Context) ([]standings.Row, error)
}

// Config holds scheduler configuration
type Config struct {
	RefreshInterval      time.Duration // 0 disables the periodic refresh
	MaxConsecutiveErrors int           // errors before backing off
	Backoff              time.Duration // pause after MaxConsecutiveErrors failures
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval:      30 * time.Second,
		MaxConsecutiveErrors: 5,
		Backoff:              time.Minute,
	}
}

// Orchestrator fans league events out to the downstream sinks and keeps
// them in step with the database. Writes that bypass GameService (team
// deletes, manual SQL) are picked up by the periodic refresh, which only
// publishes when the table has actually changed.
type Orchestrator struct {
	source StandingsSource
	config *Config
	logger *zap.Logger

	mu        sync.Mutex
	sinks     []service.EventSink
	last      []standings.Row
	published bool
}

var _ service.EventSink = (*Orchestrator)(nil)

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(source StandingsSource, config *Config, logger *zap.Logger, sinks ...service.EventSink) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		source: source,
		config: config,
		logger: logger,
		sinks:  sinks,
	}
}

// AddSink registers a downstream sink
func (o *Orchestrator) AddSink(sink service.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sinks = append(o.sinks, sink)
}

// Start runs the refresh loop until ctx is cancelled
func (o *Orchestrator) Start(ctx context.Context) {
	if o.config.RefreshInterval <= 0 {
		o.logger.Info("standings refresh disabled")
		<-ctx.Done()
		return
	}

	o.logger.Info("standings refresh started", zap.Duration("interval", o.config.RefreshInterval))

	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	// Run immediately on start
	o.refreshWithBackoff(ctx, &consecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("standings refresh stopped")
			return
		case <-ticker.C:
			o.refreshWithBackoff(ctx, &consecutiveErrors)
		}
	}
}

func (o *Orchestrator) refreshWithBackoff(ctx context.Context, consecutiveErrors *int) {
	if err := o.Refresh(ctx); err != nil {
		*consecutiveErrors++
		o.logger.Warn("standings refresh failed", zap.Int("consecutive_errors", *consecutiveErrors), zap.Error(err))

		if *consecutiveErrors >= o.config.MaxConsecutiveErrors {
			o.logger.Error("too many consecutive refresh errors, backing off", zap.Duration("backoff", o.config.Backoff))
			select {
			case <-ctx.Done():
			case <-time.After(o.config.Backoff):
			}
			*consecutiveErrors = 0
		}
		return
	}
	*consecutiveErrors = 0
}

// Refresh recomputes the table and publishes it if it differs from the
// last snapshot sent downstream
func (o *Orchestrator) Refresh(ctx context.Context) error {
	rows, err := o.source.GetStandings(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	unchanged := o.published && cmp.Equal(o.last, rows)
	o.mu.Unlock()
	if unchanged {
		return nil
	}

	o.logger.Debug("standings changed, publishing", zap.Int("teams", len(rows)))
	return o.PublishStandings(ctx, rows)
}

// PublishGameEvent forwards a game change to every sink
func (o *Orchestrator) PublishGameEvent(ctx context.Context, event service.GameEvent) error {
	var errs error
	for _, sink := range o.snapshotSinks() {
		errs = multierr.Append(errs, sink.PublishGameEvent(ctx, event))
	}
	return errs
}

// PublishStandings records rows as the latest snapshot and forwards them
func (o *Orchestrator) PublishStandings(ctx context.Context, rows []standings.Row) error {
	o.mu.Lock()
	o.last = rows
	o.published = true
	o.mu.Unlock()

	var errs error
	for _, sink := range o.snapshotSinks() {
		errs = multierr.Append(errs, sink.PublishStandings(ctx, rows))
	}
	return errs
}

func (o *Orchestrator) snapshotSinks() []service.EventSink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]service.EventSink(nil), o.sinks...)
}

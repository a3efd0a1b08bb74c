package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/hexearth/hexearth/internal/adapter"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
	"github.com/hexearth/hexearth/internal/store"
	"github.com/hexearth/hexearth/internal/tiles"
)

// Sweep outcomes per tile
const (
	OutcomeOwned   = "owned"   // escrow finished, tile moved to OWNED
	OutcomeSkipped = "skipped" // a concurrent cycle already matured the tile
	OutcomeFailed  = "failed"  // ledger failure, tile left in PROCESSING
)

// SweepResult is the transient per-tile outcome of one sweep cycle.
// It is never persisted to the tile.
type SweepResult struct {
	CellID  string `json:"cellId"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// EscrowSweeperConfig holds configuration for the escrow maturation sweeper
type EscrowSweeperConfig struct {
	Interval       time.Duration // time between sweep cycles
	WorkerPoolSize int           // concurrent tile maturations
	BatchSize      int           // tiles per cycle
}

// EscrowSweeper extends Sweeper with a single-cycle entry point for the
// manual trigger endpoint
//
//go:generate mockgen -source=escrow.go -destination=../mocks/escrow_sweeper.go -package=mocks -mock_names=EscrowSweeper=MockEscrowSweeper
type EscrowSweeper interface {
	Sweeper

	// RunOnce runs a single sweep cycle and returns its per-tile outcomes
	RunOnce(ctx context.Context) ([]SweepResult, error)
}

// escrowSweeper finds PROCESSING tiles whose escrow release time has passed
// and feeds each through the orchestrator's maturation path
type escrowSweeper struct {
	config       *EscrowSweeperConfig
	store        store.Store
	orchestrator tiles.Orchestrator
	clock        adapter.Clock
	running      atomic.Bool
	stopChan     chan struct{}
	stoppedCh    chan struct{}
}

// NewEscrowSweeper creates a new escrow maturation sweeper
func NewEscrowSweeper(config *EscrowSweeperConfig, st store.Store, orch tiles.Orchestrator, clock adapter.Clock) EscrowSweeper {
	return &escrowSweeper{
		config:       config,
		store:        st,
		orchestrator: orch,
		clock:        clock,
		stopChan:     make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *escrowSweeper) Name() string {
	return "escrow-maturation-sweeper"
}

// Start begins the sweeper's main loop
func (s *escrowSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "starting escrow maturation sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "escrow sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "escrow sweeper stop requested")
			return nil
		default:
			if _, err := s.RunOnce(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *escrowSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "stopping escrow sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "escrow sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "escrow sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RunOnce runs a single sweep cycle: scan matured escrows and process each
// independently, so one tile's failure never blocks the rest of the cycle
func (s *escrowSweeper) RunOnce(ctx context.Context) ([]SweepResult, error) {
	startTime := s.clock.Now()
	cutoff := ledger.RippleTime(startTime)

	matured, err := s.store.GetMaturedEscrowTiles(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scan matured escrows: %w", err)
	}

	if len(matured) == 0 {
		logger.DebugCtx(ctx, "no matured escrows")
		return nil, nil
	}

	logger.InfoCtx(ctx, "processing matured escrows", zap.Int("count", len(matured)))

	pool := pond.NewPool(s.config.WorkerPoolSize, pond.WithContext(ctx))

	var mu sync.Mutex
	results := make([]SweepResult, 0, len(matured))

	for _, tile := range matured {
		pool.Submit(func() {
			result := SweepResult{CellID: tile.ID}

			ok, err := s.orchestrator.Mature(ctx, tile)
			switch {
			case err != nil:
				// The tile stays PROCESSING; the next cycle retries
				result.Outcome = OutcomeFailed
				result.Error = err.Error()
				logger.ErrorCtx(ctx, err, zap.String("cell_id", tile.ID))
			case !ok:
				result.Outcome = OutcomeSkipped
			default:
				result.Outcome = OutcomeOwned
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}

	pool.StopAndWait()

	logger.InfoCtx(ctx, "sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("processed", len(results)),
	)

	return results, nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if the sleep completed.
func (s *escrowSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

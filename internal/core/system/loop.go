package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Messages is the per-tick message substrate (event.Hub).
type Messages interface {
	ShiftAll()
	DispatchAll() error
}

// Simulation is the entity side of a tick (ecs.Manager).
type Simulation interface {
	Update(dt time.Duration) error
	Draw() error
	FlushRemovals() int
}

// Config controls the fixed-step loop.
type Config struct {
	// Step is the simulated duration of one tick.
	Step time.Duration
	// MaxCatchUpTicks bounds the ticks run for a single frame. Lag beyond
	// that is discarded.
	MaxCatchUpTicks int
	// MaxTicks stops Run after this many ticks; zero runs until cancelled.
	MaxTicks uint64
}

var ErrInvalidConfig = errors.New("invalid loop config")

// Loop drives ticks and frames. Each tick runs, strictly in order:
// shift all channels, dispatch all channels, update all processors, flush
// queued entity removals. Each frame runs as many ticks as the accumulated
// lag allows (up to MaxCatchUpTicks) and then one draw pass.
type Loop struct {
	cfg  Config
	msgs Messages
	sim  Simulation
	log  *zap.Logger

	lag        time.Duration
	ticks      uint64
	frames     uint64
	droppedLag time.Duration
}

func NewLoop(cfg Config, msgs Messages, sim Simulation, log *zap.Logger) (*Loop, error) {
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("%w: step %s", ErrInvalidConfig, cfg.Step)
	}
	if cfg.MaxCatchUpTicks < 1 {
		return nil, fmt.Errorf("%w: max catch-up ticks %d", ErrInvalidConfig, cfg.MaxCatchUpTicks)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{cfg: cfg, msgs: msgs, sim: sim, log: log}, nil
}

// Step runs a single tick of dt.
func (l *Loop) Step(dt time.Duration) error {
	l.msgs.ShiftAll()
	if err := l.msgs.DispatchAll(); err != nil {
		return fmt.Errorf("tick %d: %w", l.ticks, err)
	}
	if err := l.sim.Update(dt); err != nil {
		return fmt.Errorf("tick %d: %w", l.ticks, err)
	}
	l.sim.FlushRemovals()
	l.ticks++
	return nil
}

// Frame adds elapsed real time to the lag, runs the ticks it covers and
// draws once. It returns the number of ticks run.
func (l *Loop) Frame(elapsed time.Duration) (int, error) {
	l.lag += elapsed
	n := 0
	for l.lag >= l.cfg.Step {
		if n == l.cfg.MaxCatchUpTicks {
			l.droppedLag += l.lag
			l.log.Warn("lag compensation limit reached, discarding simulated time",
				zap.Int("ticks", n),
				zap.Duration("discarded", l.lag))
			l.lag = 0
			break
		}
		if err := l.Step(l.cfg.Step); err != nil {
			return n, err
		}
		l.lag -= l.cfg.Step
		n++
		if l.done() {
			break
		}
	}
	if err := l.sim.Draw(); err != nil {
		return n, fmt.Errorf("frame %d: %w", l.frames, err)
	}
	l.frames++
	return n, nil
}

// Run calls Frame on a ticker at the configured step until ctx is cancelled,
// MaxTicks is reached or a tick fails. Cancellation is a clean stop.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Step)
	defer ticker.Stop()

	last := time.Now()
	l.log.Info("loop started",
		zap.Duration("step", l.cfg.Step),
		zap.Int("max_catch_up_ticks", l.cfg.MaxCatchUpTicks))
	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Uint64("ticks", l.ticks))
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if _, err := l.Frame(elapsed); err != nil {
				return err
			}
			if l.done() {
				l.log.Info("tick limit reached", zap.Uint64("ticks", l.ticks))
				return nil
			}
		}
	}
}

func (l *Loop) done() bool {
	return l.cfg.MaxTicks > 0 && l.ticks >= l.cfg.MaxTicks
}

func (l *Loop) Ticks() uint64  { return l.ticks }
func (l *Loop) Frames() uint64 { return l.frames }

// DroppedLag is the total simulated time discarded by the catch-up limit.
func (l *Loop) DroppedLag() time.Duration { return l.droppedLag }

package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
)

type fakeWorld struct {
	calls       []string
	dispatchErr error
	updateErr   error
}

func (f *fakeWorld) ShiftAll() { f.calls = append(f.calls, "shift") }
func (f *fakeWorld) DispatchAll() error {
	f.calls = append(f.calls, "dispatch")
	return f.dispatchErr
}
func (f *fakeWorld) Update(time.Duration) error {
	f.calls = append(f.calls, "update")
	return f.updateErr
}
func (f *fakeWorld) Draw() error { f.calls = append(f.calls, "draw"); return nil }
func (f *fakeWorld) FlushRemovals() int {
	f.calls = append(f.calls, "flush")
	return 0
}

func newTestLoop(t *testing.T, cfg Config, w *fakeWorld) *Loop {
	t.Helper()
	l, err := NewLoop(cfg, w, w, zap.NewNop())
	require.NoError(t, err)
	return l
}

func TestNewLoopValidates(t *testing.T) {
	w := &fakeWorld{}
	_, err := NewLoop(Config{Step: 0, MaxCatchUpTicks: 1}, w, w, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewLoop(Config{Step: time.Millisecond}, w, w, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStepOrder(t *testing.T) {
	w := &fakeWorld{}
	l := newTestLoop(t, Config{Step: 10 * time.Millisecond, MaxCatchUpTicks: 4}, w)
	require.NoError(t, l.Step(10*time.Millisecond))
	assert.Equal(t, []string{"shift", "dispatch", "update", "flush"}, w.calls)
	assert.Equal(t, uint64(1), l.Ticks())
}

func TestStepStopsOnHandlerError(t *testing.T) {
	boom := errors.New("boom")
	w := &fakeWorld{dispatchErr: boom}
	l := newTestLoop(t, Config{Step: 10 * time.Millisecond, MaxCatchUpTicks: 4}, w)
	assert.ErrorIs(t, l.Step(10*time.Millisecond), boom)
	assert.Equal(t, []string{"shift", "dispatch"}, w.calls)
	assert.Equal(t, uint64(0), l.Ticks())
}

func TestFrameAccumulatesLag(t *testing.T) {
	w := &fakeWorld{}
	l := newTestLoop(t, Config{Step: 10 * time.Millisecond, MaxCatchUpTicks: 4}, w)

	n, err := l.Frame(25 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = l.Frame(5 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(2), l.Frames())
	assert.Equal(t, time.Duration(0), l.DroppedLag())
}

func TestFrameDiscardsLagBeyondLimit(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := &fakeWorld{}
	l, err := NewLoop(Config{Step: 10 * time.Millisecond, MaxCatchUpTicks: 3}, w, w, zap.New(core))
	require.NoError(t, err)

	n, err := l.Frame(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 70*time.Millisecond, l.DroppedLag())
	assert.Equal(t, 1, logs.FilterMessage("lag compensation limit reached, discarding simulated time").Len())

	n, err = l.Frame(5 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	w := &fakeWorld{}
	l := newTestLoop(t, Config{Step: time.Millisecond, MaxCatchUpTicks: 5, MaxTicks: 3}, w)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))
	assert.Equal(t, uint64(3), l.Ticks())
}

func TestRunStopsOnCancel(t *testing.T) {
	w := &fakeWorld{}
	l := newTestLoop(t, Config{Step: time.Hour, MaxCatchUpTicks: 1}, w)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, l.Run(ctx))
	assert.Equal(t, uint64(0), l.Ticks())
}

func TestRunReturnsTickError(t *testing.T) {
	boom := errors.New("boom")
	w := &fakeWorld{updateErr: boom}
	l := newTestLoop(t, Config{Step: time.Millisecond, MaxCatchUpTicks: 1}, w)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, l.Run(ctx), boom)
}

// counter records the tick at which each message reached its handler.
type counter struct {
	ecs.BaseProcessor
	ch   *event.Channel
	seen []uint64
	tick uint64
}

func (c *counter) Initialize() error {
	c.ch.Connect(func(m event.Message) error {
		c.seen = append(c.seen, c.tick)
		return nil
	})
	return nil
}

func (c *counter) Update(time.Duration) error {
	c.tick++
	return nil
}

func TestMessageVisibleOneTickLater(t *testing.T) {
	hub := event.NewHub()
	ch := event.NewChannel("control", event.KindCommand)
	require.NoError(t, hub.Add(ch))
	m := ecs.NewManager(zap.NewNop())
	c := &counter{BaseProcessor: ecs.NewBaseProcessor("counter", ecs.Accept), ch: ch}
	require.NoError(t, m.AddEntityProcessor(c))
	require.NoError(t, m.InitializeProcessors())

	l, err := NewLoop(Config{Step: time.Millisecond, MaxCatchUpTicks: 1}, hub, m, zap.NewNop())
	require.NoError(t, err)

	// Emitted after the first tick; delivered by the second tick's dispatch,
	// which runs before that tick's update.
	require.NoError(t, l.Step(time.Millisecond))
	ch.Emit(event.New(ident.Of("Count"), 1))
	assert.Empty(t, c.seen)
	require.NoError(t, l.Step(time.Millisecond))
	assert.Equal(t, []uint64{1}, c.seen)
	require.NoError(t, l.Step(time.Millisecond))
	assert.Equal(t, []uint64{1}, c.seen)
}

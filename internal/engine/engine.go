// Package engine assembles the runtime: identifier names, channels, the entity
// manager with its processors, and the fixed-step loop.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/config"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
	coresys "github.com/tickforge/runtime/internal/core/system"
	"github.com/tickforge/runtime/internal/data"
	"github.com/tickforge/runtime/internal/scripting"
	"github.com/tickforge/runtime/internal/system"
)

// Channel names.
const (
	ChannelInput   = "input"
	ChannelControl = "control"
	ChannelEvents  = "events"
)

// Engine owns every runtime object. It is single-threaded: all methods must
// be called from the goroutine that runs the loop, or before it starts.
type Engine struct {
	Config *config.Config
	Log    *zap.Logger

	Names    *ident.Table
	Bindings *data.BindingTable

	Hub     *event.Hub
	Input   *event.Channel
	Control *event.Channel
	Events  *event.Channel
	History *event.History

	Manager   *ecs.Manager
	Mapper    *system.InputMapper
	Lifecycle *system.Lifecycle
	Render    *system.RenderProcessor
	Inspector *system.Inspector
	Lua       *scripting.Engine // nil when scripting is disabled

	Loop *coresys.Loop
}

// New builds an engine from cfg. Nothing runs until Start.
func New(cfg *config.Config, log *zap.Logger, renderer system.Renderer) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		Config:  cfg,
		Log:     log,
		Names:   ident.NewTable(),
		Hub:     event.NewHub(),
		History: event.NewHistory(cfg.Debug.HistorySize),
		Manager: ecs.NewManager(log),
	}

	bindings, err := loadBindings(cfg.Input.Bindings)
	if err != nil {
		return nil, err
	}
	e.Bindings = bindings
	if err := e.registerNames(); err != nil {
		return nil, err
	}

	overflow := event.WithOverflow(func(ch *event.Channel, dropped event.Message) {
		log.Warn("channel full, oldest message dropped",
			zap.String("channel", ch.Name()),
			zap.String("message", event.Describe(dropped, e.Names)),
			zap.Uint64("dropped", ch.Dropped()),
		)
	})
	capacity := event.WithCapacity(cfg.Channels.Capacity)
	e.Input = event.NewChannel(ChannelInput, event.KindCommand, capacity, overflow)
	e.Control = event.NewChannel(ChannelControl, event.KindCommand, capacity, overflow)
	e.Events = event.NewChannel(ChannelEvents, event.KindEvent, capacity, overflow)
	for _, ch := range []*event.Channel{e.Input, e.Control, e.Events} {
		if err := e.Hub.Add(ch); err != nil {
			return nil, err
		}
	}

	e.Mapper = system.NewInputMapper(bindings, e.Control, log)
	e.Input.Connect(e.Mapper.Handle)
	e.Lifecycle = system.NewLifecycle(e.Manager, log)
	e.Control.Connect(e.Lifecycle.Handle)
	e.Events.Connect(e.Lifecycle.Handle)
	e.Events.Connect(e.History.Record)

	if cfg.Scripting.Enabled {
		e.Lua, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, fmt.Errorf("scripting: %w", err)
		}
	}

	e.Render = system.NewRenderProcessor(renderer)
	e.Inspector = system.NewInspector(e.Names, e.History)
	procs := []ecs.Processor{
		system.NewRotationProcessor(e.Control),
		system.NewTranslationProcessor(e.Control),
		system.NewRelativeTransformProcessor(),
		system.NewExpiryProcessor(e.Events),
	}
	if e.Lua != nil {
		procs = append(procs, system.NewScriptProcessor(e.Lua, e.Names, e.Control, e.Events, log))
	}
	procs = append(procs, e.Render, e.Inspector)
	for _, p := range procs {
		if err := e.Manager.AddEntityProcessor(p); err != nil {
			e.closeLua()
			return nil, err
		}
	}

	e.Loop, err = coresys.NewLoop(coresys.Config{
		Step:            cfg.Loop.TickRate,
		MaxCatchUpTicks: cfg.Loop.MaxCatchUpTicks,
		MaxTicks:        cfg.Loop.MaxTicks,
	}, e.Hub, e.Manager, log)
	if err != nil {
		e.closeLua()
		return nil, err
	}
	return e, nil
}

func loadBindings(path string) (*data.BindingTable, error) {
	if path == "" {
		return data.ParseBindingTable(nil)
	}
	return data.LoadBindingTable(path)
}

func (e *Engine) registerNames() error {
	if err := e.Names.RegisterAll(component.Names()...); err != nil {
		return err
	}
	if err := e.Names.RegisterAll(system.MessageNames()...); err != nil {
		return err
	}
	if err := e.Names.RegisterAll(e.Bindings.Commands()...); err != nil {
		return err
	}
	if path := e.Config.Debug.IdentifierNames; path != "" {
		list, err := data.LoadNameList(path)
		if err != nil {
			return err
		}
		if err := list.RegisterInto(e.Names); err != nil {
			return err
		}
	}
	return nil
}

// Start initializes every processor.
func (e *Engine) Start() error {
	if err := e.Manager.InitializeProcessors(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	e.Log.Info("engine started",
		zap.String("name", e.Config.Engine.Name),
		zap.Int("processors", len(e.Manager.Processors())),
		zap.Int("identifiers", e.Names.Len()),
		zap.Int("bindings", e.Bindings.Count()),
		zap.Duration("step", e.Config.Loop.TickRate),
	)
	return nil
}

// Run drives the loop until ctx is done, MaxTicks is reached or a tick fails.
func (e *Engine) Run(ctx context.Context) error {
	err := e.Loop.Run(ctx)
	e.Log.Info("engine stopped",
		zap.Uint64("ticks", e.Loop.Ticks()),
		zap.Uint64("frames", e.Loop.Frames()),
		zap.Duration("dropped_lag", e.Loop.DroppedLag()),
		zap.Int("entities", e.Manager.Len()),
	)
	return err
}

// Spawn builds an entity from cs, attaches it to parent if one is given and
// registers it with the manager.
func (e *Engine) Spawn(name string, parent *ecs.Entity, cs ...ecs.Component) (*ecs.Entity, error) {
	ent := ecs.NewEntity(name)
	for _, c := range cs {
		if err := ent.AddComponent(c); err != nil {
			return nil, err
		}
	}
	if parent != nil {
		if err := ent.SetParent(parent); err != nil {
			return nil, err
		}
	}
	if _, err := e.Manager.AddEntity(ent); err != nil {
		return nil, err
	}
	return ent, nil
}

// Key queues a raw key transition on the input channel.
func (e *Engine) Key(name string, pressed bool) {
	e.Input.Emit(event.New(system.MsgKey, 0).With(event.Key{Name: name, Pressed: pressed}))
}

// Close cleans up processors in reverse order and releases the Lua VM.
func (e *Engine) Close() error {
	err := e.Manager.CleanupProcessors()
	e.closeLua()
	return err
}

func (e *Engine) closeLua() {
	if e.Lua != nil {
		e.Lua.Close()
		e.Lua = nil
	}
}

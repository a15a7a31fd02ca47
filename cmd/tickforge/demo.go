package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/engine"
)

// keyStep is one scripted key transition, applied at the given tick.
type keyStep struct {
	tick    uint64
	key     string
	pressed bool
}

// autopilot replays a fixed key sequence in place of a platform input layer.
// The sequence repeats every period ticks.
type autopilot struct {
	ecs.BaseProcessor
	eng    *engine.Engine
	steps  []keyStep
	period uint64
	tick   uint64
}

func newAutopilot(eng *engine.Engine) *autopilot {
	return &autopilot{
		BaseProcessor: ecs.NewBaseProcessor("autopilot", ecs.WithAll(component.ControllableType)),
		eng:           eng,
		period:        240,
		steps: []keyStep{
			{tick: 0, key: "w", pressed: true},
			{tick: 60, key: "a", pressed: true},
			{tick: 90, key: "a", pressed: false},
			{tick: 120, key: "space", pressed: true},
			{tick: 121, key: "space", pressed: false},
			{tick: 180, key: "w", pressed: false},
			{tick: 200, key: "d", pressed: true},
			{tick: 230, key: "d", pressed: false},
		},
	}
}

func (a *autopilot) Update(time.Duration) error {
	if a.Entities().Len() == 0 {
		return nil
	}
	at := a.tick % a.period
	for _, s := range a.steps {
		if s.tick == at {
			a.eng.Key(s.key, s.pressed)
		}
	}
	a.tick++
	return nil
}

// spawnDemo populates the world with a controllable ship carrying a turret,
// a short-lived probe and the autopilot that drives the ship.
func spawnDemo(eng *engine.Engine) error {
	ship, err := eng.Spawn("ship", nil,
		&component.Position{},
		component.NewOrientation(),
		&component.Velocity{},
		&component.AngularVelocity{},
		component.Controllable{},
		component.Renderable{},
		&component.Scripted{Handler: "beacon"},
	)
	if err != nil {
		return err
	}
	turret, err := eng.Spawn("turret", ship,
		&component.Position{},
		component.NewOrientation(),
		&component.RelativePosition{V: mgl64.Vec3{0, 0.5, 0}},
		component.NewRelativeOrientation(),
		component.Renderable{},
	)
	if err != nil {
		return err
	}
	if _, err := eng.Spawn("barrel", turret,
		&component.Position{},
		component.NewOrientation(),
		&component.RelativePosition{V: mgl64.Vec3{0, 0, -1}},
		component.Renderable{},
	); err != nil {
		return err
	}
	if _, err := eng.Spawn("probe", nil,
		&component.Position{V: mgl64.Vec3{0, 0, -10}},
		component.Renderable{},
		&component.Lifetime{Remaining: 3 * time.Second},
	); err != nil {
		return err
	}
	return eng.Manager.AddEntityProcessor(newAutopilot(eng))
}

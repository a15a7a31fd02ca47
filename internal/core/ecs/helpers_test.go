package ecs

import (
	"time"

	"github.com/tickforge/runtime/internal/core/ident"
)

var (
	tagAlpha  = ident.Of("Alpha")
	tagBeta   = ident.Of("Beta")
	tagMarker = ident.Of("Marker")
)

type alpha struct{ Value int }

func (*alpha) TypeTag() ident.ID { return tagAlpha }
func (*alpha) TypeName() string  { return "Alpha" }

type beta struct{ Label string }

func (*beta) TypeTag() ident.ID { return tagBeta }
func (*beta) TypeName() string  { return "Beta" }

type marker struct{}

func (marker) TypeTag() ident.ID { return tagMarker }
func (marker) TypeName() string  { return "Marker" }

// recordingProcessor counts its hook and lifecycle calls.
type recordingProcessor struct {
	BaseProcessor
	added, removed      []EntityID
	updates, draws      int
	initCalls, cleanups int
	updateErr           error
	trace               *[]string
}

func newRecordingProcessor(name string, filter Filter) *recordingProcessor {
	return &recordingProcessor{BaseProcessor: NewBaseProcessor(name, filter)}
}

func (p *recordingProcessor) AddEntity(e *Entity) (bool, error) {
	added, err := p.BaseProcessor.AddEntity(e)
	if added {
		p.added = append(p.added, e.ID())
	}
	return added, err
}

func (p *recordingProcessor) RemoveEntity(id EntityID) bool {
	ok := p.BaseProcessor.RemoveEntity(id)
	if ok {
		p.removed = append(p.removed, id)
	}
	return ok
}

func (p *recordingProcessor) Initialize() error { p.initCalls++; return nil }
func (p *recordingProcessor) Cleanup() error    { p.cleanups++; return nil }
func (p *recordingProcessor) Draw() error       { p.draws++; return nil }

func (p *recordingProcessor) Update(_ time.Duration) error {
	p.updates++
	if p.trace != nil {
		*p.trace = append(*p.trace, p.Name())
	}
	return p.updateErr
}

func newEntityWith(name string, cs ...Component) *Entity {
	e := NewEntity(name)
	for _, c := range cs {
		if err := e.AddComponent(c); err != nil {
			panic(err)
		}
	}
	return e
}

package system

import (
	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/data"
)

// InputMapper turns raw key messages into commands according to a binding
// table. Connect Handle to the input channel; commands go to out and become
// visible to their consumers after the next shift.
type InputMapper struct {
	bindings *data.BindingTable
	out      *event.Channel
	log      *zap.Logger
	unbound  int
}

func NewInputMapper(bindings *data.BindingTable, out *event.Channel, log *zap.Logger) *InputMapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &InputMapper{bindings: bindings, out: out, log: log}
}

// Handle maps one input message.
func (m *InputMapper) Handle(msg event.Message) error {
	if msg.Type != MsgKey {
		return nil
	}
	key, ok := msg.Data.(event.Key)
	if !ok {
		return nil
	}
	b := m.bindings.Get(key.Name)
	if b == nil {
		m.unbound++
		m.log.Debug("unbound key", zap.String("key", key.Name))
		return nil
	}
	switch {
	case key.Pressed:
		m.out.Emit(event.New(b.CommandID, b.Magnitude))
	case b.Release != nil:
		m.out.Emit(event.New(b.CommandID, *b.Release))
	}
	return nil
}

// Unbound counts key messages with no binding.
func (m *InputMapper) Unbound() int { return m.unbound }

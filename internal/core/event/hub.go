package event

import "fmt"

// Hub groups the channels shifted and dispatched together once per tick.
type Hub struct {
	channels []*Channel
	byName   map[string]*Channel
}

func NewHub() *Hub {
	return &Hub{byName: make(map[string]*Channel, 8)}
}

// Add registers ch. Channel names must be unique within a hub.
func (h *Hub) Add(ch *Channel) error {
	if _, ok := h.byName[ch.Name()]; ok {
		return fmt.Errorf("channel %s already registered", ch.Name())
	}
	h.channels = append(h.channels, ch)
	h.byName[ch.Name()] = ch
	return nil
}

func (h *Hub) Channel(name string) (*Channel, bool) {
	ch, ok := h.byName[name]
	return ch, ok
}

// Channels returns the channels in registration order.
func (h *Hub) Channels() []*Channel {
	out := make([]*Channel, len(h.channels))
	copy(out, h.channels)
	return out
}

// ShiftAll shifts every channel. Call exactly once per tick, before
// DispatchAll.
func (h *Hub) ShiftAll() {
	for _, ch := range h.channels {
		ch.Shift()
	}
}

// DispatchAll drains every channel in registration order and returns the
// first handler error.
func (h *Hub) DispatchAll() error {
	for _, ch := range h.channels {
		if err := ch.Dispatch(); err != nil {
			return err
		}
	}
	return nil
}

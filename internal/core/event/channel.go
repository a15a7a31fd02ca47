package event

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Kind records whether a channel carries Commands or Events. The distinction
// is conventional; both kinds behave identically.
type Kind uint8

const (
	KindCommand Kind = iota
	KindEvent
)

func (k Kind) String() string {
	if k == KindCommand {
		return "command"
	}
	return "event"
}

// Handler receives drained messages. A returned error stops the drain.
type Handler func(Message) error

// Connection identifies a connected handler.
type Connection struct {
	id      uuid.UUID
	handler Handler
}

func (c Connection) ID() uuid.UUID { return c.id }

// OverflowFunc is told about every standby message dropped by a bounded
// channel.
type OverflowFunc func(ch *Channel, dropped Message)

type Option func(*Channel)

// WithCapacity bounds the standby queue. When full, the oldest standby
// message is dropped. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(c *Channel) { c.capacity = n }
}

func WithOverflow(fn OverflowFunc) Option {
	return func(c *Channel) { c.overflow = fn }
}

// Channel is a double-buffered publish/subscribe endpoint. Emit appends to
// the standby queue; Shift promotes standby to active; Dispatch drains the
// active queue through every handler. A message emitted during a tick is
// never seen by a Dispatch in that same tick.
//
// Channels are not safe for concurrent use.
type Channel struct {
	name     string
	kind     Kind
	standby  []Message
	active   []Message
	handlers []Connection
	capacity int
	overflow OverflowFunc
	dropped  uint64
}

func NewChannel(name string, kind Kind, opts ...Option) *Channel {
	c := &Channel{
		name:    name,
		kind:    kind,
		standby: make([]Message, 0, 64),
		active:  make([]Message, 0, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Channel) Name() string { return c.name }
func (c *Channel) Kind() Kind   { return c.kind }

// Connect registers h. Handlers run in connection order.
func (c *Channel) Connect(h Handler) Connection {
	conn := Connection{id: uuid.New(), handler: h}
	c.handlers = append(c.handlers, conn)
	return conn
}

// Disconnect removes a connection; it reports false if it was not connected.
// A handler may disconnect itself or others while a Dispatch is running; the
// drain in progress keeps delivering to the handlers connected when it
// started.
func (c *Channel) Disconnect(conn Connection) bool {
	for i, h := range c.handlers {
		if h.id == conn.id {
			c.handlers = slices.Delete(slices.Clone(c.handlers), i, i+1)
			return true
		}
	}
	return false
}

// Handlers returns the number of connected handlers.
func (c *Channel) Handlers() int { return len(c.handlers) }

// Emit queues m for the next Shift.
func (c *Channel) Emit(m Message) {
	if c.capacity > 0 && len(c.standby) >= c.capacity {
		oldest := c.standby[0]
		copy(c.standby, c.standby[1:])
		c.standby = c.standby[:len(c.standby)-1]
		c.dropped++
		if c.overflow != nil {
			c.overflow(c, oldest)
		}
	}
	c.standby = append(c.standby, m)
}

// Shift makes everything emitted since the previous Shift visible to the
// next Dispatch and empties the standby queue. Anything left undispatched in
// the active queue is discarded.
func (c *Channel) Shift() {
	c.active, c.standby = c.standby, c.active[:0]
}

// Dispatch delivers each active message, in emit order, to every handler in
// connection order, then empties the active queue. Handler errors are not
// recovered: the first one stops the drain, the remaining active messages
// are discarded and the error is returned.
func (c *Channel) Dispatch() error {
	active := c.active
	c.active = c.active[:0]
	handlers := c.handlers
	for _, m := range active {
		for _, h := range handlers {
			if err := h.handler(m); err != nil {
				return fmt.Errorf("channel %s: handler for %s: %w", c.name, m.Type, err)
			}
		}
	}
	return nil
}

// Active returns a copy of the messages waiting for Dispatch.
func (c *Channel) Active() []Message {
	out := make([]Message, len(c.active))
	copy(out, c.active)
	return out
}

// Len is the number of active messages.
func (c *Channel) Len() int { return len(c.active) }

// Pending is the number of standby messages.
func (c *Channel) Pending() int { return len(c.standby) }

// Dropped counts standby messages lost to the capacity bound.
func (c *Channel) Dropped() uint64 { return c.dropped }

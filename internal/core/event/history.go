package event

// History keeps the last N messages seen, for inspection tools. It is not
// part of delivery: connect Record to a channel to feed it.
type History struct {
	buf   []Message
	next  int
	full  bool
	total uint64
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]Message, size)}
}

// Record stores m, overwriting the oldest entry when full. It has the
// Handler signature.
func (h *History) Record(m Message) error {
	h.buf[h.next] = m
	h.next++
	if h.next == len(h.buf) {
		h.next = 0
		h.full = true
	}
	h.total++
	return nil
}

// Messages returns the retained messages, oldest first.
func (h *History) Messages() []Message {
	if !h.full {
		out := make([]Message, h.next)
		copy(out, h.buf[:h.next])
		return out
	}
	out := make([]Message, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}

func (h *History) Len() int {
	if h.full {
		return len(h.buf)
	}
	return h.next
}

func (h *History) Cap() int { return len(h.buf) }

// Total counts every message ever recorded.
func (h *History) Total() uint64 { return h.total }

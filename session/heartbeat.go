package session

import (
	"time"
)

// Heartbeat re-announces local typing while the composer has focus.
// Emit is invoked with true on every tick while focused and with false once on blur.
type Heartbeat struct {
	clock    Clock
	interval time.Duration
	emit     func(isTyping bool)
	focused  bool
	timer    Timer
	gen      uint64
	stopped  bool
}

func NewHeartbeat(clock Clock, interval time.Duration, emit func(isTyping bool)) *Heartbeat {
	return &Heartbeat{clock: clock, interval: interval, emit: emit}
}

// Focus (re)starts the repeating timer. Calling it twice keeps a single timer.
func (h *Heartbeat) Focus() {
	if h.stopped {
		return
	}
	h.focused = true
	h.cancel()
	h.schedule(h.gen)
}

// Blur stops the repeating timer and announces the stop right away.
func (h *Heartbeat) Blur() {
	if h.stopped {
		return
	}
	h.focused = false
	h.cancel()
	h.emit(false)
}

func (h *Heartbeat) Focused() bool { return h.focused }

func (h *Heartbeat) Stop() {
	h.stopped = true
	h.focused = false
	h.cancel()
}

func (h *Heartbeat) schedule(gen uint64) {
	h.timer = h.clock.AfterFunc(h.interval, func() { h.tick(gen) })
}

func (h *Heartbeat) tick(gen uint64) {
	if h.stopped || gen != h.gen {
		return
	}
	if h.focused {
		h.emit(true)
	}
	h.schedule(gen)
}

func (h *Heartbeat) cancel() {
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

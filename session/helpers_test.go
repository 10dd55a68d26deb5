package session

import (
	"context"
	"sync"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
)

// manualClock only moves when Advance is called. Due timers fire in deadline
// order on the calling goroutine.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()
		next.f()
	}
}

// pending counts armed timers.
func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type typingCall struct {
	ConversationID domain.ConversationID
	IsTyping       bool
}

// fakeHub records listeners and outbound calls; emit* deliver synchronously.
type fakeHub struct {
	mu         sync.Mutex
	connects   int
	connectErr error
	nextID     int
	created    map[int]func(*event.MessageCreated)
	joined     map[int]func(*event.UserJoined)
	left       map[int]func(*event.UserLeft)
	typing     map[int]func(*event.UserTyping)
	calls      []typingCall
}

func newFakeHub() *fakeHub {
	return &fakeHub{
		created: make(map[int]func(*event.MessageCreated)),
		joined:  make(map[int]func(*event.UserJoined)),
		left:    make(map[int]func(*event.UserLeft)),
		typing:  make(map[int]func(*event.UserTyping)),
	}
}

type fakeSubscription func()

func (f fakeSubscription) Unsubscribe() { f() }

func register[T any](h *fakeHub, m map[int]func(*T), fn func(*T)) contract.Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	m[id] = fn
	return fakeSubscription(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(m, id)
	})
}

func deliver[T any](h *fakeHub, m map[int]func(*T), e *T) {
	h.mu.Lock()
	fns := make([]func(*T), 0, len(m))
	for _, fn := range m {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (h *fakeHub) Connect(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connects++
	return h.connectErr
}

func (h *fakeHub) OnMessageCreated(fn func(*event.MessageCreated)) contract.Subscription {
	return register(h, h.created, fn)
}

func (h *fakeHub) OnUserJoined(fn func(*event.UserJoined)) contract.Subscription {
	return register(h, h.joined, fn)
}

func (h *fakeHub) OnUserLeft(fn func(*event.UserLeft)) contract.Subscription {
	return register(h, h.left, fn)
}

func (h *fakeHub) OnUserTyping(fn func(*event.UserTyping)) contract.Subscription {
	return register(h, h.typing, fn)
}

func (h *fakeHub) SetTyping(_ context.Context, id domain.ConversationID, isTyping bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, typingCall{ConversationID: id, IsTyping: isTyping})
	return nil
}

func (h *fakeHub) emitMessage(e *event.MessageCreated) { deliver(h, h.created, e) }
func (h *fakeHub) emitJoined(e *event.UserJoined)      { deliver(h, h.joined, e) }
func (h *fakeHub) emitLeft(e *event.UserLeft)          { deliver(h, h.left, e) }
func (h *fakeHub) emitTyping(e *event.UserTyping)      { deliver(h, h.typing, e) }

func (h *fakeHub) listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.created) + len(h.joined) + len(h.left) + len(h.typing)
}

func (h *fakeHub) typingCalls() []typingCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]typingCall(nil), h.calls...)
}

func (h *fakeHub) connectCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connects
}

var (
	alice = domain.User{ID: 1, DisplayName: "Alice", AvatarURL: "https://example.test/a.png"}
	bob   = domain.User{ID: 2, DisplayName: "Bob"}
	clara = domain.User{ID: 3, DisplayName: "Clara"}
)

func userIDs(users []domain.User) []domain.UserID {
	ids := make([]domain.UserID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func messageIDs(messages []domain.Message) []domain.MessageID {
	ids := make([]domain.MessageID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids
}

package session

import (
	"time"

	"chat-sync/domain"

	"github.com/samber/lo"
)

// TypingTracker holds the remote users currently typing.
// Every entry carries an expiry deadline and a single timer is armed for the
// earliest one. Under SharedDecay any new signal pushes all deadlines forward,
// which makes the whole set expire at once.
type TypingTracker struct {
	clock     Clock
	decay     time.Duration
	policy    TypingPolicy
	users     []domain.User
	deadlines map[domain.UserID]time.Time
	timer     Timer
	gen       uint64
	stopped   bool
	onExpire  func(remaining []domain.User)
}

func NewTypingTracker(clock Clock, decay time.Duration, policy TypingPolicy) *TypingTracker {
	return &TypingTracker{
		clock:     clock,
		decay:     decay,
		policy:    policy,
		deadlines: make(map[domain.UserID]time.Time),
	}
}

// Signal applies a remote typing notification.
func (t *TypingTracker) Signal(user domain.User, isTyping bool) {
	if t.stopped {
		return
	}
	if !isTyping {
		t.remove(user.ID)
		return
	}
	if _, ok := t.deadlines[user.ID]; !ok {
		t.users = append(t.users, user)
	}
	deadline := t.clock.Now().Add(t.decay)
	if t.policy == SharedDecay {
		for id := range t.deadlines {
			t.deadlines[id] = deadline
		}
	}
	t.deadlines[user.ID] = deadline
	t.rearm()
}

// MessageDelivered clears the sender: a delivered message means typing ended.
func (t *TypingTracker) MessageDelivered(user domain.User) {
	if t.stopped {
		return
	}
	t.remove(user.ID)
}

// Remove drops a user that left the conversation.
func (t *TypingTracker) Remove(userID domain.UserID) {
	if t.stopped {
		return
	}
	t.remove(userID)
}

func (t *TypingTracker) Users() []domain.User {
	out := make([]domain.User, len(t.users))
	copy(out, t.users)
	return out
}

func (t *TypingTracker) IsTyping(userID domain.UserID) bool {
	_, ok := t.deadlines[userID]
	return ok
}

// Stop cancels the pending decay timer. The tracker ignores every later call.
func (t *TypingTracker) Stop() {
	t.stopped = true
	t.gen++
	t.stopTimer()
}

func (t *TypingTracker) remove(userID domain.UserID) {
	if _, ok := t.deadlines[userID]; !ok {
		return
	}
	delete(t.deadlines, userID)
	t.users = lo.Reject(t.users, func(u domain.User, _ int) bool { return u.ID == userID })
	t.rearm()
}

func (t *TypingTracker) expire(gen uint64) {
	if t.stopped || gen != t.gen {
		return
	}
	now := t.clock.Now()
	before := len(t.users)
	t.users = lo.Reject(t.users, func(u domain.User, _ int) bool {
		if deadline := t.deadlines[u.ID]; !deadline.After(now) {
			delete(t.deadlines, u.ID)
			return true
		}
		return false
	})
	t.rearm()
	if len(t.users) != before && t.onExpire != nil {
		t.onExpire(t.Users())
	}
}

// rearm cancels the current timer and schedules one for the earliest deadline.
func (t *TypingTracker) rearm() {
	t.gen++
	t.stopTimer()
	if len(t.deadlines) == 0 {
		return
	}
	earliest := lo.MinBy(lo.Values(t.deadlines), func(a, b time.Time) bool { return a.Before(b) })
	gen := t.gen
	t.timer = t.clock.AfterFunc(earliest.Sub(t.clock.Now()), func() { t.expire(gen) })
}

func (t *TypingTracker) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

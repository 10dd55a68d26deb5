package session

import (
	"testing"
	"time"

	"chat-sync/domain"

	"github.com/stretchr/testify/require"
)

const decay = 2000 * time.Millisecond

func TestTypingTracker_Decays_Without_New_Signal(t *testing.T) {
	for _, policy := range []TypingPolicy{PerUserDecay, SharedDecay} {
		t.Run(string(policy), func(t *testing.T) {
			req := require.New(t)
			clock := newManualClock()
			tracker := NewTypingTracker(clock, decay, policy)

			tracker.Signal(bob, true)
			clock.Advance(decay - time.Millisecond)
			req.Equal([]domain.UserID{2}, userIDs(tracker.Users()))

			clock.Advance(time.Millisecond)
			req.Empty(tracker.Users())
			req.Zero(clock.pending())
		})
	}
}

func TestTypingTracker_Shared_Decay_Superseded_By_Later_Signal(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, SharedDecay)

	// Given Bob typing at t and Clara at t+1500ms
	tracker.Signal(bob, true)
	clock.Advance(1500 * time.Millisecond)
	tracker.Signal(clara, true)

	// Then nothing clears at the original t+2000ms mark
	clock.Advance(500 * time.Millisecond)
	req.Equal([]domain.UserID{2, 3}, userIDs(tracker.Users()))

	// And the whole set clears together at t+3500ms
	clock.Advance(1500 * time.Millisecond)
	req.Empty(tracker.Users())
}

func TestTypingTracker_Default_Config_Clears_Whole_Set_Together(t *testing.T) {
	req := require.New(t)
	cfg := DefaultConfig()
	req.Equal(SharedDecay, cfg.TypingPolicy)
	req.Equal(SharedDecay, Config{}.withDefaults().TypingPolicy)
	req.Equal(PerUserDecay, Config{TypingPolicy: PerUserDecay}.withDefaults().TypingPolicy)

	clock := newManualClock()
	tracker := NewTypingTracker(clock, cfg.TypingDecay, cfg.TypingPolicy)

	// Given Bob typing at t and Clara at t+1500ms
	tracker.Signal(bob, true)
	clock.Advance(1500 * time.Millisecond)
	tracker.Signal(clara, true)

	// Then both are still typing at t+2000ms
	clock.Advance(500 * time.Millisecond)
	req.Equal([]domain.UserID{2, 3}, userIDs(tracker.Users()))

	// And both clear at t+3500ms
	clock.Advance(1500 * time.Millisecond)
	req.Empty(tracker.Users())
}

func TestTypingTracker_Per_User_Decay_Expires_Each_Typist_Independently(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, PerUserDecay)

	tracker.Signal(bob, true)
	clock.Advance(1500 * time.Millisecond)
	tracker.Signal(clara, true)

	// At t+2000ms only Bob expired: the set is not cleared
	clock.Advance(500 * time.Millisecond)
	req.Equal([]domain.UserID{3}, userIDs(tracker.Users()))

	clock.Advance(1500 * time.Millisecond)
	req.Empty(tracker.Users())
}

func TestTypingTracker_Repeated_Signal_Extends_Deadline(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, PerUserDecay)

	tracker.Signal(bob, true)
	clock.Advance(1000 * time.Millisecond)
	tracker.Signal(bob, true)
	clock.Advance(1500 * time.Millisecond)

	req.True(tracker.IsTyping(bob.ID))
	req.Len(tracker.Users(), 1)
	req.Equal(1, clock.pending())
}

func TestTypingTracker_Message_Delivered_Clears_Only_Sender(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, SharedDecay)
	tracker.Signal(alice, true)
	tracker.Signal(bob, true)

	tracker.MessageDelivered(alice)

	req.Equal([]domain.UserID{2}, userIDs(tracker.Users()))
}

func TestTypingTracker_Stop_Signal_Removes_Exactly_That_User(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, PerUserDecay)
	tracker.Signal(bob, true)
	tracker.Signal(clara, true)

	tracker.Signal(clara, false)

	req.Equal([]domain.UserID{2}, userIDs(tracker.Users()))
}

func TestTypingTracker_Stop_Cancels_Decay(t *testing.T) {
	req := require.New(t)
	clock := newManualClock()
	tracker := NewTypingTracker(clock, decay, PerUserDecay)
	tracker.Signal(bob, true)

	tracker.Stop()
	clock.Advance(2 * decay)
	tracker.Signal(clara, true)

	// The state frozen at teardown is never touched again
	req.Equal([]domain.UserID{2}, userIDs(tracker.Users()))
	req.Zero(clock.pending())
}

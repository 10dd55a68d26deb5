// Package session keeps one conversation in sync with the server: history,
// live messages, audience presence and typing indicators.
//
// Every mutation enters through the Session gate (push-channel callbacks,
// fetch completions, focus/blur and timer fires), which gives the same
// guarantees as a single-threaded event loop. Once a Session is closed the
// gate drops everything, so a late event is never applied to the next one.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"

	"golang.org/x/sync/errgroup"
)

type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Active  State = "active"
	Closed  State = "closed"
)

type ChangeKind string

const (
	MessageAppended ChangeKind = "message-appended"
	HistoryLoaded   ChangeKind = "history-loaded"
	AudienceChanged ChangeKind = "audience-changed"
	TypingChanged   ChangeKind = "typing-changed"
	StateChanged    ChangeKind = "state-changed"
)

// Change describes one observable mutation of a Session.
type Change struct {
	Kind           ChangeKind
	ConversationID domain.ConversationID
	Generation     uint64
	State          State
	Message        *domain.Message
	Users          []domain.User
}

// Listener is called with the session gate held: it must not call back into the Session.
type Listener func(Change)

// Deps are the collaborators shared by every Session of a Controller.
type Deps struct {
	Log      *slog.Logger
	API      contract.ConversationAPI
	Hub      contract.Hub
	Self     domain.User
	Clock    Clock
	OnChange Listener
}

// View is a consistent snapshot of a Session.
type View struct {
	ConversationID domain.ConversationID
	Generation     uint64
	State          State
	Messages       []domain.Message
	Audience       []domain.User
	Typing         []domain.User
	HistoryLoaded  bool
	AudienceLoaded bool
	Focused        bool
}

type Session struct {
	mu            sync.Mutex
	log           *slog.Logger
	id            domain.ConversationID
	generation    uint64
	deps          Deps
	ctx           context.Context
	cancel        context.CancelFunc
	messages      *MessageLog
	presence      *PresenceSet
	typing        *TypingTracker
	heartbeat     *Heartbeat
	subscriptions []contract.Subscription
	state         State
	closed        bool
}

// NewSession builds a Session in the Loading state. Nothing is fetched or
// subscribed until Attach and Load are called.
func NewSession(ctx context.Context, id domain.ConversationID, generation uint64, deps Deps, cfg Config) *Session {
	cfg = cfg.withDefaults()
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = RealClock()
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		log:        deps.Log.With("conversation_id", id, "generation", generation),
		id:         id,
		generation: generation,
		deps:       deps,
		ctx:        sessionCtx,
		cancel:     cancel,
		messages:   NewMessageLog(),
		presence:   NewPresenceSet(),
		state:      Loading,
	}
	clock := gatedClock{base: deps.Clock, exec: func(f func()) { s.exec(f) }}
	s.typing = NewTypingTracker(clock, cfg.TypingDecay, cfg.TypingPolicy)
	s.typing.onExpire = func(users []domain.User) {
		s.notify(Change{Kind: TypingChanged, Users: users})
	}
	s.heartbeat = NewHeartbeat(clock, cfg.HeartbeatInterval, s.emitTyping)
	return s
}

func (s *Session) ID() domain.ConversationID { return s.id }

func (s *Session) Generation() uint64 { return s.generation }

// Attach registers exactly one listener per push-channel event kind.
func (s *Session) Attach() {
	hub := s.deps.Hub
	subs := []contract.Subscription{
		hub.OnMessageCreated(s.onMessageCreated),
		hub.OnUserJoined(s.onUserJoined),
		hub.OnUserLeft(s.onUserLeft),
		hub.OnUserTyping(s.onUserTyping),
	}
	s.mu.Lock()
	if !s.closed {
		s.subscriptions = append(s.subscriptions, subs...)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Load fetches audience and history concurrently. A failed fetch leaves the
// matching part unloaded; the error is logged and returned for information only.
func (s *Session) Load() error {
	var g errgroup.Group
	g.Go(func() error {
		audience, err := s.deps.API.Audience(s.ctx, s.id)
		if err != nil {
			s.log.Warn("Audience fetch failed", "error", err)
			return fmt.Errorf("audience of %d: %w", s.id, err)
		}
		s.exec(func() { s.seedAudience(audience) })
		return nil
	})
	g.Go(func() error {
		messages, err := s.deps.API.Messages(s.ctx, s.id)
		if err != nil {
			s.log.Warn("History fetch failed", "error", err)
			return fmt.Errorf("messages of %d: %w", s.id, err)
		}
		s.exec(func() { s.seedHistory(messages) })
		return nil
	})
	return g.Wait()
}

// Ingest applies a message obtained outside the push channel, e.g. the
// response of a create-message call. It reports whether the log grew.
func (s *Session) Ingest(m domain.Message) bool {
	accepted := false
	s.exec(func() {
		if !s.belongs(m.ConversationID) {
			return
		}
		accepted = s.ingest(m)
	})
	return accepted
}

func (s *Session) Focus() error {
	if !s.exec(s.heartbeat.Focus) {
		return fmt.Errorf("focus on %d: %w", s.id, errors.ErrSessionClosed)
	}
	return nil
}

func (s *Session) Blur() error {
	if !s.exec(s.heartbeat.Blur) {
		return fmt.Errorf("blur on %d: %w", s.id, errors.ErrSessionClosed)
	}
	return nil
}

// Close tears the Session down: listeners are detached, both timers are
// cancelled and in-flight fetches are aborted. It is safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subscriptions
	s.subscriptions = nil
	s.typing.Stop()
	s.heartbeat.Stop()
	s.state = Closed
	s.cancel()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	s.log.Debug("Session closed", "subscriptions", len(subs))
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ConversationID: s.id,
		Generation:     s.generation,
		State:          s.state,
		Messages:       s.messages.Messages(),
		Audience:       s.presence.Members(),
		Typing:         s.typing.Users(),
		HistoryLoaded:  s.messages.Loaded(),
		AudienceLoaded: s.presence.Loaded(),
		Focused:        s.heartbeat.Focused(),
	}
}

// exec runs f behind the gate. It returns false when the Session is closed.
func (s *Session) exec(f func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	f()
	return true
}

// belongs fences events of other conversations. Untagged events are accepted.
func (s *Session) belongs(id domain.ConversationID) bool {
	if id == 0 || id == s.id {
		return true
	}
	s.log.Debug("Dropping event of another conversation", "event_conversation_id", id)
	return false
}

func (s *Session) onMessageCreated(e *event.MessageCreated) {
	if e == nil {
		return
	}
	s.exec(func() {
		if s.belongs(e.ConversationID()) {
			s.ingest(e.Message)
		}
	})
}

func (s *Session) onUserJoined(e *event.UserJoined) {
	if e == nil {
		return
	}
	s.exec(func() {
		if s.belongs(e.ConversationID()) && s.presence.Admit(e.User) {
			s.notify(Change{Kind: AudienceChanged, Users: s.presence.Members()})
		}
	})
}

func (s *Session) onUserLeft(e *event.UserLeft) {
	if e == nil {
		return
	}
	s.exec(func() {
		if !s.belongs(e.ConversationID()) {
			return
		}
		if s.presence.Evict(e.User.ID) {
			s.notify(Change{Kind: AudienceChanged, Users: s.presence.Members()})
		}
		s.clearTyping(e.User)
	})
}

func (s *Session) onUserTyping(e *event.UserTyping) {
	if e == nil {
		return
	}
	s.exec(func() {
		if !s.belongs(e.ConversationID()) || e.User.SameAs(s.deps.Self) {
			return
		}
		before := s.typing.IsTyping(e.User.ID)
		s.typing.Signal(e.User, e.IsTyping)
		if before != e.IsTyping {
			s.notify(Change{Kind: TypingChanged, Users: s.typing.Users()})
		}
	})
}

func (s *Session) ingest(m domain.Message) bool {
	accepted := s.messages.Ingest(m)
	if accepted {
		s.notify(Change{Kind: MessageAppended, Message: &m})
	}
	s.clearTyping(m.CreatorUser)
	return accepted
}

func (s *Session) clearTyping(user domain.User) {
	if s.typing.IsTyping(user.ID) {
		s.typing.MessageDelivered(user)
		s.notify(Change{Kind: TypingChanged, Users: s.typing.Users()})
	}
}

func (s *Session) seedAudience(audience domain.ConversationAudience) {
	if audience.ConversationID == 0 {
		audience.ConversationID = s.id
	}
	if !s.belongs(audience.ConversationID) {
		return
	}
	s.presence.Seed(audience)
	s.notify(Change{Kind: AudienceChanged, Users: s.presence.Members()})
	s.refreshState()
}

func (s *Session) seedHistory(messages []domain.Message) {
	s.messages.Seed(messages)
	s.notify(Change{Kind: HistoryLoaded})
	s.refreshState()
}

func (s *Session) refreshState() {
	if s.state == Loading && s.presence.Loaded() && s.messages.Loaded() {
		s.state = Active
		s.notify(Change{Kind: StateChanged})
	}
}

// emitTyping runs behind the gate, from Blur or from a heartbeat tick.
func (s *Session) emitTyping(isTyping bool) {
	id, ok := s.presence.ConversationID()
	if !ok {
		return
	}
	if err := s.deps.Hub.SetTyping(s.ctx, id, isTyping); err != nil {
		s.log.Debug("Typing toggle not sent", "is_typing", isTyping, "error", err)
	}
}

func (s *Session) notify(c Change) {
	if s.deps.OnChange == nil {
		return
	}
	c.ConversationID = s.id
	c.Generation = s.generation
	c.State = s.state
	s.deps.OnChange(c)
}

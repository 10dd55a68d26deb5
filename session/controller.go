package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/errors"
)

// Controller owns the single active Session of one chat view.
// Activating a new conversation tears the previous Session down first.
type Controller struct {
	mu         sync.Mutex
	log        *slog.Logger
	deps       Deps
	cfg        Config
	current    *Session
	generation uint64
}

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.deps.Clock = clock }
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.deps.OnChange = l }
}

func NewController(log *slog.Logger, api contract.ConversationAPI, hub contract.Hub,
	self domain.User, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		log:  log,
		deps: Deps{Log: log, API: api, Hub: hub, Self: self, Clock: RealClock()},
		cfg:  cfg.withDefaults(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate ensures a Session is live for the conversation. Repeated calls with
// the id of the current Session are no-ops and return that Session.
// Audience and history are fetched in the background.
func (c *Controller) Activate(ctx context.Context, id domain.ConversationID) (*Session, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", errors.ErrInvalidConversation, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.ID() == id && !c.current.Closed() {
		return c.current, nil
	}
	c.connect(ctx)
	if c.current != nil {
		c.current.Close()
	}
	c.generation++
	s := NewSession(ctx, id, c.generation, c.deps, c.cfg)
	s.Attach()
	c.current = s
	c.log.Info("Conversation activated", "conversation_id", id, "generation", c.generation)

	go func() {
		// Failures are already logged by the session and degrade in place.
		_ = s.Load()
	}()
	return s, nil
}

// Deactivate closes the current Session and returns the Controller to idle.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	c.current.Close()
	c.log.Info("Conversation deactivated", "conversation_id", c.current.ID())
	c.current = nil
}

func (c *Controller) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) State() State {
	s := c.Current()
	if s == nil {
		return Idle
	}
	return s.View().State
}

func (c *Controller) Focus() error {
	s := c.Current()
	if s == nil {
		return errors.ErrNoActiveSession
	}
	return s.Focus()
}

func (c *Controller) Blur() error {
	s := c.Current()
	if s == nil {
		return errors.ErrNoActiveSession
	}
	return s.Blur()
}

// Submit creates a message in the active conversation. The returned message is
// ingested right away; its echo on the push channel is deduplicated.
func (c *Controller) Submit(ctx context.Context, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, errors.ErrEmptyMessage
	}
	s := c.Current()
	if s == nil {
		return domain.Message{}, errors.ErrNoActiveSession
	}
	msg, err := c.deps.API.CreateMessage(ctx, domain.CreateMessageCommand{Conversation: s.ID(), Text: text})
	if err != nil {
		return domain.Message{}, fmt.Errorf("create message in %d: %w", s.ID(), err)
	}
	s.Ingest(msg)
	return msg, nil
}

func (c *Controller) Close() {
	c.Deactivate()
}

// connect makes sure the hub is up before a Session subscribes. Hub.Connect
// is a no-op on a live connection and dials again after a drop; a failure is
// logged and retried on the next activation.
func (c *Controller) connect(ctx context.Context) {
	if err := c.deps.Hub.Connect(ctx); err != nil {
		c.log.Warn("Hub connection failed", "error", err)
	}
}

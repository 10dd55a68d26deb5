// Package hub is the client side of the push channel: one websocket per
// process, fanned out to typed listeners.
package hub

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultSendBuffer = 64

type Client struct {
	log      *slog.Logger
	endpoint string
	token    string
	dialer   *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	closed bool

	created *listeners[event.MessageCreated]
	joined  *listeners[event.UserJoined]
	left    *listeners[event.UserLeft]
	typing  *listeners[event.UserTyping]
}

type Option func(*Client)

func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// NewClient prepares a hub client for the websocket endpoint, e.g. ws://host/hub.
// The access token is sent as the access_token query parameter.
func NewClient(log *slog.Logger, endpoint, token string, opts ...Option) *Client {
	c := &Client{
		log:      log,
		endpoint: endpoint,
		token:    token,
		dialer:   websocket.DefaultDialer,
		send:     make(chan []byte, defaultSendBuffer),
		done:     make(chan struct{}),
		created:  newListeners[event.MessageCreated](),
		joined:   newListeners[event.UserJoined](),
		left:     newListeners[event.UserLeft](),
		typing:   newListeners[event.UserTyping](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the hub once. Later calls return nil while the connection is up.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.ErrHubClosed
	}
	if c.conn != nil {
		return nil
	}
	target, err := c.target()
	if err != nil {
		return err
	}
	conn, _, err := c.dialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial hub: %w", err)
	}
	c.conn = conn
	stop := make(chan struct{})
	go c.readPump(conn, stop)
	go c.writePump(conn, stop)
	c.log.Info("Hub connected", "endpoint", c.endpoint)
	return nil
}

func (c *Client) OnMessageCreated(fn func(*event.MessageCreated)) contract.Subscription {
	return c.created.add(fn)
}

func (c *Client) OnUserJoined(fn func(*event.UserJoined)) contract.Subscription {
	return c.joined.add(fn)
}

func (c *Client) OnUserLeft(fn func(*event.UserLeft)) contract.Subscription {
	return c.left.add(fn)
}

func (c *Client) OnUserTyping(fn func(*event.UserTyping)) contract.Subscription {
	return c.typing.add(fn)
}

// SetTyping queues a user-typing-toggled frame. Nothing waits for an answer and
// the frame is dropped when the send buffer is full.
func (c *Client) SetTyping(_ context.Context, id domain.ConversationID, isTyping bool) error {
	data, err := event.Encode(event.UserTypingToggled{Conversation: id, IsTyping: isTyping})
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.ErrHubClosed
	}
	if c.conn == nil {
		return errors.ErrHubNotConnected
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("Hub send buffer full, typing toggle dropped", "conversation_id", id)
	}
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *Client) target() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid hub endpoint %q: %w", c.endpoint, err)
	}
	if c.token != "" {
		q := u.Query()
		q.Set("access_token", c.token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) readPump(conn *websocket.Conn, stop chan struct{}) {
	defer close(stop)
	defer c.disconnected(conn)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Warn("Hub connection lost", "error", err)
			}
			return
		}
		evt, err := event.Decode(data)
		if err != nil {
			c.log.Debug("Ignoring hub frame", "error", err)
			continue
		}
		c.dispatch(evt)
	}
}

func (c *Client) writePump(conn *websocket.Conn, stop <-chan struct{}) {
	for {
		select {
		case <-c.done:
			return
		case <-stop:
			return
		case data := <-c.send:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Warn("Hub write failed", "error", err)
				_ = conn.Close()
				return
			}
		}
	}
}

// disconnected forgets a dead connection so the next Connect dials again.
func (c *Client) disconnected(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		c.conn = nil
	}
	_ = conn.Close()
}

func (c *Client) dispatch(evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.MessageCreated:
		c.created.emit(&e)
	case event.UserJoined:
		c.joined.emit(&e)
	case event.UserLeft:
		c.left.emit(&e)
	case event.UserTyping:
		c.typing.emit(&e)
	case nil:
		c.log.Debug("Empty hub frame")
	default:
		c.log.Debug("Unhandled hub frame", "type", evt.Kind())
	}
}

type listeners[T any] struct {
	mu  sync.RWMutex
	fns map[string]func(*T)
}

func newListeners[T any]() *listeners[T] {
	return &listeners[T]{fns: make(map[string]func(*T))}
}

func (l *listeners[T]) add(fn func(*T)) contract.Subscription {
	id := uuid.NewString()
	l.mu.Lock()
	l.fns[id] = fn
	l.mu.Unlock()
	return subscription(func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	})
}

func (l *listeners[T]) emit(e *T) {
	l.mu.RLock()
	fns := make([]func(*T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (l *listeners[T]) count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fns)
}

type subscription func()

func (s subscription) Unsubscribe() { s() }

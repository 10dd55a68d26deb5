// Package ws serves the hub websocket: server pushes domain events, clients
// send typing toggles.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chat-sync/auth"
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxFrameSize   = 64 * 1024
	sendBufferSize = 64
)

// TypingService receives the typing toggles sent by clients.
type TypingService interface {
	ToggleTyping(ctx context.Context, userID domain.UserID, id domain.ConversationID, isTyping bool) error
}

type Handler struct {
	log      *slog.Logger
	registry contract.IRegistry
	typing   TypingService
	upgrader websocket.Upgrader
}

// NewHandler accepts websocket upgrades from the allowed origins ("*" for any).
// It must be mounted behind auth.Middleware.
func NewHandler(log *slog.Logger, registry contract.IRegistry, typing TypingService, allowedOrigins []string) *Handler {
	allowAll := lo.Contains(allowedOrigins, "*")
	return &Handler{
		log:      log,
		registry: registry,
		typing:   typing,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowAll || lo.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Websocket upgrade failed", "error", err)
		return
	}

	connectionID := uuid.NewString()
	c := newConnection(h.log.With("user_id", userID, "connection_id", connectionID), conn)
	h.registry.Subscribe(userID, connectionID, c)
	h.log.Info("Hub connection opened", "user_id", userID, "connection_id", connectionID)

	go c.writePump()
	// The read loop owns the connection lifetime
	h.readPump(userID, c)

	h.registry.Unsubscribe(userID, connectionID)
	c.close()
	h.log.Info("Hub connection closed", "user_id", userID, "connection_id", connectionID)
}

func (h *Handler) readPump(userID domain.UserID, c *connection) {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Hub read failed", "error", err)
			}
			return
		}
		evt, err := event.Decode(data)
		if err != nil {
			c.log.Debug("Ignoring client frame", "error", err)
			continue
		}
		switch e := evt.(type) {
		case event.UserTypingToggled:
			if err := h.typing.ToggleTyping(context.Background(), userID, e.Conversation, e.IsTyping); err != nil {
				c.log.Debug("Typing toggle rejected", "conversation_id", e.Conversation, "error", err)
			}
		case nil:
		default:
			c.log.Debug("Unexpected client frame", "type", evt.Kind())
		}
	}
}

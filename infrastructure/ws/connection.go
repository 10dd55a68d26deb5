package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chat-sync/domain/event"

	"github.com/gorilla/websocket"
)

// connection is the EventSink of one websocket. Consume only queues frames;
// the write pump is the single writer of the socket.
type connection struct {
	log       *slog.Logger
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(log *slog.Logger, conn *websocket.Conn) *connection {
	return &connection{
		log:  log,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Consume queues the event, waiting for room until ctx expires.
func (c *connection) Consume(ctx context.Context, e event.DomainEvent) error {
	data, err := event.Encode(e)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = c.conn.Close()
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("Hub write failed", "error", err)
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

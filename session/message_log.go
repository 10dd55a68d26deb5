package session

import (
	"chat-sync/domain"
)

// MessageLog is the ordered, deduplicated history of the active conversation.
// It is not safe for concurrent use; the owning Session serializes access.
type MessageLog struct {
	messages []domain.Message
	ids      map[domain.MessageID]struct{}
	loaded   bool
}

func NewMessageLog() *MessageLog {
	return &MessageLog{ids: make(map[domain.MessageID]struct{})}
}

// Seed appends the fetched history and marks the log as loaded.
// Messages already present (delivered live before the fetch completed) are skipped.
func (l *MessageLog) Seed(messages []domain.Message) {
	for _, m := range messages {
		l.Ingest(m)
	}
	l.loaded = true
}

// Ingest appends the message unless one with the same id is already present.
func (l *MessageLog) Ingest(m domain.Message) bool {
	if _, ok := l.ids[m.ID]; ok {
		return false
	}
	l.ids[m.ID] = struct{}{}
	l.messages = append(l.messages, m)
	return true
}

func (l *MessageLog) Loaded() bool { return l.loaded }

func (l *MessageLog) Len() int { return len(l.messages) }

// Messages returns a copy in insertion order.
func (l *MessageLog) Messages() []domain.Message {
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once created by the server.
package domain

import (
	"time"
)

type MessageID int64

// Message represents an immutable chat event.
// Ordering is the server-assigned creation order.
type Message struct {
	ID             MessageID      `json:"id"`
	ConversationID ConversationID `json:"conversationId"`
	CreatorUser    User           `json:"creatorUser"`
	Text           string         `json:"text"`
	CreatedAt      time.Time      `json:"createdAt"`
}

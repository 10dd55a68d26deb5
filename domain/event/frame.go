package event

import (
	"encoding/json"
	"fmt"

	"chat-sync/domain"
	"chat-sync/errors"
)

// Frame is the JSON envelope carried by every websocket message.
type Frame struct {
	Type           Kind                  `json:"type"`
	ConversationID domain.ConversationID `json:"conversationId,omitempty"`
	Payload        json.RawMessage       `json:"payload,omitempty"`
}

type typingPayload struct {
	User     *domain.User `json:"user,omitempty"`
	IsTyping bool         `json:"isTyping"`
}

// Encode wraps a domain event into its wire representation.
func Encode(evt DomainEvent) ([]byte, error) {
	var payload any
	switch e := evt.(type) {
	case MessageCreated:
		payload = e.Message
	case UserJoined:
		payload = e.User
	case UserLeft:
		payload = e.User
	case UserTyping:
		payload = typingPayload{User: &e.User, IsTyping: e.IsTyping}
	case UserTypingToggled:
		payload = typingPayload{IsTyping: e.IsTyping}
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnknownFrame, evt)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: evt.Kind(), ConversationID: evt.ConversationID(), Payload: raw})
}

// Decode parses a wire frame. A frame without payload decodes to a nil event
// and no error: consumers treat it as a no-op.
func Decode(data []byte) (DomainEvent, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}
	if len(frame.Payload) == 0 || string(frame.Payload) == "null" {
		return nil, nil
	}
	switch frame.Type {
	case MessageCreatedKind:
		var m domain.Message
		if err := json.Unmarshal(frame.Payload, &m); err != nil {
			return nil, err
		}
		if m.ConversationID == 0 {
			m.ConversationID = frame.ConversationID
		}
		return MessageCreated{Message: m}, nil
	case UserJoinedKind, UserLeftKind:
		var u domain.User
		if err := json.Unmarshal(frame.Payload, &u); err != nil {
			return nil, err
		}
		if frame.Type == UserJoinedKind {
			return UserJoined{Conversation: frame.ConversationID, User: u}, nil
		}
		return UserLeft{Conversation: frame.ConversationID, User: u}, nil
	case UserTypingKind:
		var p typingPayload
		if err := json.Unmarshal(frame.Payload, &p); err != nil {
			return nil, err
		}
		if p.User == nil {
			return nil, nil
		}
		return UserTyping{Conversation: frame.ConversationID, User: *p.User, IsTyping: p.IsTyping}, nil
	case UserTypingToggledKind:
		var p typingPayload
		if err := json.Unmarshal(frame.Payload, &p); err != nil {
			return nil, err
		}
		return UserTypingToggled{Conversation: frame.ConversationID, IsTyping: p.IsTyping}, nil
	}
	return nil, fmt.Errorf("%w: %q", errors.ErrUnknownFrame, frame.Type)
}

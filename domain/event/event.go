package event

import (
	"chat-sync/domain"
)

// Kind names a frame exchanged on the push channel.
type Kind string

const (
	MessageCreatedKind    Kind = "message-created"
	UserJoinedKind        Kind = "user-joined"
	UserLeftKind          Kind = "user-left"
	UserTypingKind        Kind = "user-typing"
	UserTypingToggledKind Kind = "user-typing-toggled"
)

type DomainEvent interface {
	Kind() Kind
	ConversationID() domain.ConversationID
}

type MessageCreated struct {
	Message domain.Message
}

func (m MessageCreated) Kind() Kind { return MessageCreatedKind }

func (m MessageCreated) ConversationID() domain.ConversationID {
	return m.Message.ConversationID
}

type UserJoined struct {
	Conversation domain.ConversationID
	User         domain.User
}

func (u UserJoined) Kind() Kind { return UserJoinedKind }

func (u UserJoined) ConversationID() domain.ConversationID {
	return u.Conversation
}

type UserLeft struct {
	Conversation domain.ConversationID
	User         domain.User
}

func (u UserLeft) Kind() Kind { return UserLeftKind }

func (u UserLeft) ConversationID() domain.ConversationID {
	return u.Conversation
}

// UserTyping is broadcast to the audience when a member starts or stops typing.
type UserTyping struct {
	Conversation domain.ConversationID
	User         domain.User
	IsTyping     bool
}

func (u UserTyping) Kind() Kind { return UserTypingKind }

func (u UserTyping) ConversationID() domain.ConversationID {
	return u.Conversation
}

// UserTypingToggled is the only event sent by clients.
type UserTypingToggled struct {
	Conversation domain.ConversationID
	IsTyping     bool
}

func (u UserTypingToggled) Kind() Kind { return UserTypingToggledKind }

func (u UserTypingToggled) ConversationID() domain.ConversationID {
	return u.Conversation
}

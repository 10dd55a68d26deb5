//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ConversationAPI is the request/response collaborator owning conversations and messages.
type ConversationAPI interface {
	Audience(ctx context.Context, conversationID domain.ConversationID) (domain.ConversationAudience, error)
	Messages(ctx context.Context, conversationID domain.ConversationID) ([]domain.Message, error)
	CreateMessage(ctx context.Context, cmd domain.CreateMessageCommand) (domain.Message, error)
}

// Subscription detaches a listener previously registered on a Hub.
type Subscription interface {
	Unsubscribe()
}

// Hub is the push channel: server-to-client events plus one outbound call.
// Listeners are invoked from the hub's reading goroutine.
type Hub interface {
	Connect(ctx context.Context) error
	OnMessageCreated(fn func(*event.MessageCreated)) Subscription
	OnUserJoined(fn func(*event.UserJoined)) Subscription
	OnUserLeft(fn func(*event.UserLeft)) Subscription
	OnUserTyping(fn func(*event.UserTyping)) Subscription
	SetTyping(ctx context.Context, conversationID domain.ConversationID, isTyping bool) error
}

// EventSink receives server-side domain events destined to one live connection.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	GetSinksForUsers(userIDs []domain.UserID) []EventSink
	Subscribe(userID domain.UserID, connectionID string, sink EventSink)
	Unsubscribe(userID domain.UserID, connectionID string)
}

// AudienceResolver returns the user ids that must receive events of a conversation.
type AudienceResolver interface {
	AudienceIDs(conversationID domain.ConversationID) ([]domain.UserID, error)
}

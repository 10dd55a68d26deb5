package workers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Delivers_To_Audience_Sinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	audience := mocks.NewMockAudienceResolver(ctrl)
	sink := mocks.NewMockEventSink(ctrl)

	evt := event.MessageCreated{Message: domain.Message{ID: 1, ConversationID: 42}}
	fanout := NewEventFanout(log, nil, registry, audience, time.Second)

	// Given Alice and Bob in the audience, each with one connection
	audience.EXPECT().AudienceIDs(domain.ConversationID(42)).Return([]domain.UserID{1, 2}, nil)
	registry.EXPECT().GetSinksForUsers([]domain.UserID{1, 2}).Return([]contract.EventSink{sink, sink})
	// Then both connections consume the event
	sink.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(2)

	fanout.Fanout(context.Background(), event.Delivery{Event: evt})
	req.True(ctrl.Satisfied())
}

func TestEventFanout_Include_And_Exclude(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	audience := mocks.NewMockAudienceResolver(ctrl)
	fanout := NewEventFanout(log, nil, registry, audience, time.Second)

	audience.EXPECT().AudienceIDs(domain.ConversationID(42)).Return([]domain.UserID{1, 2, 3}, nil)
	registry.EXPECT().GetSinksForUsers([]domain.UserID{1, 3, 4}).Return(nil)

	fanout.Fanout(context.Background(), event.Delivery{
		Event:   event.UserLeft{Conversation: 42, User: domain.User{ID: 4}},
		Include: []domain.UserID{4},
		Exclude: []domain.UserID{2},
	})
}

func TestEventFanout_Unknown_Audience_Drops_Event(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	audience := mocks.NewMockAudienceResolver(ctrl)
	fanout := NewEventFanout(log, nil, registry, audience, time.Second)

	audience.EXPECT().AudienceIDs(gomock.Any()).Return(nil, errors.New("not found"))
	registry.EXPECT().GetSinksForUsers(gomock.Any()).Times(0)

	fanout.Fanout(context.Background(), event.Delivery{Event: event.UserJoined{Conversation: 9}})
	fanout.Fanout(context.Background(), event.Delivery{})
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	audience := mocks.NewMockAudienceResolver(ctrl)
	slow := mocks.NewMockEventSink(ctrl)
	fanout := NewEventFanout(log, nil, registry, audience, 50*time.Millisecond)

	audience.EXPECT().AudienceIDs(gomock.Any()).Return([]domain.UserID{1}, nil)
	registry.EXPECT().GetSinksForUsers(gomock.Any()).Return([]contract.EventSink{slow})
	// Given a sink blocking until its context expires
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	fanout.Fanout(context.Background(), event.Delivery{Event: event.UserJoined{Conversation: 42}})

	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Run_Consumes_Channel(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	audience := mocks.NewMockAudienceResolver(ctrl)
	sink := mocks.NewMockEventSink(ctrl)
	deliveries := make(chan event.Delivery)
	fanout := NewEventFanout(log, deliveries, registry, audience, time.Second)

	consumed := make(chan struct{})
	audience.EXPECT().AudienceIDs(gomock.Any()).Return([]domain.UserID{1}, nil)
	registry.EXPECT().GetSinksForUsers(gomock.Any()).Return([]contract.EventSink{sink})
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, event.DomainEvent) error {
		close(consumed)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fanout.Run(ctx) }()

	deliveries <- event.Delivery{Event: event.UserJoined{Conversation: 42}}
	<-consumed
	cancel()
	require.NoError(t, <-done)
}

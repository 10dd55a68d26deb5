package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/mocks"
	"chat-sync/session"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = domain.User{ID: 1, DisplayName: "Alice"}
	bob   = domain.User{ID: 2, DisplayName: "Bob"}
)

type fakeChatAPI struct {
	conversations []domain.Conversation
	joined        []domain.ConversationID
	left          []domain.ConversationID
	created       []domain.CreateConversationCommand
}

func (f *fakeChatAPI) ListConversations(context.Context) ([]domain.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeChatAPI) CreateConversation(_ context.Context, cmd domain.CreateConversationCommand) (domain.Conversation, error) {
	f.created = append(f.created, cmd)
	return domain.Conversation{ID: 7, Name: cmd.Name}, nil
}

func (f *fakeChatAPI) JoinConversation(_ context.Context, id domain.ConversationID) (domain.ConversationAudience, error) {
	f.joined = append(f.joined, id)
	return domain.ConversationAudience{ConversationID: id}, nil
}

func (f *fakeChatAPI) LeaveConversation(_ context.Context, id domain.ConversationID) error {
	f.left = append(f.left, id)
	return nil
}

func (f *fakeChatAPI) ListUsers(context.Context) ([]domain.User, error) {
	return []domain.User{alice, bob}, nil
}

func TestParseCommand(t *testing.T) {
	req := require.New(t)

	name, arg := parseCommand("  /JOIN 42 ")
	req.Equal("join", name)
	req.Equal("42", arg)

	name, arg = parseCommand("hello there")
	req.Empty(name)
	req.Equal("hello there", arg)

	name, arg = parseCommand("/quit")
	req.Equal("quit", name)
	req.Empty(arg)
}

func TestParseNewConversation(t *testing.T) {
	req := require.New(t)

	name, ids, err := parseNewConversation("general 2 3")
	req.NoError(err)
	req.Equal("general", name)
	req.Equal([]domain.UserID{2, 3}, ids)

	_, _, err = parseNewConversation("")
	req.ErrorIs(err, errors.ErrInvalidRequest)

	_, _, err = parseNewConversation("general bob")
	req.ErrorIs(err, errors.ErrInvalidRequest)
}

func TestParseConversationID(t *testing.T) {
	req := require.New(t)
	id, err := parseConversationID("12")
	req.NoError(err)
	req.Equal(domain.ConversationID(12), id)

	_, err = parseConversationID("0")
	req.ErrorIs(err, errors.ErrInvalidConversation)
	_, err = parseConversationID("abc")
	req.ErrorIs(err, errors.ErrInvalidConversation)
}

func newTestCommander(t *testing.T, api *fakeChatAPI) (*commander, chan domain.ConversationID, *bytes.Buffer) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	controller := session.NewController(log, mocks.NewMockConversationAPI(ctrl), mocks.NewMockHub(ctrl), alice, session.DefaultConfig())
	routes := make(chan domain.ConversationID, 1)
	var out bytes.Buffer
	return newCommander(api, controller, routes, newRenderer(&out, alice)), routes, &out
}

func TestCommander_Join_Routes_The_Conversation(t *testing.T) {
	req := require.New(t)
	api := &fakeChatAPI{}
	c, routes, _ := newTestCommander(t, api)

	req.NoError(c.Execute(context.Background(), "/join 4"))
	req.NoError(c.Execute(context.Background(), "/join 5"))

	// Only the latest navigation is pending
	req.Equal([]domain.ConversationID{4, 5}, api.joined)
	req.Equal(domain.ConversationID(5), <-routes)
	req.Empty(routes)
}

func TestCommander_New_Creates_And_Routes(t *testing.T) {
	req := require.New(t)
	api := &fakeChatAPI{}
	c, routes, _ := newTestCommander(t, api)

	req.NoError(c.Execute(context.Background(), "/new general 2"))

	req.Len(api.created, 1)
	req.Equal([]domain.UserID{2}, api.created[0].AudienceUserIDs)
	req.Equal(domain.ConversationID(7), <-routes)
}

func TestCommander_Without_Session(t *testing.T) {
	req := require.New(t)
	c, _, _ := newTestCommander(t, &fakeChatAPI{})
	ctx := context.Background()

	req.ErrorIs(c.Execute(ctx, "hello"), errors.ErrNoActiveSession)
	req.ErrorIs(c.Execute(ctx, "/leave"), errors.ErrNoActiveSession)
	req.ErrorIs(c.Execute(ctx, "/focus"), errors.ErrNoActiveSession)
	req.NoError(c.Execute(ctx, "   "))
	req.Error(c.Execute(ctx, "/dance"))

	req.NoError(c.Execute(ctx, "/quit"))
	req.True(c.quitting)
}

func TestCommander_List_Prints_A_Table(t *testing.T) {
	req := require.New(t)
	color.Disable()
	api := &fakeChatAPI{conversations: []domain.Conversation{{ID: 3, Name: "general", CreatorID: 1, CreatedAt: time.Now()}}}
	c, _, out := newTestCommander(t, api)

	req.NoError(c.Execute(context.Background(), "/list"))
	req.Contains(out.String(), "general")
	req.Contains(strings.ToLower(out.String()), "name")
}

func TestRenderer_OnChange(t *testing.T) {
	req := require.New(t)
	color.Disable()
	var out bytes.Buffer
	r := newRenderer(&out, alice)

	r.OnChange(session.Change{Kind: session.MessageAppended, Message: &domain.Message{ID: 1, CreatorUser: bob, Text: "hi"}})
	r.OnChange(session.Change{Kind: session.TypingChanged, Users: []domain.User{bob}})
	r.OnChange(session.Change{Kind: session.TypingChanged, Users: []domain.User{bob}})
	r.OnChange(session.Change{Kind: session.AudienceChanged, Users: []domain.User{alice, bob}})

	text := out.String()
	req.Contains(text, "Bob: hi")
	req.Equal(1, strings.Count(text, "Bob is typing..."))
	req.Contains(text, "audience: Alice, Bob")
}

func TestInputWorker_Stops_At_End_Of_Input(t *testing.T) {
	req := require.New(t)
	api := &fakeChatAPI{}
	c, routes, _ := newTestCommander(t, api)
	quit := make(chan struct{})

	w := NewInputWorker(strings.NewReader("/join 9\n"), c, func() { close(quit) })
	req.NoError(w.Run(context.Background()))

	<-quit
	req.Equal(domain.ConversationID(9), <-routes)
}

func TestSessionConfig(t *testing.T) {
	cfg := sessionConfig(domain.ClientConfiguration{TypingDecayMs: 2000, HeartbeatIntervalMs: 1000, TypingPolicy: "shared"})
	require.Equal(t, session.Config{
		TypingDecay: 2 * time.Second, HeartbeatInterval: time.Second, TypingPolicy: session.SharedDecay,
	}, cfg)
}

func TestCommander_Leave_Clears_Own_Typing_First(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	conversationAPI := mocks.NewMockConversationAPI(ctrl)
	hub := mocks.NewMockHub(ctrl)
	sub := mocks.NewMockSubscription(ctrl)
	fake := &fakeChatAPI{}

	sub.EXPECT().Unsubscribe().AnyTimes()
	hub.EXPECT().Connect(gomock.Any()).Return(nil).AnyTimes()
	hub.EXPECT().OnMessageCreated(gomock.Any()).Return(sub)
	hub.EXPECT().OnUserJoined(gomock.Any()).Return(sub)
	hub.EXPECT().OnUserLeft(gomock.Any()).Return(sub)
	hub.EXPECT().OnUserTyping(gomock.Any()).Return(sub)
	hub.EXPECT().SetTyping(gomock.Any(), domain.ConversationID(4), true).Return(nil).AnyTimes()
	conversationAPI.EXPECT().Audience(gomock.Any(), domain.ConversationID(4)).
		Return(domain.ConversationAudience{ConversationID: 4, AudienceUsers: []domain.User{alice, bob}}, nil)
	conversationAPI.EXPECT().Messages(gomock.Any(), domain.ConversationID(4)).Return(nil, nil)

	// The typing-false toggle goes out before the leave call
	leftBeforeToggle := -1
	hub.EXPECT().SetTyping(gomock.Any(), domain.ConversationID(4), false).
		DoAndReturn(func(context.Context, domain.ConversationID, bool) error {
			leftBeforeToggle = len(fake.left)
			return nil
		}).Times(1)

	controller := session.NewController(log, conversationAPI, hub, alice, session.DefaultConfig())
	var out bytes.Buffer
	c := newCommander(fake, controller, make(chan domain.ConversationID, 1), newRenderer(&out, alice))
	ctx := context.Background()

	// Given an active conversation with a focused composer
	_, err := controller.Activate(ctx, 4)
	req.NoError(err)
	req.Eventually(func() bool { return controller.State() == session.Active }, time.Second, 5*time.Millisecond)
	req.NoError(c.Execute(ctx, "/focus"))

	// When leaving
	req.NoError(c.Execute(ctx, "/leave"))

	// Then peers are told we stopped typing, then the conversation is left
	req.Zero(leftBeforeToggle)
	req.Equal([]domain.ConversationID{4}, fake.left)
	req.Nil(controller.Current())
}

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chat-sync/domain"
	"chat-sync/domain/event"
	chaterrors "chat-sync/errors"
	"chat-sync/hub"
	"chat-sync/mocks"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type controllerFixture struct {
	api        *mocks.MockConversationAPI
	hub        *fakeHub
	clock      *manualClock
	controller *Controller
}

func newControllerFixture(t *testing.T) controllerFixture {
	ctrl := gomock.NewController(t)
	f := controllerFixture{
		api:   mocks.NewMockConversationAPI(ctrl),
		hub:   newFakeHub(),
		clock: newManualClock(),
	}
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	f.controller = NewController(log, f.api, f.hub, alice, DefaultConfig(), WithClock(f.clock))
	return f
}

func (f controllerFixture) expectLoad(id domain.ConversationID, audience []domain.User, history []domain.Message) {
	f.api.EXPECT().Audience(gomock.Any(), id).
		Return(domain.ConversationAudience{ConversationID: id, AudienceUsers: audience}, nil).Times(1)
	f.api.EXPECT().Messages(gomock.Any(), id).Return(history, nil).Times(1)
}

func (f controllerFixture) waitActive(t *testing.T) {
	require.Eventually(t, func() bool {
		return f.controller.State() == Active
	}, time.Second, 5*time.Millisecond)
}

func TestController_Activate_Same_Conversation_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)
	f.expectLoad(42, []domain.User{alice, bob}, nil)

	first, err := f.controller.Activate(context.Background(), 42)
	req.NoError(err)
	second, err := f.controller.Activate(context.Background(), 42)
	req.NoError(err)

	req.Same(first, second)
	f.waitActive(t)
	// One listener per event kind
	req.Equal(4, f.hub.listeners())
	req.Equal(1, f.hub.connectCount())
}

func TestController_Switching_Conversation_Closes_Previous_Session(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)
	f.expectLoad(1, []domain.User{alice, bob}, nil)
	f.expectLoad(2, []domain.User{alice, clara}, nil)

	first, err := f.controller.Activate(context.Background(), 1)
	req.NoError(err)
	f.waitActive(t)
	f.hub.emitTyping(&event.UserTyping{Conversation: 1, User: bob, IsTyping: true})

	second, err := f.controller.Activate(context.Background(), 2)
	req.NoError(err)
	f.waitActive(t)

	req.True(first.Closed())
	req.False(second.Closed())
	req.Equal(uint64(2), second.Generation())
	req.Equal(4, f.hub.listeners())
	// Every new session makes sure the hub is up
	req.Equal(2, f.hub.connectCount())

	// A late event for the old conversation reaches nobody
	f.hub.emitMessage(&event.MessageCreated{Message: domain.Message{ID: 5, ConversationID: 1, CreatorUser: bob}})
	f.clock.Advance(DefaultTypingDecay)
	req.Empty(first.View().Messages)
	req.Equal([]domain.UserID{2}, userIDs(first.View().Typing))
	req.Empty(second.View().Messages)
}

func TestController_Submit_Ingests_And_Deduplicates_Echo(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)
	f.expectLoad(42, []domain.User{alice, bob}, nil)
	created := domain.Message{ID: 7, ConversationID: 42, CreatorUser: alice, Text: "hello"}
	f.api.EXPECT().
		CreateMessage(gomock.Any(), domain.CreateMessageCommand{Conversation: 42, Text: "hello"}).
		Return(created, nil)

	_, err := f.controller.Activate(context.Background(), 42)
	req.NoError(err)
	f.waitActive(t)

	msg, err := f.controller.Submit(context.Background(), "  hello ")
	req.NoError(err)
	req.Equal(created, msg)

	f.hub.emitMessage(&event.MessageCreated{Message: created})
	req.Equal([]domain.MessageID{7}, messageIDs(f.controller.Current().View().Messages))
}

func TestController_Submit_Errors(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)

	_, err := f.controller.Submit(context.Background(), "hello")
	req.ErrorIs(err, chaterrors.ErrNoActiveSession)

	_, err = f.controller.Submit(context.Background(), "   ")
	req.ErrorIs(err, chaterrors.ErrEmptyMessage)

	f.expectLoad(42, nil, nil)
	f.api.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(domain.Message{}, errors.New("boom"))
	_, err = f.controller.Activate(context.Background(), 42)
	req.NoError(err)
	f.waitActive(t)

	_, err = f.controller.Submit(context.Background(), "hello")
	req.Error(err)
	req.Empty(f.controller.Current().View().Messages)
}

func TestController_Invalid_Conversation_And_Idle_Focus(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)

	_, err := f.controller.Activate(context.Background(), 0)
	req.ErrorIs(err, chaterrors.ErrInvalidConversation)
	req.Equal(Idle, f.controller.State())
	req.ErrorIs(f.controller.Focus(), chaterrors.ErrNoActiveSession)
	req.ErrorIs(f.controller.Blur(), chaterrors.ErrNoActiveSession)
	req.Zero(f.hub.connectCount())
}

func TestController_Hub_Connect_Is_Retried_After_Failure(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)
	f.hub.connectErr = errors.New("refused")
	f.expectLoad(1, nil, nil)
	f.expectLoad(2, nil, nil)

	_, err := f.controller.Activate(context.Background(), 1)
	req.NoError(err)
	f.waitActive(t)

	f.hub.mu.Lock()
	f.hub.connectErr = nil
	f.hub.mu.Unlock()
	_, err = f.controller.Activate(context.Background(), 2)
	req.NoError(err)
	f.waitActive(t)
	_, err = f.controller.Activate(context.Background(), 2)
	req.NoError(err)

	req.Equal(2, f.hub.connectCount())
}

func TestController_Deactivate_Returns_To_Idle(t *testing.T) {
	req := require.New(t)
	f := newControllerFixture(t)
	f.expectLoad(42, []domain.User{alice, bob}, nil)

	s, err := f.controller.Activate(context.Background(), 42)
	req.NoError(err)
	f.waitActive(t)
	req.NoError(f.controller.Focus())

	f.controller.Close()

	req.True(s.Closed())
	req.Nil(f.controller.Current())
	req.Equal(Idle, f.controller.State())
	req.Zero(f.hub.listeners())
	req.Zero(f.clock.pending())
}

func TestController_Redials_Hub_Dropped_By_Server(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	api := mocks.NewMockConversationAPI(ctrl)
	api.EXPECT().Audience(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id domain.ConversationID) (domain.ConversationAudience, error) {
			return domain.ConversationAudience{ConversationID: id, AudienceUsers: []domain.User{alice, bob}}, nil
		}).AnyTimes()
	api.EXPECT().Messages(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	// Given a hub server that drops the first socket right away
	var dials atomic.Int32
	toggles := make(chan []byte, 8)
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if dials.Add(1) == 1 {
			return
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			toggles <- data
		}
	}))
	defer server.Close()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	h := hub.NewClient(log, "ws"+strings.TrimPrefix(server.URL, "http"), "token")
	defer func() { _ = h.Close() }()
	controller := NewController(log, api, h, alice, DefaultConfig())
	defer controller.Close()

	_, err := controller.Activate(context.Background(), 1)
	req.NoError(err)
	req.Eventually(func() bool {
		return errors.Is(h.SetTyping(context.Background(), 1, false), chaterrors.ErrHubNotConnected)
	}, time.Second, 5*time.Millisecond)

	// When the next conversation is activated
	_, err = controller.Activate(context.Background(), 2)
	req.NoError(err)

	// Then the hub is dialed again and typing toggles reach the server
	req.Eventually(func() bool { return dials.Load() == 2 }, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool { return controller.State() == Active }, time.Second, 5*time.Millisecond)
	req.NoError(controller.Blur())
	select {
	case data := <-toggles:
		req.Contains(string(data), "user-typing-toggled")
	case <-time.After(time.Second):
		req.Fail("typing toggle not received after redial")
	}
}

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), server.URL+"/")
}

func TestClient_RegisterUser_Keeps_Token(t *testing.T) {
	req := require.New(t)
	mux := http.NewServeMux()
	var authorization string
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var cmd domain.RegisterUserCommand
		req.NoError(json.NewDecoder(r.Body).Decode(&cmd))
		req.Equal("Alice", cmd.DisplayName)
		writeJSON(w, http.StatusCreated, domain.Registration{User: domain.User{ID: 1, DisplayName: "Alice"}, Token: "jwt"})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []domain.User{{ID: 1, DisplayName: "Alice"}})
	})
	client := newTestClient(t, mux)

	registration, err := client.RegisterUser(context.Background(), "Alice", "")
	req.NoError(err)
	req.Equal(domain.UserID(1), registration.User.ID)

	users, err := client.ListUsers(context.Background())
	req.NoError(err)
	req.Len(users, 1)
	req.Equal("Bearer jwt", authorization)
}

func TestClient_Conversation_Endpoints(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: 1, DisplayName: "Alice"}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/conversations/{id}/audiences", func(w http.ResponseWriter, r *http.Request) {
		req.Equal("42", r.PathValue("id"))
		writeJSON(w, http.StatusOK, domain.ConversationAudience{ConversationID: 42, AudienceUsers: []domain.User{alice}})
	})
	mux.HandleFunc("GET /api/conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Message{{ID: 1, ConversationID: 42, CreatorUser: alice, Text: "hi", CreatedAt: now}})
	})
	mux.HandleFunc("POST /api/conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		var cmd domain.CreateMessageCommand
		req.NoError(json.NewDecoder(r.Body).Decode(&cmd))
		writeJSON(w, http.StatusCreated, domain.Message{ID: 2, ConversationID: cmd.Conversation, CreatorUser: alice, Text: cmd.Text, CreatedAt: now})
	})
	mux.HandleFunc("DELETE /api/conversations/{id}/audiences", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	audience, err := client.Audience(ctx, 42)
	req.NoError(err)
	req.True(audience.Contains(1))

	messages, err := client.Messages(ctx, 42)
	req.NoError(err)
	req.Equal("hi", messages[0].Text)
	req.True(now.Equal(messages[0].CreatedAt))

	created, err := client.CreateMessage(ctx, domain.CreateMessageCommand{Conversation: 42, Text: "yo"})
	req.NoError(err)
	req.Equal(domain.MessageID(2), created.ID)
	req.Equal(domain.ConversationID(42), created.ConversationID)

	req.NoError(client.LeaveConversation(ctx, 42))
}

func TestClient_Maps_Status_To_Errors(t *testing.T) {
	req := require.New(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "1":
			writeJSON(w, http.StatusNotFound, errorBody{Error: "conversation not found"})
		case "2":
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
		case "3":
			writeJSON(w, http.StatusForbidden, errorBody{})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.Messages(ctx, 1)
	req.ErrorIs(err, errors.ErrConversationNotFound)
	_, err = client.Messages(ctx, 2)
	req.ErrorIs(err, errors.ErrInvalidToken)
	_, err = client.Messages(ctx, 3)
	req.ErrorIs(err, errors.ErrNotAudienceMember)
	_, err = client.Messages(ctx, 4)
	req.ErrorIs(err, errors.ErrUnexpectedStatus)
}

func TestClient_ClientConfiguration(t *testing.T) {
	req := require.New(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/configuration/client", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.ClientConfiguration{HubURL: "ws://localhost:8080/hub", TypingDecayMs: 2000, HeartbeatIntervalMs: 1000, TypingPolicy: "shared"})
	})
	client := newTestClient(t, mux)

	cfg, err := client.ClientConfiguration(context.Background())
	req.NoError(err)
	req.Equal("ws://localhost:8080/hub", cfg.HubURL)
	req.Equal(int64(2000), cfg.TypingDecayMs)
}

// Package http exposes the chat REST api.
package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"chat-sync/auth"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/services"

	"github.com/samber/lo"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Addr                string
	AllowedOrigins      []string
	ClientConfiguration domain.ClientConfiguration
	// Hub serves the websocket endpoint, behind authentication.
	Hub http.Handler
}

// Server routes the REST api and the hub endpoint. It runs as a supervised worker.
type Server struct {
	log    *slog.Logger
	users  services.IUserService
	chat   services.IChatService
	issuer auth.TokenIssuer
	opts   Options
	server *http.Server
}

func NewServer(log *slog.Logger, users services.IUserService, chat services.IChatService,
	issuer auth.TokenIssuer, opts Options) *Server {
	s := &Server{log: log, users: users, chat: chat, issuer: issuer, opts: opts}
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the routing tree. Every route but registration and the
// client configuration needs a token.
func (s *Server) Handler() http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/users", s.listUsers)
	protected.HandleFunc("GET /api/conversations", s.listConversations)
	protected.HandleFunc("POST /api/conversations", s.createConversation)
	protected.HandleFunc("GET /api/conversations/{id}/audiences", s.audience)
	protected.HandleFunc("POST /api/conversations/{id}/audiences", s.joinConversation)
	protected.HandleFunc("DELETE /api/conversations/{id}/audiences", s.leaveConversation)
	protected.HandleFunc("GET /api/conversations/{id}/messages", s.messages)
	protected.HandleFunc("POST /api/conversations/{id}/messages", s.createMessage)
	if s.opts.Hub != nil {
		protected.Handle("GET /hub", s.opts.Hub)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", s.registerUser)
	mux.HandleFunc("GET /api/configuration/client", s.clientConfiguration)
	mux.Handle("/", auth.Middleware(s.issuer, protected))
	return withCORS(s.opts.AllowedOrigins, mux)
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.opts.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("HTTP shutdown failed", "error", err)
		}
		return nil
	}
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var cmd domain.RegisterUserCommand
	if !s.decode(w, r, &cmd) {
		return
	}
	registration, err := s.users.Register(r.Context(), cmd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, registration)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Ternary(users == nil, []domain.User{}, users))
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	conversations, err := s.chat.ListConversations(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Ternary(conversations == nil, []domain.Conversation{}, conversations))
}

func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	var cmd domain.CreateConversationCommand
	if !s.decode(w, r, &cmd) {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	conversation, err := s.chat.CreateConversation(r.Context(), userID, cmd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, conversation)
}

func (s *Server) audience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.conversationID(w, r)
	if !ok {
		return
	}
	audience, err := s.chat.Audience(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, audience)
}

func (s *Server) joinConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := s.conversationID(w, r)
	if !ok {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	audience, err := s.chat.JoinConversation(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, audience)
}

func (s *Server) leaveConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := s.conversationID(w, r)
	if !ok {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := s.chat.LeaveConversation(r.Context(), userID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	id, ok := s.conversationID(w, r)
	if !ok {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	messages, err := s.chat.Messages(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Ternary(messages == nil, []domain.Message{}, messages))
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.conversationID(w, r)
	if !ok {
		return
	}
	var cmd domain.CreateMessageCommand
	if !s.decode(w, r, &cmd) {
		return
	}
	// The path wins over the body
	cmd.Conversation = id
	userID, _ := auth.UserIDFromContext(r.Context())
	message, err := s.chat.CreateMessage(r.Context(), userID, cmd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (s *Server) clientConfiguration(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.ClientConfiguration)
}

func (s *Server) conversationID(w http.ResponseWriter, r *http.Request) (domain.ConversationID, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.fail(w, r, fmt.Errorf("%w: %q", errors.ErrInvalidConversation, r.PathValue("id")))
		return 0, false
	}
	return domain.ConversationID(id), true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.log.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Package api is the REST client of the chat server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.http = c }
}

func WithToken(token string) Option {
	return func(client *Client) { client.token = token }
}

func NewClient(log *slog.Logger, baseURL string, opts ...Option) *Client {
	c := &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

// RegisterUser creates a user and keeps the returned token for later calls.
func (c *Client) RegisterUser(ctx context.Context, displayName, avatarURL string) (domain.Registration, error) {
	var out domain.Registration
	cmd := domain.RegisterUserCommand{DisplayName: displayName, AvatarURL: avatarURL}
	if err := c.do(ctx, http.MethodPost, "/api/users", cmd, &out, errors.ErrUserNotFound); err != nil {
		return domain.Registration{}, err
	}
	c.token = out.Token
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out, errors.ErrUserNotFound)
	return out, err
}

func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) CreateConversation(ctx context.Context, cmd domain.CreateConversationCommand) (domain.Conversation, error) {
	var out domain.Conversation
	err := c.do(ctx, http.MethodPost, "/api/conversations", cmd, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) Audience(ctx context.Context, id domain.ConversationID) (domain.ConversationAudience, error) {
	var out domain.ConversationAudience
	err := c.do(ctx, http.MethodGet, audiencePath(id), nil, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) JoinConversation(ctx context.Context, id domain.ConversationID) (domain.ConversationAudience, error) {
	var out domain.ConversationAudience
	err := c.do(ctx, http.MethodPost, audiencePath(id), nil, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) LeaveConversation(ctx context.Context, id domain.ConversationID) error {
	return c.do(ctx, http.MethodDelete, audiencePath(id), nil, nil, errors.ErrConversationNotFound)
}

func (c *Client) Messages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	var out []domain.Message
	err := c.do(ctx, http.MethodGet, messagesPath(id), nil, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) CreateMessage(ctx context.Context, cmd domain.CreateMessageCommand) (domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, http.MethodPost, messagesPath(cmd.Conversation), cmd, &out, errors.ErrConversationNotFound)
	return out, err
}

func (c *Client) ClientConfiguration(ctx context.Context) (domain.ClientConfiguration, error) {
	var out domain.ClientConfiguration
	err := c.do(ctx, http.MethodGet, "/api/configuration/client", nil, &out, errors.ErrUnexpectedStatus)
	return out, err
}

func audiencePath(id domain.ConversationID) string {
	return fmt.Sprintf("/api/conversations/%d/audiences", id)
}

func messagesPath(id domain.ConversationID) string {
	return fmt.Sprintf("/api/conversations/%d/messages", id)
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends body as JSON and decodes the response into out when it is not nil.
// A 404 is reported as notFound.
func (c *Client) do(ctx context.Context, method, path string, body, out any, notFound error) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Debug("Request failed", "method", method, "path", path, "status", resp.StatusCode, "error", eb.Error)
		return statusError(resp.StatusCode, eb.Error, notFound)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(status int, detail string, notFound error) error {
	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = notFound
	case http.StatusUnauthorized:
		sentinel = errors.ErrInvalidToken
	case http.StatusForbidden:
		sentinel = errors.ErrNotAudienceMember
	case http.StatusBadRequest:
		sentinel = errors.ErrInvalidRequest
	default:
		sentinel = errors.ErrUnexpectedStatus
	}
	if detail == "" {
		return fmt.Errorf("%w (status %d)", sentinel, status)
	}
	return fmt.Errorf("%w (status %d): %s", sentinel, status, detail)
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/session"
)

// chatAPI is the part of the api client the terminal commands need.
type chatAPI interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, cmd domain.CreateConversationCommand) (domain.Conversation, error)
	JoinConversation(ctx context.Context, id domain.ConversationID) (domain.ConversationAudience, error)
	LeaveConversation(ctx context.Context, id domain.ConversationID) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type commander struct {
	api        chatAPI
	controller *session.Controller
	routes     chan domain.ConversationID
	out        *renderer
	quitting   bool
}

func newCommander(api chatAPI, controller *session.Controller, routes chan domain.ConversationID, out *renderer) *commander {
	return &commander{api: api, controller: controller, routes: routes, out: out}
}

// parseCommand splits "/name arg" lines. Plain text comes back with an empty name.
func parseCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", line
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}

func (c *commander) Execute(ctx context.Context, line string) error {
	name, arg := parseCommand(line)
	switch name {
	case "":
		if arg == "" {
			return nil
		}
		_, err := c.controller.Submit(ctx, arg)
		return err
	case "list":
		conversations, err := c.api.ListConversations(ctx)
		if err != nil {
			return err
		}
		c.out.Conversations(conversations)
	case "users":
		users, err := c.api.ListUsers(ctx)
		if err != nil {
			return err
		}
		c.out.Users(users)
	case "new":
		name, ids, err := parseNewConversation(arg)
		if err != nil {
			return err
		}
		conversation, err := c.api.CreateConversation(ctx, domain.CreateConversationCommand{Name: name, AudienceUserIDs: ids})
		if err != nil {
			return err
		}
		c.route(conversation.ID)
	case "join":
		id, err := parseConversationID(arg)
		if err != nil {
			return err
		}
		if _, err = c.api.JoinConversation(ctx, id); err != nil {
			return err
		}
		c.route(id)
	case "open":
		id, err := parseConversationID(arg)
		if err != nil {
			return err
		}
		c.route(id)
	case "leave":
		current := c.controller.Current()
		if current == nil {
			return errors.ErrNoActiveSession
		}
		// Peers must not keep our indicator until their decay fires
		if current.View().Focused {
			if err := c.controller.Blur(); err != nil {
				return err
			}
		}
		if err := c.api.LeaveConversation(ctx, current.ID()); err != nil {
			return err
		}
		c.controller.Deactivate()
	case "focus":
		return c.controller.Focus()
	case "blur":
		return c.controller.Blur()
	case "quit":
		c.quitting = true
	case "help":
		c.out.Help()
	default:
		return fmt.Errorf("unknown command /%s, try /help", name)
	}
	return nil
}

// route hands the id to the route worker. A pending id that was not picked up
// yet is replaced, since only the latest navigation matters.
func (c *commander) route(id domain.ConversationID) {
	for {
		select {
		case c.routes <- id:
			return
		default:
		}
		select {
		case <-c.routes:
		default:
		}
	}
}

func parseConversationID(arg string) (domain.ConversationID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidConversation, arg)
	}
	return domain.ConversationID(id), nil
}

// parseNewConversation reads "name [userID...]".
func parseNewConversation(arg string) (string, []domain.UserID, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: conversation name is required", errors.ErrInvalidRequest)
	}
	ids := make([]domain.UserID, 0, len(fields)-1)
	for _, f := range fields[1:] {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: bad user id %q", errors.ErrInvalidRequest, f)
		}
		ids = append(ids, domain.UserID(id))
	}
	return fields[0], ids, nil
}

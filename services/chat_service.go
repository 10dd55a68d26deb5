package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/moderation"
	"chat-sync/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type IChatService interface {
	ListConversations(ctx context.Context, userID domain.UserID) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, userID domain.UserID, cmd domain.CreateConversationCommand) (domain.Conversation, error)
	Audience(ctx context.Context, id domain.ConversationID) (domain.ConversationAudience, error)
	JoinConversation(ctx context.Context, userID domain.UserID, id domain.ConversationID) (domain.ConversationAudience, error)
	LeaveConversation(ctx context.Context, userID domain.UserID, id domain.ConversationID) error
	Messages(ctx context.Context, userID domain.UserID, id domain.ConversationID) ([]domain.Message, error)
	CreateMessage(ctx context.Context, userID domain.UserID, cmd domain.CreateMessageCommand) (domain.Message, error)
	ToggleTyping(ctx context.Context, userID domain.UserID, id domain.ConversationID, isTyping bool) error
}

type ChatService struct {
	log                    *slog.Logger
	userRepository         repositories.IUserRepository
	conversationRepository repositories.IConversationRepository
	messageRepository      repositories.IMessageRepository
	moderator              moderation.Moderator
	deliveries             chan<- event.Delivery
	now                    func() time.Time
}

func NewChatService(log *slog.Logger,
	users repositories.IUserRepository,
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	moderator moderation.Moderator,
	deliveries chan<- event.Delivery) *ChatService {
	return &ChatService{
		log:                    log,
		userRepository:         users,
		conversationRepository: conversations,
		messageRepository:      messages,
		moderator:              moderator,
		deliveries:             deliveries,
		now:                    time.Now,
	}
}

func (s *ChatService) ListConversations(_ context.Context, userID domain.UserID) ([]domain.Conversation, error) {
	return s.conversationRepository.ListConversations(userID)
}

func (s *ChatService) CreateConversation(_ context.Context, userID domain.UserID,
	cmd domain.CreateConversationCommand) (domain.Conversation, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		return domain.Conversation{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	for _, id := range cmd.AudienceUserIDs {
		if _, err := s.userRepository.GetUser(id); err != nil {
			return domain.Conversation{}, err
		}
	}
	conversation, err := s.conversationRepository.CreateConversation(cmd.Name, userID, cmd.AudienceUserIDs)
	if err != nil {
		return domain.Conversation{}, err
	}
	s.log.Info("Conversation created", "conversation_id", conversation.ID, "creator_id", userID)
	return conversation, nil
}

// Audience resolves the members of a conversation, in join order.
func (s *ChatService) Audience(_ context.Context, id domain.ConversationID) (domain.ConversationAudience, error) {
	ids, err := s.conversationRepository.GetAudience(id)
	if err != nil {
		return domain.ConversationAudience{}, err
	}
	users, err := s.users(ids)
	if err != nil {
		return domain.ConversationAudience{}, err
	}
	return domain.ConversationAudience{ConversationID: id, AudienceUsers: users}, nil
}

// AudienceIDs lets the fanout resolve recipients.
func (s *ChatService) AudienceIDs(id domain.ConversationID) ([]domain.UserID, error) {
	return s.conversationRepository.GetAudience(id)
}

// JoinConversation adds the user and announces it to the audience. Joining twice is a no-op.
func (s *ChatService) JoinConversation(ctx context.Context, userID domain.UserID,
	id domain.ConversationID) (domain.ConversationAudience, error) {
	user, err := s.userRepository.GetUser(userID)
	if err != nil {
		return domain.ConversationAudience{}, err
	}
	added, err := s.conversationRepository.AddMember(id, userID)
	if err != nil {
		return domain.ConversationAudience{}, err
	}
	if added {
		s.publish(ctx, event.Delivery{Event: event.UserJoined{Conversation: id, User: user}})
	}
	return s.Audience(ctx, id)
}

// LeaveConversation removes the user. The leaving user still receives the announcement.
func (s *ChatService) LeaveConversation(ctx context.Context, userID domain.UserID, id domain.ConversationID) error {
	user, err := s.userRepository.GetUser(userID)
	if err != nil {
		return err
	}
	removed, err := s.conversationRepository.RemoveMember(id, userID)
	if err != nil {
		return err
	}
	if removed {
		s.publish(ctx, event.Delivery{
			Event:   event.UserLeft{Conversation: id, User: user},
			Include: []domain.UserID{userID},
		})
	}
	return nil
}

// Messages returns the latest messages of the conversation in chronological order.
func (s *ChatService) Messages(_ context.Context, userID domain.UserID, id domain.ConversationID) ([]domain.Message, error) {
	if err := s.requireMember(id, userID); err != nil {
		return nil, err
	}
	disks, _, err := s.messageRepository.GetMessages(id, nil)
	if err != nil {
		return nil, err
	}
	creators, err := s.users(lo.Uniq(lo.Map(disks, func(d repositories.DiskMessage, _ int) domain.UserID {
		return domain.UserID(d.CreatorID)
	})))
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(creators, func(u domain.User) domain.UserID { return u.ID })

	messages := lo.Map(disks, func(d repositories.DiskMessage, _ int) domain.Message {
		return toMessage(d, byID[domain.UserID(d.CreatorID)])
	})
	return lo.Reverse(messages), nil
}

// CreateMessage censors, stores and publishes a message written by a member.
func (s *ChatService) CreateMessage(ctx context.Context, userID domain.UserID,
	cmd domain.CreateMessageCommand) (domain.Message, error) {
	cmd.Text = strings.TrimSpace(cmd.Text)
	if cmd.Text == "" {
		return domain.Message{}, errors.ErrEmptyMessage
	}
	if err := validate.Struct(cmd); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if err := s.requireMember(cmd.Conversation, userID); err != nil {
		return domain.Message{}, err
	}
	user, err := s.userRepository.GetUser(userID)
	if err != nil {
		return domain.Message{}, err
	}

	text, censored := s.moderator.Censor(cmd.Text)
	if len(censored) > 0 {
		s.log.Info("Message censored", "conversation_id", cmd.Conversation, "user_id", userID, "words", len(censored))
	}
	disk, err := s.messageRepository.StoreMessage(cmd.Conversation, userID, text, s.now())
	if err != nil {
		return domain.Message{}, err
	}

	message := toMessage(disk, user)
	s.publish(ctx, event.Delivery{Event: event.MessageCreated{Message: message}})
	return message, nil
}

// ToggleTyping forwards a typing toggle to the rest of the audience.
func (s *ChatService) ToggleTyping(ctx context.Context, userID domain.UserID, id domain.ConversationID, isTyping bool) error {
	if err := s.requireMember(id, userID); err != nil {
		return err
	}
	user, err := s.userRepository.GetUser(userID)
	if err != nil {
		return err
	}
	s.publish(ctx, event.Delivery{
		Event:   event.UserTyping{Conversation: id, User: user, IsTyping: isTyping},
		Exclude: []domain.UserID{userID},
	})
	return nil
}

func (s *ChatService) requireMember(id domain.ConversationID, userID domain.UserID) error {
	audience, err := s.conversationRepository.GetAudience(id)
	if err != nil {
		return err
	}
	if !lo.Contains(audience, userID) {
		return fmt.Errorf("%w: user %d in conversation %d", errors.ErrNotAudienceMember, userID, id)
	}
	return nil
}

func (s *ChatService) users(ids []domain.UserID) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepository.GetUser(id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// publish hands the delivery to the fanout, giving up when the request is gone.
func (s *ChatService) publish(ctx context.Context, delivery event.Delivery) {
	select {
	case s.deliveries <- delivery:
	case <-ctx.Done():
		s.log.Warn("Delivery dropped", "kind", delivery.Event.Kind(), "error", ctx.Err())
	}
}

func toMessage(d repositories.DiskMessage, creator domain.User) domain.Message {
	return domain.Message{
		ID:             domain.MessageID(d.ID),
		ConversationID: domain.ConversationID(d.ConversationID),
		CreatorUser:    creator,
		Text:           d.Text,
		CreatedAt:      d.At,
	}
}

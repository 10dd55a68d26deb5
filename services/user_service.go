package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"chat-sync/auth"
	"chat-sync/domain"
	"chat-sync/repositories"
)

type IUserService interface {
	Register(ctx context.Context, cmd domain.RegisterUserCommand) (domain.Registration, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type UserService struct {
	log            *slog.Logger
	userRepository repositories.IUserRepository
	issuer         auth.TokenIssuer
}

func NewUserService(log *slog.Logger, repo repositories.IUserRepository, issuer auth.TokenIssuer) *UserService {
	return &UserService{log: log, userRepository: repo, issuer: issuer}
}

// Register validates the profile, stores the user and issues its first access token.
func (s *UserService) Register(_ context.Context, cmd domain.RegisterUserCommand) (domain.Registration, error) {
	cmd.DisplayName = strings.TrimSpace(cmd.DisplayName)
	if err := auth.ValidateRegister(cmd); err != nil {
		return domain.Registration{}, err
	}

	user, err := s.userRepository.CreateUser(cmd.DisplayName, cmd.AvatarURL)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.GenerateToken(user.ID, []string{"user"})
	if err != nil {
		return domain.Registration{}, err
	}
	s.log.Info("User registered", "user_id", user.ID)
	return domain.Registration{User: user, Token: token}, nil
}

func (s *UserService) ListUsers(_ context.Context) ([]domain.User, error) {
	return s.userRepository.ListUsers()
}

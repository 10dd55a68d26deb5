package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-sync/auth"
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)
	issuer := auth.NewTokenIssuer("a_test_secret_long_enough_for_hs256", time.Hour)
	svc := NewUserService(logs.GetLoggerFromLevel(slog.LevelDebug), mockRepo, issuer)

	t.Run("should register and issue a token", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().
			CreateUser("Alice", "").
			Return(domain.User{ID: 1, DisplayName: "Alice"}, nil).
			Times(1)

		registration, err := svc.Register(context.Background(), domain.RegisterUserCommand{DisplayName: " Alice "})

		req.NoError(err)
		req.Equal(domain.UserID(1), registration.User.ID)
		claims, err := issuer.ValidateToken(registration.Token)
		req.NoError(err)
		req.Equal(domain.UserID(1), claims.UserID)
	})

	t.Run("should fail when the display name is blank", func(t *testing.T) {
		req := require.New(t)
		// Repository is never called
		mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		registration, err := svc.Register(context.Background(), domain.RegisterUserCommand{DisplayName: "  "})

		req.ErrorIs(err, errors.ErrInvalidRequest)
		req.Empty(registration.Token)
	})
}

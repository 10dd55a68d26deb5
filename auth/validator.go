package auth

import (
	"fmt"
	"strings"

	"chat-sync/domain"
	"chat-sync/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRegister checks the display name and the optional avatar url.
func ValidateRegister(cmd domain.RegisterUserCommand) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if strings.TrimSpace(cmd.DisplayName) == "" {
		return fmt.Errorf("%w: blank display name", errors.ErrInvalidRequest)
	}
	return nil
}

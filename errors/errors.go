package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrNoActiveSession      = fmt.Errorf("no active conversation session")
	ErrSessionClosed        = fmt.Errorf("conversation session closed")
	ErrEmptyMessage         = fmt.Errorf("message text is empty")
	ErrInvalidConversation  = fmt.Errorf("invalid conversation id")
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrNotAudienceMember    = fmt.Errorf("user is not part of the conversation audience")
	ErrInvalidToken         = fmt.Errorf("invalid or expired token")
	ErrMissingToken         = fmt.Errorf("authorization token is missing")
	ErrTokenGeneration      = fmt.Errorf("token generation failed")
	ErrInvalidRequest       = fmt.Errorf("invalid request")
	ErrHubNotConnected      = fmt.Errorf("hub is not connected")
	ErrHubClosed            = fmt.Errorf("hub is closed")
	ErrUnknownFrame         = fmt.Errorf("unknown frame type")
	ErrUnexpectedStatus     = fmt.Errorf("unexpected http status")
	ErrEmptyWords           = fmt.Errorf("no words have been found")
)

// HTTPStatus maps domain errors to the HTTP status returned by the REST layer.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrConversationNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAudienceMember):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrInvalidConversation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

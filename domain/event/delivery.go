package event

import "chat-sync/domain"

// Delivery routes one event to the audience of its conversation.
// Include adds recipients that are no longer part of the audience (a user who
// just left) and Exclude removes some (the typist echoing its own toggle).
type Delivery struct {
	Event   DomainEvent
	Include []domain.UserID
	Exclude []domain.UserID
}

package domain

import (
	"time"

	"github.com/samber/lo"
)

type ConversationID int64

type Conversation struct {
	ID        ConversationID `json:"id"`
	Name      string         `json:"name"`
	CreatorID UserID         `json:"creatorId"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ConversationAudience lists the users associated with a conversation in join order.
type ConversationAudience struct {
	ConversationID ConversationID `json:"conversationId"`
	AudienceUsers  []User         `json:"audienceUsers"`
}

func (a ConversationAudience) Contains(userID UserID) bool {
	return lo.ContainsBy(a.AudienceUsers, func(u User) bool { return u.ID == userID })
}

// UserIDs returns the identities of the audience, preserving join order.
func (a ConversationAudience) UserIDs() []UserID {
	return lo.Map(a.AudienceUsers, func(u User, _ int) UserID { return u.ID })
}

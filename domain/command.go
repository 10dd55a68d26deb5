package domain

type Command interface {
	ConversationID() ConversationID
}

type CreateMessageCommand struct {
	Conversation ConversationID `json:"conversationId"`
	Text         string         `json:"text" validate:"required,max=4000"`
}

func (c CreateMessageCommand) ConversationID() ConversationID {
	return c.Conversation
}

type CreateConversationCommand struct {
	Name            string   `json:"name" validate:"required,max=128"`
	AudienceUserIDs []UserID `json:"audienceUserIds"`
}

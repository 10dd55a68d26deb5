package domain

// ClientConfiguration is served to clients so they can reach the hub and
// tune their typing timers like the server expects.
type ClientConfiguration struct {
	HubURL              string `json:"hubUrl"`
	TypingDecayMs       int64  `json:"typingDecayMs"`
	HeartbeatIntervalMs int64  `json:"heartbeatIntervalMs"`
	TypingPolicy        string `json:"typingPolicy"`
}

// Registration is returned once a user is created, along with its access token.
type Registration struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterUserCommand struct {
	DisplayName string `json:"displayName" validate:"required,max=64"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
}

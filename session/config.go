package session

import "time"

const (
	DefaultTypingDecay       = 2000 * time.Millisecond
	DefaultHeartbeatInterval = 1000 * time.Millisecond
)

// TypingPolicy selects how remote typing indicators expire.
type TypingPolicy string

const (
	// SharedDecay resets one deadline for the whole set on any typing signal,
	// so all indicators clear together. This is the default.
	SharedDecay TypingPolicy = "shared"
	// PerUserDecay expires every typist independently.
	PerUserDecay TypingPolicy = "per-user"
)

type Config struct {
	TypingDecay       time.Duration
	HeartbeatInterval time.Duration
	TypingPolicy      TypingPolicy
}

func DefaultConfig() Config {
	return Config{
		TypingDecay:       DefaultTypingDecay,
		HeartbeatInterval: DefaultHeartbeatInterval,
		TypingPolicy:      SharedDecay,
	}
}

func (c Config) withDefaults() Config {
	if c.TypingDecay <= 0 {
		c.TypingDecay = DefaultTypingDecay
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.TypingPolicy != PerUserDecay {
		c.TypingPolicy = SharedDecay
	}
	return c
}

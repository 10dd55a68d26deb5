package main

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	DebugPort            *int          `env:"DEBUG_PORT"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	DeliveryBufferSize   int           `env:"DELIVERY_BUFFER_SIZE,default=256"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=10s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=16"`
	AuthSecret           string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS"`
	CensoredWords        string        `env:"CENSORED_WORDS"`
	CharacterReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
	HubURL               string        `env:"HUB_URL"`
	TypingDecay          time.Duration `env:"TYPING_DECAY,default=2s"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=1s"`
	TypingPolicy         string        `env:"TYPING_POLICY,default=shared"`
}

package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CHAT_API_URL points at a running chat server; the suite is skipped when empty
	APIURL string `envconfig:"CHAT_API_URL"`
	// E2E_DEBUG_JSON logs every request and response of the api client
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

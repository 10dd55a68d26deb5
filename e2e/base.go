package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"testing"
	"time"

	"chat-sync/api"
	"chat-sync/domain"
	"chat-sync/hub"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.APIURL == "" {
		s.T().Skip("CHAT_API_URL is not set")
	}
}

// loggingTransport dumps requests and responses when E2E_DEBUG_JSON is enabled.
type loggingTransport struct {
	t     *testing.T
	debug bool
}

func (l loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	if l.debug {
		if dump, err := httputil.DumpRequestOut(r, true); err == nil {
			l.t.Logf("REQUEST:\n%s", dump)
		}
	}
	resp, err := http.DefaultTransport.RoundTrip(r)
	if err != nil {
		l.t.Logf("HTTP %s %s failed in %v: %v", r.Method, r.URL.Path, time.Since(start), err)
		return nil, err
	}
	l.t.Logf("HTTP %s %s [%d] in %v", r.Method, r.URL.Path, resp.StatusCode, time.Since(start))
	if l.debug {
		if dump, err := httputil.DumpResponse(resp, true); err == nil {
			l.t.Logf("RESPONSE:\n%s", dump)
		}
	}
	return resp, nil
}

// User registers a fresh user and returns its api and hub clients.
func (s *BaseSuite) User(name string) (*api.Client, *hub.Client, domain.Registration) {
	t := s.T()
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	client := api.NewClient(log, s.Config.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: 10 * time.Second, Transport: loggingTransport{t: t, debug: s.Config.DebugJSON}}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	registration, err := client.RegisterUser(ctx, fmt.Sprintf("%s-%d", name, time.Now().UnixNano()), "")
	s.Require().NoError(err)
	configuration, err := client.ClientConfiguration(ctx)
	s.Require().NoError(err)

	h := hub.NewClient(log, configuration.HubURL, registration.Token)
	t.Cleanup(func() { _ = h.Close() })
	return client, h, registration
}

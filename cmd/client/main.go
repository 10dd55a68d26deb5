package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-sync/api"
	"chat-sync/domain"
	"chat-sync/hub"
	"chat-sync/runtime/workers"
	"chat-sync/session"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(log, config.APIURL)
	registration, err := client.RegisterUser(ctx, config.DisplayName, config.AvatarURL)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	remote, err := client.ClientConfiguration(ctx)
	if err != nil {
		return fmt.Errorf("client configuration failed: %w", err)
	}

	h := hub.NewClient(log, remote.HubURL, registration.Token)
	defer func() { _ = h.Close() }()

	out := newRenderer(os.Stdout, registration.User)
	controller := session.NewController(log, client, h, registration.User, sessionConfig(remote),
		session.WithListener(out.OnChange))
	defer controller.Close()

	routes := make(chan domain.ConversationID, 1)
	commands := newCommander(client, controller, routes, out)

	sup := workers.NewSupervisor(log)
	sup.Add(
		session.NewRouteWorker(log, controller, routes),
		NewInputWorker(os.Stdin, commands, stop),
	)

	out.Welcome(registration.User)
	sup.Run(ctx)
	return nil
}

func sessionConfig(c domain.ClientConfiguration) session.Config {
	return session.Config{
		TypingDecay:       time.Duration(c.TypingDecayMs) * time.Millisecond,
		HeartbeatInterval: time.Duration(c.HeartbeatIntervalMs) * time.Millisecond,
		TypingPolicy:      session.TypingPolicy(c.TypingPolicy),
	}
}

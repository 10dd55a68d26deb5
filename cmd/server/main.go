package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chat-sync/auth"
	"chat-sync/domain"
	"chat-sync/domain/event"
	chathttp "chat-sync/infrastructure/http"
	"chat-sync/infrastructure/ws"
	"chat-sync/internal"
	"chat-sync/moderation"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"chat-sync/runtime/workers"
	"chat-sync/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until a signal arrives, so the
// deferred cleanups always run before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	censorChar, err := internal.CharacterRune(config.CharacterReplacement)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	users, err := repositories.NewUserRepository(db)
	if err != nil {
		return err
	}
	defer func() { _ = users.Close() }()
	conversations, err := repositories.NewConversationRepository(db)
	if err != nil {
		return err
	}
	defer func() { _ = conversations.Close() }()
	messages, err := repositories.NewMessageRepository(db, log, config.LimitMessages)
	if err != nil {
		return err
	}
	defer func() { _ = messages.Close() }()

	// 3. Moderation dictionary, seeded from the environment on first start
	if err = moderation.SeedDictionary(db, internal.SplitList(config.CensoredWords)); err != nil {
		return fmt.Errorf("dictionary seeding failed: %w", err)
	}
	words, err := moderation.LoadDictionary(db)
	if err != nil {
		return fmt.Errorf("dictionary loading failed: %w", err)
	}
	var moderator moderation.Moderator
	if len(words) > 0 {
		if moderator, err = moderation.NewModerator(words, censorChar, log); err != nil {
			return fmt.Errorf("moderator failed: %w", err)
		}
	}

	// 4. Services & fan-out
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	origins := internal.SplitList(config.AllowedOrigins)
	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	deliveries := make(chan event.Delivery, config.DeliveryBufferSize)
	registry := runtime.NewRegistry()
	chat := services.NewChatService(log, users, conversations, messages, moderator, deliveries)

	server := chathttp.NewServer(log, services.NewUserService(log, users, issuer), chat, issuer, chathttp.Options{
		Addr:           address,
		AllowedOrigins: origins,
		ClientConfiguration: domain.ClientConfiguration{
			HubURL:              lo.Ternary(config.HubURL != "", config.HubURL, fmt.Sprintf("ws://%s/hub", address)),
			TypingDecayMs:       config.TypingDecay.Milliseconds(),
			HeartbeatIntervalMs: config.HeartbeatInterval.Milliseconds(),
			TypingPolicy:        config.TypingPolicy,
		},
		Hub: ws.NewHandler(log, registry, chat, origins),
	})

	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewEventFanout(log, deliveries, registry, chat, config.SinkTimeout),
		workers.NewChannelCapacityWorker(log, []workers.NamedChannel{{Name: "deliveries", Channel: deliveries}},
			config.MetricInterval, config.LowCapacityThreshold),
		server,
	)
	if config.DebugPort != nil {
		sup.Add(internal.NewDebugServer(log, db, fmt.Sprintf("%s:%d", config.Host, *config.DebugPort)))
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting chat server", "address", address, "censored_words", len(words))
	sup.Run(ctx)
	log.Info("Program stopped cleanly")
	return nil
}

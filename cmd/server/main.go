package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campus-board/auth"
	"campus-board/gateway"
	"campus-board/moderation"
	"campus-board/repositories"
	"campus-board/runtime"
	"campus-board/runtime/workers"
	"campus-board/services"
	"campus-board/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes
// error reporting, so that every defer executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	auth.SetSigningKey(config.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage (BadgerDB + bluge)
	// SyncWrites makes every committed append durable before SendMessage
	// acknowledges it; history after a live delivery can then never miss it.
	options := badger.DefaultOptions(config.BadgerFilepath).
		WithSyncWrites(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	messageStore, err := repositories.NewMessageStore(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer messageStore.Close()

	userRepository := repositories.NewUserRepository(db)

	boardRepository, err := repositories.NewBoardRepository(db)
	if err != nil {
		return exitRuntime, err
	}
	defer boardRepository.Close()

	messageIndex, err := repositories.NewMessageIndex(config.BlugeFilepath)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open message index: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = messageIndex.Close()
	}()

	// 3. Moderation
	censoredData, err := runtime.LoadCensoredWords()
	if err != nil {
		return exitRuntime, err
	}
	logger.Info("Censored words loaded", "languages", censoredData.Languages, "count", len(censoredData.Words))

	moderator, err := moderation.NewModerator(censoredData.Words, charReplacement)
	if err != nil {
		return exitRuntime, err
	}

	// 4. Chat pipeline
	registry := runtime.NewRegistry(logger, config.DeliveryTimeout)
	coordinator := runtime.NewCoordinator(logger, messageStore, registry, moderator,
		config.MaxContentLength, config.AppendTimeout, config.SinkTimeout)
	coordinator.Add(sink.NewSearchSink(messageIndex, logger))

	// 5. Services & gateway
	authService := services.NewAuthService(userRepository, config.AuthTokenDuration)
	chatService := services.NewChatService(coordinator, messageIndex, messageStore)
	boardService := services.NewBoardService(boardRepository)

	server := gateway.NewServer(logger, chatService, authService, boardService)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: server.Routes(),
	}

	// 6. Background workers under supervision
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(
		workers.NewStorageGCWorker(logger, db, config.GCInterval),
		workers.NewTelemetryWorker(logger, registry, config.MetricInterval),
	)
	supervisorDone := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervisorDone)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Campus board listening", "addr", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	// 7. Wait for shutdown signal or server failure
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitRuntime, err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}

	supervisor.Stop()
	<-supervisorDone

	return exitOK, nil
}

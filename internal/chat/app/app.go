package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/quokkaworks/chatgate/internal/chat/http"
	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/internal/chat/store"
	"github.com/quokkaworks/chatgate/internal/chat/store/drivers/sqlite"
	"github.com/quokkaworks/chatgate/pkg/assistant"
	"github.com/quokkaworks/chatgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the chat gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	assistant *assistant.Client

	// Services
	inviteService       *service.InviteService
	sessionService      *service.SessionService
	messageService      *service.MessageService
	chatService         *service.ChatService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "chatgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.assistant = assistant.NewClient(
		cfg.AssistantBaseURL,
		cfg.AssistantAPIKey,
		cfg.AssistantID,
	)

	app.initServices()
	app.initHTTP()

	// Seed a bootstrap invite so a fresh deployment has a way in.
	if err := app.seedInvite(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("chat gateway starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down chat gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("chat gateway stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.inviteService = &service.InviteService{Store: app.db}
	app.sessionService = &service.SessionService{
		Store:        app.db,
		IdleWindow:   app.cfg.SessionIdleWindow,
		HistoryLimit: app.cfg.HistoryLimit,
	}
	app.messageService = &service.MessageService{Store: app.db}
	app.chatService = &service.ChatService{
		Assistant: app.assistant,
		Messages:  app.messageService,
		Sessions:  app.sessionService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.SessionIdleWindow,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.AssistantAPIKey != "" && app.cfg.AssistantID != "",
	)

	// Wire services to router
	router.InviteService = app.inviteService
	router.SessionService = app.sessionService
	router.MessageService = app.messageService
	router.ChatService = app.chatService
	router.Transcriber = app.assistant
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// seedInvite mints a first invite when the deployment has no users yet. The
// plaintext token is logged once; whoever redeems it becomes the admin.
func (app *Application) seedInvite(ctx context.Context) error {
	if !app.cfg.SeedInvite {
		return nil
	}

	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	// Skip when an unredeemed invite already exists, e.g. after a restart
	// before anyone signed up.
	invites, err := app.db.Invites().ListInvites(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to check for existing invites: %w", err)
	}
	if len(invites) > 0 {
		return nil
	}

	minted, err := app.inviteService.MintInvite(ctx, "", "", service.DefaultInviteTTL)
	if err != nil {
		return fmt.Errorf("failed to mint bootstrap invite: %w", err)
	}

	app.logger.Warn("bootstrap invite minted; redeem it to create the admin account",
		"invite_token", minted.Token,
		"expires_at", minted.Invite.ExpiresAt,
	)
	return nil
}

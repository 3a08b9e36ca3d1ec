// Package app initializes and runs the main application service.
// It configures logging, storage, sessions, and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pvidkov/tinyapp/internal/config"
	"github.com/pvidkov/tinyapp/internal/db/memorystorage"
	"github.com/pvidkov/tinyapp/internal/logger"
	"github.com/pvidkov/tinyapp/internal/router"
	"github.com/pvidkov/tinyapp/internal/service"
	"github.com/pvidkov/tinyapp/internal/session"
)

// App encapsulates the configuration, HTTP handler and storage backend
// needed to run the URL shortener service.
type App struct {
	cfg         *config.Config
	db          *memorystorage.MemoryStorage
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - setting up the in-memory storage
// - setting up the session manager, service layer, router and middleware
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = memorystorage.New()
	if err != nil {
		return nil, err
	}

	authCookieSigningSecretKey, err := base64.URLEncoding.DecodeString(app.cfg.AuthCookieSigningSecretKey)
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		service.New(app.db),
		session.New(app.cfg.AuthCookieName, authCookieSigningSecretKey),
		app.cfg.ShortURLBase,
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/campuskart/campuskart/internal/api/handlers"
	"github.com/campuskart/campuskart/internal/api/middleware"
	"github.com/campuskart/campuskart/internal/auth"
	"github.com/campuskart/campuskart/internal/config"
	"github.com/campuskart/campuskart/internal/store"
	"github.com/campuskart/campuskart/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	verifier := &auth.StaticVerifier{Tokens: cfg.Server.Tokens}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(s)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("CampusKart API", "1.0.0"))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(s, verifier))
	handlers.RegisterMessageRoutes(api, handlers.NewMessagesHandler(s, verifier))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "in_memory", cfg.Database.InMemory)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openStore picks the configured backing store. The in-memory store is
// migrated implicitly (it has no schema); Postgres expects `kartd
// migrate` to have run.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Database.InMemory {
		return store.NewMemoryStore(), func() {}, nil
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating database config: %w", err)
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return pg, pg.Close, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/relaycrm/crm-system/internal/api"
	"github.com/relaycrm/crm-system/internal/api/handler"
	"github.com/relaycrm/crm-system/internal/core/service"
	"github.com/relaycrm/crm-system/internal/infrastructure/db/mongo"
	"github.com/relaycrm/crm-system/internal/infrastructure/db/relational"
	redisstore "github.com/relaycrm/crm-system/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing connections")
		}
	}()
	if err := a.connectAudit(ctx); err != nil {
		return err
	}
	if err := a.connectDenylist(ctx); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Log:       log,
		JWTSecret: cfg.JWTSecret,
		Denylist:  a.denylist,
		Auth:      service.NewAuthService(a.users, a.denylist, cfg.JWTSecret, cfg.JWTTTL),
		Customers: service.NewCustomerService(a.customers, a.media, log),
		Imports:   a.importService(),
		Reports:   a.reportService(),
		Users:     a.userService(),
		Dashboard: service.NewDashboardService(a.customers, a.users),
		HealthChecks: map[string]handler.Checker{
			"database": func(ctx context.Context) error { return relational.Ping(ctx, a.db) },
			"mongodb":  func(ctx context.Context) error { return mongo.Ping(ctx, a.mongo) },
			"redis":    func(ctx context.Context) error { return redisstore.Ping(ctx, a.redis) },
		},
		MediaRoot:     cfg.Media.Root,
		MediaURL:      cfg.Media.URL,
		MaxUploadSize: cfg.Media.MaxUploadSize,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"healthtracker/config"
	"healthtracker/logging"
	"healthtracker/middlewares"
	"healthtracker/routes"
	"healthtracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(cfg.Server.GinMode)

	db, err := config.OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logging.Warn().Err(err).Msg("close database")
		}
	}()
	if err := config.Migrate(db); err != nil {
		return err
	}

	sessions, closeSessions, err := config.NewSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeSessions() }()

	var mailer utils.Mailer = utils.NopMailer{}
	if cfg.Mail.From != "" {
		ses, err := utils.NewSESMailer(ctx, cfg.Mail.Region, cfg.Mail.From)
		if err != nil {
			return fmt.Errorf("init ses mailer: %w", err)
		}
		mailer = ses
	}

	router, err := routes.SetupRouter(routes.Deps{
		DB:       db,
		Sessions: sessions,
		Cookie: middlewares.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secret: []byte(cfg.Session.Secret),
			Secure: cfg.Session.Secure,
		},
		TTL:    cfg.Session.TTL,
		Mailer: mailer,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.Database.Driver).
			Str("session_store", cfg.Session.Store).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

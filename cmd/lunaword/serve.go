package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/bootstrap"
	"github.com/at-ishikawa/lunaword/internal/config"
	"github.com/at-ishikawa/lunaword/internal/database"
	"github.com/at-ishikawa/lunaword/internal/server"
)

func newServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the learning API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, a.db); err != nil {
		_ = a.Close()
		return fmt.Errorf("database.Migrate() > %w", err)
	}
	authService, err := a.newAuth()
	if err != nil {
		_ = a.Close()
		return err
	}
	cache, generator, err := a.newLibrary()
	if err != nil {
		_ = a.Close()
		return err
	}
	synthesizer, err := newSynthesizer(cfg)
	if err != nil {
		_ = generator.Close()
		_ = a.Close()
		return err
	}

	handler := server.NewHandler(authService, cache, a.newSelector(), a.progress, a.learningRepo, synthesizer)
	srv := server.NewHTTPServer(cfg.Server.Port, server.NewEcho(cfg.Server, handler))

	app := bootstrap.New()
	app.AddCloser("database", a)
	app.AddCloser("generator", generator)
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "database", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe() > %w", err)
		}
		return nil
	})
}

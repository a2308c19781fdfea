package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/dotwalk/internal/api"
	"github.com/persistorai/dotwalk/internal/config"
	"github.com/persistorai/dotwalk/internal/service"
	"github.com/persistorai/dotwalk/internal/source"
	"github.com/persistorai/dotwalk/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (configured from the environment)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cfg.NewLogger())
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "file to seed the environment from")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	hub := ws.NewHub(log)
	svc := service.NewGraphService(source.NewLoader(cfg.SourceTimeout, log), log, service.Options{
		DefaultMaxDepth: cfg.DefaultMaxDepth,
		MaxDepthLimit:   cfg.MaxDepthLimit,
		Events:          hub,
		Sources:         source.NewAllowlist(cfg.AllowedSources...),
	})

	if cfg.GraphSource != "" {
		if _, err := svc.Load(ctx, cfg.GraphSource); err != nil {
			log.WithError(err).Warn("loading initial graph")
		}
	}

	var watcher *source.Watcher
	if cfg.WatchSource {
		w, err := source.NewWatcher(cfg.GraphSource, func(ctx context.Context) {
			if _, err := svc.Reload(ctx, cfg.GraphSource); err != nil {
				log.WithError(err).Error("reloading graph")
			}
		}, source.DefaultDebounce, log)
		if err != nil {
			return err
		}
		watcher = w
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(gctx, &api.RouterDeps{
			Log:           log,
			Graph:         svc,
			CORSOrigins:   cfg.CORSOrigins,
			Version:       config.Version,
			TraversalRate: cfg.TraversalRate,
			Hub:           hub,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

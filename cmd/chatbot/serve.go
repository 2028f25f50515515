package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/config"
	"github.com/chatbot-dev/chatbot/internal/dev"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/assets"
	"github.com/chatbot-dev/chatbot/pkg/server"
)

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	opts := []server.Option{server.WithLogger(logger.With("component", "server"))}
	if cfg.Assets.Bucket != "" {
		src, err := assets.NewS3SourceFromEnv(ctx, cfg.Assets.Region, cfg.Assets.Bucket, cfg.Assets.Prefix)
		if err != nil {
			return errors.New("E302").
				WithDetail("Could not configure the S3 client for bucket " + cfg.Assets.Bucket + ".").
				WithSuggestion("Check the AWS credentials and region, or clear assets.bucket to serve from disk.").
				Wrap(err)
		}
		opts = append(opts, server.WithAssetSource(src))
		logger.Info("serving assets from s3", "bucket", cfg.Assets.Bucket, "prefix", cfg.Assets.Prefix)
	}

	srv, err := server.New(cfg, app.New(), opts...)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})

	if addr := cfg.ReloadAddr(); addr != "" {
		reload := dev.NewReloadServer(logger.With("component", "reload"))
		watcher := dev.NewWatcher(dev.WatcherConfig{Root: cfg.SiteRootPath()}, logger.With("component", "watcher"))

		g.Go(func() error {
			return reload.Serve(ctx, addr)
		})
		g.Go(func() error {
			// A missing site root only disables live reload.
			if err := watcher.Run(ctx, reload.Notify); err != nil {
				logger.Warn("live reload watcher stopped", "root", cfg.SiteRootPath(), "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// newLogger returns a JSON logger in production and a text logger in
// development.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

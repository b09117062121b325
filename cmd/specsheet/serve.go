package main

import (
	"context"

	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/server"
)

// runServe starts the HTTP server and blocks until ctx is done.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		return err
	}
	applyAPIFlags(&f.common, &f.api, cfg)
	applyPageFlags(&f.common, &f.page, cfg)
	applyFooterFlags(&f.common, &f.footer, cfg)
	applyRenderFlags(&f.common, &f.render, cfg)
	if f.common.set["addr"] {
		cfg.Server.Addr = f.addr
	}
	if f.common.set["workers"] {
		cfg.Server.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := env.NewCatalog(cfg, logger)
	if err != nil {
		return err
	}

	metrics := server.NewMetrics()
	size := specsheet.ResolvePoolSize(cfg.Server.Workers)
	pool := env.NewPool(size, generatorOptions(cfg, logger, metrics.ObserveImage)...)
	defer func() { _ = pool.Close() }()

	srv := server.New(cat, pool,
		server.WithLogger(logger.Named("http")),
		server.WithMetrics(metrics),
		server.WithAssetBase(cfg.AssetBase()),
		server.WithPage(pageSettings(cfg)),
		server.WithFooter(footerSettings(cfg)),
	)

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("api", cfg.API.BaseURL),
		zap.Int("workers", size),
		zap.Bool("browser_fallback", cfg.Images.BrowserFallback),
	)
	return srv.Run(ctx, cfg.Server.Addr)
}

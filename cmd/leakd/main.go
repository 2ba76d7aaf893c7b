// leakd is the assessment daemon: it owns the session state machines,
// talks to the scoring service through the relay and runs the report
// pipeline on completed assessments.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"leak-diagnostic/internal/api"
	"leak-diagnostic/internal/catalog"
	awsx "leak-diagnostic/internal/common/aws"
	"leak-diagnostic/internal/common/config"
	"leak-diagnostic/internal/common/database"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/delivery"
	"leak-diagnostic/internal/pipeline"
	"leak-diagnostic/internal/report"
	"leak-diagnostic/internal/report/binder"
	"leak-diagnostic/internal/report/raster"
	"leak-diagnostic/internal/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting assessment daemon", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"addr":        cfg.Server.Addr,
	})

	scoringTimeout := time.Duration(cfg.Scoring.Timeout) * time.Millisecond

	var cache *database.RedisClient
	if cfg.Redis.Address != "" {
		cache, err = database.NewRedis(cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, catalog cache disabled", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	loader := catalog.NewLoader(catalog.LoaderOptions{
		BaseURL:  cfg.Scoring.BaseURL,
		Client:   httpx.NewClient(scoringTimeout),
		Cache:    cache,
		CacheTTL: time.Duration(cfg.Catalog.CacheTTL) * time.Second,
		Logger:   log,
	})

	scorer := scoring.NewClient(scoring.Options{
		BaseURL: cfg.Scoring.BaseURL,
		Timeout: scoringTimeout,
		Logger:  log,
	})

	rasterizer, err := raster.NewService(raster.Config{
		PageWidthPx:  cfg.Report.PageWidthPx,
		MarginPx:     cfg.Report.MarginPx,
		BaseFontSize: cfg.Report.BaseFontSize,
		SettleDelay:  time.Duration(cfg.Report.SettleDelayMs) * time.Millisecond,
	}, log)
	if err != nil {
		zapLogger.Fatal("rasterizer init failed", zap.Error(err))
	}

	provider, err := buildProvider(cfg, log)
	if err != nil {
		zapLogger.Fatal("delivery provider init failed", zap.Error(err))
	}

	pipe := pipeline.New(
		report.NewBuilder(),
		rasterizer,
		binder.NewService(cfg.Report.JPEGQuality),
		delivery.NewDispatcher(provider, log),
		log,
	)

	registry := api.NewRegistry(loader, scorer, pipe, log)
	handler := api.NewHandler(registry, log)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler.Router(),
	}

	go func() {
		log.Info("listening", map[string]interface{}{"addr": cfg.Server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown incomplete", nil)
	}
}

// buildProvider selects the configured delivery mechanism. Exactly one is
// active per deployment.
func buildProvider(cfg *config.Config, log logger.Logger) (delivery.Provider, error) {
	timeout := time.Duration(cfg.Delivery.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cfg.Delivery.Provider {
	case "remote", "":
		return delivery.NewRemoteProvider(cfg.Delivery.Remote.URL, httpx.NewClient(timeout)), nil
	case "smtp":
		return delivery.NewSMTPProvider(
			cfg.Delivery.SMTP.Host,
			cfg.Delivery.SMTP.Port,
			cfg.Delivery.SMTP.Username,
			cfg.Delivery.SMTP.Password,
			cfg.Delivery.SMTP.From,
		), nil
	case "ses":
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		client, err := awsx.NewSESClient(ctx, cfg.Delivery.SES.Region)
		if err != nil {
			return nil, err
		}
		return delivery.NewSESProvider(client, cfg.Delivery.SES.From), nil
	default:
		return nil, fmt.Errorf("unknown delivery provider %q", cfg.Delivery.Provider)
	}
}

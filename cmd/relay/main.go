// relay is the browser-facing gateway in front of the scoring endpoint.
// It adds CORS headers and stamps caller identity onto forwarded requests.
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

	"leak-diagnostic/internal/common/config"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/gateway"
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

	log.Info("starting relay gateway", map[string]interface{}{
		"addr":     cfg.Gateway.Addr,
		"upstream": cfg.Gateway.UpstreamURL,
	})

	client := httpx.NewClient(time.Duration(cfg.Scoring.Timeout) * time.Millisecond)
	handler := gateway.NewHandler(cfg.Gateway, client, log)

	server := &http.Server{
		Addr:    cfg.Gateway.Addr,
		Handler: handler.Router(),
	}

	go func() {
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

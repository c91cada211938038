package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bess-dashboard/internal/api"
	"bess-dashboard/internal/config"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/log"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config (optional)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if err := log.Setup(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := log.Ctx(ctx)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	session, err := dashboard.NewSession(ctx, dashboard.DirLoader(cfg.DataDir),
		dashboard.WithChartSize(cfg.Charts.WidthIn, cfg.Charts.HeightIn),
	)
	if err != nil {
		logger.Error("failed to load datasets", slog.String("data_dir", cfg.DataDir), slog.Any("error", err))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           api.NewHandler(session, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting API server",
			slog.String("addr", server.Addr),
			slog.String("env", cfg.Server.Env),
			slog.String("data_dir", cfg.DataDir),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

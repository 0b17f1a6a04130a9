// Package main - Entry point for the studio-quote HTTP server
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"studio-quote/api"
	"studio-quote/core/catalog"
	"studio-quote/internal/config"
	"studio-quote/internal/logging"
	"studio-quote/internal/metrics"
)

var version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "config file (default is $HOME/.studio-quote.json)")
	addr := flag.String("addr", "", "server address, overrides config")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the environment is read")
	flag.Parse()

	if err := run(*cfgPath, *addr, *envFile); err != nil {
		logging.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run(cfgPath, addr, envFile string) error {
	// A missing .env is normal outside development
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logging.Warn("dotenv not loaded", zap.String("file", envFile), zap.Error(err))
	}

	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	log := logging.Named("server")

	c, err := catalog.Load(cfg.Pricing.RateCardPath, cfg.Pricing.Currency)
	if err != nil {
		return err
	}

	opts := api.Options{
		Version:      version,
		Catalog:      c,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
	if cfg.Server.MetricsEnabled {
		opts.Metrics = metrics.New(true)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(opts),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		stats := c.Stats()
		log.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version),
			zap.String("currency", string(c.Currency)),
			zap.Int("rates", stats.Rates),
			zap.Bool("metrics", cfg.Server.MetricsEnabled),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

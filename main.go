package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fraudcheck/config"
	"fraudcheck/fraud"
	fhttp "fraudcheck/http"
	"fraudcheck/logging"
	"fraudcheck/ml"
	"fraudcheck/monitoring"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	logger := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	zap.ReplaceGlobals(logger.Logger)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("fraudcheck stopped", zap.Error(err))
		_ = logger.Close()
		os.Exit(1)
	}
	_ = logger.Close()
}

func run(cfg *config.Config, configPath string, logger *logging.Logger) error {
	// 3. Load model artifacts once; every request shares them
	loader, err := ml.NewLoader()
	if err != nil {
		return err
	}
	artifacts, err := loader.Load(cfg.Model.Dir, cfg.Model.ScalerFile, cfg.Model.ClassifierFile)
	if err != nil {
		var loadErr *ml.ArtifactLoadError
		if errors.As(err, &loadErr) {
			logger.Error("model artifact unavailable", zap.String("path", loadErr.Path))
		}
		return err
	}
	monitoring.ArtifactsLoaded.Set(1)
	logger.Info("model artifacts loaded",
		zap.String("dir", cfg.Model.Dir),
		zap.String("scaler", artifacts.ScalerType),
		zap.String("classifier", artifacts.ClassifierType),
		zap.Int("features", artifacts.NumFeatures()),
	)

	// 4. Pipeline
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	pipeline, err := fraud.NewPipeline(artifacts,
		fraud.WithLocation(loc),
		fraud.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Follow log level changes in the config file
	go func() {
		err := config.Watch(ctx, configPath, logger.Logger, func(next *config.Config) {
			logger.SetLevel(next.Log.Level)
		})
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		}
	}()

	// 6. Start HTTP server
	server := fhttp.NewServer(serverConfig(cfg), fhttp.NewHandler(pipeline, artifacts, loc), logger.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 7. Handle graceful shutdown
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down", zap.String("addr", server.Addr()))

	if err := server.Stop(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}

// serverConfig overlays the configured http settings on the server defaults.
func serverConfig(cfg *config.Config) fhttp.ServerConfig {
	sc := fhttp.DefaultServerConfig()
	if cfg.Http.Port != 0 {
		sc.Port = cfg.Http.Port
	}
	if cfg.Http.Timeout > 0 {
		sc.Timeout = cfg.Http.Timeout
	}
	if len(cfg.Http.AllowedOrigins) > 0 {
		sc.AllowedOrigins = cfg.Http.AllowedOrigins
	}
	return sc
}

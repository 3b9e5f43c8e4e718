package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"serverhub/internal/config"
	"serverhub/internal/server"
	"serverhub/internal/types"
	"serverhub/internal/version"
)

func main() {
	var (
		configFile  = flag.String("config", "configs/serverhub.yml", "Configuration file path")
		showVersion = flag.Bool("version", false, "Show version information")
		validate    = flag.Bool("validate", false, "Validate configuration and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if err := run(*configFile, *validate); err != nil {
		fmt.Fprintf(os.Stderr, "serverhub: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string, validateOnly bool) error {
	bootLogger, err := initLogger("info", "json")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	loader := config.NewLoader(configFile, wrapZapLogger(bootLogger))
	cfg, err := loader.LoadConfig()
	if err != nil {
		bootLogger.Sync()
		return err
	}

	if validateOnly {
		wrapZapLogger(bootLogger).Info("Configuration is valid", "file", loader.ConfigFileUsed())
		bootLogger.Sync()
		return nil
	}
	bootLogger.Sync()

	zapLogger, err := initLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zapLogger.Sync()

	logger := wrapZapLogger(zapLogger).With("service", "serverhub")
	logger.Info("Starting serverhub", "version", version.Version, "commit", version.GitCommit)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := newApplication(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close application", "error", err)
		}
	}()

	srv := server.New(cfg, app.handler, logger)
	if err := srv.Start(); err != nil {
		return err
	}

	watcher := startWatcher(ctx, loader, cfg, app, logger)
	if watcher != nil {
		defer watcher.Stop()
	}

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Shutdown completed")
	return nil
}

// startWatcher reloads the server list whenever the config file changes.
// It returns nil when the file cannot be watched.
func startWatcher(ctx context.Context, loader *config.Loader, cfg *types.HubConfig, app *application, logger types.Logger) *config.Watcher {
	watcher, err := config.NewWatcher(loader, logger)
	if err != nil {
		logger.Warn("Configuration reload disabled", "error", err)
		return nil
	}

	watcher.OnChange(func(next *types.HubConfig) {
		if err := app.reload(ctx, next); err != nil {
			logger.Error("Failed to reload servers", "error", err)
		}
	})

	if err := watcher.Start(ctx, cfg); err != nil {
		logger.Warn("Configuration reload disabled", "error", err)
		watcher.Stop()
		return nil
	}
	return watcher
}

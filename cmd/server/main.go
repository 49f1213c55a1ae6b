package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/franckalain/nourishbloom/internal/config"
	"github.com/franckalain/nourishbloom/internal/database"
	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/logging"
	"github.com/franckalain/nourishbloom/internal/ml"
	"github.com/franckalain/nourishbloom/internal/server"
	"github.com/franckalain/nourishbloom/internal/tracker"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	if err := config.LoadEnv(envFile); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Server.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize database
	db, err := database.NewSQLiteDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize meal analysis; "none" scores meals from their description only
	var analyzer ml.MealAnalyzer
	if cfg.ML.Type != "none" {
		analyzer, err = ml.NewAnalyzer(cfg.ML.Type, cfg.ML.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to create meal analyzer: %w", err)
		}
		if err := analyzer.Load(context.Background()); err != nil {
			return fmt.Errorf("failed to load meal analyzer: %w", err)
		}
		if c, ok := analyzer.(io.Closer); ok {
			defer c.Close()
		}
	}

	selector := flower.NewSelector(cfg.SelectionMode(), nil)
	logger.Info("nourishbloom starting",
		zap.String("database", cfg.Database.Path),
		zap.String("analyzer", cfg.ML.Type),
		zap.String("flower_selection", string(selector.Mode())),
		zap.String("timezone", loc.String()),
	)

	t := tracker.New(db, analyzer, selector, loc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(t, logger, cfg.Server.Debug)
	if err := srv.Start(ctx, cfg.Server.Port, cfg.Server.StaticDir); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/franckalain/healthanalyzer/internal/analysis"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/database"
	"github.com/franckalain/healthanalyzer/internal/logger"
	"github.com/franckalain/healthanalyzer/internal/ml"
	"github.com/franckalain/healthanalyzer/internal/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := ml.NewModel(cfg.ML, log)
	if err != nil {
		return fmt.Errorf("failed to create ML model: %w", err)
	}
	if err := model.Load(ctx); err != nil {
		return fmt.Errorf("failed to load ML model: %w", err)
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}
	log.Info("ml.loaded", zap.String("provider", model.Name()))

	var (
		opts    []analysis.Option
		history server.History
	)
	if cfg.Database.Path != "" {
		db, err := database.NewSQLiteDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		opts = append(opts, analysis.WithRecorder(db))
		history = db
		log.Info("database.opened", zap.String("path", cfg.Database.Path))
	}

	svc, err := analysis.NewService(model, cfg.Analysis, log, opts...)
	if err != nil {
		return fmt.Errorf("failed to create analysis service: %w", err)
	}

	srv := server.New(svc, history, log, cfg.Server.StaticDir)
	return srv.Run(ctx, cfg.Server.Port)
}

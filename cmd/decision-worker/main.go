package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clinassist/decision-worker/internal/catalog"
	"github.com/clinassist/decision-worker/internal/config"
	"github.com/clinassist/decision-worker/internal/eval/cel"
	"github.com/clinassist/decision-worker/internal/eval/template"
	"github.com/clinassist/decision-worker/internal/tree"
	"github.com/clinassist/decision-worker/internal/worker"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting decision worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Initialize evaluator
	evaluator := tree.NewEvaluator(logger,
		tree.WithHeuristicBinding(cfg.HeuristicBinding),
	)
	logger.Info("evaluator initialized",
		zap.Bool("heuristic_binding", cfg.HeuristicBinding),
	)

	// Load the tree catalog: builtin trees plus any serialized trees on disk
	cat := catalog.Builtin()
	if cfg.TreesDir != "" {
		parser := tree.NewParser(evaluator.Registry(), cel.NewCompiler())
		loaded, err := catalog.LoadDir(cfg.TreesDir, parser, logger)
		if err != nil {
			logger.Fatal("failed to load trees",
				zap.String("dir", cfg.TreesDir),
				zap.Error(err),
			)
		}
		for _, entry := range loaded {
			if err := cat.Register(entry); err != nil {
				logger.Fatal("failed to register tree", zap.Error(err))
			}
		}
	}
	logger.Info("catalog loaded", zap.Strings("tools", cat.Names()))

	// Initialize report engine and validate a custom template up front
	reports := template.NewEngine()
	if cfg.ReportTemplate != "" {
		if err := reports.ValidateTemplate(cfg.ReportTemplate); err != nil {
			logger.Fatal("invalid report template", zap.Error(err))
		}
	}

	// Initialize worker
	w := worker.NewWorker(cfg, redisClient, evaluator, cat, reports, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, cat, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("decision worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	select {
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing exit")
	default:
		logger.Info("worker stopped gracefully")
	}
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

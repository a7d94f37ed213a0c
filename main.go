package main

import (
	"os"
	"strings"
	"time"

	"ads-unifier/config"
	"ads-unifier/services"
	"ads-unifier/storage"
	"ads-unifier/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	logger := utils.NewLoggerWithOptions(utils.LoggerOptions{
		Level: utils.ParseLevel(cfg.LogLevel),
		JSON:  strings.EqualFold(cfg.LogFormat, "json"),
	})

	logger.Info("=== Unified ads performance build starting ===")
	logger.Info("Data directory: %s", cfg.DataDir)

	var sinks []storage.UnifiedWriter
	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()
		sinks = append(sinks, pgWriter)
	}

	pipeline := services.NewPipeline(cfg.DataDir, logger, sinks...)
	table, err := pipeline.Run()
	if err != nil {
		logger.Error("Build failed: %v", err)
		os.Exit(1)
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(os.Stdout, insightSvc.Generate(table, pipeline.OutputPath()))
}

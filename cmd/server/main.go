package main

import (
	"os"

	"go.uber.org/zap"

	"shortfactory/config"
	"shortfactory/internal/deps"
	"shortfactory/internal/server"
	"shortfactory/internal/storage"
	"shortfactory/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("failed to load config", zap.Error(err))
		return
	}
	if created {
		log.GetLogger().Info("created default config file, fill in API keys before creating tasks")
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid config", zap.Error(err))
		return
	}

	storage.SetToolPaths(config.Conf.Video.FfmpegPath, config.Conf.Video.FfprobePath)
	storage.InitDB()

	// Mark any stale "running" tasks as "failed" (zombie cleanup)
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("Failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("Marked stale tasks as failed", zap.Int64("count", count))
	}

	if err = deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		return
	}
	if err = server.StartBackend(); err != nil {
		log.GetLogger().Error("backend exited", zap.Error(err))
		os.Exit(1)
	}
}

package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortfactory/config"
	"shortfactory/internal/router"
	"shortfactory/log"
)

// StartBackend runs the HTTP API on the configured address. It blocks until
// the listener fails.
func StartBackend() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	router.SetupRouter(engine)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("starting backend", zap.String("addr", addr))
	return engine.Run(addr)
}

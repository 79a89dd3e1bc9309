package app

import (
	"go-timetrack/internal/config"
	"go-timetrack/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}
	zap.L().Info("database ready")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	return registerModules(router, cfg, gormDB, redisClient)
}

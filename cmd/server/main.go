package main

import (
	"fmt"
	"os"

	"github.com/bockpetr/kost/internal/config"
	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

func main() {
	cfg := config.Load()

	level := logging.INFO
	if cfg.Debug {
		level = logging.DEBUG
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(level)

	if err := database.Init(cfg.DBPath, cfg.Debug); err != nil {
		logger.Errorf("failed to init database: %v", err)
		os.Exit(1)
	}
	if err := database.EnsureAdmin(cfg.AdminLogin, cfg.AdminPassword); err != nil {
		logger.Errorf("failed to ensure admin account: %v", err)
		os.Exit(1)
	}

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Errorf("server error: %v", err)
		os.Exit(1)
	}
}

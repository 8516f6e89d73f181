package main

import (
	"time"

	"go-absensi/internal/app"
	"go-absensi/internal/bootstrap"
	"go-absensi/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := app.LoadConfig()
	a, err := app.Build(cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer a.Close()

	bootstrap.StartHTTPServer(a.Router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
}

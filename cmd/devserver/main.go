package main

import (
	"os"

	"github.com/mergington/roster-console/internal/devserver"
	"github.com/mergington/roster-console/internal/pkg/config"
	"github.com/mergington/roster-console/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	srv := devserver.New(cfg.DevServer.JWTSecret, cfg.DevServer.TokenTTL, log)
	e := srv.Router()

	log.Info().Str("port", cfg.DevServer.Port).Msg("dev roster API listening")
	if err := e.Start(":" + cfg.DevServer.Port); err != nil {
		log.Fatal().Err(err).Msg("dev server stopped")
	}
}

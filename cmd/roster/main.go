package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mergington/roster-console/internal/console"
	"github.com/mergington/roster-console/internal/core/ports"
	"github.com/mergington/roster-console/internal/core/service"
	"github.com/mergington/roster-console/internal/infrastructure/api"
	"github.com/mergington/roster-console/internal/infrastructure/tokenstore"
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

	ctx := context.Background()

	tokens, err := buildTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("token store setup failed")
	}

	client := api.NewClient(cfg.APIBaseURL, tokens, cfg.HTTPTimeout, log)
	session := service.NewSessionService(client, tokens, log)
	board := console.NewMessageBoard(os.Stdout, cfg.MessageTTL)
	presenter := console.NewTerminalPresenter(os.Stdout)
	roster := service.NewRosterService(client, session, presenter, log)
	mutations := service.NewMutationService(client, roster, board, log)

	c := console.New(session, roster, mutations, board, os.Stdin, os.Stdout, log)
	if err := c.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func buildTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.TokenStore.Backend {
	case "memory":
		return tokenstore.NewMemory(), nil
	case "redis":
		client, err := tokenstore.Connect(ctx, tokenstore.RedisConfig{
			Addr: cfg.TokenStore.Redis.Addr,
			DB:   cfg.TokenStore.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return tokenstore.NewRedis(client, cfg.TokenStore.Redis.Key), nil
	case "file":
		path := cfg.TokenStore.Path
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("resolve config dir: %w", err)
			}
			path = filepath.Join(dir, "roster-console", "token")
		}
		return tokenstore.NewFile(path)
	default:
		return nil, fmt.Errorf("unknown token store backend %q", cfg.TokenStore.Backend)
	}
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL  string        `env:"ROSTER_API_URL, default=http://localhost:8080"`
	Env         string        `env:"ENV,            default=development"`
	LogLevel    string        `env:"LOG_LEVEL,      default=info"`
	LogPretty   bool          `env:"LOG_PRETTY,     default=true"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,   default=0s"`
	MessageTTL  time.Duration `env:"MESSAGE_TTL,    default=5s"`

	TokenStore TokenStoreConfig
	DevServer  DevServerConfig
}

type TokenStoreConfig struct {
	// Backend selects where the credential slot lives: file, redis, or
	// memory.
	Backend string `env:"TOKEN_STORE, default=file"`
	// Path is the token file location; empty means the OS user config
	// directory.
	Path string `env:"TOKEN_PATH"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR,      default=localhost:6379"`
	DB   int    `env:"REDIS_DB,        default=0"`
	Key  string `env:"REDIS_TOKEN_KEY, default=roster:token"`
}

type DevServerConfig struct {
	Port      string        `env:"PORT,       default=8080"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

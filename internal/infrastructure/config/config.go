package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/bibliotekopol/library-system/pkg/logger"
)

type Config struct {
	Port      string        `env:"PORT,       default=4000"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=8h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	// LoanEventWorkers is the number of sharded activity dispatcher workers.
	LoanEventWorkers int `env:"LOAN_EVENT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bibliotekopol"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) *Config {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}

package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddr         string  `env:"REDIS_ADDR,required"`
	StoreBasePath     string  `env:"STORE_BASE_PATH" envDefault:"StreamersMegagames"`
	DefaultProject    string  `env:"DEFAULT_PROJECT" envDefault:"Megagames"`
	HTTPAddr          string  `env:"HTTP_ADDR" envDefault:":8080"`
	AdminAddr         string  `env:"ADMIN_ADDR" envDefault:":9091"`
	DefaultLimit      int     `env:"DEFAULT_LIMIT" envDefault:"200"`
	DefaultMonthsBack int     `env:"DEFAULT_MONTHS_BACK" envDefault:"3"`
	FetchChunkSize    int     `env:"FETCH_CHUNK_SIZE" envDefault:"100"`
	MaxFanoutDates    int     `env:"MAX_FANOUT_DATES" envDefault:"366"`
	FanoutPerSec      float64 `env:"FANOUT_PER_SEC" envDefault:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

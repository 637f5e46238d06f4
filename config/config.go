package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// Rate source. Schedules are fetched as GET {TaxAPIURL}/{year}.
	TaxAPIURL        string        `env:"TAX_API_URL" envDefault:"http://localhost:5001/tax-calculator/tax-year"`
	TaxAPITimeout    time.Duration `env:"TAX_API_TIMEOUT" envDefault:"5s"`
	TaxAPIMaxRetries uint64        `env:"TAX_API_MAX_RETRIES" envDefault:"3"`

	// Years the boundary accepts; empty disables the allowlist.
	SupportedTaxYears []int `env:"SUPPORTED_TAX_YEARS" envDefault:"2019,2020,2021,2022"`

	// Schedule cache. The in-memory cache is used unless RedisAddr is set.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

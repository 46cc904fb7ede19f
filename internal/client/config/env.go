package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment overlay; unset variables leave the
// corresponding Config field untouched.
type envConfig struct {
	APIBaseURL     string        `env:"REUNITE_API_URL"`
	CacheDSN       string        `env:"REUNITE_CACHE_DSN"`
	RequestTimeout time.Duration `env:"REUNITE_REQUEST_TIMEOUT"`
	RateLimitRPS   float64       `env:"REUNITE_RATE_LIMIT_RPS"`
	RateLimitBurst int           `env:"REUNITE_RATE_LIMIT_BURST"`
	Retries        uint64        `env:"REUNITE_RETRIES"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.CacheDSN != "" {
		cfg.CacheDSN = ec.CacheDSN
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.RateLimitRPS != 0 {
		cfg.RateLimitRPS = ec.RateLimitRPS
	}
	if ec.RateLimitBurst != 0 {
		cfg.RateLimitBurst = ec.RateLimitBurst
	}
	if ec.Retries != 0 {
		cfg.Retries = ec.Retries
	}
}

package config

import "time"

// Config holds runtime settings for the Reunite CLI.
//
// Fields:
//   - APIBaseURL: base URL of the Reunite REST API (no trailing slash).
//   - CacheDSN: path of the local sqlite cache database.
//   - RequestTimeout: per-call timeout; zero lets calls settle on their own.
//   - RateLimitRPS / RateLimitBurst: client-side cap on outgoing calls.
//   - Retries: how many times idempotent GETs are retried on transport failure.
type Config struct {
	APIBaseURL     string
	CacheDSN       string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Retries        uint64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.CacheDSN = "reunite.db"
	c.RequestTimeout = 10 * time.Second
	c.RateLimitRPS = 5
	c.RateLimitBurst = 5
	c.Retries = 2
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

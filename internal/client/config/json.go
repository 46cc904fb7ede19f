package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/reuniteapp/reunite/internal/flagx"
	"github.com/reuniteapp/reunite/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; timex.Duration
// lets intervals be written either as strings like "10s" or as integer
// nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	CacheDSN       string         `json:"cache_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	RateLimitRPS   float64        `json:"rate_limit_rps"`
	RateLimitBurst int            `json:"rate_limit_burst"`
	Retries        uint64         `json:"retries"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// When no file is given the function returns without touching cfg; a file
// that was explicitly requested but cannot be read or parsed panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RateLimitRPS != 0 {
		cfg.RateLimitRPS = jc.RateLimitRPS
	}
	if jc.RateLimitBurst != 0 {
		cfg.RateLimitBurst = jc.RateLimitBurst
	}
	if jc.Retries != 0 {
		cfg.Retries = jc.Retries
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/reuniteapp/reunite/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the Reunite API
//	-d string   path of the local cache database
//	-t int      request timeout in seconds
//
// Only these flags are parsed here; os.Args is filtered first so flags owned
// by other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the Reunite API")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "path of the local cache database")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}

// Package config loads runtime settings for the Reunite CLI from defaults,
// an optional JSON file, environment variables, and command-line flags, in
// that order of precedence.
package config

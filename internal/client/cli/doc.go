// Package cli implements the interactive Reunite client: a REPL that drives
// the session, report, admin, and notification services and renders their
// state to the terminal.
package cli

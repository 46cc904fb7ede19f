// Package state implements the request lifecycle tracker: a small state
// machine recording the progress of the latest remote call issued for one
// entity collection.
package state

import "sync"

// Status is the lifecycle phase of a tracked collection.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Tracker records the lifecycle of requests issued for a single collection.
//
// Transitions:
//
//	idle|succeeded|failed --Begin--> loading
//	loading --Succeed--> succeeded (error cleared)
//	loading --Fail-->    failed    (error stored, prior data untouched)
//
// Re-issuing while loading is permitted. By default the last completion to
// arrive wins, regardless of issue order. With WithFencing enabled, a
// completion whose sequence number is older than the most recently issued
// request is discarded as stale.
type Tracker struct {
	mu      sync.Mutex
	status  Status
	err     string
	fencing bool
	seq     uint64
}

type Option func(*Tracker)

// WithFencing makes stale completions no-ops instead of last-wins.
func WithFencing() Option {
	return func(t *Tracker) { t.fencing = true }
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{status: StatusIdle}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin marks the collection loading and returns the sequence number of the
// issued request. The stored error is cleared.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.status = StatusLoading
	t.err = ""
	return t.seq
}

// Succeed records a successful completion of request seq. It reports whether
// the completion was applied; callers must not apply response data when it
// returns false.
func (t *Tracker) Succeed(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(seq) {
		return false
	}
	t.status = StatusSucceeded
	t.err = ""
	return true
}

// Fail records a failed completion of request seq with a human-readable
// message. Previously loaded data is not touched by the tracker; collections
// keep stale data visible on error.
func (t *Tracker) Fail(seq uint64, msg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(seq) {
		return false
	}
	t.status = StatusFailed
	t.err = msg
	return true
}

func (t *Tracker) stale(seq uint64) bool {
	return t.fencing && seq != t.seq
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Tracker) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Loading reports whether a request is currently in flight; callers use it to
// disable duplicate submits.
func (t *Tracker) Loading() bool {
	return t.Status() == StatusLoading
}

// Reset returns the tracker to idle and clears the error.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusIdle
	t.err = ""
}

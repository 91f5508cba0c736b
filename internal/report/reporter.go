// Package report delivers convergence outcomes to operators and to the
// optional outcome journal. Exactly one outcome line and one raw diagnostic
// line leave this package per invocation; internal sub-steps of the engine
// (notably the backup copy) suppress reporting around themselves so their
// plumbing never leaks extra lines.
package report

import (
	"log/slog"
	"sync"
)

// Entry is one reported invocation outcome.
type Entry struct {
	RunToken    string // per-invocation token, time-sortable
	Class       string // class identity over the full request tuple
	LegacyClass string // path-only class identity for older consumers
	Key         string // content-addressed correlation key
	Status      string // "success" | "repaired" | "failure"
	Message     string // human-readable report line
	RawOutput   string // full unclassified tool output
}

// Reporter writes entries to the log and, when configured, to the journal.
type Reporter struct {
	log     *slog.Logger
	journal *Journal

	mu         sync.Mutex
	suppressed int
}

// New returns a Reporter over the given logger. journal may be nil.
func New(log *slog.Logger, journal *Journal) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{log: log, journal: journal}
}

// Suppress disables reporting until the returned restore function runs.
// Suppression nests; callers must invoke restore on every exit path:
//
//	defer r.Suppress()()
func (r *Reporter) Suppress() (restore func()) {
	r.mu.Lock()
	r.suppressed++
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.suppressed--
			r.mu.Unlock()
		})
	}
}

// Emit reports one invocation outcome: the outcome line, the raw
// diagnostic line, and a journal row when a journal is attached.
// Journal write failures are logged and absorbed; reporting never turns a
// decided outcome into an error.
func (r *Reporter) Emit(e Entry) {
	r.mu.Lock()
	suppressed := r.suppressed > 0
	r.mu.Unlock()
	if suppressed {
		return
	}

	r.log.Info(e.Message,
		"result", e.Status,
		"class", e.Class,
		"legacy_class", e.LegacyClass,
		"key", e.Key,
		"run", e.RunToken,
	)
	r.log.Debug("tool output", "run", e.RunToken, "raw", e.RawOutput)

	if r.journal != nil {
		if err := r.journal.Append(e); err != nil {
			r.log.Error("journal append failed", "run", e.RunToken, "error", err)
		}
	}
}

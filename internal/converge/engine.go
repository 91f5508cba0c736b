// Package converge implements the three-phase evaluation engine behind the
// augeas-set action: build and execute the tool invocation, classify its
// output and take the backup side effect, then decide and report a single
// three-valued outcome.
//
// The phases are strictly sequential and forward-only. Each phase returns
// an immutable snapshot of the facts it established, and later phases only
// read snapshots from earlier ones. No retries happen anywhere: one
// invocation is one attempt, and retry policy belongs to the caller.
//
// Two concurrent invocations against the same backing file are not
// mutually excluded here and may race on the file and its backup artifact.
package converge

import (
	"context"
	"fmt"

	"github.com/clebergnu/ncf/internal/augtool"
	"github.com/clebergnu/ncf/internal/classify"
	"github.com/clebergnu/ncf/internal/files"
	"github.com/clebergnu/ncf/internal/ident"
	"github.com/clebergnu/ncf/internal/report"
)

// DefaultBackupSuffix is appended to the backing file's path to form the
// durable backup artifact.
const DefaultBackupSuffix = ".ncf-bak"

// transientSuffix names the sibling artifact the tool leaves behind after
// a save; the backup step preserves it and then always removes it.
const transientSuffix = ".new"

// Sink receives the engine's reports. *report.Reporter is the production
// implementation.
type Sink interface {
	Emit(report.Entry)
	Suppress() (restore func())
}

// Engine runs augeas-set actions to convergence.
type Engine struct {
	Tool  augtool.Runner
	Files files.Provisioner
	Sink  Sink

	// BackupSuffix overrides DefaultBackupSuffix when non-empty.
	BackupSuffix string

	// Tokens generates run tokens; defaults to UUIDv7Generator.
	Tokens TokenGenerator
}

// Run evaluates one request and reports exactly one outcome. Failures of
// every kind are absorbed into the outcome; Run never returns a Go error.
func (e *Engine) Run(ctx context.Context, req Request) Outcome {
	ec := e.execute(ctx, req)

	var facts classify.Facts
	var rec BackupRecord
	if ec.ToolAvailable {
		facts = classify.Output([]byte(ec.RawOutput), ec.FileScoped)
		rec = e.backup(req, facts)
	}

	out := e.decide(req, ec, facts, rec)
	e.Sink.Emit(report.Entry{
		RunToken:    out.RunToken,
		Class:       out.Class,
		LegacyClass: out.LegacyClass,
		Key:         out.Key,
		Status:      out.Status.String(),
		Message:     out.Message,
		RawOutput:   ec.RawOutput,
	})
	return out
}

// execute is phase one: derive the command line, check tool presence, and
// run the tool. The command is derived even when the tool is missing (it
// is a pure function of the request); it is only ever executed when the
// binary exists.
func (e *Engine) execute(ctx context.Context, req Request) ExecutionContext {
	ec := ExecutionContext{
		FileScoped: req.FileScoped(),
		Command:    e.Tool.Command(req.Path, req.Value, req.Lens, req.File),
	}
	if !e.Tool.Available() {
		return ec
	}
	ec.ToolAvailable = true
	ec.RawOutput = e.Tool.Run(ctx, ec.Command)
	return ec
}

// decide is phase three: fold tool availability, classification and the
// backup record into the final outcome.
func (e *Engine) decide(req Request, ec ExecutionContext, facts classify.Facts, rec BackupRecord) Outcome {
	out := Outcome{
		Class:       ident.Class(req.Path, req.Value, req.Lens, req.File),
		LegacyClass: ident.LegacyClass(req.Path),
		Key:         ident.Key(req.Path, req.Value, req.Lens, req.File),
		RunToken:    e.tokens().Generate(),
		Facts:       facts,
		Backup:      rec,
	}

	switch {
	case !ec.ToolAvailable:
		out.Status = StatusFailure
		out.Message = fmt.Sprintf("Could not set Augeas path %s to %s: augtool does not exist", req.Path, req.Value)

	case facts.Error:
		out.Status = StatusFailure
		out.Message = fmt.Sprintf("Could not set Augeas path %s to %s", req.Path, req.Value)

	case facts.Repaired && rec.Attempted && !rec.Succeeded:
		out.Status = StatusFailure
		out.Message = fmt.Sprintf("Set Augeas path %s to %s but failed to preserve a backup of %s", req.Path, req.Value, req.File)

	case facts.Repaired:
		out.Status = StatusRepaired
		out.Message = fmt.Sprintf("Set Augeas path %s to %s", req.Path, req.Value)

	case facts.Kept:
		out.Status = StatusSuccess
		out.Message = fmt.Sprintf("Augeas path %s already set to %s", req.Path, req.Value)

	default:
		// Unreachable: the classifier failsafe sets Error whenever
		// neither Kept nor Repaired matched. Kept as a guard.
		out.Status = StatusFailure
		out.Message = fmt.Sprintf("Could not set Augeas path %s to %s", req.Path, req.Value)
	}
	return out
}

func (e *Engine) tokens() TokenGenerator {
	if e.Tokens != nil {
		return e.Tokens
	}
	return UUIDv7Generator{}
}

func (e *Engine) backupSuffix() string {
	if e.BackupSuffix != "" {
		return e.BackupSuffix
	}
	return DefaultBackupSuffix
}

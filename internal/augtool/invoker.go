package augtool

import (
	"context"
	"os"
	"os/exec"
)

// Runner abstracts the external tool for the convergence engine. Tests
// substitute fakes; Shell is the production implementation.
type Runner interface {
	// Available reports whether the resolved tool binary exists on disk.
	Available() bool

	// Command derives the shell command line for one set operation. The
	// derivation is a pure function of the request parameters.
	Command(path, value, lens, file string) string

	// Run executes a shell command line and returns its combined
	// stdout+stderr. The exit status is deliberately discarded: output
	// classification is authoritative, and failures to start the shell at
	// all surface as empty output, which the failsafe turns into an error.
	Run(ctx context.Context, command string) string
}

// Shell runs commands through /bin/sh against a resolved tool path.
type Shell struct {
	// Tool is the resolved path of the augtool binary.
	Tool string
}

// NewShell returns a Shell runner for the given resolved tool path.
func NewShell(tool string) Shell {
	return Shell{Tool: tool}
}

// Available checks the resolved tool path for existence. No version or
// executability probing is done; presence on disk is the whole predicate.
func (s Shell) Available() bool {
	_, err := os.Stat(s.Tool)
	return err == nil
}

// Command derives the shell command line against the resolved tool path.
func (s Shell) Command(path, value, lens, file string) string {
	return CommandLine(s.Tool, path, value, lens, file)
}

// Run executes command via the shell, blocking until it finishes. No
// timeout is imposed here; cancellation belongs to the caller's context.
func (s Shell) Run(ctx context.Context, command string) string {
	out, _ := exec.CommandContext(ctx, "/bin/sh", "-c", command).CombinedOutput()
	return string(out)
}

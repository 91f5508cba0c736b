package cli

import (
	"fmt"
	"log/slog"

	"github.com/clebergnu/ncf/internal/augtool"
	"github.com/clebergnu/ncf/internal/config"
	"github.com/clebergnu/ncf/internal/converge"
	"github.com/clebergnu/ncf/internal/files"
	"github.com/clebergnu/ncf/internal/report"
)

// buildEngine wires the convergence engine from resolved settings. The
// returned cleanup closes the journal when one was opened; it is safe to
// call unconditionally.
func buildEngine(opts *RootOptions) (*converge.Engine, func(), error) {
	settings, err := config.Load(opts.Settings)
	if err != nil {
		return nil, func() {}, WrapExitError(ExitCommandError, "failed to load settings", err)
	}

	journalPath := settings.Journal
	if opts.Journal != "" {
		journalPath = opts.Journal
	}

	var journal *report.Journal
	cleanup := func() {}
	if journalPath != "" {
		journal, err = report.OpenJournal(journalPath)
		if err != nil {
			return nil, func() {}, WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		cleanup = func() {
			if closeErr := journal.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}
	}

	tool := settings.ToolPath("augtool")
	if tool == "" {
		cleanup()
		return nil, func() {}, NewExitError(ExitCommandError, "no augtool path configured")
	}

	eng := &converge.Engine{
		Tool:         augtool.NewShell(tool),
		Files:        files.OS{},
		Sink:         report.New(slog.Default(), journal),
		BackupSuffix: settings.BackupSuffix,
	}
	return eng, cleanup, nil
}

// journalFromOptions opens the configured journal for read-only commands.
func journalFromOptions(opts *RootOptions) (*report.Journal, error) {
	settings, err := config.Load(opts.Settings)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load settings", err)
	}

	journalPath := settings.Journal
	if opts.Journal != "" {
		journalPath = opts.Journal
	}
	if journalPath == "" {
		return nil, NewExitError(ExitCommandError, "no journal configured (use --journal or the settings file)")
	}

	journal, err := report.OpenJournal(journalPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to open journal %s", journalPath), err)
	}
	return journal, nil
}

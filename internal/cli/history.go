package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clebergnu/ncf/internal/report"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Key   string
	Limit int
}

// historyRow is the output payload for one journal entry.
type historyRow struct {
	CreatedAt string `json:"created_at"`
	Result    string `json:"result"`
	Message   string `json:"message"`
	Key       string `json:"key"`
	RunToken  string `json:"run_token"`
}

type historyOutput []historyRow

func (h historyOutput) String() string {
	if len(h) == 0 {
		return "no recorded outcomes"
	}
	var b strings.Builder
	for i, r := range h {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-8s  %s", r.CreatedAt, r.Result, r.Message)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded outcomes from the journal",
		Long: `Show outcomes recorded in the journal, newest first.

With --key, show every run recorded under one correlation key instead,
oldest first, so repeated runs of the same request read as a timeline.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Key, "key", "", "correlation key to filter on")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to show")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	journal, err := journalFromOptions(opts.RootOptions)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	rows, err := loadHistory(opts, journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	out := make(historyOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, historyRow{
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
			Result:    r.Status,
			Message:   r.Message,
			Key:       r.Key,
			RunToken:  r.RunToken,
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err := formatter.Success(out); err != nil {
		return WrapExitError(ExitCommandError, "failed to write history", err)
	}
	return nil
}

func loadHistory(opts *HistoryOptions, journal *report.Journal) ([]report.Row, error) {
	if opts.Key != "" {
		return journal.ByKey(opts.Key)
	}
	return journal.Recent(opts.Limit)
}

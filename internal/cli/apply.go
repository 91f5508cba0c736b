package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clebergnu/ncf/internal/converge"
)

// applySummary aggregates the outcomes of one plan run.
type applySummary struct {
	Actions  []setResult `json:"actions"`
	Success  int         `json:"success"`
	Repaired int         `json:"repaired"`
	Failure  int         `json:"failure"`
}

func (s applySummary) String() string {
	var b strings.Builder
	for _, a := range s.Actions {
		fmt.Fprintf(&b, "%s\n", a)
	}
	fmt.Fprintf(&b, "%d actions: %d success, %d repaired, %d failure",
		len(s.Actions), s.Success, s.Repaired, s.Failure)
	return b.String()
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <plan>",
		Short: "Run a CUE plan of augeas-set actions",
		Long: `Run every action of a plan, in declaration order.

A plan is a CUE file (or directory of CUE files) with an actions list:

  actions: [
    {path: "/etc/hosts/1/ipaddr", value: "192.168.1.5"},
    {path: "/etc/hosts/1/canonical", value: "host01", lens: "Hosts", file: "/etc/hosts"},
  ]

Each action runs to its own outcome; a failing action does not stop the
plan. The command exits non-zero when any action failed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runApply(opts *RootOptions, planPath string, cmd *cobra.Command) error {
	requests, err := LoadPlan(planPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load plan", err)
	}

	eng, cleanup, err := buildEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var summary applySummary
	for _, req := range requests {
		out := eng.Run(ctx, req)
		summary.Actions = append(summary.Actions, newSetResult(out))
		switch out.Status {
		case converge.StatusSuccess:
			summary.Success++
		case converge.StatusRepaired:
			summary.Repaired++
		default:
			summary.Failure++
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err := formatter.Success(summary); err != nil {
		return WrapExitError(ExitCommandError, "failed to write summary", err)
	}

	if summary.Failure > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d actions failed", summary.Failure, len(summary.Actions)))
	}
	return nil
}

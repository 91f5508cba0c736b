package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clebergnu/ncf/internal/converge"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Lens string
	File string
}

// setResult is the output payload for one action run.
type setResult struct {
	Result      string `json:"result"`
	Message     string `json:"message"`
	Class       string `json:"class"`
	LegacyClass string `json:"legacy_class"`
	Key         string `json:"key"`
	RunToken    string `json:"run_token"`
}

func (r setResult) String() string {
	return fmt.Sprintf("%s: %s", r.Result, r.Message)
}

func newSetResult(out converge.Outcome) setResult {
	return setResult{
		Result:      out.Status.String(),
		Message:     out.Message,
		Class:       out.Class,
		LegacyClass: out.LegacyClass,
		Key:         out.Key,
		RunToken:    out.RunToken,
	}
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a value at an Augeas tree path",
		Long: `Set a value at an Augeas tree path and report the convergence result.

Without --lens/--file, augtool autoloads every known lens and file and the
action succeeds when the tool stays silent. With --lens and --file, only the
named lens is loaded against the named file, an explicit error listing is
requested, and any applied edit is preserved as a backup artifact next to
the file before the action may report "repaired".

Example:
  ncf set /etc/hosts/1/ipaddr 192.168.1.5
  ncf set /etc/hosts/1/ipaddr 192.168.1.5 --lens Hosts --file /etc/hosts`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lens, "lens", "", "Augeas lens to load for --file")
	cmd.Flags().StringVar(&opts.File, "file", "", "config file to load with --lens")
	cmd.MarkFlagsRequiredTogether("lens", "file")

	return cmd
}

func runSet(opts *SetOptions, path, value string, cmd *cobra.Command) error {
	if path == "" {
		return NewExitError(ExitCommandError, "path must not be empty")
	}

	eng, cleanup, err := buildEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := eng.Run(ctx, converge.Request{
		Path:  path,
		Value: value,
		Lens:  opts.Lens,
		File:  opts.File,
	})

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err := formatter.Success(newSetResult(out)); err != nil {
		return WrapExitError(ExitCommandError, "failed to write result", err)
	}

	if out.Status == converge.StatusFailure {
		return NewExitError(ExitFailure, out.Message)
	}
	return nil
}

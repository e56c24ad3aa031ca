package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/t0mt0mm/fusa-calc/internal/selfcheck"
)

// SelfcheckResult holds the overall selfcheck outcome.
type SelfcheckResult struct {
	Checks []selfcheck.CheckResult `json:"checks"`
	Passed int                     `json:"passed"`
	Failed int                     `json:"failed"`
	Total  int                     `json:"total"`
}

// NewSelfcheckCommand creates the selfcheck command.
func NewSelfcheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the built-in verification suite",
		Long: `Run the engine's built-in checks: SIL classification at and just
below every documented boundary value for both demand modes, the
calculator's reference values and edge cases (division guard, zero-beta
reduction, invalid ratio/beta rejection), colour normalization and the
counted-once partition invariant.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfcheck(rootOpts, cmd)
		},
	}
	return cmd
}

func runSelfcheck(opts *RootOptions, cmd *cobra.Command) error {
	checks := selfcheck.Run()

	result := SelfcheckResult{Checks: checks, Total: len(checks)}
	for _, c := range checks {
		if c.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if result.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_SELFCHECK_FAILED",
				Message: fmt.Sprintf("%d check(s) failed", result.Failed),
			}
		}
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		w := f.Writer
		for _, c := range checks {
			if c.Pass {
				if opts.Verbose {
					fmt.Fprintf(w, "✓ %s\n", c.Name)
				}
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", c.Name)
			if c.Detail != "" {
				fmt.Fprintf(w, "  %s\n", c.Detail)
			}
		}
		fmt.Fprintf(w, "Selfcheck: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d check(s) failed", result.Failed))
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
	"github.com/t0mt0mm/fusa-calc/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	AuditDB string // path to the SQLite audit log; empty disables auditing
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <sifu.yaml>",
		Short: "Aggregate a SIFU and classify the result",
		Long: `Evaluate a SIFU definition file: partition its components into
colour-keyed subgroups, compute per-channel and redundant-pair metrics,
sum the contributions and classify the total against the SIL bands for
the effective demand mode.

Exit codes:
  0 - Evaluation succeeded
  1 - Validation failure (invalid component record or assumptions)
  2 - Command error (unreadable file, schema violation)

Examples:
  fusa-calc eval plant/sifu-017.yaml
  fusa-calc eval plant/sifu-017.yaml --format json
  fusa-calc eval plant/sifu-017.yaml --audit-db audits.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuditDB, "audit-db", "", "append the run to a SQLite audit log at this path")

	return cmd
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, asm, err := LoadSIFUFile(path)
	if err != nil {
		if code := sifu.CodeOf(err); code != "" {
			f.Error(string(code), err.Error(), nil)
			return WrapExitError(ExitFailure, "validation failed", err)
		}
		f.Error(ErrCodeSchema, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load SIFU file", err)
	}
	f.VerboseLog("loaded %s: %d components, mode %s", path, len(s.Components), s.EffectiveMode())

	res, err := aggregate.Aggregate(s, asm)
	if err != nil {
		code := sifu.CodeOf(err)
		if code == "" {
			code = ErrCodeInvalidSIFU
		}
		f.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitFailure, "aggregation failed", err)
	}

	var runID string
	if opts.AuditDB != "" {
		runID, err = recordAudit(opts.AuditDB, res)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write audit log", err)
		}
		f.VerboseLog("audit run %s recorded in %s", runID, opts.AuditDB)
	}

	if opts.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   res,
			RunID:  runID,
		})
	}
	writeEvalText(f, res)
	return nil
}

func recordAudit(path string, res *aggregate.Result) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()
	return st.RecordEvaluation(context.Background(), res)
}

// writeEvalText renders the breakdown the way the report tables do:
// subgroups first, then lane residuals, then totals and classification.
func writeEvalText(f *OutputFormatter, res *aggregate.Result) {
	w := f.Writer

	fmt.Fprintf(w, "%s (%s)\n", res.SIFU, res.Mode)
	for _, sg := range res.Subgroups {
		labels := make([]string, len(sg.Members))
		for i, m := range sg.Members {
			labels[i] = m.ID
		}
		note := ""
		if sg.Degraded {
			note = " [approximate]"
		}
		if sg.SingleLane {
			note += " [single lane]"
		}
		fmt.Fprintf(w, "  subgroup %s (%s, %d members: %s)%s\n",
			sg.Colour, sg.Architecture, sg.Count, strings.Join(labels, ", "), note)
		fmt.Fprintf(w, "    PFDavg %.6e  PFH %.6e [1/h]\n", sg.Metrics.PFDavg, sg.Metrics.PFH)
	}
	for _, lr := range res.LaneResiduals {
		fmt.Fprintf(w, "  %s residual (%d components)\n", lr.Lane, len(lr.Members))
		fmt.Fprintf(w, "    PFDavg %.6e  PFH %.6e [1/h]\n", lr.Metrics.PFDavg, lr.Metrics.PFH)
	}

	fmt.Fprintf(w, "  total PFDavg %.6e  PFH %.6e [1/h]\n", res.TotalMetrics.PFDavg, res.TotalMetrics.PFH)
	fmt.Fprintf(w, "  calculated: %s", res.BandLabel)
	if res.RequiredSIL > 0 {
		status := "OK"
		if !res.MeetsRequired {
			status = "NOT OK"
		}
		fmt.Fprintf(w, " (required SIL %d: %s)", res.RequiredSIL, status)
	}
	if res.Degraded {
		fmt.Fprint(w, " [contains approximate subgroup figures]")
	}
	fmt.Fprintln(w)
}

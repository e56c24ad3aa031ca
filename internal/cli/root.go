// Package cli implements the fusa-calc command line interface.
//
// Commands:
//
//	eval       aggregate a SIFU definition and classify the result
//	validate   schema- and semantics-check a SIFU definition
//	selfcheck  run the built-in boundary/edge-case verification suite
//	test       run conformance scenarios with golden comparison
//
// All commands honor the global --format (text|json) and --verbose flags.
// Exit codes: 0 success, 1 check/validation failure, 2 command error.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fusa-calc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fusa-calc",
		Short: "SIL reliability aggregation for safety functions",
		Long: "fusa-calc computes PFDavg/PFH figures for safety functions (SIFUs)\n" +
			"assembled from sensor, logic and output components, and classifies\n" +
			"the aggregated result against IEC-61508-style SIL bands.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSelfcheckCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/t0mt0mm/fusa-calc/internal/relcalc"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// ValidateResult is the payload of a successful validate run.
type ValidateResult struct {
	Path       string `json:"path"`
	SIFU       string `json:"sifu"`
	Components int    `json:"components"`
	Mode       string `json:"mode"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <sifu.yaml>",
		Short: "Validate a SIFU definition without evaluating it",
		Long: `Check a SIFU definition file against the schema and the semantic
rules: known lanes and demand modes, unique identifiers, resolvable
rates for every component, fractions within range.

Exit codes:
  0 - File is valid
  1 - Validation failure
  2 - Command error (unreadable file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
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
		var le *LoadError
		if errors.As(err, &le) && le.Code == ErrCodeSchema {
			f.Error(le.Code, le.Message, nil)
			return WrapExitError(ExitFailure, "schema validation failed", err)
		}
		f.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load SIFU file", err)
	}

	// Dry-run rate resolution so missing or inconsistent rate data is
	// reported here, not first at evaluation time.
	mode := s.EffectiveMode()
	for i := range s.Components {
		if _, err := relcalc.ResolveRates(&s.Components[i], mode, asm); err != nil {
			f.Error(string(sifu.CodeOf(err)), err.Error(), nil)
			return WrapExitError(ExitFailure, "validation failed", err)
		}
	}

	if opts.Format == "json" {
		return f.Success(ValidateResult{
			Path:       path,
			SIFU:       s.Name,
			Components: len(s.Components),
			Mode:       string(mode),
		})
	}
	fmt.Fprintf(f.Writer, "✓ %s: %d components, mode %s\n", s.Name, len(s.Components), mode)
	return nil
}

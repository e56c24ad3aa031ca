// Package harness provides a conformance scenario runner for the
// reliability aggregation engine.
//
// A scenario is a YAML file bundling a SIFU definition with expectations:
// the totals the aggregation must produce (within a relative tolerance),
// the SIL band, or the validation error code the input must be rejected
// with. Scenario results can additionally be compared against golden
// files holding the full canonical result JSON, so any change to the
// breakdown shape or the numerics is caught byte-for-byte.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// DefaultRelTol is the relative tolerance applied to expected totals when
// the scenario does not set one.
const DefaultRelTol = 1e-9

// Scenario defines one conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// SIFU is the safety function under evaluation, in the same document
	// shape the eval command consumes.
	SIFU sifu.Document `yaml:"sifu"`

	// Expect holds the assertions on the aggregation outcome.
	Expect Expect `yaml:"expect"`
}

// Expect specifies the assertions for a scenario. Either Error is set (the
// input must be rejected with that validation code) or any combination of
// the value assertions applies.
type Expect struct {
	// PFDavg and PFH assert the summed totals, within RelTol.
	PFDavg *float64 `yaml:"pfd_avg,omitempty"`
	PFH    *float64 `yaml:"pfh,omitempty"`

	// SIL asserts the classified band label, e.g. "SIL 2" or "out of range".
	SIL string `yaml:"sil,omitempty"`

	// Degraded asserts the degraded-approximation flag.
	Degraded *bool `yaml:"degraded,omitempty"`

	// MeetsRequired asserts the required-SIL comparison outcome.
	MeetsRequired *bool `yaml:"meets_required,omitempty"`

	// RelTol overrides the relative comparison tolerance for totals.
	RelTol float64 `yaml:"rel_tol,omitempty"`

	// Error names the validation code the aggregation must fail with,
	// e.g. "INVALID_RATIO". Mutually exclusive with the value assertions.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and decodes one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Expect.Error != "" && (s.Expect.PFDavg != nil || s.Expect.PFH != nil || s.Expect.SIL != "") {
		return nil, fmt.Errorf("scenario %s: expect.error excludes value assertions", path)
	}
	return &s, nil
}

// FindScenarioFiles walks a directory for YAML scenario files, optionally
// filtered by a glob pattern on the base name. Results are sorted so runs
// are deterministic.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

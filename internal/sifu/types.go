package sifu

import "fmt"

// Lane identifies which of the three SIFU lanes a component sits in.
type Lane string

const (
	LaneSensor Lane = "sensor"
	LaneLogic  Lane = "logic"
	LaneOutput Lane = "output"
)

// Lanes returns the three lanes in canonical evaluation order.
func Lanes() []Lane {
	return []Lane{LaneSensor, LaneLogic, LaneOutput}
}

// Valid reports whether the lane is one of the three known lanes.
func (l Lane) Valid() bool {
	switch l {
	case LaneSensor, LaneLogic, LaneOutput:
		return true
	}
	return false
}

// DemandMode selects which metric a SIFU evaluation produces.
// Low demand yields PFDavg, high/continuous demand yields PFH.
type DemandMode string

const (
	LowDemand  DemandMode = "low_demand"
	HighDemand DemandMode = "high_demand"
)

// ParseDemandMode converts a string from an input file into a DemandMode.
func ParseDemandMode(s string) (DemandMode, error) {
	switch DemandMode(s) {
	case LowDemand, HighDemand:
		return DemandMode(s), nil
	}
	return "", fmt.Errorf("unsupported demand mode: %q", s)
}

// ComponentRecord describes one component's reliability parameters.
//
// A record carries either precomputed figures (PFDavg, PFH) or raw rate
// parameters (LambdaDU/LambdaDD, or LambdaD plus RatioDU/RatioDD). Nil
// pointers mean "not supplied"; TI, MTTR, Beta and BetaD fall back to the
// global assumptions when absent. Colour is the raw subgroup tag as entered;
// partition.NormalizeColour derives the grouping key from it.
type ComponentRecord struct {
	// ID uniquely identifies the component within its SIFU.
	ID string

	// Lane is the SIFU lane the component belongs to.
	Lane Lane

	// Colour is the raw link-colour tag; empty means ungrouped.
	Colour string

	// DemandMode restricts the record to one demand mode. Empty means the
	// record applies to whichever mode the SIFU evaluates under. Paired
	// channels with conflicting modes are rejected.
	DemandMode DemandMode

	// Precomputed figures from a manufacturer datasheet or catalogue.
	PFDavg *float64
	PFH    *float64

	// Raw rate parameters (per hour).
	LambdaDU *float64
	LambdaDD *float64
	LambdaD  *float64

	// DU/DD split fractions, used when only LambdaD or precomputed figures
	// are supplied. Must sum to 1 when both are present.
	RatioDU *float64
	RatioDD *float64

	// Per-component overrides of the global assumptions.
	Beta  *float64
	BetaD *float64
	TI    *float64
	MTTR  *float64
}

// HasColour reports whether the record carries a non-empty colour tag.
func (c *ComponentRecord) HasColour() bool {
	return c.Colour != ""
}

// SIFU is the evaluation unit: a named safety function with three lanes of
// component records, an active demand mode, and an optional required SIL.
type SIFU struct {
	// Name labels the safety function in results and audit rows.
	Name string

	// RequiredSIL is the declared target rank 1-4; 0 means none declared.
	RequiredSIL int

	// DemandMode is the required demand mode from the C/E matrix.
	DemandMode DemandMode

	// DemandModeOverride, when set, takes precedence over DemandMode for
	// the current evaluation.
	DemandModeOverride DemandMode

	// Components holds every record of the SIFU in declaration order.
	// Lane membership is carried on each record.
	Components []ComponentRecord
}

// EffectiveMode returns the demand mode the evaluation runs under:
// the override when set, else the required mode.
func (s *SIFU) EffectiveMode() DemandMode {
	if s.DemandModeOverride != "" {
		return s.DemandModeOverride
	}
	return s.DemandMode
}

// LaneComponents returns pointers to the records of one lane, in
// declaration order.
func (s *SIFU) LaneComponents(lane Lane) []*ComponentRecord {
	var out []*ComponentRecord
	for i := range s.Components {
		if s.Components[i].Lane == lane {
			out = append(out, &s.Components[i])
		}
	}
	return out
}

// Validate checks structural invariants that do not depend on assumptions:
// known lanes, known demand modes, and identifier uniqueness.
func (s *SIFU) Validate() error {
	seen := make(map[string]struct{}, len(s.Components))
	for i := range s.Components {
		c := &s.Components[i]
		if c.ID == "" {
			return NewInvalidParameter("", "id", "component identifier must not be empty")
		}
		if !c.Lane.Valid() {
			return NewInvalidParameter(c.ID, "lane", fmt.Sprintf("unknown lane %q", c.Lane))
		}
		if c.DemandMode != "" && c.DemandMode != LowDemand && c.DemandMode != HighDemand {
			return NewInvalidParameter(c.ID, "demand_mode", fmt.Sprintf("unknown demand mode %q", c.DemandMode))
		}
		if _, dup := seen[c.ID]; dup {
			return NewInvalidParameter(c.ID, "id", "duplicate component identifier")
		}
		seen[c.ID] = struct{}{}
	}
	if s.DemandMode != LowDemand && s.DemandMode != HighDemand {
		return fmt.Errorf("sifu %q: unsupported demand mode %q", s.Name, s.DemandMode)
	}
	if s.DemandModeOverride != "" && s.DemandModeOverride != LowDemand && s.DemandModeOverride != HighDemand {
		return fmt.Errorf("sifu %q: unsupported demand mode override %q", s.Name, s.DemandModeOverride)
	}
	if s.RequiredSIL < 0 || s.RequiredSIL > 4 {
		return fmt.Errorf("sifu %q: required SIL must be 1-4, got %d", s.Name, s.RequiredSIL)
	}
	return nil
}

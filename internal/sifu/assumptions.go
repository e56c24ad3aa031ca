package sifu

import (
	"fmt"
	"math"
)

// Assumptions holds the global calculation assumptions, in hours and
// fractions. Exactly these four fields are recognized; input files may
// carry extra keys but they are ignored.
type Assumptions struct {
	// TI is the proof-test interval in hours.
	TI float64

	// MTTR is the mean time to repair in hours.
	MTTR float64

	// Beta is the common-cause fraction for dangerous undetected failures.
	Beta float64

	// BetaD is the common-cause fraction for dangerous detected failures.
	BetaD float64
}

// DefaultAssumptions returns the standard defaults: one year proof-test
// interval, 8 h repair time, 10% / 2% common-cause fractions.
func DefaultAssumptions() Assumptions {
	return Assumptions{TI: 8760, MTTR: 8, Beta: 0.10, BetaD: 0.02}
}

// Validate rejects non-finite or out-of-range assumption values.
func (a Assumptions) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"ti", a.TI},
		{"mttr", a.MTTR},
		{"beta", a.Beta},
		{"beta_d", a.BetaD},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return NewInvalidParameter("", f.name, fmt.Sprintf("assumption %s must be finite", f.name))
		}
		if f.value < 0 {
			return NewInvalidParameter("", f.name, fmt.Sprintf("assumption %s must be non-negative", f.name))
		}
	}
	if a.Beta > 1 {
		return NewInvalidBeta("", "beta", a.Beta)
	}
	if a.BetaD > 1 {
		return NewInvalidBeta("", "beta_d", a.BetaD)
	}
	return nil
}

// AssumptionsPatch is the YAML shape of an assumptions block. Nil fields
// keep the base value. Unknown keys in the block are ignored by design.
type AssumptionsPatch struct {
	TI    *float64 `yaml:"ti"`
	MTTR  *float64 `yaml:"mttr"`
	Beta  *float64 `yaml:"beta"`
	BetaD *float64 `yaml:"beta_d"`
}

// Apply overlays the patch on a base set of assumptions.
func (p *AssumptionsPatch) Apply(base Assumptions) Assumptions {
	if p == nil {
		return base
	}
	out := base
	if p.TI != nil {
		out.TI = *p.TI
	}
	if p.MTTR != nil {
		out.MTTR = *p.MTTR
	}
	if p.Beta != nil {
		out.Beta = *p.Beta
	}
	if p.BetaD != nil {
		out.BetaD = *p.BetaD
	}
	return out
}

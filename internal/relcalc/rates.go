package relcalc

import (
	"fmt"
	"math"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// Provenance states how a channel's dangerous failure rates were obtained.
type Provenance string

const (
	// ProvenanceNative means λDU/λDD (or λD) were supplied directly.
	ProvenanceNative Provenance = "native"

	// ProvenanceDerivedPFD means λ was derived from a precomputed PFDavg
	// via λ = 2·PFDavg/TI (low-demand derivation).
	ProvenanceDerivedPFD Provenance = "derived_from_pfd"

	// ProvenanceDerivedPFH means λ was taken from a precomputed PFH
	// (high-demand derivation).
	ProvenanceDerivedPFH Provenance = "derived_from_pfh"

	// ProvenanceMixed marks a redundant pair whose channels resolved with
	// different provenances.
	ProvenanceMixed Provenance = "mixed"
)

// Default DU/DD split applied when a record needs a ratio split but
// carries no fractions. Matches the catalogue convention of 60%
// undetected / 40% detected dangerous failures.
const (
	DefaultRatioDU = 0.6
	DefaultRatioDD = 0.4
)

// RatioTolerance bounds the accepted deviation of rDU+rDD from 1.
const RatioTolerance = 1e-9

// Rates holds a channel's resolved dangerous failure rates in 1/h.
type Rates struct {
	LambdaDU   float64
	LambdaDD   float64
	Provenance Provenance
}

// LambdaD returns the total dangerous failure rate λDU+λDD.
func (r Rates) LambdaD() float64 {
	return r.LambdaDU + r.LambdaDD
}

// ResolveRates derives λDU and λDD for one component record.
//
// Resolution order: native λDU/λDD, then λD split by DU/DD fractions, then
// derivation from PFH (high demand) or PFDavg (low demand). A record that
// supplies none of these fails with MISSING_RATE.
func ResolveRates(c *sifu.ComponentRecord, mode sifu.DemandMode, asm sifu.Assumptions) (Rates, error) {
	if err := ValidateRecord(c); err != nil {
		return Rates{}, err
	}

	// Native rates win over everything else. Supplying only one of the
	// two is an input error, not a defaultable gap.
	if c.LambdaDU != nil || c.LambdaDD != nil {
		if c.LambdaDU == nil {
			return Rates{}, sifu.NewMissingRate(c.ID, "lambda_du", "λDD supplied without λDU")
		}
		if c.LambdaDD == nil {
			return Rates{}, sifu.NewMissingRate(c.ID, "lambda_dd", "λDU supplied without λDD")
		}
		return Rates{LambdaDU: *c.LambdaDU, LambdaDD: *c.LambdaDD, Provenance: ProvenanceNative}, nil
	}

	if c.LambdaD != nil {
		du, dd, err := splitRatios(c)
		if err != nil {
			return Rates{}, err
		}
		return Rates{LambdaDU: *c.LambdaD * du, LambdaDD: *c.LambdaD * dd, Provenance: ProvenanceNative}, nil
	}

	// Precomputed figures: pick the derivation matching the demand mode.
	var (
		total float64
		prov  Provenance
	)
	switch mode {
	case sifu.HighDemand:
		if c.PFH == nil {
			return Rates{}, sifu.NewMissingRate(c.ID, "pfh", "PFH required to derive λ for high demand mode")
		}
		total = *c.PFH
		prov = ProvenanceDerivedPFH
	case sifu.LowDemand:
		if c.PFDavg == nil {
			return Rates{}, sifu.NewMissingRate(c.ID, "pfd_avg", "PFDavg required to derive λ for low demand mode")
		}
		ti := ResolveTI(c, asm)
		if ti <= 0 {
			return Rates{}, sifu.NewInvalidParameter(c.ID, "ti", "proof-test interval must be greater than zero to derive λ from PFDavg")
		}
		total = 2 * *c.PFDavg / ti
		prov = ProvenanceDerivedPFD
	default:
		return Rates{}, fmt.Errorf("unsupported demand mode: %q", mode)
	}

	du, dd, err := splitRatios(c)
	if err != nil {
		return Rates{}, err
	}
	return Rates{LambdaDU: total * du, LambdaDD: total * dd, Provenance: prov}, nil
}

// splitRatios returns the DU/DD fractions for a record. One missing
// fraction is derived as the complement; both missing falls back to the
// 0.6/0.4 default; both present must sum to 1 within RatioTolerance.
func splitRatios(c *sifu.ComponentRecord) (du, dd float64, err error) {
	switch {
	case c.RatioDU == nil && c.RatioDD == nil:
		return DefaultRatioDU, DefaultRatioDD, nil
	case c.RatioDU != nil && c.RatioDD == nil:
		return *c.RatioDU, 1 - *c.RatioDU, nil
	case c.RatioDU == nil && c.RatioDD != nil:
		return 1 - *c.RatioDD, *c.RatioDD, nil
	}
	sum := *c.RatioDU + *c.RatioDD
	if math.Abs(sum-1) > RatioTolerance {
		return 0, 0, sifu.NewInvalidRatio(c.ID, sum)
	}
	return *c.RatioDU, *c.RatioDD, nil
}

// ValidateRecord rejects non-finite or negative numeric inputs and
// common-cause fractions or DU/DD fractions outside [0,1].
func ValidateRecord(c *sifu.ComponentRecord) error {
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"pfd_avg", c.PFDavg},
		{"pfh", c.PFH},
		{"lambda_du", c.LambdaDU},
		{"lambda_dd", c.LambdaDD},
		{"lambda_d", c.LambdaD},
		{"ratio_du", c.RatioDU},
		{"ratio_dd", c.RatioDD},
		{"beta", c.Beta},
		{"beta_d", c.BetaD},
		{"ti", c.TI},
		{"mttr", c.MTTR},
	} {
		if f.value == nil {
			continue
		}
		v := *f.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return sifu.NewInvalidParameter(c.ID, f.name, "value must be finite")
		}
		if v < 0 {
			return sifu.NewInvalidParameter(c.ID, f.name, fmt.Sprintf("value must be non-negative, got %g", v))
		}
	}
	if c.Beta != nil && *c.Beta > 1 {
		return sifu.NewInvalidBeta(c.ID, "beta", *c.Beta)
	}
	if c.BetaD != nil && *c.BetaD > 1 {
		return sifu.NewInvalidBeta(c.ID, "beta_d", *c.BetaD)
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"ratio_du", c.RatioDU},
		{"ratio_dd", c.RatioDD},
	} {
		if f.value != nil && *f.value > 1 {
			return sifu.NewInvalidParameter(c.ID, f.name, fmt.Sprintf("fraction must be within [0,1], got %g", *f.value))
		}
	}
	return nil
}

// ResolveTI returns the record's proof-test interval override or the
// global assumption.
func ResolveTI(c *sifu.ComponentRecord, asm sifu.Assumptions) float64 {
	if c.TI != nil {
		return *c.TI
	}
	return asm.TI
}

// ResolveMTTR returns the record's repair-time override or the global
// assumption.
func ResolveMTTR(c *sifu.ComponentRecord, asm sifu.Assumptions) float64 {
	if c.MTTR != nil {
		return *c.MTTR
	}
	return asm.MTTR
}

// ResolveBeta returns the record's β override or the global assumption.
func ResolveBeta(c *sifu.ComponentRecord, asm sifu.Assumptions) float64 {
	if c.Beta != nil {
		return *c.Beta
	}
	return asm.Beta
}

// ResolveBetaD returns the record's βD override or the global assumption.
func ResolveBetaD(c *sifu.ComponentRecord, asm sifu.Assumptions) float64 {
	if c.BetaD != nil {
		return *c.BetaD
	}
	return asm.BetaD
}

// Package silband maps aggregated dependability figures onto Safety
// Integrity Level bands per the IEC-61508 target failure measures.
//
// Low-demand classification uses PFDavg decades, high/continuous-demand
// classification uses PFH decades shifted three orders of magnitude down.
// Every band is inclusive of its lower bound and exclusive of its upper
// bound. A value at or above the SIL 1 upper bound is out of range
// (unacceptable); a value below the SIL 4 lower bound is better than the
// scale resolves and is reported as SIL 4.
package silband

import (
	"math"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// Band is a discrete SIL classification outcome.
type Band int

const (
	// BandNone is the zero value: no classification available (negative
	// or non-finite input). It never results from a valid aggregation.
	BandNone Band = iota
	BandSIL1
	BandSIL2
	BandSIL3
	BandSIL4
	// BandOutOfRange marks a value at or above the SIL 1 upper bound.
	BandOutOfRange
)

// String renders the band the way the report tables print it.
func (b Band) String() string {
	switch b {
	case BandSIL1:
		return "SIL 1"
	case BandSIL2:
		return "SIL 2"
	case BandSIL3:
		return "SIL 3"
	case BandSIL4:
		return "SIL 4"
	case BandOutOfRange:
		return "out of range"
	}
	return "n.a."
}

// Rank returns the numeric SIL rank 1-4, or 0 for None and OutOfRange.
func (b Band) Rank() int {
	switch b {
	case BandSIL1:
		return 1
	case BandSIL2:
		return 2
	case BandSIL3:
		return 3
	case BandSIL4:
		return 4
	}
	return 0
}

// Meets reports whether the calculated band satisfies a required rank.
// A required rank of 0 (none declared) is always met; None and OutOfRange
// never meet a declared requirement.
func (b Band) Meets(required int) bool {
	if required <= 0 {
		return true
	}
	return b.Rank() >= required
}

// ParseBand converts a report label back into a Band. Unrecognized labels
// yield BandNone.
func ParseBand(s string) Band {
	switch s {
	case "SIL 1":
		return BandSIL1
	case "SIL 2":
		return BandSIL2
	case "SIL 3":
		return BandSIL3
	case "SIL 4":
		return BandSIL4
	case "out of range":
		return BandOutOfRange
	}
	return BandNone
}

// Band bounds per demand mode, spelled as literals. Deriving the lower
// decades by dividing the upper bound drifts one ulp off the documented
// values in float64 (1e-5/1e1 != 1e-6), which would break the inclusive
// lower bounds.
const (
	lowDemandSIL1Upper = 1e-1 // PFDavg
	lowDemandSIL1Lower = 1e-2
	lowDemandSIL2Lower = 1e-3
	lowDemandSIL3Lower = 1e-4

	highDemandSIL1Upper = 1e-5 // PFH, 1/h
	highDemandSIL1Lower = 1e-6
	highDemandSIL2Lower = 1e-7
	highDemandSIL3Lower = 1e-8
)

// Classify maps a summed metric onto a SIL band for the given demand
// mode: PFDavg for low demand, PFH for high/continuous demand.
func Classify(total float64, mode sifu.DemandMode) Band {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return BandNone
	}

	upper, sil1, sil2, sil3 := lowDemandSIL1Upper, lowDemandSIL1Lower, lowDemandSIL2Lower, lowDemandSIL3Lower
	if mode == sifu.HighDemand {
		upper, sil1, sil2, sil3 = highDemandSIL1Upper, highDemandSIL1Lower, highDemandSIL2Lower, highDemandSIL3Lower
	}

	switch {
	case total >= upper:
		return BandOutOfRange
	case total >= sil1:
		return BandSIL1
	case total >= sil2:
		return BandSIL2
	case total >= sil3:
		return BandSIL3
	default:
		// Includes values below the SIL 4 lower bound: better than the
		// scale resolves, reported as SIL 4.
		return BandSIL4
	}
}

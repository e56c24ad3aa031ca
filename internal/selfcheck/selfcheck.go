// Package selfcheck runs the engine's built-in verification suite: SIL
// boundary classification at and just below every documented threshold,
// the calculator's documented reference values and edge cases, colour
// normalization, and the counted-once partition invariant.
//
// The suite is the externally observable self-test surface of the core:
// `fusa-calc selfcheck` runs it and exits non-zero on any failure.
package selfcheck

import (
	"fmt"
	"math"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
	"github.com/t0mt0mm/fusa-calc/internal/partition"
	"github.com/t0mt0mm/fusa-calc/internal/relcalc"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
	"github.com/t0mt0mm/fusa-calc/internal/silband"
)

// CheckResult is the outcome of one verification step.
type CheckResult struct {
	Name   string `json:"name"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}

// Passed reports whether every check in the slice passed.
func Passed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}

// Run executes the full verification suite and returns one result per
// check. The suite is deterministic; a failure indicates a broken build,
// not bad input.
func Run() []CheckResult {
	var out []CheckResult
	out = append(out, classificationChecks()...)
	out = append(out, calculatorChecks()...)
	out = append(out, partitionChecks()...)
	return out
}

// classificationChecks asserts the band at every documented boundary
// value, both just below and at each threshold, for both demand modes.
func classificationChecks() []CheckResult {
	type boundary struct {
		mode  sifu.DemandMode
		value float64
		want  silband.Band
	}

	var cases []boundary
	for _, m := range []struct {
		mode   sifu.DemandMode
		upper  float64
		lowers [4]float64 // documented band lower bounds, SIL 1 through SIL 4
	}{
		{sifu.LowDemand, 1e-1, [4]float64{1e-2, 1e-3, 1e-4, 1e-5}},
		{sifu.HighDemand, 1e-5, [4]float64{1e-6, 1e-7, 1e-8, 1e-9}},
	} {
		bands := []silband.Band{silband.BandSIL1, silband.BandSIL2, silband.BandSIL3, silband.BandSIL4}
		// At the SIL 1 upper bound and just below it.
		cases = append(cases,
			boundary{m.mode, m.upper, silband.BandOutOfRange},
			boundary{m.mode, math.Nextafter(m.upper, 0), silband.BandSIL1},
		)
		for i, band := range bands {
			// Probe the documented literal, not a value derived by
			// division: the derived value can sit one ulp off the bound
			// and miss an inclusivity regression.
			lower := m.lowers[i]
			next := silband.BandSIL4
			if i < len(bands)-1 {
				next = bands[i+1]
			}
			// At each band's lower bound, and just below it (which falls
			// into the next band down; below the SIL 4 lower bound stays
			// SIL 4 - better than the scale resolves).
			cases = append(cases,
				boundary{m.mode, lower, band},
				boundary{m.mode, math.Nextafter(lower, 0), next},
			)
		}
		cases = append(cases, boundary{m.mode, 0, silband.BandSIL4})
	}

	var out []CheckResult
	for _, c := range cases {
		got := silband.Classify(c.value, c.mode)
		out = append(out, CheckResult{
			Name:   fmt.Sprintf("classify %s %.7e", c.mode, c.value),
			Pass:   got == c.want,
			Detail: detailIf(got != c.want, "got %s, want %s", got, c.want),
		})
	}
	return out
}

// calculatorChecks verifies the documented reference values and the
// calculator's required edge cases.
func calculatorChecks() []CheckResult {
	asm := sifu.Assumptions{TI: 8760, MTTR: 8, Beta: 0.10, BetaD: 0.02}
	var out []CheckResult

	// 1oo1 reference: λDU=1e-6/h, λDD=0 with the default assumptions.
	{
		c := &sifu.ComponentRecord{ID: "ref-1oo1", Lane: sifu.LaneSensor, LambdaDU: f(1e-6), LambdaDD: f(0)}
		m, err := relcalc.SingleChannel(c, sifu.LowDemand, asm)
		pass := err == nil && approx(m.PFDavg, 1e-6*(4380+8)) && approx(m.PFH, 1e-6)
		out = append(out, CheckResult{
			Name:   "1oo1 reference value",
			Pass:   pass,
			Detail: detailIf(!pass, "pfd=%v pfh=%v err=%v", m.PFDavg, m.PFH, err),
		})
	}

	// 1oo2 zero-beta edge: no common-cause terms remain.
	{
		zero := sifu.Assumptions{TI: 8760, MTTR: 8}
		a := &sifu.ComponentRecord{ID: "zb-a", Lane: sifu.LaneOutput, LambdaDU: f(7e-6), LambdaDD: f(3e-6)}
		b := &sifu.ComponentRecord{ID: "zb-b", Lane: sifu.LaneOutput, LambdaDU: f(7e-6), LambdaDD: f(3e-6)}
		m, err := relcalc.RedundantPair(a, b, sifu.LowDemand, zero)

		lamDU, lamDD := 7e-6, 3e-6
		lamD := lamDU + lamDD
		wDU, wDD := lamDU/lamD, lamDD/lamD
		tCE := wDU*(zero.TI/2+zero.MTTR) + wDD*zero.MTTR
		tGE := wDU*(zero.TI/3+zero.MTTR) + wDD*zero.MTTR
		wantPFD := 2 * lamD * lamD * tCE * tGE
		wantPFH := 2 * lamD * lamDU * tCE

		pass := err == nil && approx(m.PFDavg, wantPFD) && approx(m.PFH, wantPFH)
		out = append(out, CheckResult{
			Name:   "1oo2 zero-beta closed form",
			Pass:   pass,
			Detail: detailIf(!pass, "pfd=%v want=%v pfh=%v want=%v err=%v", m.PFDavg, wantPFD, m.PFH, wantPFH, err),
		})
	}

	// Division guard: both channels all-zero, exposure times collapse to
	// zero, PFH reduces to β·λDU = 0 and must not be NaN.
	{
		a := &sifu.ComponentRecord{ID: "dz-a", Lane: sifu.LaneSensor, LambdaDU: f(0), LambdaDD: f(0)}
		b := &sifu.ComponentRecord{ID: "dz-b", Lane: sifu.LaneSensor, LambdaDU: f(0), LambdaDD: f(0)}
		m, err := relcalc.RedundantPair(a, b, sifu.LowDemand, asm)
		pass := err == nil && m.PFH == 0 && m.PFDavg == 0 &&
			!math.IsNaN(m.PFH) && !math.IsNaN(m.PFDavg)
		out = append(out, CheckResult{
			Name:   "1oo2 zero-rate division guard",
			Pass:   pass,
			Detail: detailIf(!pass, "pfd=%v pfh=%v err=%v", m.PFDavg, m.PFH, err),
		})
	}

	// Invalid ratio rejection: rDU+rDD = 1.1.
	{
		c := &sifu.ComponentRecord{ID: "bad-ratio", Lane: sifu.LaneLogic, LambdaD: f(1e-5), RatioDU: f(0.6), RatioDD: f(0.5)}
		_, err := relcalc.SingleChannel(c, sifu.LowDemand, asm)
		pass := sifu.IsInvalidRatio(err)
		out = append(out, CheckResult{
			Name:   "invalid DU/DD ratio rejection",
			Pass:   pass,
			Detail: detailIf(!pass, "err=%v", err),
		})
	}

	// Invalid beta rejection.
	{
		c := &sifu.ComponentRecord{ID: "bad-beta", Lane: sifu.LaneLogic, LambdaDU: f(1e-6), LambdaDD: f(0), Beta: f(1.5)}
		_, err := relcalc.SingleChannel(c, sifu.LowDemand, asm)
		pass := sifu.IsInvalidBeta(err)
		out = append(out, CheckResult{
			Name:   "invalid beta rejection",
			Pass:   pass,
			Detail: detailIf(!pass, "err=%v", err),
		})
	}

	// Mode mismatch rejection on a declared-mode pair.
	{
		a := &sifu.ComponentRecord{ID: "mm-a", Lane: sifu.LaneOutput, DemandMode: sifu.LowDemand, LambdaDU: f(1e-6), LambdaDD: f(0)}
		b := &sifu.ComponentRecord{ID: "mm-b", Lane: sifu.LaneOutput, DemandMode: sifu.HighDemand, LambdaDU: f(1e-6), LambdaDD: f(0)}
		_, err := relcalc.RedundantPair(a, b, sifu.LowDemand, asm)
		pass := sifu.IsModeMismatch(err)
		out = append(out, CheckResult{
			Name:   "demand mode mismatch rejection",
			Pass:   pass,
			Detail: detailIf(!pass, "err=%v", err),
		})
	}

	return out
}

// partitionChecks verifies colour normalization and the counted-once
// invariant on a representative SIFU, plus aggregation idempotence.
func partitionChecks() []CheckResult {
	var out []CheckResult

	// Hex case-insensitivity merges; name vs hex never merges.
	{
		merge := partition.NormalizeColour("#FF0000") == partition.NormalizeColour(" #ff0000 ")
		keep := partition.NormalizeColour("Red") != partition.NormalizeColour("#FF0000")
		pass := merge && keep
		out = append(out, CheckResult{
			Name:   "colour normalization exact-match policy",
			Pass:   pass,
			Detail: detailIf(!pass, "merge=%v keep=%v", merge, keep),
		})
	}

	s := &sifu.SIFU{
		Name:       "selfcheck",
		DemandMode: sifu.LowDemand,
		Components: []sifu.ComponentRecord{
			{ID: "s1", Lane: sifu.LaneSensor, Colour: "#2E406E", LambdaDU: f(1e-6), LambdaDD: f(2e-6)},
			{ID: "s2", Lane: sifu.LaneSensor, LambdaDU: f(5e-7), LambdaDD: f(6e-7)},
			{ID: "l1", Lane: sifu.LaneLogic, LambdaDU: f(3e-6), LambdaDD: f(4e-6)},
			{ID: "o1", Lane: sifu.LaneOutput, Colour: "#2e406e", LambdaDU: f(9e-7), LambdaDD: f(1e-6)},
			{ID: "o2", Lane: sifu.LaneOutput, Colour: "orphan", LambdaDU: f(7e-7), LambdaDD: f(8e-7)},
		},
	}
	asm := sifu.DefaultAssumptions()

	{
		part := partition.Partition(s)
		covered := 0
		for _, sg := range part.Subgroups {
			covered += len(sg.Members)
		}
		for _, members := range part.Ungrouped {
			covered += len(members)
		}
		pass := covered == len(s.Components) && len(part.Subgroups) == 1
		out = append(out, CheckResult{
			Name:   "counted-once partition coverage",
			Pass:   pass,
			Detail: detailIf(!pass, "covered=%d of %d, subgroups=%d", covered, len(s.Components), len(part.Subgroups)),
		})
	}

	{
		r1, err1 := aggregate.Aggregate(s, asm)
		r2, err2 := aggregate.Aggregate(s, asm)
		pass := err1 == nil && err2 == nil &&
			r1.Total == r2.Total &&
			r1.TotalMetrics == r2.TotalMetrics &&
			r1.Band == r2.Band
		out = append(out, CheckResult{
			Name:   "aggregation idempotence",
			Pass:   pass,
			Detail: detailIf(!pass, "err1=%v err2=%v", err1, err2),
		})
	}

	return out
}

func f(v float64) *float64 { return &v }

func approx(got, want float64) bool {
	if got == want {
		return true
	}
	diff := math.Abs(got - want)
	scale := math.Max(math.Abs(got), math.Abs(want))
	return diff <= 1e-12*scale
}

func detailIf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

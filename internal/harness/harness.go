package harness

import (
	"fmt"
	"math"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass indicates all expectations held.
	Pass bool `json:"pass"`

	// Errors contains the expectation failures. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Aggregate is the engine output, nil when the scenario expected (and
	// got) a validation error.
	Aggregate *aggregate.Result `json:"aggregate,omitempty"`
}

// AddError records an expectation failure and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run builds the scenario's SIFU, aggregates it, and checks every
// expectation. A scenario run never returns an engine validation error as
// a Go error: expected rejections are part of the scenario contract and
// are folded into the pass/fail outcome.
func Run(scenario *Scenario) (*Result, error) {
	res := &Result{Pass: true}

	s, asm, err := scenario.SIFU.Build()
	if err != nil {
		return checkExpectedError(scenario, res, err), nil
	}

	agg, err := aggregate.Aggregate(s, asm)
	if err != nil {
		return checkExpectedError(scenario, res, err), nil
	}
	res.Aggregate = agg

	exp := scenario.Expect
	if exp.Error != "" {
		res.AddError("expected validation error %s, aggregation succeeded", exp.Error)
		return res, nil
	}

	tol := exp.RelTol
	if tol <= 0 {
		tol = DefaultRelTol
	}
	if exp.PFDavg != nil && !withinRelTol(agg.TotalMetrics.PFDavg, *exp.PFDavg, tol) {
		res.AddError("PFDavg total %.9e, want %.9e (rel tol %g)", agg.TotalMetrics.PFDavg, *exp.PFDavg, tol)
	}
	if exp.PFH != nil && !withinRelTol(agg.TotalMetrics.PFH, *exp.PFH, tol) {
		res.AddError("PFH total %.9e, want %.9e (rel tol %g)", agg.TotalMetrics.PFH, *exp.PFH, tol)
	}
	if exp.SIL != "" && agg.BandLabel != exp.SIL {
		res.AddError("SIL band %q, want %q", agg.BandLabel, exp.SIL)
	}
	if exp.Degraded != nil && agg.Degraded != *exp.Degraded {
		res.AddError("degraded flag %v, want %v", agg.Degraded, *exp.Degraded)
	}
	if exp.MeetsRequired != nil && agg.MeetsRequired != *exp.MeetsRequired {
		res.AddError("meets_required %v, want %v", agg.MeetsRequired, *exp.MeetsRequired)
	}

	return res, nil
}

// checkExpectedError matches an engine rejection against the scenario's
// expected error code.
func checkExpectedError(scenario *Scenario, res *Result, err error) *Result {
	want := scenario.Expect.Error
	if want == "" {
		res.AddError("unexpected error: %v", err)
		return res
	}
	if got := sifu.CodeOf(err); string(got) != want {
		res.AddError("error code %q (%v), want %q", got, err, want)
	}
	return res
}

func withinRelTol(got, want, tol float64) bool {
	if got == want {
		return true
	}
	diff := math.Abs(got - want)
	scale := math.Max(math.Abs(got), math.Abs(want))
	if scale == 0 {
		return diff == 0
	}
	return diff <= tol*scale
}

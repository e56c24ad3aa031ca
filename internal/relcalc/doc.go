// Package relcalc implements the channel reliability calculator.
//
// The calculator is a set of pure functions over component records and
// global assumptions. Two architectures are covered by closed-form
// equations:
//
//	1oo1: PFDavg = λDU·(TI/2 + MTTR) + λDD·MTTR, PFH = λDU
//	1oo2: beta model with channel equivalent exposure times tCE and tGE
//
// Rate inputs are resolved in a fixed order: native λDU/λDD, then λD split
// by DU/DD fractions, then derivation from precomputed PFDavg or PFH
// depending on the demand mode (λ = PFH for high demand, λ = 2·PFDavg/TI
// for low demand). The resolution provenance is recorded on the metrics so
// reports can state where a figure came from.
//
// The 1oo2 exposure-time computation guards the all-common-cause case:
// when the independent dangerous rate is zero, tCE and tGE are defined as
// zero rather than dividing by zero.
//
// All functions are deterministic and side-effect free. Invalid inputs are
// rejected with the sifu validation error taxonomy, never silently
// defaulted.
package relcalc

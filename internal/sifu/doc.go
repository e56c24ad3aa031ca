// Package sifu defines the data model for safety function (SIFU) evaluation.
//
// A SIFU is the unit of evaluation: three lanes (sensor, logic, output) of
// component records, an active demand mode, and optionally a required SIL
// rank. Component records are passive value types; all reliability math
// lives in relcalc, grouping in partition, and summation in aggregate.
//
// The package also defines the validation error taxonomy shared by every
// stage of the pipeline. A validation error on any single component aborts
// aggregation for the whole SIFU - a total is only meaningful if every
// contributing channel is valid.
//
// Global assumptions (TI, MTTR, beta, betaD) are an explicit value passed
// into every calculation, never ambient state. Recomputing an unchanged
// SIFU with the same assumptions is bit-identical.
package sifu

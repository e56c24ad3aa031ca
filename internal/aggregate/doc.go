// Package aggregate sums a SIFU's subgroup and ungrouped contributions
// into one result under the counted-once invariant.
//
// Control flow per evaluation:
//
//  1. partition.Partition splits the component set into colour-keyed
//     subgroups and the ungrouped remainder per lane.
//  2. Each subgroup is scored as its architecture: two members as a 1oo2
//     redundant pair, three or more as a degraded sum of 1oo1 channels
//     (the documented formulas stop at 1oo2; the result is flagged
//     approximate).
//  3. Each ungrouped component is scored as a standalone 1oo1 channel.
//  4. Subgroup and lane-residual metrics are summed into the SIFU total
//     and the total is classified against the SIL bands for the
//     effective demand mode.
//
// The invariant checked on every run: the union of subgroup member sets
// and ungrouped sets equals the SIFU's full component set with no
// duplicates - each component contributes to the total exactly once. A
// violation is an internal error (PARTITION_INVARIANT), not an input
// error.
//
// A validation error on any single component aborts the whole aggregation
// and is surfaced with the offending component's identifier. The
// computation is deterministic and side-effect free: aggregating an
// unchanged SIFU twice yields bit-identical results.
package aggregate

package aggregate

import (
	"github.com/t0mt0mm/fusa-calc/internal/partition"
	"github.com/t0mt0mm/fusa-calc/internal/relcalc"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
	"github.com/t0mt0mm/fusa-calc/internal/silband"
)

// Aggregate evaluates one SIFU snapshot against the given assumptions.
//
// Any validation error on a contributing component aborts the run; the
// returned error carries the offending component's identifier. The
// counted-once invariant is asserted on every call.
func Aggregate(s *sifu.SIFU, asm sifu.Assumptions) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := asm.Validate(); err != nil {
		return nil, err
	}

	mode := s.EffectiveMode()
	part := partition.Partition(s)
	if err := checkCountedOnce(s, part); err != nil {
		return nil, err
	}

	res := &Result{
		SIFU:           s.Name,
		Mode:           mode,
		RequiredSIL:    s.RequiredSIL,
		ComponentCount: len(s.Components),
	}

	for _, key := range part.SortedKeys() {
		sg := part.Subgroups[key]
		sgRes, err := scoreSubgroup(sg, mode, asm)
		if err != nil {
			return nil, err
		}
		res.Subgroups = append(res.Subgroups, sgRes)
		res.TotalMetrics = res.TotalMetrics.Add(sgRes.Metrics)
		if sgRes.Degraded {
			res.Degraded = true
		}
	}

	for _, lane := range sifu.Lanes() {
		members := part.Ungrouped[lane]
		if len(members) == 0 {
			continue
		}
		lr := LaneResidual{Lane: lane}
		for _, c := range members {
			m, err := relcalc.SingleChannel(c, mode, asm)
			if err != nil {
				return nil, err
			}
			lr.Members = append(lr.Members, MemberDetail{ID: c.ID, Lane: c.Lane, Metrics: m})
			lr.Metrics = lr.Metrics.Add(m)
		}
		res.LaneResiduals = append(res.LaneResiduals, lr)
		res.TotalMetrics = res.TotalMetrics.Add(lr.Metrics)
	}

	res.Total = res.TotalMetrics.ByMode(mode)
	res.Band = silband.Classify(res.Total, mode)
	res.BandLabel = res.Band.String()
	res.MeetsRequired = res.Band.Meets(s.RequiredSIL)
	return res, nil
}

// scoreSubgroup computes a subgroup's combined metric as its architecture:
// 1oo2 for exactly two members, degraded sum of 1oo1 channels for three or
// more. Single-member subgroups cannot come out of the partitioner but are
// scored as a plain 1oo1 channel if they ever do.
func scoreSubgroup(sg *partition.Subgroup, mode sifu.DemandMode, asm sifu.Assumptions) (SubgroupResult, error) {
	out := SubgroupResult{
		Colour:     sg.Key,
		Count:      len(sg.Members),
		Lanes:      sg.Lanes,
		SingleLane: sg.SingleLane,
	}

	details := make([]MemberDetail, 0, len(sg.Members))
	for _, c := range sg.Members {
		m, err := relcalc.SingleChannel(c, mode, asm)
		if err != nil {
			return SubgroupResult{}, err
		}
		details = append(details, MemberDetail{ID: c.ID, Lane: c.Lane, Metrics: m})
	}
	out.Members = details

	switch len(sg.Members) {
	case 1:
		out.Architecture = ArchSingleChannel
		out.Metrics = details[0].Metrics
	case 2:
		out.Architecture = ArchRedundantPair
		m, err := relcalc.RedundantPair(sg.Members[0], sg.Members[1], mode, asm)
		if err != nil {
			return SubgroupResult{}, err
		}
		out.Metrics = m
	default:
		// No documented formula beyond 1oo2. Conservative fallback: the
		// sum of the members' 1oo1 figures, flagged approximate.
		out.Architecture = ArchDegradedGroup
		out.Degraded = true
		for _, d := range details {
			out.Metrics = out.Metrics.Add(d.Metrics)
		}
	}
	return out, nil
}

// checkCountedOnce asserts that the partition covers the SIFU's component
// set exactly once: no component missing, none in more than one covered
// set. Correct partitioner output always passes; a failure is an internal
// inconsistency, not an input error.
func checkCountedOnce(s *sifu.SIFU, part *partition.Result) error {
	counts := make(map[string]int, len(s.Components))
	for _, sg := range part.Subgroups {
		for _, c := range sg.Members {
			counts[c.ID]++
		}
	}
	for _, members := range part.Ungrouped {
		for _, c := range members {
			counts[c.ID]++
		}
	}

	for i := range s.Components {
		id := s.Components[i].ID
		switch counts[id] {
		case 1:
		case 0:
			return sifu.NewPartitionInvariant(id, "component not covered by any subgroup or lane residual")
		default:
			return sifu.NewPartitionInvariant(id, "component covered more than once")
		}
		delete(counts, id)
	}
	for id := range counts {
		return sifu.NewPartitionInvariant(id, "covered component not present in the SIFU")
	}
	return nil
}

package partition

import (
	"sort"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// Subgroup is a set of component records sharing one normalized colour.
type Subgroup struct {
	// Key is the normalized colour the members share.
	Key string

	// Members holds the records in SIFU declaration order.
	Members []*sifu.ComponentRecord

	// Lanes lists the distinct lanes the members span, in canonical lane
	// order.
	Lanes []sifu.Lane

	// SingleLane marks a subgroup whose members all sit in one lane. Such
	// a subgroup is valid for calculation; exporters may skip rendering
	// its cross-lane connectors.
	SingleLane bool
}

// Result is the outcome of partitioning one SIFU: subgroups keyed by
// normalized colour, plus the ungrouped remainder per lane. Together they
// cover the SIFU's full component set exactly once.
type Result struct {
	// Subgroups maps normalized colour to its member set. Only colours
	// used by two or more components form subgroups.
	Subgroups map[string]*Subgroup

	// Ungrouped holds, per lane, the records with no colour tag plus the
	// records whose colour is used by exactly one component overall. A
	// singleton "subgroup" is not a redundant architecture and is scored
	// as a standalone 1oo1 channel.
	Ungrouped map[sifu.Lane][]*sifu.ComponentRecord
}

// SortedKeys returns the subgroup keys in lexical order, for deterministic
// iteration.
func (r *Result) SortedKeys() []string {
	keys := make([]string, 0, len(r.Subgroups))
	for k := range r.Subgroups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Partition groups the SIFU's components by normalized colour. It is a
// pure read of the SIFU's current state: no record is mutated and
// recomputation on unchanged input yields an identical result.
func Partition(s *sifu.SIFU) *Result {
	byColour := make(map[string][]*sifu.ComponentRecord)
	for i := range s.Components {
		c := &s.Components[i]
		key := NormalizeColour(c.Colour)
		if key == "" {
			continue
		}
		byColour[key] = append(byColour[key], c)
	}

	res := &Result{
		Subgroups: make(map[string]*Subgroup),
		Ungrouped: make(map[sifu.Lane][]*sifu.ComponentRecord),
	}

	grouped := make(map[*sifu.ComponentRecord]bool)
	for key, members := range byColour {
		if len(members) < 2 {
			continue
		}
		sg := &Subgroup{Key: key, Members: members}
		laneSeen := make(map[sifu.Lane]bool)
		for _, m := range members {
			laneSeen[m.Lane] = true
			grouped[m] = true
		}
		for _, lane := range sifu.Lanes() {
			if laneSeen[lane] {
				sg.Lanes = append(sg.Lanes, lane)
			}
		}
		sg.SingleLane = len(sg.Lanes) == 1
		res.Subgroups[key] = sg
	}

	for i := range s.Components {
		c := &s.Components[i]
		if !grouped[c] {
			res.Ungrouped[c.Lane] = append(res.Ungrouped[c.Lane], c)
		}
	}

	return res
}

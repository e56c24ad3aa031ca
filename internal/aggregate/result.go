package aggregate

import (
	"github.com/t0mt0mm/fusa-calc/internal/relcalc"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
	"github.com/t0mt0mm/fusa-calc/internal/silband"
)

// Architecture names the voting architecture a contribution was scored as.
type Architecture string

const (
	// ArchSingleChannel is a standalone 1oo1 channel.
	ArchSingleChannel Architecture = "1oo1"

	// ArchRedundantPair is a two-member 1oo2 beta-model pair.
	ArchRedundantPair Architecture = "1oo2"

	// ArchDegradedGroup is a 3+-member subgroup scored as the sum of its
	// members' 1oo1 channels. The figures are approximate.
	ArchDegradedGroup Architecture = "degraded"
)

// MemberDetail is the per-component breakdown entry inside a subgroup or
// lane residual.
type MemberDetail struct {
	ID      string          `json:"id"`
	Lane    sifu.Lane       `json:"lane"`
	Metrics relcalc.Metrics `json:"metrics"`
}

// SubgroupResult is the combined metric of one colour-keyed subgroup.
type SubgroupResult struct {
	// Colour is the normalized subgroup key.
	Colour string `json:"colour"`

	// Architecture the subgroup was scored as.
	Architecture Architecture `json:"architecture"`

	// Count of member components.
	Count int `json:"count"`

	// Lanes spanned by the members, in canonical lane order.
	Lanes []sifu.Lane `json:"lanes"`

	// SingleLane marks members confined to one lane; exporters may skip
	// connector rendering for such a subgroup.
	SingleLane bool `json:"single_lane,omitempty"`

	// Degraded marks a 3+-member subgroup whose figures are the
	// sum-of-singles approximation.
	Degraded bool `json:"degraded,omitempty"`

	// Metrics is the subgroup's combined figure set.
	Metrics relcalc.Metrics `json:"metrics"`

	// Members lists the per-component contributions, in declaration order.
	Members []MemberDetail `json:"members"`
}

// LaneResidual is the summed contribution of one lane's ungrouped
// components.
type LaneResidual struct {
	Lane    sifu.Lane       `json:"lane"`
	Metrics relcalc.Metrics `json:"metrics"`
	Members []MemberDetail  `json:"members"`
}

// Result is the aggregated outcome for one SIFU evaluation. It is a
// derived view: recomputed fully on every change of a component record,
// colour tag or demand mode, never mutated independently.
type Result struct {
	// SIFU is the evaluated safety function's name.
	SIFU string `json:"sifu"`

	// Mode is the effective demand mode of this evaluation.
	Mode sifu.DemandMode `json:"mode"`

	// Subgroups holds the combined metric per colour key, sorted by key.
	Subgroups []SubgroupResult `json:"subgroups,omitempty"`

	// LaneResiduals holds the ungrouped sums for lanes that have
	// ungrouped components, in canonical lane order.
	LaneResiduals []LaneResidual `json:"lane_residuals,omitempty"`

	// Totals over every contribution. PFDavg and PFH are accumulated
	// separately; the two metrics are never summed together.
	TotalMetrics relcalc.Metrics `json:"total_metrics"`

	// Total is the mode-selected scalar: TotalMetrics.PFDavg for low
	// demand, TotalMetrics.PFH for high demand.
	Total float64 `json:"total"`

	// Band is the SIL classification of Total.
	Band silband.Band `json:"-"`

	// BandLabel is Band rendered for reports ("SIL 2", "out of range").
	BandLabel string `json:"band"`

	// RequiredSIL echoes the declared target rank, 0 if none.
	RequiredSIL int `json:"required_sil,omitempty"`

	// MeetsRequired reports whether Band satisfies RequiredSIL. Always
	// true when no requirement is declared.
	MeetsRequired bool `json:"meets_required"`

	// Degraded is set when any subgroup was scored with the degraded
	// sum-of-singles approximation.
	Degraded bool `json:"degraded,omitempty"`

	// ComponentCount is the number of components covered by the result.
	ComponentCount int `json:"component_count"`
}

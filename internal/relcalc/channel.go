package relcalc

import (
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// Metrics holds the computed dependability figures for one channel or one
// redundant architecture.
type Metrics struct {
	// LambdaTotal is the total dangerous failure rate λD in 1/h.
	LambdaTotal float64 `json:"lambda_total"`

	// LambdaDU and LambdaDD split λD into undetected and detected shares.
	LambdaDU float64 `json:"lambda_du"`
	LambdaDD float64 `json:"lambda_dd"`

	// PFDavg is the average probability of dangerous failure on demand.
	PFDavg float64 `json:"pfd_avg"`

	// PFH is the probability of dangerous failure per hour.
	PFH float64 `json:"pfh"`

	// Provenance states how the rates were obtained.
	Provenance Provenance `json:"provenance"`
}

// ByMode returns the metric matching the demand mode: PFDavg for low
// demand, PFH for high demand.
func (m Metrics) ByMode(mode sifu.DemandMode) float64 {
	if mode == sifu.HighDemand {
		return m.PFH
	}
	return m.PFDavg
}

// Add returns the element-wise sum of two metric sets. Provenance is kept
// when both sides agree, otherwise marked mixed.
func (m Metrics) Add(o Metrics) Metrics {
	prov := m.Provenance
	if prov == "" {
		prov = o.Provenance
	} else if o.Provenance != "" && o.Provenance != prov {
		prov = ProvenanceMixed
	}
	return Metrics{
		LambdaTotal: m.LambdaTotal + o.LambdaTotal,
		LambdaDU:    m.LambdaDU + o.LambdaDU,
		LambdaDD:    m.LambdaDD + o.LambdaDD,
		PFDavg:      m.PFDavg + o.PFDavg,
		PFH:         m.PFH + o.PFH,
		Provenance:  prov,
	}
}

// SingleChannel computes the 1oo1 metrics for one component record.
//
//	PFDavg = λDU·(TI/2 + MTTR) + λDD·MTTR
//	PFH    = λDU
//
// When the record carries precomputed PFDavg/PFH figures they take
// precedence over the formula output; the resolved rates are still
// reported so breakdowns can show λ contributions.
func SingleChannel(c *sifu.ComponentRecord, mode sifu.DemandMode, asm sifu.Assumptions) (Metrics, error) {
	if err := asm.Validate(); err != nil {
		return Metrics{}, err
	}
	rates, err := ResolveRates(c, mode, asm)
	if err != nil {
		return Metrics{}, err
	}

	ti := ResolveTI(c, asm)
	mttr := ResolveMTTR(c, asm)

	pfd := rates.LambdaDU*(ti/2+mttr) + rates.LambdaDD*mttr
	pfh := rates.LambdaDU
	if c.PFDavg != nil {
		pfd = *c.PFDavg
	}
	if c.PFH != nil {
		pfh = *c.PFH
	}

	return Metrics{
		LambdaTotal: rates.LambdaD(),
		LambdaDU:    rates.LambdaDU,
		LambdaDD:    rates.LambdaDD,
		PFDavg:      pfd,
		PFH:         pfh,
		Provenance:  rates.Provenance,
	}, nil
}

// RedundantPair computes the 1oo2 beta-model metrics for two channels.
//
// The documented equations assume a symmetric pair, so the channels are
// combined into a symmetric equivalent: per-channel rates, β/βD, TI and
// MTTR are the arithmetic means of the two resolved channels. Channels
// declaring conflicting demand modes are rejected with MODE_MISMATCH.
//
//	λDUind = (1−β)·λDU          λDDind = (1−βD)·λDD
//	tCE = (λDUind/λDind)·(TI/2+MTTR) + (λDDind/λDind)·MTTR
//	tGE = (λDUind/λDind)·(TI/3+MTTR) + (λDDind/λDind)·MTTR
//	PFDavg = 2·λDind²·tCE·tGE + β·λDU·(TI/2+MTTR) + βD·λDD·MTTR
//	PFH    = 2·λDind·λDUind·tCE + β·λDU
//
// λDind = 0 means every dangerous failure is attributed to common cause;
// tCE and tGE are defined as zero in that case rather than dividing by
// zero, leaving only the common-cause terms.
func RedundantPair(a, b *sifu.ComponentRecord, mode sifu.DemandMode, asm sifu.Assumptions) (Metrics, error) {
	if err := asm.Validate(); err != nil {
		return Metrics{}, err
	}
	if a.DemandMode != "" && b.DemandMode != "" && a.DemandMode != b.DemandMode {
		return Metrics{}, sifu.NewModeMismatch(a.ID, b.ID, a.DemandMode, b.DemandMode)
	}

	ra, err := ResolveRates(a, mode, asm)
	if err != nil {
		return Metrics{}, err
	}
	rb, err := ResolveRates(b, mode, asm)
	if err != nil {
		return Metrics{}, err
	}

	// Symmetric equivalent of the (possibly asymmetric) pair.
	lamDU := 0.5 * (ra.LambdaDU + rb.LambdaDU)
	lamDD := 0.5 * (ra.LambdaDD + rb.LambdaDD)
	beta := 0.5 * (ResolveBeta(a, asm) + ResolveBeta(b, asm))
	betaD := 0.5 * (ResolveBetaD(a, asm) + ResolveBetaD(b, asm))
	ti := 0.5 * (ResolveTI(a, asm) + ResolveTI(b, asm))
	mttr := 0.5 * (ResolveMTTR(a, asm) + ResolveMTTR(b, asm))

	lamDUInd := (1 - beta) * lamDU
	lamDDInd := (1 - betaD) * lamDD
	lamDInd := lamDUInd + lamDDInd

	var tCE, tGE, pfdInd, pfhInd float64
	if lamDInd > 0 {
		wDU := lamDUInd / lamDInd
		wDD := lamDDInd / lamDInd
		tCE = wDU*(ti/2+mttr) + wDD*mttr
		tGE = wDU*(ti/3+mttr) + wDD*mttr
		pfdInd = 2 * lamDInd * lamDInd * tCE * tGE
		pfhInd = 2 * lamDInd * lamDUInd * tCE
	}

	pfd := pfdInd + beta*lamDU*(ti/2+mttr) + betaD*lamDD*mttr
	pfh := pfhInd + beta*lamDU

	prov := ra.Provenance
	if rb.Provenance != prov {
		prov = ProvenanceMixed
	}

	return Metrics{
		LambdaTotal: lamDU + lamDD,
		LambdaDU:    lamDU,
		LambdaDD:    lamDD,
		PFDavg:      pfd,
		PFH:         pfh,
		Provenance:  prov,
	}, nil
}

package sifu

import "fmt"

// Document is the YAML shape of a SIFU definition file. It mirrors what the
// lane editor and catalogue import collaborators produce: structured
// key/value records per lane plus an optional assumptions block.
type Document struct {
	Name               string            `yaml:"name"`
	RequiredSIL        int               `yaml:"required_sil"`
	DemandMode         string            `yaml:"demand_mode"`
	DemandModeOverride string            `yaml:"demand_mode_override"`
	Assumptions        *AssumptionsPatch `yaml:"assumptions"`
	Lanes              LanesDocument     `yaml:"lanes"`
}

// LanesDocument holds the three lanes of a SIFU document.
type LanesDocument struct {
	Sensor []ComponentDocument `yaml:"sensor"`
	Logic  []ComponentDocument `yaml:"logic"`
	Output []ComponentDocument `yaml:"output"`
}

// ComponentDocument is the YAML shape of one component record. Nil fields
// were not supplied and fall back to global assumptions where a default is
// defined.
type ComponentDocument struct {
	ID         string   `yaml:"id"`
	Colour     string   `yaml:"colour"`
	DemandMode string   `yaml:"demand_mode"`
	PFDavg     *float64 `yaml:"pfd_avg"`
	PFH        *float64 `yaml:"pfh"`
	LambdaDU   *float64 `yaml:"lambda_du"`
	LambdaDD   *float64 `yaml:"lambda_dd"`
	LambdaD    *float64 `yaml:"lambda_d"`
	RatioDU    *float64 `yaml:"ratio_du"`
	RatioDD    *float64 `yaml:"ratio_dd"`
	Beta       *float64 `yaml:"beta"`
	BetaD      *float64 `yaml:"beta_d"`
	TI         *float64 `yaml:"ti"`
	MTTR       *float64 `yaml:"mttr"`
}

// Build converts the document into a validated SIFU plus the effective
// assumptions (defaults overlaid with the document's assumptions block).
func (d *Document) Build() (*SIFU, Assumptions, error) {
	mode, err := ParseDemandMode(d.DemandMode)
	if err != nil {
		return nil, Assumptions{}, fmt.Errorf("sifu %q: %w", d.Name, err)
	}

	var override DemandMode
	if d.DemandModeOverride != "" {
		override, err = ParseDemandMode(d.DemandModeOverride)
		if err != nil {
			return nil, Assumptions{}, fmt.Errorf("sifu %q: %w", d.Name, err)
		}
	}

	s := &SIFU{
		Name:               d.Name,
		RequiredSIL:        d.RequiredSIL,
		DemandMode:         mode,
		DemandModeOverride: override,
	}
	for _, lane := range []struct {
		lane Lane
		docs []ComponentDocument
	}{
		{LaneSensor, d.Lanes.Sensor},
		{LaneLogic, d.Lanes.Logic},
		{LaneOutput, d.Lanes.Output},
	} {
		for _, cd := range lane.docs {
			s.Components = append(s.Components, cd.record(lane.lane))
		}
	}

	if err := s.Validate(); err != nil {
		return nil, Assumptions{}, err
	}

	asm := d.Assumptions.Apply(DefaultAssumptions())
	if err := asm.Validate(); err != nil {
		return nil, Assumptions{}, err
	}
	return s, asm, nil
}

func (cd *ComponentDocument) record(lane Lane) ComponentRecord {
	return ComponentRecord{
		ID:         cd.ID,
		Lane:       lane,
		Colour:     cd.Colour,
		DemandMode: DemandMode(cd.DemandMode),
		PFDavg:     cd.PFDavg,
		PFH:        cd.PFH,
		LambdaDU:   cd.LambdaDU,
		LambdaDD:   cd.LambdaDD,
		LambdaD:    cd.LambdaD,
		RatioDU:    cd.RatioDU,
		RatioDD:    cd.RatioDD,
		Beta:       cd.Beta,
		BetaD:      cd.BetaD,
		TI:         cd.TI,
		MTTR:       cd.MTTR,
	}
}

package sifu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleDocument = `
name: f-101-hi-press
required_sil: 2
demand_mode: low_demand
assumptions:
  ti: 4380
lanes:
  sensor:
    - id: pt-101a
      colour: "#2E406E"
      lambda_du: 1.0e-6
      lambda_dd: 0.5e-6
    - id: pt-101b
      colour: "#2e406e"
      lambda_du: 1.0e-6
      lambda_dd: 0.5e-6
  logic:
    - id: plc-1
      pfd_avg: 1.0e-4
  output:
    - id: xv-101
      lambda_d: 5.0e-6
      ratio_du: 0.7
`

func TestDocumentBuild(t *testing.T) {
	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(sampleDocument), &doc))

	s, asm, err := doc.Build()
	require.NoError(t, err)

	assert.Equal(t, "f-101-hi-press", s.Name)
	assert.Equal(t, 2, s.RequiredSIL)
	assert.Equal(t, LowDemand, s.DemandMode)
	assert.Equal(t, LowDemand, s.EffectiveMode())
	require.Len(t, s.Components, 4)

	// Lane order: sensor, logic, output; declaration order within a lane.
	assert.Equal(t, "pt-101a", s.Components[0].ID)
	assert.Equal(t, LaneSensor, s.Components[0].Lane)
	assert.Equal(t, "plc-1", s.Components[2].ID)
	assert.Equal(t, LaneLogic, s.Components[2].Lane)
	assert.Equal(t, "xv-101", s.Components[3].ID)
	assert.Equal(t, LaneOutput, s.Components[3].Lane)

	// Raw colour tags are preserved; normalization happens at partitioning.
	assert.Equal(t, "#2E406E", s.Components[0].Colour)
	assert.Equal(t, "#2e406e", s.Components[1].Colour)

	require.NotNil(t, s.Components[3].RatioDU)
	assert.Equal(t, 0.7, *s.Components[3].RatioDU)

	// Assumptions block overlays the defaults.
	assert.Equal(t, 4380.0, asm.TI)
	assert.Equal(t, 8.0, asm.MTTR)
	assert.Equal(t, 0.10, asm.Beta)
}

func TestDocumentBuildOverride(t *testing.T) {
	doc := Document{
		Name:               "f-102",
		DemandMode:         "low_demand",
		DemandModeOverride: "high_demand",
		Lanes:              LanesDocument{Sensor: []ComponentDocument{{ID: "s1"}}},
	}

	s, _, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, LowDemand, s.DemandMode)
	assert.Equal(t, HighDemand, s.EffectiveMode())
}

func TestDocumentBuildErrors(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		doc := Document{Name: "f", DemandMode: "continuous"}
		_, _, err := doc.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "continuous")
	})

	t.Run("unknown override", func(t *testing.T) {
		doc := Document{Name: "f", DemandMode: "low_demand", DemandModeOverride: "sometimes"}
		_, _, err := doc.Build()
		assert.Error(t, err)
	})

	t.Run("duplicate ids across lanes", func(t *testing.T) {
		doc := Document{
			Name:       "f",
			DemandMode: "low_demand",
			Lanes: LanesDocument{
				Sensor: []ComponentDocument{{ID: "x"}},
				Output: []ComponentDocument{{ID: "x"}},
			},
		}
		_, _, err := doc.Build()
		require.Error(t, err)
		assert.Equal(t, CodeInvalidParameter, CodeOf(err))
	})

	t.Run("invalid assumptions block", func(t *testing.T) {
		doc := Document{
			Name:        "f",
			DemandMode:  "low_demand",
			Assumptions: &AssumptionsPatch{Beta: f(1.5)},
		}
		_, _, err := doc.Build()
		require.Error(t, err)
		assert.Equal(t, CodeInvalidBeta, CodeOf(err))
	})
}

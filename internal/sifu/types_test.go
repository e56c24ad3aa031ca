package sifu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestLaneValid(t *testing.T) {
	assert.True(t, LaneSensor.Valid())
	assert.True(t, LaneLogic.Valid())
	assert.True(t, LaneOutput.Valid())
	assert.False(t, Lane("actuator").Valid())
	assert.False(t, Lane("").Valid())
}

func TestLanesOrder(t *testing.T) {
	assert.Equal(t, []Lane{LaneSensor, LaneLogic, LaneOutput}, Lanes())
}

func TestParseDemandMode(t *testing.T) {
	mode, err := ParseDemandMode("low_demand")
	require.NoError(t, err)
	assert.Equal(t, LowDemand, mode)

	mode, err = ParseDemandMode("high_demand")
	require.NoError(t, err)
	assert.Equal(t, HighDemand, mode)

	_, err = ParseDemandMode("continuous")
	assert.Error(t, err)
	_, err = ParseDemandMode("")
	assert.Error(t, err)
}

func TestEffectiveMode(t *testing.T) {
	s := &SIFU{DemandMode: LowDemand}
	assert.Equal(t, LowDemand, s.EffectiveMode())

	s.DemandModeOverride = HighDemand
	assert.Equal(t, HighDemand, s.EffectiveMode())
}

func TestLaneComponents(t *testing.T) {
	s := &SIFU{Components: []ComponentRecord{
		{ID: "s1", Lane: LaneSensor},
		{ID: "l1", Lane: LaneLogic},
		{ID: "s2", Lane: LaneSensor},
	}}

	sensors := s.LaneComponents(LaneSensor)
	require.Len(t, sensors, 2)
	assert.Equal(t, "s1", sensors[0].ID)
	assert.Equal(t, "s2", sensors[1].ID)

	// Mutations through the returned pointers hit the SIFU's records.
	sensors[0].Colour = "#f00"
	assert.Equal(t, "#f00", s.Components[0].Colour)

	assert.Empty(t, s.LaneComponents(LaneOutput))
}

func TestSIFUValidate(t *testing.T) {
	valid := func() *SIFU {
		return &SIFU{
			Name:       "f-101",
			DemandMode: LowDemand,
			Components: []ComponentRecord{
				{ID: "s1", Lane: LaneSensor},
				{ID: "o1", Lane: LaneOutput},
			},
		}
	}

	assert.NoError(t, valid().Validate())

	t.Run("duplicate id", func(t *testing.T) {
		s := valid()
		s.Components[1].ID = "s1"
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, CodeInvalidParameter, CodeOf(err))
		assert.Contains(t, err.Error(), "s1")
	})

	t.Run("empty id", func(t *testing.T) {
		s := valid()
		s.Components[0].ID = ""
		assert.Error(t, s.Validate())
	})

	t.Run("unknown lane", func(t *testing.T) {
		s := valid()
		s.Components[0].Lane = "actuator"
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "actuator")
	})

	t.Run("unknown component mode", func(t *testing.T) {
		s := valid()
		s.Components[0].DemandMode = "sometimes"
		assert.Error(t, s.Validate())
	})

	t.Run("unknown sifu mode", func(t *testing.T) {
		s := valid()
		s.DemandMode = "continuous"
		assert.Error(t, s.Validate())
	})

	t.Run("unknown override", func(t *testing.T) {
		s := valid()
		s.DemandModeOverride = "continuous"
		assert.Error(t, s.Validate())
	})

	t.Run("required sil out of range", func(t *testing.T) {
		s := valid()
		s.RequiredSIL = 5
		assert.Error(t, s.Validate())
		s.RequiredSIL = 4
		assert.NoError(t, s.Validate())
	})
}

func TestHasColour(t *testing.T) {
	c := ComponentRecord{}
	assert.False(t, c.HasColour())
	c.Colour = "#2e406e"
	assert.True(t, c.HasColour())
}

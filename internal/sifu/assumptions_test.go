package sifu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultAssumptions(t *testing.T) {
	asm := DefaultAssumptions()
	assert.Equal(t, 8760.0, asm.TI)
	assert.Equal(t, 8.0, asm.MTTR)
	assert.Equal(t, 0.10, asm.Beta)
	assert.Equal(t, 0.02, asm.BetaD)
}

func TestAssumptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultAssumptions().Validate())
	assert.NoError(t, Assumptions{TI: 8760, MTTR: 8, Beta: 1, BetaD: 1}.Validate())
	assert.NoError(t, Assumptions{}.Validate())

	tests := []struct {
		name string
		asm  Assumptions
		code ValidationCode
	}{
		{"negative ti", Assumptions{TI: -1, MTTR: 8}, CodeInvalidParameter},
		{"NaN mttr", Assumptions{TI: 8760, MTTR: math.NaN()}, CodeInvalidParameter},
		{"infinite beta", Assumptions{TI: 8760, MTTR: 8, Beta: math.Inf(1)}, CodeInvalidParameter},
		{"beta above one", Assumptions{TI: 8760, MTTR: 8, Beta: 1.01}, CodeInvalidBeta},
		{"betaD above one", Assumptions{TI: 8760, MTTR: 8, BetaD: 1.5}, CodeInvalidBeta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asm.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}
}

func TestAssumptionsPatchApply(t *testing.T) {
	base := DefaultAssumptions()

	var nilPatch *AssumptionsPatch
	assert.Equal(t, base, nilPatch.Apply(base))

	patch := &AssumptionsPatch{TI: f(4380), Beta: f(0.05)}
	out := patch.Apply(base)
	assert.Equal(t, 4380.0, out.TI)
	assert.Equal(t, 0.05, out.Beta)
	assert.Equal(t, base.MTTR, out.MTTR)
	assert.Equal(t, base.BetaD, out.BetaD)
}

func TestAssumptionsPatchIgnoresUnknownKeys(t *testing.T) {
	// Extra keys in an assumptions block carry no meaning and are dropped.
	src := "ti: 4380\nmttr: 24\nproof_test_coverage: 0.9\n"

	var patch AssumptionsPatch
	require.NoError(t, yaml.Unmarshal([]byte(src), &patch))

	out := patch.Apply(DefaultAssumptions())
	assert.Equal(t, 4380.0, out.TI)
	assert.Equal(t, 24.0, out.MTTR)
	assert.Equal(t, 0.10, out.Beta)
}

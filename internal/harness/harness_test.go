package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

// TestScenarios runs every checked-in scenario; each one must pass its own
// expectations.
func TestScenarios(t *testing.T) {
	files, err := FindScenarioFiles(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			res, err := Run(scenario)
			require.NoError(t, err)
			assert.Truef(t, res.Pass, "expectation failures: %v", res.Errors)
		})
	}
}

func TestRun_ExpectedErrorScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "invalid-ratio.yaml"))
	require.NoError(t, err)

	res, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Nil(t, res.Aggregate)
}

func TestRun_WrongErrorCodeFails(t *testing.T) {
	scenario := &Scenario{
		Name: "wrong-code",
		SIFU: sifu.Document{
			Name:       "wrong-code",
			DemandMode: "low_demand",
			Lanes: sifu.LanesDocument{
				Logic: []sifu.ComponentDocument{
					{ID: "plc", LambdaD: fp(1e-5), RatioDU: fp(0.6), RatioDD: fp(0.5)},
				},
			},
		},
		Expect: Expect{Error: "MISSING_RATE"},
	}

	res, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "INVALID_RATIO")
}

func TestRun_UnexpectedSuccessFails(t *testing.T) {
	scenario := &Scenario{
		Name: "should-fail",
		SIFU: sifu.Document{
			Name:       "should-fail",
			DemandMode: "low_demand",
			Lanes: sifu.LanesDocument{
				Sensor: []sifu.ComponentDocument{{ID: "pt", LambdaDU: fp(1e-6), LambdaDD: fp(0)}},
			},
		},
		Expect: Expect{Error: "MISSING_RATE"},
	}

	res, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, res.Pass)
}

func TestRun_ValueMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name: "off-by-decade",
		SIFU: sifu.Document{
			Name:       "off-by-decade",
			DemandMode: "low_demand",
			Lanes: sifu.LanesDocument{
				Sensor: []sifu.ComponentDocument{{ID: "pt", LambdaDU: fp(1e-6), LambdaDD: fp(0)}},
			},
		},
		Expect: Expect{PFDavg: fp(4.388e-2)},
	}

	res, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "PFDavg")
}

func TestRun_RelTolOverride(t *testing.T) {
	// 1% off passes with a loose tolerance, fails with the default.
	build := func(tol float64) *Scenario {
		return &Scenario{
			Name: "tol",
			SIFU: sifu.Document{
				Name:       "tol",
				DemandMode: "low_demand",
				Lanes: sifu.LanesDocument{
					Sensor: []sifu.ComponentDocument{{ID: "pt", LambdaDU: fp(1e-6), LambdaDD: fp(0)}},
				},
			},
			Expect: Expect{PFDavg: fp(4.388e-3 * 1.01), RelTol: tol},
		}
	}

	res, err := Run(build(0.05))
	require.NoError(t, err)
	assert.True(t, res.Pass)

	res, err = Run(build(0))
	require.NoError(t, err)
	assert.False(t, res.Pass)
}

func fp(v float64) *float64 { return &v }

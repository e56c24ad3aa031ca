package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
)

// MarshalResult renders an aggregation result as indented JSON with a
// stable field order. Struct field order is fixed at compile time and
// subgroup slices are sorted by colour key, so the bytes are identical for
// identical inputs - suitable for golden comparison.
func MarshalResult(res *aggregate.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the full aggregation
// result against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if result.Aggregate == nil {
		t.Fatalf("scenario %s produced no aggregate result: %v", scenario.Name, result.Errors)
	}

	data, err := MarshalResult(result.Aggregate)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "single-channel.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "single-channel", s.Name)
	assert.Equal(t, "single-channel", s.SIFU.Name)
	assert.Equal(t, "low_demand", s.SIFU.DemandMode)
	require.NotNil(t, s.Expect.PFDavg)
	assert.Equal(t, 4.388e-3, *s.Expect.PFDavg)
	assert.Equal(t, "SIL 2", s.Expect.SIL)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_NameRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sifu:\n  name: x\n  demand_mode: low_demand\n"), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_ErrorExcludesValueAssertions(t *testing.T) {
	src := `name: conflicted
sifu:
  name: conflicted
  demand_mode: low_demand
expect:
  error: INVALID_RATIO
  sil: "SIL 2"
`
	path := filepath.Join(t.TempDir(), "conflicted.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excludes value assertions")
}

func TestFindScenarioFiles(t *testing.T) {
	files, err := FindScenarioFiles(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	// Sorted, yaml only.
	assert.IsIncreasing(t, files)
	for _, f := range files {
		assert.Contains(t, []string{".yaml", ".yml"}, filepath.Ext(f))
	}
}

func TestFindScenarioFiles_Filter(t *testing.T) {
	files, err := FindScenarioFiles(filepath.Join("testdata", "scenarios"), "*-pair")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "redundant-pair.yaml", filepath.Base(files[0]))
	assert.Equal(t, "zero-rate-pair.yaml", filepath.Base(files[1]))
}

func TestFindScenarioFiles_BadPattern(t *testing.T) {
	_, err := FindScenarioFiles(filepath.Join("testdata", "scenarios"), "[")
	assert.Error(t, err)
}

package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	out, err := executeCommand(t, "validate", filepath.Join("testdata", "sifu-basic.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ f-101-hi-press: 1 components, mode low_demand")
}

func TestValidateCommand_ValidJSON(t *testing.T) {
	out, err := executeCommand(t, "validate", filepath.Join("testdata", "sifu-pair.yaml"), "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "f-102-esd", data["sifu"])
	assert.Equal(t, float64(3), data["components"])
	assert.Equal(t, "low_demand", data["mode"])
}

func TestValidateCommand_BadRatio(t *testing.T) {
	// The ratio-sum rule is semantic: the schema accepts the file, the
	// dry-run rate resolution rejects it.
	out, err := executeCommand(t, "validate", filepath.Join("testdata", "sifu-bad-ratio.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_RATIO")
}

func TestValidateCommand_SchemaViolation(t *testing.T) {
	out, err := executeCommand(t, "validate", filepath.Join("testdata", "sifu-schema-bad.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E_SCHEMA")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "validate", filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

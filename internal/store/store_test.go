package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
	"github.com/t0mt0mm/fusa-calc/internal/relcalc"
	"github.com/t0mt0mm/fusa-calc/internal/sifu"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(name string) *aggregate.Result {
	return &aggregate.Result{
		SIFU: name,
		Mode: sifu.LowDemand,
		TotalMetrics: relcalc.Metrics{
			LambdaTotal: 1e-6,
			LambdaDU:    6e-7,
			LambdaDD:    4e-7,
			PFDavg:      4.388e-3,
			PFH:         6e-7,
			Provenance:  relcalc.ProvenanceNative,
		},
		Total:          4.388e-3,
		BandLabel:      "SIL 2",
		RequiredSIL:    2,
		MeetsRequired:  true,
		ComponentCount: 3,
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestRecordEvaluationRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.RecordEvaluation(ctx, sampleResult("f-101"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rows, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	e := rows[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "f-101", e.SIFUName)
	assert.Equal(t, "low_demand", e.DemandMode)
	assert.Equal(t, 4.388e-3, e.PFDTotal)
	assert.Equal(t, 6e-7, e.PFHTotal)
	assert.Equal(t, "SIL 2", e.SILBand)
	assert.Equal(t, 2, e.RequiredSIL)
	assert.True(t, e.MeetsRequired)
	assert.False(t, e.Degraded)
	assert.Equal(t, 3, e.ComponentCount)
	assert.WithinDuration(t, time.Now().UTC(), e.CreatedAt, time.Minute)
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"f-1", "f-2", "f-3"} {
		id, err := s.RecordEvaluation(ctx, sampleResult(name))
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	rows, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Equal(t, ids[2], rows[0].ID)
	assert.Equal(t, "f-3", rows[0].SIFUName)
	assert.Equal(t, ids[1], rows[1].ID)
}

func TestNewRunIDsAreTimeOrdered(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	// UUIDv7 sorts lexically by generation time.
	assert.Less(t, a, b)
}

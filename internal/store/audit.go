package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/t0mt0mm/fusa-calc/internal/aggregate"
)

// Evaluation is one audit row: the durable record of a single
// aggregation run.
type Evaluation struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	SIFUName       string    `json:"sifu_name"`
	DemandMode     string    `json:"demand_mode"`
	PFDTotal       float64   `json:"pfd_total"`
	PFHTotal       float64   `json:"pfh_total"`
	SILBand        string    `json:"sil_band"`
	RequiredSIL    int       `json:"required_sil"`
	MeetsRequired  bool      `json:"meets_required"`
	Degraded       bool      `json:"degraded"`
	ComponentCount int       `json:"component_count"`
}

// NewRunID generates a time-ordered run identifier for an audit row.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordEvaluation appends one aggregation result to the audit log and
// returns the generated run identifier.
func (s *Store) RecordEvaluation(ctx context.Context, res *aggregate.Result) (string, error) {
	id := NewRunID()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, created_at, sifu_name, demand_mode,
			pfd_total, pfh_total, sil_band,
			required_sil, meets_required, degraded, component_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, res.SIFU, string(res.Mode),
		res.TotalMetrics.PFDavg, res.TotalMetrics.PFH, res.BandLabel,
		res.RequiredSIL, boolToInt(res.MeetsRequired), boolToInt(res.Degraded),
		res.ComponentCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record evaluation: %w", err)
	}
	return id, nil
}

// Recent returns the most recent audit rows, newest first, up to limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, sifu_name, demand_mode,
		       pfd_total, pfh_total, sil_band,
		       required_sil, meets_required, degraded, component_count
		FROM evaluations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var (
			e         Evaluation
			createdAt string
			meets     int
			degraded  int
		)
		if err := rows.Scan(
			&e.ID, &createdAt, &e.SIFUName, &e.DemandMode,
			&e.PFDTotal, &e.PFHTotal, &e.SILBand,
			&e.RequiredSIL, &meets, &degraded, &e.ComponentCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		e.CreatedAt = ts
		e.MeetsRequired = meets != 0
		e.Degraded = degraded != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/claude/repplan/internal/plan"
)

// InsertWeightSamples batch-inserts weight measurements. Duplicate
// timestamps are skipped via ON CONFLICT DO NOTHING; returns the number
// actually inserted.
func (db *DB) InsertWeightSamples(ctx context.Context, userID int, samples []plan.WeightSample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	query := `INSERT INTO weight_samples (user_id, time, weight_kg) VALUES `
	args := make([]any, 0, len(samples)*3)
	valueStrings := make([]string, 0, len(samples))

	for i, s := range samples {
		base := i * 3
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3))
		args = append(args, userID, s.Timestamp, s.WeightKg)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting weight samples: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryWeightSamples retrieves weight samples in a time range, oldest first
// — the ordering the adaptation engine expects.
func (db *DB) QueryWeightSamples(ctx context.Context, userID int, start, end time.Time) ([]plan.WeightSample, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT time, weight_kg FROM weight_samples
		WHERE user_id = $1 AND time >= $2 AND time < $3
		ORDER BY time ASC
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying weight samples: %w", err)
	}
	defer rows.Close()

	var out []plan.WeightSample
	for rows.Next() {
		var s plan.WeightSample
		if err := rows.Scan(&s.Timestamp, &s.WeightKg); err != nil {
			return nil, fmt.Errorf("scanning weight sample: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestWeightSample returns the most recent measurement, or ErrNotFound.
func (db *DB) LatestWeightSample(ctx context.Context, userID int) (*plan.WeightSample, error) {
	var s plan.WeightSample
	err := db.Pool.QueryRow(ctx, `
		SELECT time, weight_kg FROM weight_samples
		WHERE user_id = $1 ORDER BY time DESC LIMIT 1
	`, userID).Scan(&s.Timestamp, &s.WeightKg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying latest weight: %w", err)
	}
	return &s, nil
}

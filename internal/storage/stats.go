package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats summarizes what the database holds, for the settings screen
// and the importer's post-run report.
type DataStats struct {
	Exercises     int        `json:"exercises"`
	WeightSamples int        `json:"weight_samples"`
	Routines      int        `json:"routines"`
	LatestWeighIn *time.Time `json:"latest_weigh_in,omitempty"`
}

// GetDataStats returns row counts and the newest weigh-in timestamp.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}
	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM exercises),
			(SELECT COUNT(*) FROM weight_samples WHERE user_id = $1),
			(SELECT COUNT(*) FROM routines WHERE user_id = $1),
			(SELECT MAX(time) FROM weight_samples WHERE user_id = $1)
	`, userID).Scan(&stats.Exercises, &stats.WeightSamples, &stats.Routines, &stats.LatestWeighIn)
	if err != nil {
		return nil, fmt.Errorf("querying data stats: %w", err)
	}
	return stats, nil
}

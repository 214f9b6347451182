package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claude/repplan/internal/plan"
)

// UpsertExercises batch-upserts catalog records. Returns the number of rows
// written. Equipment and secondary-muscle lists are stored as JSONB so the
// catalog row round-trips without a join.
func (db *DB) UpsertExercises(ctx context.Context, exercises []plan.ExerciseDefinition) (int64, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercises (id, title, body_part, equipment, mechanic, force,
 primary_muscle, secondary_muscles, ranking, scores, met) VALUES `
	args := make([]any, 0, len(exercises)*11)
	valueStrings := make([]string, 0, len(exercises))

	for i, ex := range exercises {
		equipJSON, err := json.Marshal(ex.Equipment)
		if err != nil {
			return 0, fmt.Errorf("encoding equipment for %s: %w", ex.ID, err)
		}
		secJSON, err := json.Marshal(ex.SecondaryMuscles)
		if err != nil {
			return 0, fmt.Errorf("encoding secondary muscles for %s: %w", ex.ID, err)
		}
		scoresJSON, err := json.Marshal(ex.Scores)
		if err != nil {
			return 0, fmt.Errorf("encoding scores for %s: %w", ex.ID, err)
		}

		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, ex.ID, ex.Title, ex.BodyPart, equipJSON, string(ex.Mechanic),
			string(ex.Force), string(ex.PrimaryMuscle), secJSON, ex.Ranking, scoresJSON, ex.MET)
	}

	query += strings.Join(valueStrings, ",") + ` ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title, body_part = EXCLUDED.body_part,
		equipment = EXCLUDED.equipment, mechanic = EXCLUDED.mechanic,
		force = EXCLUDED.force, primary_muscle = EXCLUDED.primary_muscle,
		secondary_muscles = EXCLUDED.secondary_muscles, ranking = EXCLUDED.ranking,
		scores = EXCLUDED.scores, met = EXCLUDED.met`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListExercises returns the catalog, optionally filtered by primary muscle,
// ordered by ranking then ID for stable output.
func (db *DB) ListExercises(ctx context.Context, primaryMuscle string) ([]plan.ExerciseDefinition, error) {
	query := `SELECT id, title, body_part, equipment, mechanic, force,
	 primary_muscle, secondary_muscles, ranking, scores, met FROM exercises`
	var args []any
	if primaryMuscle != "" {
		query += ` WHERE primary_muscle = $1`
		args = append(args, primaryMuscle)
	}
	query += ` ORDER BY ranking DESC, id ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var out []plan.ExerciseDefinition
	for rows.Next() {
		var ex plan.ExerciseDefinition
		var mechanic, force, primary string
		var equipJSON, secJSON, scoresJSON []byte
		if err := rows.Scan(&ex.ID, &ex.Title, &ex.BodyPart, &equipJSON, &mechanic, &force,
			&primary, &secJSON, &ex.Ranking, &scoresJSON, &ex.MET); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		ex.Mechanic = plan.Mechanic(mechanic)
		ex.Force = plan.Force(force)
		ex.PrimaryMuscle = plan.MuscleGroup(primary)
		if err := json.Unmarshal(equipJSON, &ex.Equipment); err != nil {
			return nil, fmt.Errorf("decoding equipment for %s: %w", ex.ID, err)
		}
		if err := json.Unmarshal(secJSON, &ex.SecondaryMuscles); err != nil {
			return nil, fmt.Errorf("decoding secondary muscles for %s: %w", ex.ID, err)
		}
		if err := json.Unmarshal(scoresJSON, &ex.Scores); err != nil {
			return nil, fmt.Errorf("decoding scores for %s: %w", ex.ID, err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

// CountExercises returns the catalog size.
func (db *DB) CountExercises(ctx context.Context) (int, error) {
	var n int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return n, nil
}

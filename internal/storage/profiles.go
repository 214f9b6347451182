package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/claude/repplan/internal/plan"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProfileRow is a stored biometric profile with bookkeeping fields.
type ProfileRow struct {
	UserID    int              `json:"user_id"`
	Profile   plan.UserProfile `json:"profile"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UpsertProfile stores or replaces the user's biometric profile.
func (db *DB) UpsertProfile(ctx context.Context, userID int, p plan.UserProfile) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO profiles (user_id, gender, age, height_cm, weight_kg, target_weight_kg,
		 goal, activity_level, goal_speed, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			gender = $2, age = $3, height_cm = $4, weight_kg = $5,
			target_weight_kg = $6, goal = $7, activity_level = $8,
			goal_speed = $9, updated_at = NOW()
	`, userID, p.Gender, p.Age, p.HeightCm, p.WeightKg, p.TargetWeightKg,
		string(p.Goal), string(p.ActivityLevel), string(p.GoalSpeed))
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// GetProfile loads the user's biometric profile.
func (db *DB) GetProfile(ctx context.Context, userID int) (*ProfileRow, error) {
	row := ProfileRow{UserID: userID}
	var goal, activity, speed string
	err := db.Pool.QueryRow(ctx, `
		SELECT gender, age, height_cm, weight_kg, target_weight_kg,
		       goal, activity_level, goal_speed, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(
		&row.Profile.Gender, &row.Profile.Age, &row.Profile.HeightCm,
		&row.Profile.WeightKg, &row.Profile.TargetWeightKg,
		&goal, &activity, &speed, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	row.Profile.Goal = plan.BodyGoal(goal)
	row.Profile.ActivityLevel = plan.ActivityLevel(activity)
	row.Profile.GoalSpeed = plan.GoalSpeed(speed)
	return &row, nil
}

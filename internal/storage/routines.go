package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/repplan/internal/plan"
)

// RoutineRow is a persisted generated routine together with the equipment
// snapshot it was built against. The snapshot is the baseline the adaptation
// engine diffs against when the user's inventory changes.
type RoutineRow struct {
	ID        uuid.UUID             `json:"id"`
	UserID    int                   `json:"-"`
	Routine   plan.GeneratedRoutine `json:"routine"`
	Equipment []plan.EquipmentItem  `json:"equipment"`
	CreatedAt time.Time             `json:"created_at"`
}

// InsertRoutine persists a generated routine and returns its assigned ID.
func (db *DB) InsertRoutine(ctx context.Context, userID int, routine plan.GeneratedRoutine, equipment []plan.EquipmentItem) (uuid.UUID, error) {
	id := uuid.New()

	routineJSON, err := json.Marshal(routine)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshaling routine: %w", err)
	}
	equipmentJSON, err := json.Marshal(equipment)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshaling equipment snapshot: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO routines (id, user_id, routine, equipment, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, id, userID, routineJSON, equipmentJSON)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting routine: %w", err)
	}
	return id, nil
}

// GetRoutine retrieves a routine by ID, or ErrNotFound.
func (db *DB) GetRoutine(ctx context.Context, userID int, id uuid.UUID) (*RoutineRow, error) {
	return db.scanRoutine(db.Pool.QueryRow(ctx, `
		SELECT id, user_id, routine, equipment, created_at
		FROM routines WHERE user_id = $1 AND id = $2
	`, userID, id))
}

// LatestRoutine retrieves the most recently generated routine for a user,
// or ErrNotFound when none has been generated yet.
func (db *DB) LatestRoutine(ctx context.Context, userID int) (*RoutineRow, error) {
	return db.scanRoutine(db.Pool.QueryRow(ctx, `
		SELECT id, user_id, routine, equipment, created_at
		FROM routines WHERE user_id = $1
		ORDER BY created_at DESC LIMIT 1
	`, userID))
}

func (db *DB) scanRoutine(row pgx.Row) (*RoutineRow, error) {
	var r RoutineRow
	var routineJSON, equipmentJSON []byte
	err := row.Scan(&r.ID, &r.UserID, &routineJSON, &equipmentJSON, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning routine: %w", err)
	}
	if err := json.Unmarshal(routineJSON, &r.Routine); err != nil {
		return nil, fmt.Errorf("unmarshaling routine: %w", err)
	}
	if err := json.Unmarshal(equipmentJSON, &r.Equipment); err != nil {
		return nil, fmt.Errorf("unmarshaling equipment snapshot: %w", err)
	}
	return &r, nil
}

package mcp

import (
	"context"
	"time"

	"github.com/claude/repplan/internal/plan"
	"github.com/claude/repplan/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools, so handlers can be
// tested against an in-memory fake.
type DataSource interface {
	GetProfile(ctx context.Context, userID int) (*storage.ProfileRow, error)
	GetEquipment(ctx context.Context, userID int) ([]plan.EquipmentItem, error)
	ListExercises(ctx context.Context, primaryMuscle string) ([]plan.ExerciseDefinition, error)
	InsertWeightSamples(ctx context.Context, userID int, samples []plan.WeightSample) (int64, error)
	QueryWeightSamples(ctx context.Context, userID int, start, end time.Time) ([]plan.WeightSample, error)
	InsertRoutine(ctx context.Context, userID int, routine plan.GeneratedRoutine, equipment []plan.EquipmentItem) (uuid.UUID, error)
	LatestRoutine(ctx context.Context, userID int) (*storage.RoutineRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// Package plan contains the training-plan recommendation core: profile
// analysis, weekly split planning, exercise allocation, intensity
// prescription, and adaptation trend detection. Every function in this
// package is pure — inputs are already-resolved collections supplied by the
// caller, outputs are plain structs, and no I/O happens here.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// BodyGoal is the user's stated body-composition goal.
type BodyGoal string

// Body goal constants. Parse accepts the Portuguese labels used by the
// mobile client ("Definir", "Manter", "Ganhar").
const (
	GoalCut      BodyGoal = "cut"
	GoalMaintain BodyGoal = "maintain"
	GoalBulk     BodyGoal = "bulk"
)

// TrainingGoal is the recommended training emphasis derived from the
// profile, or supplied directly when generating a routine.
type TrainingGoal string

// Training goal constants.
const (
	TrainingFatLoss       TrainingGoal = "fat_loss"
	TrainingHypertrophy   TrainingGoal = "hypertrophy"
	TrainingStrength      TrainingGoal = "strength"
	TrainingRecomposition TrainingGoal = "recomposition"
)

// Level is the user's training experience level.
type Level string

// Experience level constants.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// GoalSpeed is how aggressively the user wants to move toward the target
// weight.
type GoalSpeed string

// Goal speed constants.
const (
	SpeedConservative GoalSpeed = "conservative"
	SpeedModerate     GoalSpeed = "moderate"
	SpeedAggressive   GoalSpeed = "aggressive"
)

// ActivityLevel is the user's day-to-day (non-training) activity.
type ActivityLevel string

// Activity level constants.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// BMICategory classifies body mass index into the standard WHO bands.
type BMICategory string

// BMI category constants.
const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// EquipmentType tags a category of training equipment.
type EquipmentType string

// Equipment type constants.
const (
	EquipBodyweight EquipmentType = "bodyweight"
	EquipBarbell    EquipmentType = "barbell"
	EquipDumbbell   EquipmentType = "dumbbell"
	EquipKettlebell EquipmentType = "kettlebell"
	EquipBands      EquipmentType = "bands"
	EquipMachine    EquipmentType = "machine"
	EquipCable      EquipmentType = "cable"
	EquipPullupBar  EquipmentType = "pullup_bar"
	EquipBench      EquipmentType = "bench"
)

// MuscleGroup names a trainable muscle group.
type MuscleGroup string

// Muscle group constants.
const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleCore       MuscleGroup = "core"
)

// MajorMuscleGroups are the groups the weekly split must hit at least twice
// when four or more training days are available.
var MajorMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders,
	MuscleQuads, MuscleHamstrings, MuscleGlutes,
}

// Mechanic classifies an exercise as multi-joint or single-joint.
type Mechanic string

// Mechanic constants.
const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

// Force classifies the dominant force vector of an exercise.
type Force string

// Force constants.
const (
	ForcePush   Force = "push"
	ForcePull   Force = "pull"
	ForceStatic Force = "static"
)

// UserProfile is the externally owned biometric profile. Read-only input.
type UserProfile struct {
	Gender         string        `json:"gender"`
	Age            int           `json:"age"`
	HeightCm       float64       `json:"height_cm"`
	WeightKg       float64       `json:"weight_kg"`
	TargetWeightKg float64       `json:"target_weight_kg"`
	Goal           BodyGoal      `json:"goal"`
	ActivityLevel  ActivityLevel `json:"activity_level"`
	GoalSpeed      GoalSpeed     `json:"goal_speed"`
}

// EquipmentItem is one entry of the user's equipment inventory.
type EquipmentItem struct {
	Type         EquipmentType `json:"type"`
	Quantity     int           `json:"quantity"`
	UnitWeightKg float64       `json:"unit_weight_kg,omitempty"`
}

// GoalScores holds the catalog's goal-alignment ratings for an exercise.
// Small integers, typically 0-5.
type GoalScores struct {
	Hypertrophy int `json:"hypertrophy"`
	Strength    int `json:"strength"`
	Difficulty  int `json:"difficulty"`
	InjuryRisk  int `json:"injury_risk"`
	Stability   int `json:"stability"`
}

// ExerciseDefinition is an immutable catalog record.
// An empty Equipment list (or one containing only bodyweight) means the
// exercise is always available.
type ExerciseDefinition struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	BodyPart         string          `json:"body_part"`
	Equipment        []EquipmentType `json:"equipment"`
	Mechanic         Mechanic        `json:"mechanic"`
	Force            Force           `json:"force"`
	PrimaryMuscle    MuscleGroup     `json:"primary_muscle"`
	SecondaryMuscles []MuscleGroup   `json:"secondary_muscles,omitempty"`
	Ranking          int             `json:"ranking"`
	Scores           GoalScores      `json:"scores"`
	MET              float64         `json:"met,omitempty"`
}

// WeightSample is one body-weight measurement. Histories are supplied
// oldest-to-newest.
type WeightSample struct {
	Timestamp time.Time `json:"timestamp"`
	WeightKg  float64   `json:"weight_kg"`
}

// EquipmentTypeSet converts an inventory into the set of type tags the core
// consumes. Zero-quantity entries are skipped.
func EquipmentTypeSet(items []EquipmentItem) []EquipmentType {
	seen := make(map[EquipmentType]struct{}, len(items))
	var out []EquipmentType
	for _, it := range items {
		if it.Quantity <= 0 && it.Type != EquipBodyweight {
			continue
		}
		if _, ok := seen[it.Type]; ok {
			continue
		}
		seen[it.Type] = struct{}{}
		out = append(out, it.Type)
	}
	return out
}

// ParseBodyGoal parses a body goal from an English or Portuguese label.
func ParseBodyGoal(s string) (BodyGoal, error) {
	switch normalizeToken(s) {
	case "cut", "definir", "definicao", "perder", "emagrecer":
		return GoalCut, nil
	case "maintain", "manter", "manutencao":
		return GoalMaintain, nil
	case "bulk", "ganhar", "ganho", "massa":
		return GoalBulk, nil
	}
	return "", fmt.Errorf("unknown body goal %q", s)
}

// ParseTrainingGoal parses a training goal from an English or Portuguese
// label.
func ParseTrainingGoal(s string) (TrainingGoal, error) {
	switch normalizeToken(s) {
	case "fat_loss", "fatloss", "emagrecimento":
		return TrainingFatLoss, nil
	case "hypertrophy", "hipertrofia":
		return TrainingHypertrophy, nil
	case "strength", "forca":
		return TrainingStrength, nil
	case "recomposition", "recomp", "recomposicao":
		return TrainingRecomposition, nil
	}
	return "", fmt.Errorf("unknown training goal %q", s)
}

// ParseLevel parses an experience level from an English or Portuguese label.
func ParseLevel(s string) (Level, error) {
	switch normalizeToken(s) {
	case "beginner", "iniciante":
		return LevelBeginner, nil
	case "intermediate", "intermediario":
		return LevelIntermediate, nil
	case "advanced", "avancado":
		return LevelAdvanced, nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// ParseGoalSpeed parses a goal speed from an English or Portuguese label.
func ParseGoalSpeed(s string) (GoalSpeed, error) {
	switch normalizeToken(s) {
	case "conservative", "conservador":
		return SpeedConservative, nil
	case "moderate", "moderado":
		return SpeedModerate, nil
	case "aggressive", "agressivo":
		return SpeedAggressive, nil
	}
	return "", fmt.Errorf("unknown goal speed %q", s)
}

// normalizeToken lowercases and strips the accents that appear in the
// Portuguese labels, so "Força" and "forca" parse the same way.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"ç", "c", "ã", "a", "á", "a", "â", "a",
		"é", "e", "ê", "e", "í", "i", "ó", "o",
		"ô", "o", "õ", "o", "ú", "u",
	)
	return replacer.Replace(s)
}

func validTrainingGoal(g TrainingGoal) bool {
	switch g {
	case TrainingFatLoss, TrainingHypertrophy, TrainingStrength, TrainingRecomposition:
		return true
	}
	return false
}

func validLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

package plan

import (
	"strings"
	"testing"
)

func compoundEx() ExerciseDefinition {
	return ExerciseDefinition{ID: "bb-bench", Title: "Barbell Bench Press", Mechanic: MechanicCompound, PrimaryMuscle: MuscleChest}
}

func isolationEx() ExerciseDefinition {
	return ExerciseDefinition{ID: "db-curl", Title: "Dumbbell Curl", Mechanic: MechanicIsolation, PrimaryMuscle: MuscleBiceps}
}

// TestPrescribe_HypertrophyCompoundIntermediate pins Scenario C: reps within
// 8-12, RIR within 1-2, and 3 or 4 sets.
func TestPrescribe_HypertrophyCompoundIntermediate(t *testing.T) {
	p, err := Prescribe(compoundEx(), TrainingHypertrophy, LevelIntermediate)
	if err != nil {
		t.Fatal(err)
	}
	if p.Reps.Min < 8 || p.Reps.Max > 12 {
		t.Errorf("reps = %d-%d, want within 8-12", p.Reps.Min, p.Reps.Max)
	}
	if p.RIR < 1 || p.RIR > 2 {
		t.Errorf("RIR = %d, want within 1-2", p.RIR)
	}
	if p.Sets != 3 && p.Sets != 4 {
		t.Errorf("sets = %d, want 3 or 4", p.Sets)
	}
}

// TestPrescribe_GoalBands walks the goal-keyed bands and checks the
// compound/isolation split of each range: compounds take the lower half
// with the longer rest, isolations the upper half with the shorter rest.
func TestPrescribe_GoalBands(t *testing.T) {
	cases := []struct {
		goal             TrainingGoal
		repsMin, repsMax int
		restMin, restMax int
	}{
		{TrainingHypertrophy, 8, 12, 60, 90},
		{TrainingStrength, 3, 6, 120, 180},
		{TrainingFatLoss, 12, 15, 30, 45},
	}
	for _, tc := range cases {
		t.Run(string(tc.goal), func(t *testing.T) {
			comp, err := Prescribe(compoundEx(), tc.goal, LevelIntermediate)
			if err != nil {
				t.Fatal(err)
			}
			iso, err := Prescribe(isolationEx(), tc.goal, LevelIntermediate)
			if err != nil {
				t.Fatal(err)
			}

			if comp.Reps.Min != tc.repsMin {
				t.Errorf("compound reps start at %d, want band floor %d", comp.Reps.Min, tc.repsMin)
			}
			if iso.Reps.Max != tc.repsMax {
				t.Errorf("isolation reps end at %d, want band ceiling %d", iso.Reps.Max, tc.repsMax)
			}
			if comp.Reps.Max > iso.Reps.Min+1 {
				t.Errorf("compound range %v should sit below isolation range %v", comp.Reps, iso.Reps)
			}
			if comp.RestSec != tc.restMax {
				t.Errorf("compound rest = %d, want %d", comp.RestSec, tc.restMax)
			}
			if iso.RestSec != tc.restMin {
				t.Errorf("isolation rest = %d, want %d", iso.RestSec, tc.restMin)
			}
		})
	}
}

// TestPrescribe_RecompositionBlend verifies the recomposition blend:
// compounds follow the hypertrophy band, isolations the fat-loss band.
func TestPrescribe_RecompositionBlend(t *testing.T) {
	comp, err := Prescribe(compoundEx(), TrainingRecomposition, LevelIntermediate)
	if err != nil {
		t.Fatal(err)
	}
	iso, err := Prescribe(isolationEx(), TrainingRecomposition, LevelIntermediate)
	if err != nil {
		t.Fatal(err)
	}
	if comp.Reps.Min != 8 {
		t.Errorf("recomposition compound reps start at %d, want hypertrophy floor 8", comp.Reps.Min)
	}
	if iso.Reps.Max != 15 {
		t.Errorf("recomposition isolation reps end at %d, want fat-loss ceiling 15", iso.Reps.Max)
	}
}

// TestPrescribe_SetsByLevel verifies the level ladder: beginner 2-3,
// intermediate 3-4, advanced 4-5 sets, bounded by the global 1-6 invariant.
func TestPrescribe_SetsByLevel(t *testing.T) {
	cases := []struct {
		level    Level
		min, max int
	}{
		{LevelBeginner, 2, 3},
		{LevelIntermediate, 3, 4},
		{LevelAdvanced, 4, 5},
	}
	for _, tc := range cases {
		for _, ex := range []ExerciseDefinition{compoundEx(), isolationEx()} {
			p, err := Prescribe(ex, TrainingHypertrophy, tc.level)
			if err != nil {
				t.Fatal(err)
			}
			if p.Sets < tc.min || p.Sets > tc.max {
				t.Errorf("%s %s: sets = %d, want %d-%d", tc.level, ex.Mechanic, p.Sets, tc.min, tc.max)
			}
			if p.Sets < 1 || p.Sets > 6 {
				t.Errorf("sets = %d outside the 1-6 invariant", p.Sets)
			}
			if p.RIR < 0 || p.RIR > 5 {
				t.Errorf("RIR = %d outside the 0-5 invariant", p.RIR)
			}
		}
	}
}

// TestPrescribe_RationaleProvenance verifies every prescription names the
// goal, mechanic, and level that produced it.
func TestPrescribe_RationaleProvenance(t *testing.T) {
	p, err := Prescribe(compoundEx(), TrainingStrength, LevelAdvanced)
	if err != nil {
		t.Fatal(err)
	}
	for _, token := range []string{"strength", "compound", "advanced"} {
		if !strings.Contains(p.Rationale, token) {
			t.Errorf("rationale %q does not name %q", p.Rationale, token)
		}
	}
}

// TestPrescribe_UnknownEnums verifies that unknown goal or level values are
// rejected as configuration errors.
func TestPrescribe_UnknownEnums(t *testing.T) {
	if _, err := Prescribe(compoundEx(), TrainingGoal("tone"), LevelBeginner); err == nil {
		t.Error("unknown goal should fail")
	}
	if _, err := Prescribe(compoundEx(), TrainingStrength, Level("pro")); err == nil {
		t.Error("unknown level should fail")
	}
}

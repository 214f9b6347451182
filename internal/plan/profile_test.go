package plan

import (
	"math"
	"strings"
	"testing"
)

// TestAnalyzeProfile_ObeseFatLoss verifies the canonical obese case: BMI 32
// (175 cm, 98 kg) recommends fat loss with joint-protective low-impact
// cardio at 5x40.
func TestAnalyzeProfile_ObeseFatLoss(t *testing.T) {
	a := AnalyzeProfile(98, 175, 85, nil)

	if math.Abs(a.BMI-32.0) > 0.1 {
		t.Errorf("BMI = %.2f, want ~32.0", a.BMI)
	}
	if a.Category != BMIObese {
		t.Errorf("category = %s, want obese", a.Category)
	}
	if a.RecommendedGoal != TrainingFatLoss {
		t.Errorf("recommended goal = %s, want fat_loss", a.RecommendedGoal)
	}
	if a.Cardio.Type != CardioLowImpact {
		t.Errorf("cardio type = %s, want low_impact", a.Cardio.Type)
	}
	if a.Cardio.FrequencyPerWeek != 5 {
		t.Errorf("cardio frequency = %d, want 5", a.Cardio.FrequencyPerWeek)
	}
	if a.Cardio.DurationMin != 40 {
		t.Errorf("cardio duration = %d, want 40", a.Cardio.DurationMin)
	}
}

// TestAnalyzeProfile_GoalTable walks the goal-by-category decision table,
// including the target-direction branch inside the normal band.
func TestAnalyzeProfile_GoalTable(t *testing.T) {
	cases := []struct {
		name             string
		weight, height   float64
		target           float64
		wantCategory     BMICategory
		wantGoal         TrainingGoal
	}{
		{"obese", 110, 175, 90, BMIObese, TrainingFatLoss},
		{"overweight", 85, 175, 78, BMIOverweight, TrainingRecomposition},
		{"underweight", 50, 180, 60, BMIUnderweight, TrainingHypertrophy},
		{"normal cutting", 70, 178, 66, BMINormal, TrainingFatLoss},
		{"normal gaining", 70, 178, 76, BMINormal, TrainingHypertrophy},
		{"normal at target", 70, 178, 70, BMINormal, TrainingStrength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := AnalyzeProfile(tc.weight, tc.height, tc.target, nil)
			if a.Category != tc.wantCategory {
				t.Errorf("category = %s, want %s", a.Category, tc.wantCategory)
			}
			if a.RecommendedGoal != tc.wantGoal {
				t.Errorf("goal = %s, want %s", a.RecommendedGoal, tc.wantGoal)
			}
		})
	}
}

// TestAnalyzeProfile_Warnings verifies the three advisory warnings: medical
// clearance at BMI >= 35, sub-goal split for a >20 kg obese target gap, and
// the surplus advisory for underweight profiles.
func TestAnalyzeProfile_Warnings(t *testing.T) {
	highBMI := AnalyzeProfile(120, 175, 115, nil) // BMI ~39.2
	if !containsSubstring(highBMI.Warnings, "medical clearance") {
		t.Errorf("expected medical clearance warning, got %v", highBMI.Warnings)
	}

	bigGap := AnalyzeProfile(110, 175, 80, nil) // obese, 30 kg gap
	if !containsSubstring(bigGap.Warnings, "sub-goals") {
		t.Errorf("expected sub-goal warning, got %v", bigGap.Warnings)
	}

	under := AnalyzeProfile(50, 180, 60, nil)
	if !containsSubstring(under.Warnings, "surplus") {
		t.Errorf("expected surplus warning, got %v", under.Warnings)
	}

	clean := AnalyzeProfile(70, 178, 70, nil)
	if len(clean.Warnings) != 0 {
		t.Errorf("expected no warnings for a normal profile, got %v", clean.Warnings)
	}
}

// TestAnalyzeProfile_DegenerateInput verifies the never-throw contract:
// non-positive biometrics return a placeholder analysis with a warning
// instead of panicking or producing NaN.
func TestAnalyzeProfile_DegenerateInput(t *testing.T) {
	cases := []struct {
		name           string
		weight, height float64
	}{
		{"zero weight", 0, 175},
		{"zero height", 80, 0},
		{"negative weight", -5, 175},
		{"both zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := AnalyzeProfile(tc.weight, tc.height, 70, nil)
			if a.BMI != 0 {
				t.Errorf("BMI = %.2f, want zeroed sentinel", a.BMI)
			}
			if math.IsNaN(a.BMI) || math.IsInf(a.BMI, 0) {
				t.Errorf("BMI is not finite: %v", a.BMI)
			}
			if len(a.Warnings) == 0 {
				t.Error("expected a degenerate-input warning")
			}
			if a.Cardio.Type == "" {
				t.Error("expected a best-effort cardio plan even for bad input")
			}
		})
	}
}

// TestCardioModalities_EquipmentFilter verifies that modalities needing
// unavailable equipment are dropped and that the list never empties.
func TestCardioModalities_EquipmentFilter(t *testing.T) {
	withMachine := AnalyzeProfile(98, 175, 85, []EquipmentType{EquipMachine})
	noEquip := AnalyzeProfile(98, 175, 85, nil)

	if len(withMachine.Cardio.Modalities) <= len(noEquip.Cardio.Modalities) {
		t.Errorf("machine access should widen modality list: %d vs %d",
			len(withMachine.Cardio.Modalities), len(noEquip.Cardio.Modalities))
	}
	if len(noEquip.Cardio.Modalities) == 0 {
		t.Error("modality list must never be empty")
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

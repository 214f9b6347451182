package plan

// BMI category thresholds and warning cutoffs.
const (
	bmiUnderweightMax = 18.5
	bmiNormalMax      = 25.0
	bmiOverweightMax  = 30.0

	// BMIMedicalClearance is the BMI at or above which the analysis
	// recommends medical clearance before starting a program.
	BMIMedicalClearance = 35.0

	// AggressiveTargetGapKg is the weight gap beyond which an obese
	// trainee is advised to split the goal into sub-goals.
	AggressiveTargetGapKg = 20.0
)

// ProfileAnalysis is the result of interpreting a biometric profile.
type ProfileAnalysis struct {
	BMI             float64      `json:"bmi"`
	Category        BMICategory  `json:"category"`
	RecommendedGoal TrainingGoal `json:"recommended_goal"`
	Cardio          CardioPlan   `json:"cardio"`
	Warnings        []string     `json:"warnings,omitempty"`
}

// AnalyzeProfile classifies a biometric profile into a BMI category, a
// recommended training goal, a cardio prescription, and advisory warnings.
//
// The function is total: non-positive height or weight yields a zeroed
// best-effort analysis instead of an error, matching the guard-clause
// convention used for the BMR/TDEE calculators around this core.
func AnalyzeProfile(weightKg, heightCm, targetWeightKg float64, equipment []EquipmentType) ProfileAnalysis {
	if weightKg <= 0 || heightCm <= 0 {
		return ProfileAnalysis{
			Category:        BMINormal,
			RecommendedGoal: TrainingRecomposition,
			Cardio:          cardioPlanFor(BMINormal, TrainingRecomposition, equipment),
			Warnings:        []string{"biometric data is incomplete or implausible; analysis is a default placeholder"},
		}
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	category := classifyBMI(bmi)
	goal := goalForCategory(category, weightKg, targetWeightKg)

	analysis := ProfileAnalysis{
		BMI:             bmi,
		Category:        category,
		RecommendedGoal: goal,
		Cardio:          cardioPlanFor(category, goal, equipment),
	}

	if bmi >= BMIMedicalClearance {
		analysis.Warnings = append(analysis.Warnings,
			"BMI is 35 or above; medical clearance is recommended before starting a training program")
	}
	if category == BMIObese && targetWeightKg > 0 && weightKg-targetWeightKg > AggressiveTargetGapKg {
		analysis.Warnings = append(analysis.Warnings,
			"the target weight is more than 20 kg away; splitting the goal into smaller sub-goals improves adherence")
	}
	if category == BMIUnderweight {
		analysis.Warnings = append(analysis.Warnings,
			"underweight profile; a caloric surplus with a strength focus is recommended before any cutting phase")
	}

	return analysis
}

func classifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < bmiUnderweightMax:
		return BMIUnderweight
	case bmi < bmiNormalMax:
		return BMINormal
	case bmi < bmiOverweightMax:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// goalForCategory maps a BMI category to the recommended training goal. In
// the normal band the direction of the target weight decides.
func goalForCategory(category BMICategory, weightKg, targetWeightKg float64) TrainingGoal {
	switch category {
	case BMIObese:
		return TrainingFatLoss
	case BMIOverweight:
		return TrainingRecomposition
	case BMIUnderweight:
		return TrainingHypertrophy
	default:
		switch {
		case targetWeightKg > 0 && targetWeightKg < weightKg:
			return TrainingFatLoss
		case targetWeightKg > weightKg:
			return TrainingHypertrophy
		default:
			return TrainingStrength
		}
	}
}

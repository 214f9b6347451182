package plan

// CardioType is the intensity class of a cardio prescription.
type CardioType string

// Cardio type constants.
const (
	CardioLowImpact CardioType = "low_impact"
	CardioModerate  CardioType = "moderate"
	CardioHIIT      CardioType = "hiit"
	CardioOptional  CardioType = "optional"
)

// CardioModality is one allowed cardio activity with its selection
// rationale. Requires lists equipment the modality depends on; empty means
// it works anywhere.
type CardioModality struct {
	Name      string          `json:"name"`
	Rationale string          `json:"rationale"`
	Requires  []EquipmentType `json:"-"`
}

// CardioPlan is a weekly cardio prescription.
type CardioPlan struct {
	Type             CardioType       `json:"type"`
	FrequencyPerWeek int              `json:"frequency_per_week"`
	DurationMin      int              `json:"duration_min"`
	Modalities       []CardioModality `json:"modalities"`
	Rationale        string           `json:"rationale"`
}

// cardioPlanFor selects a cardio prescription from the (category, goal)
// decision table. An obese category always forces low-impact work at the
// highest prescribed frequency to protect joints, whatever the goal says.
func cardioPlanFor(category BMICategory, goal TrainingGoal, equipment []EquipmentType) CardioPlan {
	var p CardioPlan

	if category == BMIObese {
		p = CardioPlan{
			Type:             CardioLowImpact,
			FrequencyPerWeek: 5,
			DurationMin:      40,
			Rationale:        "joint-protective low-impact cardio at high frequency drives energy expenditure without impact load",
		}
	} else {
		switch goal {
		case TrainingFatLoss:
			if category == BMIOverweight {
				p = CardioPlan{
					Type:             CardioModerate,
					FrequencyPerWeek: 4,
					DurationMin:      35,
					Rationale:        "steady moderate cardio supports the deficit while joints adapt to reduced bodyweight",
				}
			} else {
				p = CardioPlan{
					Type:             CardioHIIT,
					FrequencyPerWeek: 3,
					DurationMin:      25,
					Rationale:        "interval work maximizes energy expenditure per session for a lean trainee in a deficit",
				}
			}
		case TrainingRecomposition:
			p = CardioPlan{
				Type:             CardioModerate,
				FrequencyPerWeek: 3,
				DurationMin:      30,
				Rationale:        "moderate cardio supports the deficit side of recomposition without eating into recovery",
			}
		case TrainingStrength:
			p = CardioPlan{
				Type:             CardioOptional,
				FrequencyPerWeek: 2,
				DurationMin:      20,
				Rationale:        "light optional cardio keeps work capacity up without interfering with strength recovery",
			}
		case TrainingHypertrophy:
			if category == BMIUnderweight {
				p = CardioPlan{
					Type:             CardioOptional,
					FrequencyPerWeek: 1,
					DurationMin:      15,
					Rationale:        "cardio is minimized to preserve the caloric surplus needed for weight gain",
				}
			} else {
				p = CardioPlan{
					Type:             CardioOptional,
					FrequencyPerWeek: 2,
					DurationMin:      20,
					Rationale:        "short optional sessions maintain conditioning without blunting hypertrophy",
				}
			}
		default:
			p = CardioPlan{
				Type:             CardioOptional,
				FrequencyPerWeek: 2,
				DurationMin:      20,
				Rationale:        "general conditioning at a maintenance dose",
			}
		}
	}

	p.Modalities = cardioModalitiesFor(p.Type, equipment)
	return p
}

// cardioModalitiesFor returns the allowed modalities for a cardio type,
// dropping any that need equipment the user does not have. Walking survives
// every filter so the list is never empty.
func cardioModalitiesFor(t CardioType, equipment []EquipmentType) []CardioModality {
	var base []CardioModality
	switch t {
	case CardioLowImpact:
		base = []CardioModality{
			{Name: "brisk walking", Rationale: "zero impact, sustainable daily"},
			{Name: "stationary cycling", Rationale: "seated, no joint loading", Requires: []EquipmentType{EquipMachine}},
			{Name: "swimming", Rationale: "full unloading of the joints"},
			{Name: "elliptical", Rationale: "low-impact full-body pattern", Requires: []EquipmentType{EquipMachine}},
		}
	case CardioModerate:
		base = []CardioModality{
			{Name: "incline walking", Rationale: "raises heart rate without running impact"},
			{Name: "light jogging", Rationale: "accessible steady-state work"},
			{Name: "rowing", Rationale: "moderate full-body conditioning", Requires: []EquipmentType{EquipMachine}},
			{Name: "cycling", Rationale: "adjustable steady-state intensity"},
		}
	case CardioHIIT:
		base = []CardioModality{
			{Name: "sprint intervals", Rationale: "maximal energy expenditure in minimal time"},
			{Name: "jump rope intervals", Rationale: "high output with minimal equipment"},
			{Name: "bike sprints", Rationale: "interval intensity without impact", Requires: []EquipmentType{EquipMachine}},
			{Name: "kettlebell swings", Rationale: "loaded conditioning intervals", Requires: []EquipmentType{EquipKettlebell}},
		}
	default:
		base = []CardioModality{
			{Name: "walking", Rationale: "low-cost recovery activity"},
			{Name: "light cycling", Rationale: "easy conditioning on rest days"},
		}
	}

	have := make(map[EquipmentType]struct{}, len(equipment))
	for _, e := range equipment {
		have[e] = struct{}{}
	}

	out := make([]CardioModality, 0, len(base))
	for _, m := range base {
		ok := true
		for _, req := range m.Requires {
			if _, found := have[req]; !found {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = append(out, CardioModality{Name: "brisk walking", Rationale: "always available"})
	}
	return out
}

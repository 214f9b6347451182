package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claude/repplan/internal/plan"
)

// CatalogFile is the top-level exercise catalog JSON structure. Export
// tooling sometimes emits a bare array instead of the wrapped object;
// DecodeCatalog accepts both.
type CatalogFile struct {
	Version   int               `json:"version,omitempty"`
	Exercises []CatalogExercise `json:"exercises"`
}

// CatalogExercise is one raw catalog record as found in exported exercise
// datasets. Muscle and equipment tags may be localized; Definition
// normalizes them to canonical form.
type CatalogExercise struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	BodyPart         string        `json:"body_part"`
	Equipment        []string      `json:"equipment"`
	Mechanic         string        `json:"mechanic"`
	Force            string        `json:"force"`
	PrimaryMuscle    string        `json:"primary_muscle"`
	SecondaryMuscles []string      `json:"secondary_muscles"`
	Ranking          int           `json:"ranking"`
	Scores           CatalogScores `json:"scores"`
	MET              float64       `json:"met"`
}

// CatalogScores carries the per-goal alignment ratings of a raw record.
type CatalogScores struct {
	Hypertrophy int `json:"hypertrophy"`
	Strength    int `json:"strength"`
	Difficulty  int `json:"difficulty"`
	InjuryRisk  int `json:"injury_risk"`
	Stability   int `json:"stability"`
}

// DecodeCatalog parses an exercise catalog from JSON. Accepts either the
// wrapped {"exercises": [...]} object or a bare array of records.
func DecodeCatalog(data []byte) ([]CatalogExercise, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		var exercises []CatalogExercise
		if err := json.Unmarshal(data, &exercises); err != nil {
			return nil, fmt.Errorf("parsing catalog array: %w", err)
		}
		return exercises, nil
	}
	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return file.Exercises, nil
}

// muscleMap maps lowercased localized muscle names to canonical groups.
// Covers English and Portuguese (the language of the original dataset),
// plus common synonyms.
var muscleMap = map[string]plan.MuscleGroup{
	// English
	"chest":      plan.MuscleChest,
	"back":       plan.MuscleBack,
	"lats":       plan.MuscleBack,
	"shoulders":  plan.MuscleShoulders,
	"delts":      plan.MuscleShoulders,
	"biceps":     plan.MuscleBiceps,
	"triceps":    plan.MuscleTriceps,
	"quads":      plan.MuscleQuads,
	"quadriceps": plan.MuscleQuads,
	"hamstrings": plan.MuscleHamstrings,
	"glutes":     plan.MuscleGlutes,
	"calves":     plan.MuscleCalves,
	"core":       plan.MuscleCore,
	"abs":        plan.MuscleCore,
	"abdominals": plan.MuscleCore,

	// Portuguese
	"peito":          plan.MuscleChest,
	"peitoral":       plan.MuscleChest,
	"costas":         plan.MuscleBack,
	"dorsal":         plan.MuscleBack,
	"ombros":         plan.MuscleShoulders,
	"ombro":          plan.MuscleShoulders,
	"deltoides":      plan.MuscleShoulders,
	"bíceps":         plan.MuscleBiceps,
	"tríceps":        plan.MuscleTriceps,
	"quadríceps":     plan.MuscleQuads,
	"posteriores":    plan.MuscleHamstrings,
	"isquiotibiais":  plan.MuscleHamstrings,
	"glúteos":        plan.MuscleGlutes,
	"gluteos":        plan.MuscleGlutes,
	"panturrilha":    plan.MuscleCalves,
	"panturrilhas":   plan.MuscleCalves,
	"abdômen":        plan.MuscleCore,
	"abdomen":        plan.MuscleCore,
	"abdominal":      plan.MuscleCore,
	"lombar":         plan.MuscleCore,
}

// equipmentMap maps lowercased localized equipment names to canonical tags.
var equipmentMap = map[string]plan.EquipmentType{
	// English
	"bodyweight":  plan.EquipBodyweight,
	"body weight": plan.EquipBodyweight,
	"none":        plan.EquipBodyweight,
	"barbell":     plan.EquipBarbell,
	"dumbbell":    plan.EquipDumbbell,
	"dumbbells":   plan.EquipDumbbell,
	"kettlebell":  plan.EquipKettlebell,
	"bands":       plan.EquipBands,
	"band":        plan.EquipBands,
	"machine":     plan.EquipMachine,
	"cable":       plan.EquipCable,
	"pullup bar":  plan.EquipPullupBar,
	"pull-up bar": plan.EquipPullupBar,
	"pullup_bar":  plan.EquipPullupBar,
	"bench":       plan.EquipBench,

	// Portuguese
	"peso corporal":  plan.EquipBodyweight,
	"peso do corpo":  plan.EquipBodyweight,
	"nenhum":         plan.EquipBodyweight,
	"barra":          plan.EquipBarbell,
	"halter":         plan.EquipDumbbell,
	"halteres":       plan.EquipDumbbell,
	"elástico":       plan.EquipBands,
	"elásticos":      plan.EquipBands,
	"faixas":         plan.EquipBands,
	"máquina":        plan.EquipMachine,
	"maquina":        plan.EquipMachine,
	"cabo":           plan.EquipCable,
	"polia":          plan.EquipCable,
	"barra fixa":     plan.EquipPullupBar,
	"banco":          plan.EquipBench,
}

// NormalizeMuscle maps a possibly-localized muscle name to its canonical
// group. Returns the group and true if recognized, or empty and false.
func NormalizeMuscle(raw string) (plan.MuscleGroup, bool) {
	m, ok := muscleMap[strings.ToLower(strings.TrimSpace(raw))]
	return m, ok
}

// NormalizeEquipment maps a possibly-localized equipment name to its
// canonical tag. Returns the tag and true if recognized, or empty and false.
func NormalizeEquipment(raw string) (plan.EquipmentType, bool) {
	e, ok := equipmentMap[strings.ToLower(strings.TrimSpace(raw))]
	return e, ok
}

// Definition converts a raw catalog record into a canonical exercise
// definition. Unknown primary muscles or mechanics are errors; unknown
// secondary muscles and equipment tags are dropped silently since they
// only narrow availability.
func (c CatalogExercise) Definition() (plan.ExerciseDefinition, error) {
	var def plan.ExerciseDefinition

	if c.ID == "" {
		return def, fmt.Errorf("catalog record %q: missing id", c.Title)
	}

	primary, ok := NormalizeMuscle(c.PrimaryMuscle)
	if !ok {
		return def, fmt.Errorf("exercise %s: unknown primary muscle %q", c.ID, c.PrimaryMuscle)
	}

	mechanic := plan.Mechanic(strings.ToLower(strings.TrimSpace(c.Mechanic)))
	switch mechanic {
	case plan.MechanicCompound, plan.MechanicIsolation:
	case "composto":
		mechanic = plan.MechanicCompound
	case "isolado", "isolamento":
		mechanic = plan.MechanicIsolation
	default:
		return def, fmt.Errorf("exercise %s: unknown mechanic %q", c.ID, c.Mechanic)
	}

	force := plan.Force(strings.ToLower(strings.TrimSpace(c.Force)))
	switch force {
	case plan.ForcePush, plan.ForcePull, plan.ForceStatic, "":
	case "empurrar":
		force = plan.ForcePush
	case "puxar":
		force = plan.ForcePull
	case "estático", "estatico":
		force = plan.ForceStatic
	default:
		return def, fmt.Errorf("exercise %s: unknown force %q", c.ID, c.Force)
	}

	var equipment []plan.EquipmentType
	for _, raw := range c.Equipment {
		if e, ok := NormalizeEquipment(raw); ok && e != plan.EquipBodyweight {
			equipment = append(equipment, e)
		}
	}

	var secondary []plan.MuscleGroup
	for _, raw := range c.SecondaryMuscles {
		if m, ok := NormalizeMuscle(raw); ok {
			secondary = append(secondary, m)
		}
	}

	def = plan.ExerciseDefinition{
		ID:               c.ID,
		Title:            c.Title,
		BodyPart:         c.BodyPart,
		Equipment:        equipment,
		Mechanic:         mechanic,
		Force:            force,
		PrimaryMuscle:    primary,
		SecondaryMuscles: secondary,
		Ranking:          c.Ranking,
		Scores: plan.GoalScores{
			Hypertrophy: c.Scores.Hypertrophy,
			Strength:    c.Scores.Strength,
			Difficulty:  c.Scores.Difficulty,
			InjuryRisk:  c.Scores.InjuryRisk,
			Stability:   c.Scores.Stability,
		},
		MET: c.MET,
	}
	return def, nil
}

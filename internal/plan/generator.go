package plan

import (
	"fmt"
	"sort"
)

// Scoring and estimation constants. The exact blend of catalog ranking,
// goal alignment, and difficulty penalty is a tuning surface, so every
// weight is named here rather than buried in the scoring expression.
const (
	// RankingWeight scales the catalog popularity score.
	RankingWeight = 1.0
	// GoalAlignmentWeight scales the goal-alignment score, which dominates
	// ranking so goal fit beats raw popularity.
	GoalAlignmentWeight = 2.0

	// Difficulty penalty factors per level. Beginners are penalized hard
	// for difficult or risky lifts; advanced trainees barely at all.
	DifficultyPenaltyBeginner     = 2.0
	DifficultyPenaltyIntermediate = 1.0
	DifficultyPenaltyAdvanced     = 0.25

	// StapleRepeatLimit caps how many times a compound staple may repeat
	// across the week when a muscle group has no unused alternative.
	StapleRepeatLimit = 2

	// Energy estimation parameters.
	SecondsPerRep      = 4.0
	DefaultBodyweightKg = 75.0
	DefaultCompoundMET  = 6.0
	DefaultIsolationMET = 3.5
)

// RoutineConfig is the input to Generate. Catalog and Equipment are
// already-resolved collections; Profile is optional and only refines the
// calorie estimate and cardio attachment.
type RoutineConfig struct {
	Name          string               `json:"name"`
	Goal          TrainingGoal         `json:"goal"`
	Level         Level                `json:"level"`
	DaysAvailable int                  `json:"days_available"`
	Equipment     []EquipmentType      `json:"equipment"`
	Catalog       []ExerciseDefinition `json:"catalog"`
	Profile       *UserProfile         `json:"profile,omitempty"`
}

// PrescribedExercise is one allocated exercise with its dose. Note carries
// the advisory flag when the bodyweight fallback had to be used.
type PrescribedExercise struct {
	Exercise     ExerciseDefinition `json:"exercise"`
	Prescription Prescription       `json:"prescription"`
	Note         string             `json:"note,omitempty"`
}

// RoutineDay is one generated training day.
type RoutineDay struct {
	Name      string               `json:"name"`
	Exercises []PrescribedExercise `json:"exercises"`
}

// MuscleVolume reports the weekly set count for one muscle group against
// the goal/level target band.
type MuscleVolume struct {
	Muscle    MuscleGroup `json:"muscle"`
	Sets      int         `json:"sets"`
	TargetMin int         `json:"target_min"`
	TargetMax int         `json:"target_max"`
	InBand    bool        `json:"in_band"`
}

// GeneratedRoutine is the full weekly output of Generate. A new call always
// produces a new independent structure.
type GeneratedRoutine struct {
	Name          string         `json:"name"`
	Split         Split          `json:"split"`
	Days          []RoutineDay   `json:"days"`
	WeeklyVolume  []MuscleVolume `json:"weekly_volume"`
	EstimatedKcal float64        `json:"estimated_weekly_kcal"`
	Cardio        CardioPlan     `json:"cardio"`
}

// Generate builds a full weekly routine: day skeleton, equipment-compatible
// allocation with deterministic scoring, intensity prescriptions, weekly
// volume summary, calorie estimate, and cardio attachment.
//
// Configuration errors (bad day count, unknown enums) fail fast before any
// allocation. Thin equipment never fails generation: muscle slots with no
// eligible candidate fall back to a hard-coded bodyweight exercise flagged
// via the note field.
func Generate(cfg RoutineConfig) (*GeneratedRoutine, error) {
	if !validTrainingGoal(cfg.Goal) {
		return nil, configErr("goal", cfg.Goal, "unknown training goal")
	}
	if !validLevel(cfg.Level) {
		return nil, configErr("level", cfg.Level, "unknown experience level")
	}
	skeleton, err := PlanWeek(cfg.DaysAvailable, cfg.Level)
	if err != nil {
		return nil, err
	}

	eligible := FilterByEquipment(cfg.Catalog, cfg.Equipment)
	alloc := newAllocator(eligible, cfg.Goal, cfg.Level)

	routine := &GeneratedRoutine{
		Name:  cfg.Name,
		Split: skeleton[0].Split,
		Days:  make([]RoutineDay, 0, len(skeleton)),
	}
	if routine.Name == "" {
		routine.Name = fmt.Sprintf("%d-day %s plan", cfg.DaysAvailable, cfg.Goal)
	}

	volume := make(map[MuscleGroup]int)
	for _, day := range skeleton {
		rd := RoutineDay{Name: day.Name}
		usedToday := make(map[string]struct{})
		for _, muscle := range day.Targets {
			pe, err := alloc.pick(muscle, usedToday, cfg.Level)
			if err != nil {
				return nil, err
			}
			usedToday[pe.Exercise.ID] = struct{}{}
			volume[pe.Exercise.PrimaryMuscle] += pe.Prescription.Sets
			rd.Exercises = append(rd.Exercises, pe)
		}
		routine.Days = append(routine.Days, rd)
	}

	routine.WeeklyVolume = volumeSummary(volume, cfg.Goal, cfg.Level)
	routine.EstimatedKcal = estimateWeeklyKcal(routine.Days, cfg.Profile)
	routine.Cardio = cardioForConfig(cfg)
	return routine, nil
}

// FilterByEquipment returns the catalog subset usable with the given
// equipment. An exercise is eligible when its requirement set is empty,
// bodyweight-only, or a subset of the inventory.
func FilterByEquipment(catalog []ExerciseDefinition, equipment []EquipmentType) []ExerciseDefinition {
	have := make(map[EquipmentType]struct{}, len(equipment)+1)
	have[EquipBodyweight] = struct{}{}
	for _, e := range equipment {
		have[e] = struct{}{}
	}

	out := make([]ExerciseDefinition, 0, len(catalog))
	for _, ex := range catalog {
		ok := true
		for _, req := range ex.Equipment {
			if _, found := have[req]; !found {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, ex)
		}
	}
	return out
}

// BodyweightOnly restricts a catalog to exercises that need no equipment
// beyond bodyweight, for home-only plans.
func BodyweightOnly(catalog []ExerciseDefinition) []ExerciseDefinition {
	return FilterByEquipment(catalog, nil)
}

// allocator tracks weekly exercise usage and ranks candidates per muscle.
type allocator struct {
	byMuscle map[MuscleGroup][]ExerciseDefinition
	goal     TrainingGoal
	useCount map[string]int
}

func newAllocator(eligible []ExerciseDefinition, goal TrainingGoal, level Level) *allocator {
	a := &allocator{
		byMuscle: make(map[MuscleGroup][]ExerciseDefinition),
		goal:     goal,
		useCount: make(map[string]int),
	}
	for _, ex := range eligible {
		a.byMuscle[ex.PrimaryMuscle] = append(a.byMuscle[ex.PrimaryMuscle], ex)
	}
	// Rank each bucket once, highest score first. Ties break by catalog
	// ranking, then by ID, so identical inputs always allocate identically.
	for muscle, bucket := range a.byMuscle {
		sort.SliceStable(bucket, func(i, j int) bool {
			si, sj := selectionScore(bucket[i], goal, level), selectionScore(bucket[j], goal, level)
			if si != sj {
				return si > sj
			}
			if bucket[i].Ranking != bucket[j].Ranking {
				return bucket[i].Ranking > bucket[j].Ranking
			}
			return bucket[i].ID < bucket[j].ID
		})
		a.byMuscle[muscle] = bucket
	}
	return a
}

// pick selects the top-ranked unused exercise for a muscle slot. When every
// candidate has been used this week, a compound staple may repeat up to
// StapleRepeatLimit times; past that the bodyweight fallback fills the slot.
func (a *allocator) pick(muscle MuscleGroup, usedToday map[string]struct{}, level Level) (PrescribedExercise, error) {
	bucket := a.byMuscle[muscle]

	choose := func(ex ExerciseDefinition, note string) (PrescribedExercise, error) {
		presc, err := Prescribe(ex, a.goal, level)
		if err != nil {
			return PrescribedExercise{}, err
		}
		a.useCount[ex.ID]++
		return PrescribedExercise{Exercise: ex, Prescription: presc, Note: note}, nil
	}

	for _, ex := range bucket {
		if _, today := usedToday[ex.ID]; today {
			continue
		}
		if a.useCount[ex.ID] == 0 {
			return choose(ex, "")
		}
	}
	// No fresh candidate left: let a compound staple repeat.
	for _, ex := range bucket {
		if _, today := usedToday[ex.ID]; today {
			continue
		}
		if ex.Mechanic == MechanicCompound && a.useCount[ex.ID] < StapleRepeatLimit {
			return choose(ex, "")
		}
	}

	fb := fallbackExercise(muscle)
	if _, today := usedToday[fb.ID]; today {
		// Same-muscle slot twice in one day with nothing left; reuse is
		// not allowed, so vary the ID to keep the day invariant intact.
		fb.ID = fb.ID + "-b"
	}
	return choose(fb, "no equipment-compatible exercise available for "+string(muscle)+"; substituted a bodyweight fallback")
}

// selectionScore is the composite allocation score: catalog ranking plus
// goal alignment minus a level-scaled difficulty/injury penalty.
func selectionScore(ex ExerciseDefinition, goal TrainingGoal, level Level) float64 {
	return RankingWeight*float64(ex.Ranking) +
		GoalAlignmentWeight*goalAlignment(ex, goal) -
		difficultyPenalty(level)*float64(ex.Scores.Difficulty+ex.Scores.InjuryRisk)
}

// goalAlignment maps the catalog's per-goal ratings onto the active goal.
// Fat loss favors stable movements that sustain high rep work;
// recomposition averages the hypertrophy and strength ratings.
func goalAlignment(ex ExerciseDefinition, goal TrainingGoal) float64 {
	switch goal {
	case TrainingHypertrophy:
		return float64(ex.Scores.Hypertrophy)
	case TrainingStrength:
		return float64(ex.Scores.Strength)
	case TrainingFatLoss:
		return (float64(ex.Scores.Hypertrophy) + float64(ex.Scores.Stability)) / 2
	default:
		return (float64(ex.Scores.Hypertrophy) + float64(ex.Scores.Strength)) / 2
	}
}

func difficultyPenalty(level Level) float64 {
	switch level {
	case LevelBeginner:
		return DifficultyPenaltyBeginner
	case LevelIntermediate:
		return DifficultyPenaltyIntermediate
	default:
		return DifficultyPenaltyAdvanced
	}
}

// volumeBand returns the weekly per-muscle set band that allocation aims
// for. Strength runs lower volume per muscle than the hypertrophy-leaning
// goals; each level shifts the band upward.
func volumeBand(goal TrainingGoal, level Level) (min, max int) {
	switch level {
	case LevelBeginner:
		min, max = 4, 12
	case LevelIntermediate:
		min, max = 6, 16
	default:
		min, max = 8, 20
	}
	if goal == TrainingStrength {
		min -= 2
		max -= 4
		if min < 2 {
			min = 2
		}
	}
	return min, max
}

// volumeSummary converts accumulated set counts into a deterministic,
// band-annotated report, ordered by muscle name.
func volumeSummary(volume map[MuscleGroup]int, goal TrainingGoal, level Level) []MuscleVolume {
	muscles := make([]MuscleGroup, 0, len(volume))
	for m := range volume {
		muscles = append(muscles, m)
	}
	sort.Slice(muscles, func(i, j int) bool { return muscles[i] < muscles[j] })

	lo, hi := volumeBand(goal, level)
	out := make([]MuscleVolume, 0, len(muscles))
	for _, m := range muscles {
		sets := volume[m]
		out = append(out, MuscleVolume{
			Muscle:    m,
			Sets:      sets,
			TargetMin: lo,
			TargetMax: hi,
			InBand:    sets >= lo && sets <= hi,
		})
	}
	return out
}

// estimateWeeklyKcal sums MET-based energy estimates over every prescribed
// exercise: MET x bodyweight x estimated working duration in hours.
func estimateWeeklyKcal(days []RoutineDay, profile *UserProfile) float64 {
	bodyweight := DefaultBodyweightKg
	if profile != nil && profile.WeightKg > 0 {
		bodyweight = profile.WeightKg
	}

	var kcal float64
	for _, day := range days {
		for _, pe := range day.Exercises {
			met := pe.Exercise.MET
			if met <= 0 {
				if pe.Exercise.Mechanic == MechanicCompound {
					met = DefaultCompoundMET
				} else {
					met = DefaultIsolationMET
				}
			}
			p := pe.Prescription
			avgReps := float64(p.Reps.Min+p.Reps.Max) / 2
			workSec := float64(p.Sets) * avgReps * SecondsPerRep
			restSec := float64(p.Sets-1) * float64(p.RestSec)
			hours := (workSec + restSec) / 3600
			kcal += met * bodyweight * hours
		}
	}
	return kcal
}

// cardioForConfig attaches the cardio prescription. With a profile the BMI
// category drives the table exactly as in AnalyzeProfile; without one the
// goal alone selects against an assumed normal category.
func cardioForConfig(cfg RoutineConfig) CardioPlan {
	category := BMINormal
	if cfg.Profile != nil && cfg.Profile.WeightKg > 0 && cfg.Profile.HeightCm > 0 {
		heightM := cfg.Profile.HeightCm / 100
		category = classifyBMI(cfg.Profile.WeightKg / (heightM * heightM))
	}
	return cardioPlanFor(category, cfg.Goal, cfg.Equipment)
}

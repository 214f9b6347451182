package plan

import "fmt"

// RepRange is an inclusive target repetition range. Min == Max expresses a
// fixed rep count.
type RepRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Prescription is the concrete dose for one exercise: sets, reps, rest, RIR,
// tempo, and the rationale naming the rule that produced it.
type Prescription struct {
	Sets      int      `json:"sets"`
	Reps      RepRange `json:"reps"`
	RestSec   int      `json:"rest_sec"`
	RIR       int      `json:"rir"`
	Tempo     string   `json:"tempo,omitempty"`
	Rationale string   `json:"rationale"`
}

// repBand holds the goal-keyed prescription band.
type repBand struct {
	repsMin, repsMax int
	rirMin, rirMax   int
	restMin, restMax int
	tempo            string
}

// Goal bands: hypertrophy 8-12 @ RIR 1-2 rest 60-90s, strength 3-6 @ RIR 1-3
// rest 120-180s, fat loss 12-15 @ RIR 1-2 rest 30-45s. Recomposition blends
// hypertrophy (compound work) with fat loss (isolation work).
var repBands = map[TrainingGoal]repBand{
	TrainingHypertrophy: {repsMin: 8, repsMax: 12, rirMin: 1, rirMax: 2, restMin: 60, restMax: 90, tempo: "3-1-1"},
	TrainingStrength:    {repsMin: 3, repsMax: 6, rirMin: 1, rirMax: 3, restMin: 120, restMax: 180, tempo: "2-0-1"},
	TrainingFatLoss:     {repsMin: 12, repsMax: 15, rirMin: 1, rirMax: 2, restMin: 30, restMax: 45, tempo: "2-0-2"},
}

// bandFor resolves the rep band for a goal and mechanic. Recomposition uses
// the hypertrophy band for compounds and the fat-loss band for isolations.
func bandFor(goal TrainingGoal, mechanic Mechanic) repBand {
	if goal == TrainingRecomposition {
		if mechanic == MechanicCompound {
			return repBands[TrainingHypertrophy]
		}
		return repBands[TrainingFatLoss]
	}
	return repBands[goal]
}

// setsFor returns total sets per exercise: beginner 2-3, intermediate 3-4,
// advanced 4-5; compounds take the higher count in each pair.
func setsFor(level Level, mechanic Mechanic) int {
	compound := mechanic == MechanicCompound
	switch level {
	case LevelBeginner:
		if compound {
			return 3
		}
		return 2
	case LevelIntermediate:
		if compound {
			return 4
		}
		return 3
	default:
		if compound {
			return 5
		}
		return 4
	}
}

// Prescribe returns the sets/reps/rest/RIR/tempo dose for an exercise under
// the given goal and experience level. Compounds take the lower half of the
// goal's rep range with the longer rest; isolations take the upper half with
// the shorter rest.
func Prescribe(ex ExerciseDefinition, goal TrainingGoal, level Level) (Prescription, error) {
	if !validTrainingGoal(goal) {
		return Prescription{}, configErr("goal", goal, "unknown training goal")
	}
	if !validLevel(level) {
		return Prescription{}, configErr("level", level, "unknown experience level")
	}

	band := bandFor(goal, ex.Mechanic)
	mid := (band.repsMin + band.repsMax) / 2

	var p Prescription
	if ex.Mechanic == MechanicCompound {
		p.Reps = RepRange{Min: band.repsMin, Max: mid}
		p.RestSec = band.restMax
		p.RIR = band.rirMax
	} else {
		p.Reps = RepRange{Min: mid, Max: band.repsMax}
		p.RestSec = band.restMin
		p.RIR = band.rirMin
	}
	p.Sets = setsFor(level, ex.Mechanic)
	p.Tempo = band.tempo
	p.Rationale = fmt.Sprintf("%s band for %s mechanic at %s level: %d sets of %d-%d reps, %ds rest, RIR %d",
		goal, ex.Mechanic, level, p.Sets, p.Reps.Min, p.Reps.Max, p.RestSec, p.RIR)
	return p, nil
}

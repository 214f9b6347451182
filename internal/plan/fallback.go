package plan

// fallbackExercise returns the hard-coded bodyweight exercise for a muscle
// group. This is the only path that bypasses equipment-compatible ranking;
// it exists so sparse inventories never produce an empty day.
func fallbackExercise(muscle MuscleGroup) ExerciseDefinition {
	if ex, ok := bodyweightFallbacks[muscle]; ok {
		return ex
	}
	// Unknown muscle tag: a plank loads almost everything isometrically.
	return bodyweightFallbacks[MuscleCore]
}

var bodyweightFallbacks = map[MuscleGroup]ExerciseDefinition{
	MuscleChest: {
		ID: "bw-pushup", Title: "Push-Up", BodyPart: "chest",
		Mechanic: MechanicCompound, Force: ForcePush, PrimaryMuscle: MuscleChest,
		SecondaryMuscles: []MuscleGroup{MuscleTriceps, MuscleShoulders},
		Ranking:          5, Scores: GoalScores{Hypertrophy: 3, Strength: 2, Difficulty: 1, Stability: 4},
	},
	MuscleBack: {
		ID: "bw-inverted-row", Title: "Inverted Row (table edge)", BodyPart: "back",
		Mechanic: MechanicCompound, Force: ForcePull, PrimaryMuscle: MuscleBack,
		SecondaryMuscles: []MuscleGroup{MuscleBiceps},
		Ranking:          4, Scores: GoalScores{Hypertrophy: 3, Strength: 2, Difficulty: 2, Stability: 3},
	},
	MuscleShoulders: {
		ID: "bw-pike-pushup", Title: "Pike Push-Up", BodyPart: "shoulders",
		Mechanic: MechanicCompound, Force: ForcePush, PrimaryMuscle: MuscleShoulders,
		SecondaryMuscles: []MuscleGroup{MuscleTriceps},
		Ranking:          3, Scores: GoalScores{Hypertrophy: 3, Strength: 2, Difficulty: 2, Stability: 3},
	},
	MuscleBiceps: {
		ID: "bw-chinup-hold", Title: "Chin-Up Hold / Towel Curl", BodyPart: "arms",
		Mechanic: MechanicIsolation, Force: ForcePull, PrimaryMuscle: MuscleBiceps,
		Ranking: 2, Scores: GoalScores{Hypertrophy: 2, Strength: 1, Difficulty: 2, Stability: 3},
	},
	MuscleTriceps: {
		ID: "bw-bench-dip", Title: "Bench Dip", BodyPart: "arms",
		Mechanic: MechanicIsolation, Force: ForcePush, PrimaryMuscle: MuscleTriceps,
		Ranking: 3, Scores: GoalScores{Hypertrophy: 2, Strength: 1, Difficulty: 1, Stability: 3},
	},
	MuscleQuads: {
		ID: "bw-squat", Title: "Bodyweight Squat", BodyPart: "legs",
		Mechanic: MechanicCompound, Force: ForcePush, PrimaryMuscle: MuscleQuads,
		SecondaryMuscles: []MuscleGroup{MuscleGlutes},
		Ranking:          5, Scores: GoalScores{Hypertrophy: 3, Strength: 2, Difficulty: 1, Stability: 4},
	},
	MuscleHamstrings: {
		ID: "bw-sliding-leg-curl", Title: "Sliding Leg Curl", BodyPart: "legs",
		Mechanic: MechanicIsolation, Force: ForcePull, PrimaryMuscle: MuscleHamstrings,
		Ranking: 2, Scores: GoalScores{Hypertrophy: 2, Strength: 1, Difficulty: 2, Stability: 2},
	},
	MuscleGlutes: {
		ID: "bw-glute-bridge", Title: "Glute Bridge", BodyPart: "legs",
		Mechanic: MechanicIsolation, Force: ForcePush, PrimaryMuscle: MuscleGlutes,
		SecondaryMuscles: []MuscleGroup{MuscleHamstrings},
		Ranking:          4, Scores: GoalScores{Hypertrophy: 3, Strength: 1, Difficulty: 1, Stability: 4},
	},
	MuscleCalves: {
		ID: "bw-calf-raise", Title: "Single-Leg Calf Raise", BodyPart: "legs",
		Mechanic: MechanicIsolation, Force: ForcePush, PrimaryMuscle: MuscleCalves,
		Ranking: 3, Scores: GoalScores{Hypertrophy: 2, Strength: 1, Difficulty: 1, Stability: 4},
	},
	MuscleCore: {
		ID: "bw-plank", Title: "Plank", BodyPart: "core",
		Mechanic: MechanicIsolation, Force: ForceStatic, PrimaryMuscle: MuscleCore,
		Ranking: 5, Scores: GoalScores{Hypertrophy: 1, Strength: 1, Difficulty: 1, Stability: 5},
	},
}

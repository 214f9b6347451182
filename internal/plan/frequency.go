package plan

// Split labels the weekly training pattern.
type Split string

// Split constants.
const (
	SplitFullBody     Split = "full_body"
	SplitUpperLower   Split = "upper_lower"
	SplitPushPullLegs Split = "push_pull_legs"
)

// DaySkeleton is one training day of the weekly skeleton. Targets is
// ordered; the first entry is the day's primary muscle group, used for the
// recovery-spacing rule.
type DaySkeleton struct {
	Name    string        `json:"name"`
	Split   Split         `json:"split"`
	Targets []MuscleGroup `json:"targets"`
}

// Primary returns the day's primary target muscle group.
func (d DaySkeleton) Primary() MuscleGroup {
	if len(d.Targets) == 0 {
		return ""
	}
	return d.Targets[0]
}

// Supported training-day range.
const (
	MinTrainingDays = 3
	MaxTrainingDays = 6
)

// beginnerSlotCap limits how many distinct focus slots a beginner day
// carries; later accessory slots are trimmed to reduce technical load.
// Trailing slots in every skeleton are minor groups, so the weekly
// major-group frequency guarantees survive the trim.
const beginnerSlotCap = 3

// PlanWeek returns an ordered weekly skeleton for the given availability and
// experience level. It guarantees that every major muscle group appears at
// least twice per week when daysAvailable >= 4, and that no two adjacent
// days share a primary muscle group when the split has four or more days.
func PlanWeek(daysAvailable int, level Level) ([]DaySkeleton, error) {
	if daysAvailable < MinTrainingDays || daysAvailable > MaxTrainingDays {
		return nil, configErr("days_available", daysAvailable, "supported range is 3-6")
	}
	if !validLevel(level) {
		return nil, configErr("level", level, "unknown experience level")
	}

	var days []DaySkeleton
	switch daysAvailable {
	case 3:
		days = threeDaySkeleton(level)
	case 4:
		days = fourDaySkeleton()
	case 5:
		days = fiveDaySkeleton(level)
	default:
		days = sixDaySkeleton(level)
	}

	if level == LevelBeginner {
		days = trimForBeginner(days)
	}
	return days, nil
}

// threeDaySkeleton gives beginners three full-body days; intermediate and
// advanced trainees get a reduced push/pull/legs rotation instead.
func threeDaySkeleton(level Level) []DaySkeleton {
	if level == LevelBeginner {
		return []DaySkeleton{
			{Name: "Full Body A", Split: SplitFullBody, Targets: []MuscleGroup{MuscleChest, MuscleBack, MuscleQuads, MuscleCore}},
			{Name: "Full Body B", Split: SplitFullBody, Targets: []MuscleGroup{MuscleShoulders, MuscleHamstrings, MuscleGlutes, MuscleBiceps}},
			{Name: "Full Body C", Split: SplitFullBody, Targets: []MuscleGroup{MuscleBack, MuscleChest, MuscleQuads, MuscleTriceps}},
		}
	}
	return []DaySkeleton{
		{Name: "Push", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleChest, MuscleShoulders, MuscleTriceps}},
		{Name: "Pull", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleBack, MuscleBiceps, MuscleCore}},
		{Name: "Legs", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves}},
	}
}

// fourDaySkeleton is an upper/lower split. The A/B pairs rotate the primary
// slot so adjacent days never lead with the same group and every major group
// is hit twice.
func fourDaySkeleton() []DaySkeleton {
	return []DaySkeleton{
		{Name: "Upper A", Split: SplitUpperLower, Targets: []MuscleGroup{MuscleChest, MuscleBack, MuscleShoulders, MuscleTriceps}},
		{Name: "Lower A", Split: SplitUpperLower, Targets: []MuscleGroup{MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCore}},
		{Name: "Upper B", Split: SplitUpperLower, Targets: []MuscleGroup{MuscleBack, MuscleShoulders, MuscleChest, MuscleBiceps}},
		{Name: "Lower B", Split: SplitUpperLower, Targets: []MuscleGroup{MuscleHamstrings, MuscleGlutes, MuscleQuads, MuscleCalves}},
	}
}

// fiveDaySkeleton is push/pull/legs plus two upper/lower frequency days.
// Advanced trainees get specialization labels on the extra days.
func fiveDaySkeleton(level Level) []DaySkeleton {
	upperName, lowerName := "Upper", "Lower"
	if level == LevelAdvanced {
		upperName, lowerName = "Shoulders & Arms Focus", "Posterior Chain Focus"
	}
	return []DaySkeleton{
		{Name: "Push", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleChest, MuscleShoulders, MuscleTriceps}},
		{Name: "Pull", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleBack, MuscleBiceps, MuscleCore}},
		{Name: "Legs", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves}},
		{Name: upperName, Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleShoulders, MuscleChest, MuscleBack, MuscleTriceps}},
		{Name: lowerName, Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleHamstrings, MuscleGlutes, MuscleQuads, MuscleCore}},
	}
}

// sixDaySkeleton is a double push/pull/legs rotation. The B days lead with a
// different primary than their A counterparts to keep spacing honest.
func sixDaySkeleton(level Level) []DaySkeleton {
	pushB, pullB, legsB := "Push B", "Pull B", "Legs B"
	if level == LevelAdvanced {
		pushB, pullB, legsB = "Push B (Delts Focus)", "Pull B (Width Focus)", "Legs B (Hamstrings Focus)"
	}
	return []DaySkeleton{
		{Name: "Push A", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleChest, MuscleShoulders, MuscleTriceps}},
		{Name: "Pull A", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleBack, MuscleBiceps, MuscleCore}},
		{Name: "Legs A", Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves}},
		{Name: pushB, Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleShoulders, MuscleChest, MuscleTriceps}},
		{Name: pullB, Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleBack, MuscleBiceps, MuscleCore}},
		{Name: legsB, Split: SplitPushPullLegs, Targets: []MuscleGroup{MuscleHamstrings, MuscleGlutes, MuscleQuads, MuscleCalves}},
	}
}

// trimForBeginner caps the number of focus slots per day, dropping trailing
// accessory targets. Major groups are never trimmed, so weekly frequency
// guarantees hold for every level.
func trimForBeginner(days []DaySkeleton) []DaySkeleton {
	out := make([]DaySkeleton, len(days))
	for i, d := range days {
		targets := d.Targets
		if len(targets) > beginnerSlotCap {
			kept := make([]MuscleGroup, 0, beginnerSlotCap)
			for _, t := range targets {
				if len(kept) == beginnerSlotCap {
					break
				}
				kept = append(kept, t)
			}
			targets = kept
		}
		out[i] = DaySkeleton{Name: d.Name, Split: d.Split, Targets: targets}
	}
	return out
}

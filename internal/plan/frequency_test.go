package plan

import "testing"

var allLevels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// TestPlanWeek_DayCount verifies that every supported (days, level)
// combination returns exactly daysAvailable entries, each with at least one
// target.
func TestPlanWeek_DayCount(t *testing.T) {
	for days := MinTrainingDays; days <= MaxTrainingDays; days++ {
		for _, level := range allLevels {
			skeleton, err := PlanWeek(days, level)
			if err != nil {
				t.Fatalf("PlanWeek(%d, %s): %v", days, level, err)
			}
			if len(skeleton) != days {
				t.Errorf("PlanWeek(%d, %s) returned %d days", days, level, len(skeleton))
			}
			for _, d := range skeleton {
				if len(d.Targets) == 0 {
					t.Errorf("PlanWeek(%d, %s): day %q has no targets", days, level, d.Name)
				}
			}
		}
	}
}

// TestPlanWeek_OutOfRange verifies that unsupported day counts are rejected
// as configuration errors.
func TestPlanWeek_OutOfRange(t *testing.T) {
	for _, days := range []int{-1, 0, 1, 2, 7, 10} {
		if _, err := PlanWeek(days, LevelBeginner); err == nil {
			t.Errorf("PlanWeek(%d) should fail", days)
		}
	}
	if _, err := PlanWeek(4, Level("elite")); err == nil {
		t.Error("unknown level should fail")
	}
}

// TestPlanWeek_RecoverySpacing verifies that no two adjacent days share a
// primary target muscle group when four or more days are planned.
func TestPlanWeek_RecoverySpacing(t *testing.T) {
	for days := 4; days <= MaxTrainingDays; days++ {
		for _, level := range allLevels {
			skeleton, _ := PlanWeek(days, level)
			for i := 1; i < len(skeleton); i++ {
				if skeleton[i].Primary() == skeleton[i-1].Primary() {
					t.Errorf("PlanWeek(%d, %s): days %q and %q share primary %s",
						days, level, skeleton[i-1].Name, skeleton[i].Name, skeleton[i].Primary())
				}
			}
		}
	}
}

// TestPlanWeek_MajorGroupFrequency verifies that with four or more days
// every major muscle group is targeted at least twice per week.
func TestPlanWeek_MajorGroupFrequency(t *testing.T) {
	for days := 4; days <= MaxTrainingDays; days++ {
		for _, level := range allLevels {
			skeleton, _ := PlanWeek(days, level)
			counts := make(map[MuscleGroup]int)
			for _, d := range skeleton {
				for _, m := range d.Targets {
					counts[m]++
				}
			}
			for _, major := range MajorMuscleGroups {
				if counts[major] < 2 {
					t.Errorf("PlanWeek(%d, %s): major group %s hit %d times, want >= 2",
						days, level, major, counts[major])
				}
			}
		}
	}
}

// TestPlanWeek_ThreeDayBeginner verifies Scenario B: a 3-day beginner plan
// is labeled full-body and the week covers every major group at least once.
func TestPlanWeek_ThreeDayBeginner(t *testing.T) {
	skeleton, err := PlanWeek(3, LevelBeginner)
	if err != nil {
		t.Fatal(err)
	}
	covered := make(map[MuscleGroup]bool)
	for _, d := range skeleton {
		if d.Split != SplitFullBody {
			t.Errorf("day %q split = %s, want full_body", d.Name, d.Split)
		}
		for _, m := range d.Targets {
			covered[m] = true
		}
	}
	for _, major := range MajorMuscleGroups {
		if !covered[major] {
			t.Errorf("major group %s not covered in the 3-day beginner week", major)
		}
	}
}

// TestPlanWeek_ThreeDayIntermediate verifies that experienced trainees get
// the reduced push/pull/legs rotation at three days.
func TestPlanWeek_ThreeDayIntermediate(t *testing.T) {
	skeleton, err := PlanWeek(3, LevelIntermediate)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range skeleton {
		if d.Split != SplitPushPullLegs {
			t.Errorf("day %q split = %s, want push_pull_legs", d.Name, d.Split)
		}
	}
}

// TestPlanWeek_BeginnerSlotCap verifies that beginner days never carry more
// focus slots than the cap, keeping technical load down.
func TestPlanWeek_BeginnerSlotCap(t *testing.T) {
	for days := MinTrainingDays; days <= MaxTrainingDays; days++ {
		skeleton, _ := PlanWeek(days, LevelBeginner)
		for _, d := range skeleton {
			if len(d.Targets) > beginnerSlotCap {
				t.Errorf("PlanWeek(%d, beginner): day %q has %d slots, cap is %d",
					days, d.Name, len(d.Targets), beginnerSlotCap)
			}
		}
	}
}

// TestPlanWeek_BeginnerSimplification verifies that the beginner trim
// actually bites: for every day count sharing a skeleton shape across
// levels, at least one beginner day carries strictly fewer focus slots
// than its intermediate counterpart, and no day carries more.
func TestPlanWeek_BeginnerSimplification(t *testing.T) {
	for days := 4; days <= MaxTrainingDays; days++ {
		beginner, err := PlanWeek(days, LevelBeginner)
		if err != nil {
			t.Fatal(err)
		}
		intermediate, err := PlanWeek(days, LevelIntermediate)
		if err != nil {
			t.Fatal(err)
		}

		trimmed := false
		for i := range beginner {
			nb, ni := len(beginner[i].Targets), len(intermediate[i].Targets)
			if nb > ni {
				t.Errorf("PlanWeek(%d): beginner day %q has %d slots, intermediate has %d",
					days, beginner[i].Name, nb, ni)
			}
			if nb < ni {
				trimmed = true
			}
		}
		if !trimmed {
			t.Errorf("PlanWeek(%d): beginner skeleton is identical to intermediate; no simplification applied", days)
		}
	}
}

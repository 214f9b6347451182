package plan

import (
	"testing"
	"time"
)

// sampleSeries builds a weekly weight history starting at startKg and
// applying the given per-week delta.
func sampleSeries(startKg, deltaPerWeek float64, weeks int) []WeightSample {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	out := make([]WeightSample, 0, weeks+1)
	for i := 0; i <= weeks; i++ {
		out = append(out, WeightSample{
			Timestamp: base.AddDate(0, 0, 7*i),
			WeightKg:  startKg + deltaPerWeek*float64(i),
		})
	}
	return out
}

func cutProfile() UserProfile {
	return UserProfile{
		WeightKg:       90,
		HeightCm:       178,
		TargetWeightKg: 80,
		Goal:           GoalCut,
		GoalSpeed:      SpeedModerate,
	}
}

// TestAdaptation_SlowCut pins Scenario D: a loss of 0.1 kg/week against the
// moderate expectation of 0.5-0.7 kg/week emits a weight_change trigger of
// at least moderate severity with action adjust_calories, and the overall
// priority is at least medium. The Portuguese labels the client sends parse
// into the same enums.
func TestAdaptation_SlowCut(t *testing.T) {
	goal, err := ParseBodyGoal("Definir")
	if err != nil {
		t.Fatal(err)
	}
	speed, err := ParseGoalSpeed("moderado")
	if err != nil {
		t.Fatal(err)
	}
	profile := cutProfile()
	profile.Goal = goal
	profile.GoalSpeed = speed

	history := sampleSeries(90, -0.1, 6)
	plan := GenerateAdaptationPlan(profile, history, nil, AdaptationOptions{})

	var trend *AdaptationTrigger
	for i := range plan.Triggers {
		if plan.Triggers[i].Type == TriggerWeightChange {
			trend = &plan.Triggers[i]
		}
	}
	if trend == nil {
		t.Fatalf("no weight_change trigger in %+v", plan.Triggers)
	}
	if trend.Severity != SeverityModerate && trend.Severity != SeverityMajor {
		t.Errorf("severity = %s, want moderate or major", trend.Severity)
	}
	if trend.Action != ActionAdjustCalories {
		t.Errorf("action = %s, want adjust_calories", trend.Action)
	}
	if plan.Priority != PriorityMedium && plan.Priority != PriorityHigh {
		t.Errorf("priority = %s, want at least medium", plan.Priority)
	}
}

// TestAdaptation_OnTrack verifies that a rate inside the expected band emits
// no weight_change trigger.
func TestAdaptation_OnTrack(t *testing.T) {
	history := sampleSeries(90, -0.6, 6)
	plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerWeightChange {
			t.Errorf("unexpected weight_change trigger: %+v", tr)
		}
	}
}

// TestAdaptation_GoalOpposingTrend verifies that gaining on a cut is graded
// major and recommends a calorie adjustment.
func TestAdaptation_GoalOpposingTrend(t *testing.T) {
	history := sampleSeries(90, +0.4, 6)
	plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})

	found := false
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerWeightChange {
			found = true
			if tr.Severity != SeverityMajor {
				t.Errorf("severity = %s, want major for a goal-opposing trend", tr.Severity)
			}
			if tr.Action != ActionAdjustCalories {
				t.Errorf("action = %s, want adjust_calories", tr.Action)
			}
		}
	}
	if !found {
		t.Fatal("expected a weight_change trigger")
	}
	if plan.Priority != PriorityHigh {
		t.Errorf("priority = %s, want high", plan.Priority)
	}
}

// TestAdaptation_StalledCutAddsCardio verifies that a fully flat trend on a
// cut recommends adding cardio rather than only adjusting calories.
func TestAdaptation_StalledCutAddsCardio(t *testing.T) {
	history := sampleSeries(90, 0, 6)
	plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})

	var sawStallAction bool
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerWeightChange && tr.Action == ActionAddCardio {
			sawStallAction = true
		}
	}
	if !sawStallAction {
		t.Errorf("expected add_cardio on a stalled cut, got %+v", plan.Triggers)
	}
}

// TestAdaptation_Plateau verifies the distinct plateau trigger: trailing
// samples flat within epsilon while the goal is not maintain.
func TestAdaptation_Plateau(t *testing.T) {
	// Losing early, then flat for the last four weigh-ins.
	history := sampleSeries(90, -0.6, 4)
	last := history[len(history)-1]
	for i := 1; i <= 4; i++ {
		history = append(history, WeightSample{
			Timestamp: last.Timestamp.AddDate(0, 0, 7*i),
			WeightKg:  last.WeightKg,
		})
	}

	plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})
	found := false
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerPlateau {
			found = true
			if tr.Action != ActionAddCardio {
				t.Errorf("plateau action on a cut = %s, want add_cardio", tr.Action)
			}
		}
	}
	if !found {
		t.Errorf("expected a plateau trigger, got %+v", plan.Triggers)
	}
}

// TestAdaptation_NoPlateauWhenMaintaining verifies a maintainer never gets a
// plateau trigger from a flat history.
func TestAdaptation_NoPlateauWhenMaintaining(t *testing.T) {
	profile := cutProfile()
	profile.Goal = GoalMaintain
	history := sampleSeries(80, 0, 8)
	plan := GenerateAdaptationPlan(profile, history, nil, AdaptationOptions{})
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerPlateau {
			t.Errorf("maintainer got a plateau trigger: %+v", tr)
		}
	}
}

// TestAdaptation_EquipmentChange verifies the baseline diff: removals grade
// moderate, pure additions minor, both with action regenerate.
func TestAdaptation_EquipmentChange(t *testing.T) {
	profile := cutProfile()
	history := sampleSeries(90, -0.6, 6) // on track, no trend trigger

	removed := GenerateAdaptationPlan(profile, history,
		[]EquipmentType{EquipDumbbell},
		AdaptationOptions{BaselineEquipment: []EquipmentType{EquipDumbbell, EquipBarbell}})
	assertEquipmentTrigger(t, removed, SeverityModerate)

	added := GenerateAdaptationPlan(profile, history,
		[]EquipmentType{EquipDumbbell, EquipBarbell},
		AdaptationOptions{BaselineEquipment: []EquipmentType{EquipDumbbell}})
	assertEquipmentTrigger(t, added, SeverityMinor)

	same := GenerateAdaptationPlan(profile, history,
		[]EquipmentType{EquipDumbbell},
		AdaptationOptions{BaselineEquipment: []EquipmentType{EquipDumbbell}})
	for _, tr := range same.Triggers {
		if tr.Type == TriggerEquipmentChange {
			t.Errorf("unchanged inventory emitted a trigger: %+v", tr)
		}
	}
}

func assertEquipmentTrigger(t *testing.T, plan AdaptationPlan, want Severity) {
	t.Helper()
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerEquipmentChange {
			if tr.Severity != want {
				t.Errorf("equipment trigger severity = %s, want %s", tr.Severity, want)
			}
			if tr.Action != ActionRegenerate {
				t.Errorf("equipment trigger action = %s, want regenerate", tr.Action)
			}
			return
		}
	}
	t.Errorf("no equipment_change trigger in %+v", plan.Triggers)
}

// TestAdaptation_InsufficientHistory verifies that fewer than two samples
// yields an empty trigger list with priority none rather than an error.
func TestAdaptation_InsufficientHistory(t *testing.T) {
	for _, history := range [][]WeightSample{nil, sampleSeries(90, 0, 0)} {
		plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})
		if len(plan.Triggers) != 0 {
			t.Errorf("expected no triggers, got %+v", plan.Triggers)
		}
		if plan.Priority != PriorityNone {
			t.Errorf("priority = %s, want none", plan.Priority)
		}
		if plan.Summary == "" {
			t.Error("summary should still be populated")
		}
	}
}

// TestAdaptation_ShortSpanIgnored verifies that a noisy two-day history does
// not produce a weekly-rate trigger.
func TestAdaptation_ShortSpanIgnored(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	history := []WeightSample{
		{Timestamp: base, WeightKg: 90},
		{Timestamp: base.AddDate(0, 0, 2), WeightKg: 89},
	}
	plan := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})
	for _, tr := range plan.Triggers {
		if tr.Type == TriggerWeightChange {
			t.Errorf("short span produced a trend trigger: %+v", tr)
		}
	}
}

// TestAdaptation_MovingAverage verifies that endpoint smoothing suppresses
// a single-sample spike that the raw endpoints would misread.
func TestAdaptation_MovingAverage(t *testing.T) {
	history := sampleSeries(90, -0.6, 8)
	// Spike the final sample upward; raw endpoints now look like a slow cut.
	history[len(history)-1].WeightKg += 1.0

	raw := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{})
	smoothed := GenerateAdaptationPlan(cutProfile(), history, nil, AdaptationOptions{UseMovingAverage: true})

	rawTrend := hasTrigger(raw, TriggerWeightChange)
	smoothTrend := hasTrigger(smoothed, TriggerWeightChange)
	if !rawTrend {
		t.Error("raw endpoints should flag the spiked series")
	}
	if smoothTrend {
		t.Error("moving average should absorb a single spike on an otherwise on-track series")
	}
}

func hasTrigger(plan AdaptationPlan, typ TriggerType) bool {
	for _, tr := range plan.Triggers {
		if tr.Type == typ {
			return true
		}
	}
	return false
}

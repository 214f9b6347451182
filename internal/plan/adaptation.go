package plan

import (
	"fmt"
	"math"
)

// TriggerType classifies an adaptation trigger.
type TriggerType string

// Trigger type constants.
const (
	TriggerWeightChange    TriggerType = "weight_change"
	TriggerEquipmentChange TriggerType = "equipment_change"
	TriggerPlateau         TriggerType = "plateau"
)

// Severity grades a trigger.
type Severity string

// Severity constants, ordered minor < moderate < major.
const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Priority is the overall urgency of an adaptation plan.
type Priority string

// Priority constants.
const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ActionTag is the suggested response to a trigger.
type ActionTag string

// Action tag constants.
const (
	ActionChangeSplit    ActionTag = "change_split"
	ActionAddCardio      ActionTag = "add_cardio"
	ActionAdjustCalories ActionTag = "adjust_calories"
	ActionRegenerate     ActionTag = "regenerate"
)

// AdaptationTrigger is one detected reason to change the active plan.
type AdaptationTrigger struct {
	Type           TriggerType `json:"type"`
	Severity       Severity    `json:"severity"`
	Recommendation string      `json:"recommendation"`
	Action         ActionTag   `json:"action"`
}

// AdaptationPlan is the prioritized result of trend monitoring. Priority is
// always the maximum severity present, or none when Triggers is empty.
type AdaptationPlan struct {
	Triggers []AdaptationTrigger `json:"triggers"`
	Priority Priority            `json:"priority"`
	Summary  string              `json:"summary"`
}

// AdaptationOptions tunes trend detection. The zero value selects the
// documented defaults; the window and smoothing knobs exist because the
// right amount of noise filtering depends on how often the user weighs in.
type AdaptationOptions struct {
	// UseMovingAverage smooths each endpoint over MovingAverageSamples
	// samples instead of using raw endpoints.
	UseMovingAverage     bool
	MovingAverageSamples int // default 3
	// PlateauSamples is how many trailing samples the plateau check reads.
	PlateauSamples int // default 4
	// PlateauEpsilonKg is the net-change threshold under which the
	// trailing window counts as flat.
	PlateauEpsilonKg float64 // default 0.3
	// BaselineEquipment is the equipment set recorded when the active
	// routine was generated; empty disables the equipment check.
	BaselineEquipment []EquipmentType
}

// Trend detection thresholds.
const (
	defaultMovingAverageSamples = 3
	defaultPlateauSamples       = 4
	defaultPlateauEpsilonKg     = 0.3

	// minTrendSpanDays is the minimum history span needed before a weekly
	// rate is considered signal rather than scale noise.
	minTrendSpanDays = 7

	// StallRateKgPerWeek is the absolute weekly rate under which a trend
	// counts as stalled rather than merely slow.
	StallRateKgPerWeek = 0.05

	// Deviation-outside-band cutoffs separating severities, in kg/week.
	deviationModerateKg = 0.2
	deviationMajorKg    = 0.6
)

func (o AdaptationOptions) withDefaults() AdaptationOptions {
	if o.MovingAverageSamples <= 0 {
		o.MovingAverageSamples = defaultMovingAverageSamples
	}
	if o.PlateauSamples <= 0 {
		o.PlateauSamples = defaultPlateauSamples
	}
	if o.PlateauEpsilonKg <= 0 {
		o.PlateauEpsilonKg = defaultPlateauEpsilonKg
	}
	return o
}

// expectedRateBand returns the expected weekly weight change band in
// kg/week implied by the body goal and goal speed. Negative means loss.
func expectedRateBand(goal BodyGoal, speed GoalSpeed) (lo, hi float64) {
	switch goal {
	case GoalCut:
		switch speed {
		case SpeedConservative:
			return -0.4, -0.2
		case SpeedAggressive:
			return -1.0, -0.7
		default:
			return -0.7, -0.5
		}
	case GoalBulk:
		switch speed {
		case SpeedConservative:
			return 0.1, 0.2
		case SpeedAggressive:
			return 0.4, 0.6
		default:
			return 0.2, 0.4
		}
	default:
		return -0.2, 0.2
	}
}

// GenerateAdaptationPlan inspects the weight history and equipment state and
// emits prioritized change triggers. It is a pure function of its inputs:
// callers persist samples and equipment baselines externally and replay them
// on each call. Fewer than two samples produce an empty plan with priority
// none.
func GenerateAdaptationPlan(profile UserProfile, history []WeightSample, equipment []EquipmentType, opts AdaptationOptions) AdaptationPlan {
	opts = opts.withDefaults()

	var triggers []AdaptationTrigger
	if len(history) >= 2 {
		if t, ok := weightTrendTrigger(profile, history, opts); ok {
			triggers = append(triggers, t)
		}
		if t, ok := plateauTrigger(profile, history, opts); ok {
			triggers = append(triggers, t)
		}
	}
	if t, ok := equipmentTrigger(equipment, opts.BaselineEquipment); ok {
		triggers = append(triggers, t)
	}

	priority := overallPriority(triggers)
	return AdaptationPlan{
		Triggers: triggers,
		Priority: priority,
		Summary:  summaryFor(priority),
	}
}

// weeklyRate computes the realized rate of change in kg/week, optionally
// smoothing each endpoint with a short moving average.
func weeklyRate(history []WeightSample, opts AdaptationOptions) (float64, bool) {
	first, last := history[0], history[len(history)-1]
	spanDays := last.Timestamp.Sub(first.Timestamp).Hours() / 24
	if spanDays < minTrendSpanDays {
		return 0, false
	}

	startW, endW := first.WeightKg, last.WeightKg
	if opts.UseMovingAverage && len(history) >= 2*opts.MovingAverageSamples {
		n := opts.MovingAverageSamples
		var headW, tailW float64
		var headT, tailT float64
		for i := 0; i < n; i++ {
			headW += history[i].WeightKg
			headT += float64(history[i].Timestamp.Unix())
			tailW += history[len(history)-1-i].WeightKg
			tailT += float64(history[len(history)-1-i].Timestamp.Unix())
		}
		startW, endW = headW/float64(n), tailW/float64(n)
		// The smoothed endpoints sit at the centroids of their windows, so
		// the span shrinks with them or the rate reads systematically low.
		spanDays = (tailT - headT) / float64(n) / 86400
		if spanDays < minTrendSpanDays {
			return 0, false
		}
	}

	return (endW - startW) / (spanDays / 7), true
}

// weightTrendTrigger compares the realized weekly rate to the band implied
// by the profile's goal and goal speed. A goal-opposing or off-pace trend
// recommends a calorie adjustment; a fully stalled trend on a cut adds
// cardio, on a bulk changes the split.
func weightTrendTrigger(profile UserProfile, history []WeightSample, opts AdaptationOptions) (AdaptationTrigger, bool) {
	rate, ok := weeklyRate(history, opts)
	if !ok {
		return AdaptationTrigger{}, false
	}

	lo, hi := expectedRateBand(profile.Goal, profile.GoalSpeed)
	if rate >= lo && rate <= hi {
		return AdaptationTrigger{}, false
	}

	deviation := rate - hi
	if rate < lo {
		deviation = lo - rate
	}

	severity := SeverityMinor
	if deviation >= deviationMajorKg {
		severity = SeverityMajor
	} else if deviation >= deviationModerateKg {
		severity = SeverityModerate
	}

	action := ActionAdjustCalories
	recommendation := fmt.Sprintf(
		"weight is changing at %+.2f kg/week against an expected %+.2f to %+.2f; adjust calorie intake to bring the rate back on target",
		rate, lo, hi)

	if math.Abs(rate) < StallRateKgPerWeek {
		if profile.Goal == GoalCut {
			action = ActionAddCardio
			recommendation = "weight has stalled on a cut; add cardio volume to restore the deficit"
		} else {
			action = ActionChangeSplit
			recommendation = "weight has stalled; a new training stimulus may restart progress"
		}
	}

	return AdaptationTrigger{
		Type:           TriggerWeightChange,
		Severity:       severity,
		Recommendation: recommendation,
		Action:         action,
	}, true
}

// plateauTrigger fires when the trailing samples are flat within epsilon
// while the goal is not maintenance. Distinct from the trend trigger, which
// looks at the full window.
func plateauTrigger(profile UserProfile, history []WeightSample, opts AdaptationOptions) (AdaptationTrigger, bool) {
	if profile.Goal == GoalMaintain || len(history) < opts.PlateauSamples {
		return AdaptationTrigger{}, false
	}

	window := history[len(history)-opts.PlateauSamples:]
	minW, maxW := window[0].WeightKg, window[0].WeightKg
	for _, s := range window[1:] {
		minW = math.Min(minW, s.WeightKg)
		maxW = math.Max(maxW, s.WeightKg)
	}
	if maxW-minW > opts.PlateauEpsilonKg {
		return AdaptationTrigger{}, false
	}

	action := ActionChangeSplit
	if profile.Goal == GoalCut {
		action = ActionAddCardio
	}
	return AdaptationTrigger{
		Type:           TriggerPlateau,
		Severity:       SeverityModerate,
		Recommendation: fmt.Sprintf("the last %d weigh-ins moved less than %.1f kg; introduce a new stimulus or revisit intake", opts.PlateauSamples, opts.PlateauEpsilonKg),
		Action:         action,
	}, true
}

// equipmentTrigger compares the current equipment set against the recorded
// baseline. Removed equipment can invalidate the active plan and is graded
// harder than additions, which merely unlock better options.
func equipmentTrigger(current, baseline []EquipmentType) (AdaptationTrigger, bool) {
	if len(baseline) == 0 {
		return AdaptationTrigger{}, false
	}

	curSet := make(map[EquipmentType]struct{}, len(current))
	for _, e := range current {
		curSet[e] = struct{}{}
	}
	baseSet := make(map[EquipmentType]struct{}, len(baseline))
	for _, e := range baseline {
		baseSet[e] = struct{}{}
	}

	var removed, added int
	for e := range baseSet {
		if _, ok := curSet[e]; !ok && e != EquipBodyweight {
			removed++
		}
	}
	for e := range curSet {
		if _, ok := baseSet[e]; !ok && e != EquipBodyweight {
			added++
		}
	}
	if removed == 0 && added == 0 {
		return AdaptationTrigger{}, false
	}

	severity := SeverityMinor
	recommendation := "new equipment is available; regenerating the plan may unlock better exercise options"
	if removed > 0 {
		severity = SeverityModerate
		recommendation = "equipment the active plan relies on is no longer available; regenerate the plan against the current inventory"
	}

	return AdaptationTrigger{
		Type:           TriggerEquipmentChange,
		Severity:       severity,
		Recommendation: recommendation,
		Action:         ActionRegenerate,
	}, true
}

func severityRank(s Severity) int {
	switch s {
	case SeverityMajor:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	}
	return 0
}

// overallPriority maps the maximum trigger severity onto the plan priority.
func overallPriority(triggers []AdaptationTrigger) Priority {
	maxRank := 0
	for _, t := range triggers {
		if r := severityRank(t.Severity); r > maxRank {
			maxRank = r
		}
	}
	switch maxRank {
	case 3:
		return PriorityHigh
	case 2:
		return PriorityMedium
	case 1:
		return PriorityLow
	default:
		return PriorityNone
	}
}

func summaryFor(p Priority) string {
	switch p {
	case PriorityHigh:
		return "the current plan is significantly off track; act on the triggers below before the next training week"
	case PriorityMedium:
		return "progress has drifted from the expected path; apply the suggested adjustments soon"
	case PriorityLow:
		return "minor deviations detected; keep an eye on the trend but no immediate change is required"
	default:
		return "progress is on track; no plan changes are needed"
	}
}

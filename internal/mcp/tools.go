package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/claude/repplan/internal/models"
	"github.com/claude/repplan/internal/plan"
	"github.com/claude/repplan/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolAnalyzeProfile = mcp.NewTool("analyze_profile",
	mcp.WithDescription("Analyze a biometric profile: BMI category, recommended training goal, cardio prescription, and advisory warnings. Omit the measurements to analyze the stored profile instead."),
	mcp.WithNumber("weight_kg", mcp.Description("Body weight in kg. Defaults to the stored profile's weight.")),
	mcp.WithNumber("height_cm", mcp.Description("Height in cm. Defaults to the stored profile's height.")),
	mcp.WithNumber("target_weight_kg", mcp.Description("Target body weight in kg. Defaults to the stored profile's target.")),
)

var toolPlanSplit = mcp.NewTool("plan_split",
	mcp.WithDescription("Plan a weekly training split for a given number of available days and experience level. Returns named days with ordered muscle group targets."),
	mcp.WithNumber("days", mcp.Required(), mcp.Description("Training days per week (3-6)")),
	mcp.WithString("level", mcp.Required(), mcp.Description("Experience level"), mcp.Enum("beginner", "intermediate", "advanced")),
)

var toolGenerateRoutine = mcp.NewTool("generate_routine",
	mcp.WithDescription("Generate and persist a full weekly routine: split, equipment-compatible exercises with sets/reps/rest/RIR, weekly volume summary, calorie estimate, and cardio plan. Uses the stored profile and equipment inventory."),
	mcp.WithString("name", mcp.Description("Display name for the routine")),
	mcp.WithString("goal", mcp.Description("Training goal. Defaults to the goal recommended by profile analysis."), mcp.Enum("fat_loss", "hypertrophy", "strength", "recomposition")),
	mcp.WithString("level", mcp.Required(), mcp.Description("Experience level"), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithNumber("days_available", mcp.Required(), mcp.Description("Training days per week (3-6)")),
)

var toolCheckAdaptation = mcp.NewTool("check_adaptation",
	mcp.WithDescription("Check whether the current plan needs adapting: compares the weight trend against the expected rate for the stored goal, detects plateaus, and diffs the equipment inventory against the snapshot of the latest routine."),
	mcp.WithNumber("window_days", mcp.Description("How many days of weight history to analyze. Defaults to 90.")),
	mcp.WithBoolean("use_moving_average", mcp.Description("Smooth trend endpoints with a moving average. Recommended for daily weigh-ins.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List catalog exercises with equipment requirements, mechanics, and goal-alignment scores, optionally filtered by primary muscle group."),
	mcp.WithString("muscle", mcp.Description("Filter by primary muscle group (e.g. chest, back, quads). English and Portuguese names are accepted.")),
)

var toolLogWeight = mcp.NewTool("log_weight",
	mcp.WithDescription("Record a body-weight measurement for trend tracking."),
	mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Body weight in kg")),
	mcp.WithString("date", mcp.Description("Measurement time (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) analyzeProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	weight := req.GetFloat("weight_kg", 0)
	height := req.GetFloat("height_cm", 0)
	target := req.GetFloat("target_weight_kg", 0)

	if weight == 0 || height == 0 {
		row, err := h.ds.GetProfile(ctx, uid)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return mcp.NewToolResultError("no stored profile; pass weight_kg and height_cm explicitly"), nil
			}
			h.log.Error("mcp analyze_profile", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		if weight == 0 {
			weight = row.Profile.WeightKg
		}
		if height == 0 {
			height = row.Profile.HeightCm
		}
		if target == 0 {
			target = row.Profile.TargetWeightKg
		}
	}

	items, err := h.ds.GetEquipment(ctx, uid)
	if err != nil {
		h.log.Error("mcp analyze_profile equipment", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	analysis := plan.AnalyzeProfile(weight, height, target, plan.EquipmentTypeSet(items))
	result, err := mcp.NewToolResultJSON(analysis)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) planSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := req.RequireInt("days")
	if err != nil {
		return mcp.NewToolResultError("days parameter is required"), nil
	}
	levelStr, err := req.RequireString("level")
	if err != nil {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	level, err := plan.ParseLevel(levelStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	skeleton, err := plan.PlanWeek(days, level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(skeleton)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) generateRoutine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levelStr, err := req.RequireString("level")
	if err != nil {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	level, err := plan.ParseLevel(levelStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days, err := req.RequireInt("days_available")
	if err != nil {
		return mcp.NewToolResultError("days_available parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)

	var profile *plan.UserProfile
	if row, err := h.ds.GetProfile(ctx, uid); err == nil {
		profile = &row.Profile
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.log.Error("mcp generate_routine profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	items, err := h.ds.GetEquipment(ctx, uid)
	if err != nil {
		h.log.Error("mcp generate_routine equipment", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	equipment := plan.EquipmentTypeSet(items)

	var goal plan.TrainingGoal
	if goalStr := req.GetString("goal", ""); goalStr != "" {
		if goal, err = plan.ParseTrainingGoal(goalStr); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		if profile == nil {
			return mcp.NewToolResultError("goal is required when no profile is stored"), nil
		}
		goal = plan.AnalyzeProfile(profile.WeightKg, profile.HeightCm, profile.TargetWeightKg, equipment).RecommendedGoal
	}

	catalog, err := h.ds.ListExercises(ctx, "")
	if err != nil {
		h.log.Error("mcp generate_routine catalog", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if len(catalog) == 0 {
		return mcp.NewToolResultError("exercise catalog is empty; run repplan-import first"), nil
	}

	routine, err := plan.Generate(plan.RoutineConfig{
		Name:          req.GetString("name", ""),
		Goal:          goal,
		Level:         level,
		DaysAvailable: days,
		Equipment:     equipment,
		Catalog:       catalog,
		Profile:       profile,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.ds.InsertRoutine(ctx, uid, *routine, items)
	if err != nil {
		h.log.Error("mcp generate_routine insert", "error", err)
		return mcp.NewToolResultError("persisting routine failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"id": id, "routine": routine})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) checkAdaptation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	row, err := h.ds.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError("no stored profile; store one before checking adaptation"), nil
		}
		h.log.Error("mcp check_adaptation profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	window := req.GetInt("window_days", 90)
	if window <= 0 {
		window = 90
	}
	end := time.Now()
	start := end.AddDate(0, 0, -window)

	samples, err := h.ds.QueryWeightSamples(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp check_adaptation weights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	items, err := h.ds.GetEquipment(ctx, uid)
	if err != nil {
		h.log.Error("mcp check_adaptation equipment", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	opts := plan.AdaptationOptions{UseMovingAverage: req.GetBool("use_moving_average", false)}
	if latest, err := h.ds.LatestRoutine(ctx, uid); err == nil {
		opts.BaselineEquipment = plan.EquipmentTypeSet(latest.Equipment)
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.log.Error("mcp check_adaptation routine", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	adaptation := plan.GenerateAdaptationPlan(row.Profile, samples, plan.EquipmentTypeSet(items), opts)
	result, err := mcp.NewToolResultJSON(adaptation)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var muscle string
	if raw := req.GetString("muscle", ""); raw != "" {
		m, ok := models.NormalizeMuscle(raw)
		if !ok {
			return mcp.NewToolResultError("unknown muscle group: " + raw), nil
		}
		muscle = string(m)
	}

	exercises, err := h.ds.ListExercises(ctx, muscle)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight_kg")
	if err != nil {
		return mcp.NewToolResultError("weight_kg parameter is required"), nil
	}
	if weight <= 0 {
		return mcp.NewToolResultError("weight_kg must be positive"), nil
	}

	when := time.Now()
	if dateStr := req.GetString("date", ""); dateStr != "" {
		if when, err = parseFlexTime(dateStr); err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	uid := UserIDFromContext(ctx)
	inserted, err := h.ds.InsertWeightSamples(ctx, uid, []plan.WeightSample{{Timestamp: when, WeightKg: weight}})
	if err != nil {
		h.log.Error("mcp log_weight", "error", err)
		return mcp.NewToolResultError("insert failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"inserted": inserted, "timestamp": when, "weight_kg": weight})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

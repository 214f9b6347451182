package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/repplan/internal/models"
	"github.com/claude/repplan/internal/plan"
	"github.com/claude/repplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type analyzeProfileRequest struct {
	WeightKg       float64  `json:"weight_kg"`
	HeightCm       float64  `json:"height_cm"`
	TargetWeightKg float64  `json:"target_weight_kg"`
	Equipment      []string `json:"equipment"`
}

func (s *Server) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req analyzeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var equipment []plan.EquipmentType
	if req.Equipment != nil {
		var ok bool
		equipment, ok = normalizeEquipmentTypes(w, req.Equipment)
		if !ok {
			return
		}
	} else {
		items, err := s.db.GetEquipment(r.Context(), s.userID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		equipment = plan.EquipmentTypeSet(items)
	}

	analysis := plan.AnalyzeProfile(req.WeightKg, req.HeightCm, req.TargetWeightKg, equipment)
	writeJSON(w, http.StatusOK, analysis)
}

type profileRequest struct {
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	Goal           string  `json:"goal"`
	ActivityLevel  string  `json:"activity_level"`
	GoalSpeed      string  `json:"goal_speed"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.HeightCm <= 0 || req.WeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "height_cm and weight_kg must be positive"})
		return
	}

	goal := plan.GoalMaintain
	if req.Goal != "" {
		var err error
		if goal, err = plan.ParseBodyGoal(req.Goal); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	speed := plan.SpeedModerate
	if req.GoalSpeed != "" {
		var err error
		if speed, err = plan.ParseGoalSpeed(req.GoalSpeed); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	profile := plan.UserProfile{
		Gender:         req.Gender,
		Age:            req.Age,
		HeightCm:       req.HeightCm,
		WeightKg:       req.WeightKg,
		TargetWeightKg: req.TargetWeightKg,
		Goal:           goal,
		ActivityLevel:  plan.ActivityLevel(req.ActivityLevel),
		GoalSpeed:      speed,
	}
	if err := s.db.UpsertProfile(r.Context(), s.userID, profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	row, err := s.db.GetProfile(r.Context(), s.userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

type equipmentRequest struct {
	Items []struct {
		Type         string  `json:"type"`
		Quantity     int     `json:"quantity"`
		UnitWeightKg float64 `json:"unit_weight_kg"`
	} `json:"items"`
}

func (s *Server) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	items := make([]plan.EquipmentItem, 0, len(req.Items))
	for _, it := range req.Items {
		et, ok := models.NormalizeEquipment(it.Type)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown equipment type: " + it.Type})
			return
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, plan.EquipmentItem{Type: et, Quantity: qty, UnitWeightKg: it.UnitWeightKg})
	}

	if err := s.db.ReplaceEquipment(r.Context(), s.userID, items); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := s.db.GetEquipment(r.Context(), s.userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	var muscle string
	if raw := r.URL.Query().Get("muscle"); raw != "" {
		m, ok := models.NormalizeMuscle(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group: " + raw})
			return
		}
		muscle = string(m)
	}

	exercises, err := s.db.ListExercises(r.Context(), muscle)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days parameter required"})
		return
	}
	level, err := plan.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	skeleton, err := plan.PlanWeek(days, level)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, skeleton)
}

type generateRequest struct {
	Name          string   `json:"name"`
	Goal          string   `json:"goal"`
	Level         string   `json:"level"`
	DaysAvailable int      `json:"days_available"`
	Equipment     []string `json:"equipment"`
}

func (s *Server) handleGenerateRoutine(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	level, err := plan.ParseLevel(req.Level)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var goal plan.TrainingGoal
	if req.Goal != "" {
		if goal, err = plan.ParseTrainingGoal(req.Goal); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	var profile *plan.UserProfile
	if row, err := s.db.GetProfile(r.Context(), s.userID); err == nil {
		profile = &row.Profile
	} else if !errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var items []plan.EquipmentItem
	var equipment []plan.EquipmentType
	if req.Equipment != nil {
		var ok bool
		equipment, ok = normalizeEquipmentTypes(w, req.Equipment)
		if !ok {
			return
		}
		for _, et := range equipment {
			items = append(items, plan.EquipmentItem{Type: et, Quantity: 1})
		}
	} else {
		items, err = s.db.GetEquipment(r.Context(), s.userID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		equipment = plan.EquipmentTypeSet(items)
	}

	// No explicit goal: derive it from the stored profile.
	if goal == "" {
		if profile == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "goal is required when no profile is stored"})
			return
		}
		analysis := plan.AnalyzeProfile(profile.WeightKg, profile.HeightCm, profile.TargetWeightKg, equipment)
		goal = analysis.RecommendedGoal
	}

	catalog, err := s.db.ListExercises(r.Context(), "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(catalog) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "exercise catalog is empty; run repplan-import first"})
		return
	}

	routine, err := plan.Generate(plan.RoutineConfig{
		Name:          req.Name,
		Goal:          goal,
		Level:         level,
		DaysAvailable: req.DaysAvailable,
		Equipment:     equipment,
		Catalog:       catalog,
		Profile:       profile,
	})
	if err != nil {
		var cfgErr *plan.ConfigurationError
		if errors.As(err, &cfgErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("routine generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	id, err := s.db.InsertRoutine(r.Context(), s.userID, *routine, items)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "routine": routine})
}

func (s *Server) handleLatestRoutine(w http.ResponseWriter, r *http.Request) {
	row, err := s.db.LatestRoutine(r.Context(), s.userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no routine generated yet"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid routine ID"})
		return
	}

	row, err := s.db.GetRoutine(r.Context(), s.userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "routine not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

type weightsRequest struct {
	Samples []plan.WeightSample `json:"samples"`
}

func (s *Server) handleInsertWeights(w http.ResponseWriter, r *http.Request) {
	var req weightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Samples) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "samples must not be empty"})
		return
	}
	for _, sample := range req.Samples {
		if sample.WeightKg <= 0 || sample.Timestamp.IsZero() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "each sample needs a timestamp and a positive weight_kg"})
			return
		}
	}

	inserted, err := s.db.InsertWeightSamples(r.Context(), s.userID, req.Samples)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"received": len(req.Samples), "inserted": inserted})
}

func (s *Server) handleQueryWeights(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	samples, err := s.db.QueryWeightSamples(r.Context(), s.userID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

type adaptationRequest struct {
	WindowDays       int  `json:"window_days"`
	UseMovingAverage bool `json:"use_moving_average"`
}

func (s *Server) handleAdaptationCheck(w http.ResponseWriter, r *http.Request) {
	var req adaptationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WindowDays <= 0 {
		req.WindowDays = 90
	}

	row, err := s.db.GetProfile(r.Context(), s.userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found; store a profile before checking adaptation"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -req.WindowDays)
	samples, err := s.db.QueryWeightSamples(r.Context(), s.userID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	items, err := s.db.GetEquipment(r.Context(), s.userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	opts := plan.AdaptationOptions{UseMovingAverage: req.UseMovingAverage}
	if latest, err := s.db.LatestRoutine(r.Context(), s.userID); err == nil {
		opts.BaselineEquipment = plan.EquipmentTypeSet(latest.Equipment)
	} else if !errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := plan.GenerateAdaptationPlan(row.Profile, samples, plan.EquipmentTypeSet(items), opts)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), s.userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// normalizeEquipmentTypes converts raw equipment names to canonical tags,
// writing a 400 and returning ok=false on the first unknown name.
func normalizeEquipmentTypes(w http.ResponseWriter, raw []string) ([]plan.EquipmentType, bool) {
	out := make([]plan.EquipmentType, 0, len(raw))
	for _, name := range raw {
		et, ok := models.NormalizeEquipment(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown equipment type: " + name})
			return nil, false
		}
		out = append(out, et)
	}
	return out, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 90 days, enough history for trend detection.
		end = time.Now()
		start = end.AddDate(0, 0, -90)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}

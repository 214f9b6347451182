package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/repplan/internal/models"
	"github.com/claude/repplan/internal/plan"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// repplan-gen generates a routine from a catalog file without a server or
// database. Useful for inspecting what a given profile would get.
func main() {
	catalogPath := flag.String("catalog", "", "path to exercise catalog JSON (required)")
	name := flag.String("name", "", "routine name")
	days := flag.Int("days", 3, "training days per week (3-6)")
	level := flag.String("level", "beginner", "experience level (beginner, intermediate, advanced)")
	goal := flag.String("goal", "", "training goal (fat_loss, hypertrophy, strength, recomposition); derived from weight/height/target when omitted")
	equipmentCSV := flag.String("equipment", "", "comma-separated equipment list (e.g. barbell,dumbbell,bench)")
	weight := flag.Float64("weight", 0, "body weight in kg (for goal derivation)")
	height := flag.Float64("height", 0, "height in cm (for goal derivation)")
	target := flag.Float64("target", 0, "target weight in kg (for goal derivation)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repplan-gen", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *catalogPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: repplan-gen -catalog catalog.json -days 3 -level beginner [-goal hypertrophy] [-equipment barbell,bench]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	catalog, err := loadCatalog(*catalogPath, log)
	if err != nil {
		log.Error("loading catalog failed", "error", err)
		os.Exit(1)
	}

	parsedLevel, err := plan.ParseLevel(*level)
	if err != nil {
		log.Error("invalid level", "error", err)
		os.Exit(1)
	}

	var equipment []plan.EquipmentType
	if *equipmentCSV != "" {
		for _, raw := range strings.Split(*equipmentCSV, ",") {
			e, ok := models.NormalizeEquipment(raw)
			if !ok {
				log.Error("unknown equipment type", "type", strings.TrimSpace(raw))
				os.Exit(1)
			}
			equipment = append(equipment, e)
		}
	}

	var trainingGoal plan.TrainingGoal
	if *goal != "" {
		trainingGoal, err = plan.ParseTrainingGoal(*goal)
		if err != nil {
			log.Error("invalid goal", "error", err)
			os.Exit(1)
		}
	} else {
		if *weight <= 0 || *height <= 0 {
			log.Error("either -goal or both -weight and -height are required")
			os.Exit(1)
		}
		analysis := plan.AnalyzeProfile(*weight, *height, *target, equipment)
		trainingGoal = analysis.RecommendedGoal
		log.Info("derived goal from profile", "bmi", fmt.Sprintf("%.1f", analysis.BMI), "goal", trainingGoal)
	}

	routine, err := plan.Generate(plan.RoutineConfig{
		Name:          *name,
		Goal:          trainingGoal,
		Level:         parsedLevel,
		DaysAvailable: *days,
		Equipment:     equipment,
		Catalog:       catalog,
	})
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(routine); err != nil {
		log.Error("encoding routine failed", "error", err)
		os.Exit(1)
	}
}

// loadCatalog reads one catalog file and normalizes its records, warning on
// the ones it has to skip.
func loadCatalog(path string, log *slog.Logger) ([]plan.ExerciseDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	records, err := models.DecodeCatalog(data)
	if err != nil {
		return nil, err
	}

	var defs []plan.ExerciseDefinition
	for _, rec := range records {
		def, err := rec.Definition()
		if err != nil {
			log.Warn("skipping exercise", "id", rec.ID, "error", err)
			continue
		}
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog %s contains no usable exercises", path)
	}
	return defs, nil
}

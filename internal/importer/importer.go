package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/repplan/internal/models"
	"github.com/claude/repplan/internal/plan"
	"github.com/claude/repplan/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ExercisesReceived int
	ExercisesUpserted int64
	ExercisesSkipped  int
}

// Importer reads exercise catalog JSON files and upserts them into the DB.
// A file that fails to parse is logged and skipped; the run continues.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// re-read on every run.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes a catalog file or a directory of catalog files. For a
// directory, *.json files at the top level and one level of subdirectories
// are imported. Returns the accumulated stats.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return &imp.stats, fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	root := path
	if info.IsDir() {
		files, err = collectCatalogFiles(path)
		if err != nil {
			return &imp.stats, err
		}
	} else {
		files = []string{path}
		root = filepath.Dir(path)
	}

	logID, err := imp.startImportLog(ctx, path)
	if err != nil {
		return &imp.stats, err
	}
	started := time.Now()

	for _, f := range files {
		if err := imp.importFile(ctx, root, f); err != nil {
			imp.finishImportLog(ctx, logID, started, err)
			return &imp.stats, err
		}
	}

	imp.finishImportLog(ctx, logID, started, nil)
	return &imp.stats, nil
}

// collectCatalogFiles gathers *.json files from dir and its immediate subdirectories.
func collectCatalogFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub, err := filepath.Glob(filepath.Join(dir, entry.Name(), "*.json"))
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}
	return files, nil
}

// importFile imports a single catalog file. Parse and normalization failures
// are counted and logged, never fatal; only DB errors abort the run.
func (imp *Importer) importFile(ctx context.Context, root, path string) error {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = filepath.Base(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return nil
		}
		imported, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state for %s: %w", relPath, err)
		}
		if imported {
			imp.log.Debug("skipping unchanged file", "file", relPath)
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	records, err := models.DecodeCatalog(data)
	if err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	if len(records) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}
	imp.stats.ExercisesReceived += len(records)

	var defs []plan.ExerciseDefinition
	for _, rec := range records {
		def, err := rec.Definition()
		if err != nil {
			imp.log.Warn("skipping exercise", "file", relPath, "id", rec.ID, "error", err)
			imp.stats.ExercisesSkipped++
			continue
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.ExercisesUpserted += int64(len(defs))
		return nil
	}

	upserted, err := imp.batchUpsert(ctx, defs)
	if err != nil {
		return fmt.Errorf("upserting exercises from %s: %w", relPath, err)
	}
	imp.stats.ExercisesUpserted += upserted

	if imp.state != nil {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("recording import state for %s: %w", relPath, err)
		}
	}
	return nil
}

// batchUpsert upserts exercises in batches to stay within PostgreSQL parameter limits.
// 11 params per row, max 65535 params → ~5957 rows per batch. Use 5000.
func (imp *Importer) batchUpsert(ctx context.Context, defs []plan.ExerciseDefinition) (int64, error) {
	const batchSize = 5000
	var total int64

	for i := 0; i < len(defs); i += batchSize {
		end := i + batchSize
		if end > len(defs) {
			end = len(defs)
		}
		upserted, err := imp.db.UpsertExercises(ctx, defs[i:end])
		if err != nil {
			return total, err
		}
		total += upserted
	}
	return total, nil
}

// startImportLog opens an import log row. Returns 0 (no row) in dry-run mode.
func (imp *Importer) startImportLog(ctx context.Context, source string) (int64, error) {
	if imp.dryRun {
		return 0, nil
	}
	id, err := imp.db.InsertImportLog(ctx, storage.ImportLog{
		Source: source,
		Status: "running",
	})
	if err != nil {
		return 0, fmt.Errorf("creating import log: %w", err)
	}
	return id, nil
}

// finishImportLog records the final status and stats on the import log row.
func (imp *Importer) finishImportLog(ctx context.Context, id int64, started time.Time, runErr error) {
	if imp.dryRun || id == 0 {
		return
	}

	durationMs := int(time.Since(started).Milliseconds())
	entry := storage.ImportLog{
		Status:            "completed",
		DurationMs:        &durationMs,
		ExercisesReceived: imp.stats.ExercisesReceived,
		ExercisesUpserted: int(imp.stats.ExercisesUpserted),
		ExercisesSkipped:  imp.stats.ExercisesSkipped,
	}
	if runErr != nil {
		entry.Status = "failed"
		msg := runErr.Error()
		entry.ErrorMessage = &msg
	}

	if err := imp.db.UpdateImportLog(ctx, id, entry); err != nil {
		imp.log.Warn("updating import log failed", "id", id, "error", err)
	}
}

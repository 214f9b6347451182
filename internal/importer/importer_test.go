package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

const validCatalog = `{
	"version": 1,
	"exercises": [
		{
			"id": "supino-reto",
			"title": "Supino Reto",
			"equipment": ["Barra", "Banco"],
			"mechanic": "Composto",
			"force": "Empurrar",
			"primary_muscle": "Peito",
			"secondary_muscles": ["Tríceps"],
			"ranking": 95,
			"scores": {"hypertrophy": 5, "strength": 5, "difficulty": 3, "injury_risk": 2, "stability": 4}
		},
		{
			"id": "remada-curvada",
			"title": "Remada Curvada",
			"equipment": ["Barra"],
			"mechanic": "Composto",
			"force": "Puxar",
			"primary_muscle": "Costas",
			"ranking": 92
		}
	]
}`

// TestImportDryRun parses a directory of catalog files without a database,
// counting valid exercises and skipping broken records and files.
func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.json"), validCatalog)
	// One good record, one missing an id.
	writeFile(t, filepath.Join(dir, "extras.json"), `[
		{"id": "flexao", "title": "Flexão", "mechanic": "compound", "force": "push", "primary_muscle": "chest", "ranking": 80},
		{"title": "sem id", "mechanic": "compound", "force": "push", "primary_muscle": "chest"}
	]`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	// Files in immediate subdirectories are picked up too.
	subDir := filepath.Join(dir, "accessories")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(subDir, "curls.json"), `[
		{"id": "rosca-direta", "title": "Rosca Direta", "mechanic": "Isolado", "force": "Puxar", "primary_muscle": "Bíceps", "ranking": 70}
	]`)

	imp := New(nil, nil, discardLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", stats.FilesProcessed)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", stats.FilesErrored)
	}
	if stats.ExercisesReceived != 5 {
		t.Errorf("ExercisesReceived = %d, want 5", stats.ExercisesReceived)
	}
	if stats.ExercisesUpserted != 4 {
		t.Errorf("ExercisesUpserted = %d, want 4", stats.ExercisesUpserted)
	}
	if stats.ExercisesSkipped != 1 {
		t.Errorf("ExercisesSkipped = %d, want 1", stats.ExercisesSkipped)
	}
}

// TestImportSingleFile imports one catalog file passed directly instead of a directory.
func TestImportSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.json")
	writeFile(t, path, validCatalog)

	imp := New(nil, nil, discardLogger(), true)
	stats, err := imp.Import(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", stats.FilesProcessed)
	}
	if stats.ExercisesUpserted != 2 {
		t.Errorf("ExercisesUpserted = %d, want 2", stats.ExercisesUpserted)
	}
}

// TestImportMissingPath rejects a path that does not exist.
func TestImportMissingPath(t *testing.T) {
	imp := New(nil, nil, discardLogger(), true)
	if _, err := imp.Import(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing path")
	}
}

// TestImportEmptyCatalogFile counts a file with zero exercises as skipped, not errored.
func TestImportEmptyCatalogFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.json"), `{"version": 1, "exercises": []}`)

	imp := New(nil, nil, discardLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1", stats.FilesSkipped)
	}
	if stats.FilesProcessed != 0 {
		t.Errorf("FilesProcessed = %d, want 0", stats.FilesProcessed)
	}
}

// TestImportSkipsRecordedFiles leaves a file alone once the state DB has its
// current size and hash.
func TestImportSkipsRecordedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.json")
	writeFile(t, path, validCatalog)

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := state.MarkImported("base.json", info.Size(), hash); err != nil {
		t.Fatalf("marking imported: %v", err)
	}

	imp := New(nil, state, discardLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1", stats.FilesSkipped)
	}
	if stats.ExercisesReceived != 0 {
		t.Errorf("ExercisesReceived = %d, want 0", stats.ExercisesReceived)
	}
}

// TestStateDB verifies the imported-files bookkeeping: a file counts as
// imported only when path, size and hash all match.
func TestStateDB(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	imported, err := state.IsImported("catalog.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if imported {
		t.Error("fresh state db should have no imported files")
	}

	if err := state.MarkImported("catalog.json", 100, "abc"); err != nil {
		t.Fatalf("marking imported: %v", err)
	}

	imported, err = state.IsImported("catalog.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !imported {
		t.Error("marked file should be imported")
	}

	// A changed file must be re-imported.
	imported, err = state.IsImported("catalog.json", 120, "def")
	if err != nil {
		t.Fatal(err)
	}
	if imported {
		t.Error("file with different size/hash should not count as imported")
	}
}

// TestHashFile hashes file contents, not paths: identical contents in
// different files produce the same digest.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	c := filepath.Join(dir, "c.json")
	writeFile(t, a, validCatalog)
	writeFile(t, b, validCatalog)
	writeFile(t, c, `[]`)

	hashA, err := HashFile(a)
	if err != nil {
		t.Fatal(err)
	}
	hashB, err := HashFile(b)
	if err != nil {
		t.Fatal(err)
	}
	hashC, err := HashFile(c)
	if err != nil {
		t.Fatal(err)
	}

	if hashA != hashB {
		t.Errorf("same content produced different hashes: %s vs %s", hashA, hashB)
	}
	if hashA == hashC {
		t.Error("different content produced the same hash")
	}
	if len(hashA) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(hashA))
	}
}

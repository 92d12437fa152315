package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSeed = 7
	cfg.RecentPlans = []string{"/tmp/bungalow.json"}

	plans := []model.Plan{samplePlan()}

	if err := ExportAllData(path, cfg, plans); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
	if backup.Config.DefaultSeed != 7 {
		t.Errorf("expected DefaultSeed=7, got %d", backup.Config.DefaultSeed)
	}
	if len(backup.Plans) != 1 || backup.Plans[0].Name != "bungalow" {
		t.Errorf("expected one plan named bungalow, got %v", backup.Plans)
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for backup without version, got nil")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestImportAllDataNilRecentPlans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	data := []byte(`{"version":"1.0.0","created_at":"2026-01-01T00:00:00Z","config":{"recent_plans":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentPlans == nil {
		t.Error("RecentPlans should not be nil after import")
	}
}

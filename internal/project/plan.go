package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/floorplan/internal/model"
)

// Plan files are stored as JSON (.json) or TOML (.toml); the extension
// selects the codec on both save and load.

// SavePlan writes a plan to the given path, creating parent directories
// as needed.
func SavePlan(path string, plan model.Plan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		return os.WriteFile(path, data, 0644)
	case ".toml":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create plan file: %w", err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(plan); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported plan file extension %q (use .json or .toml)", filepath.Ext(path))
	}
}

// LoadPlan reads a plan from the given path and validates its document
// structure before returning it.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan model.Plan
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &plan); err != nil {
			return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &plan); err != nil {
			return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
		}
	default:
		return model.Plan{}, fmt.Errorf("unsupported plan file extension %q (use .json or .toml)", filepath.Ext(path))
	}

	if plan.Settings == (model.SearchSettings{}) {
		plan.Settings = model.DefaultSearchSettings()
	}
	if err := ValidatePlanDocument(&plan); err != nil {
		return model.Plan{}, err
	}
	return plan, nil
}

package data

import (
	"encoding/json"
	"fmt"
	"os"

	"lcoe-calculator/internal/model"
)

// LoadProjectJSON reads a ProjectInputs record from a JSON file.
// The file may hold the record directly or wrapped as {"project": {...}}.
func LoadProjectJSON(path string) (*model.ProjectInputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Project *model.ProjectInputs `json:"project"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if wrapped.Project != nil {
		return wrapped.Project, nil
	}

	var in model.ProjectInputs
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &in, nil
}

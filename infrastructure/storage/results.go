package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"

	"github.com/pkg/errors"
)

type resultFile struct {
	path string
}

// NewResultStore - creates result storage backed by a JSON file, creating its directory
func NewResultStore(path string) (interfaces.ResultStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	return &resultFile{path: path}, nil
}

// SaveResults - saves step results to file
func (s *resultFile) SaveResults(results []entities.StepResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// LoadResults - loads step results from file
func (s *resultFile) LoadResults() ([]entities.StepResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.StepResult{}, nil
		}
		return nil, err
	}

	var results []entities.StepResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", s.path)
	}
	return results, nil
}

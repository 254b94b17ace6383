package interfaces

import "ui_automation/domain/entities"

// DataSource loads named scenario data files
type DataSource interface {
	// Load returns the records listed under scenario in the named file
	Load(file, scenario string) ([]map[string]interface{}, error)
}

// ResultStore keeps the outcome of the last run
type ResultStore interface {
	// SaveResults replaces the stored results
	SaveResults(results []entities.StepResult) error

	// LoadResults returns the stored results, empty when nothing was saved yet
	LoadResults() ([]entities.StepResult, error)
}

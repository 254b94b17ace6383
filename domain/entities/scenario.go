package entities

import "time"

// StepStatus represents the outcome of a scenario step
type StepStatus string

const (
	StepStatusPending StepStatus = "pending"
	StepStatusPassed  StepStatus = "passed"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// StepResult records what happened when a step ran
type StepResult struct {
	Suite    string        `json:"suite"`
	Step     string        `json:"step"`
	Status   StepStatus    `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ID returns the suite/step path used for filtering and reporting
func (r StepResult) ID() string {
	return r.Suite + "/" + r.Step
}

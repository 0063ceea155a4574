package history

import "time"

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one journal entry.
type Run struct {
	ID           string        `json:"run_id"`
	InputPath    string        `json:"input_path"`
	OutputPath   string        `json:"output_path,omitempty"`
	Mode         string        `json:"mode"`
	Records      int           `json:"records"`
	Clusters     int           `json:"clusters"`
	Merges       int           `json:"merges"`
	Status       Status        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`
}

// Succeeded reports whether the run wrote its output.
func (r Run) Succeeded() bool {
	return r.Status == StatusSucceeded
}

package domain

import "time"

// JobStatus is the pipeline state of one request.
// Transitions are strictly sequential:
// created -> ingesting -> pattern_analysis -> synthesizing -> action_planning -> completed | failed.
type JobStatus string

const (
	StatusCreated         JobStatus = "created"
	StatusIngesting       JobStatus = "ingesting"
	StatusPatternAnalysis JobStatus = "pattern_analysis"
	StatusSynthesizing    JobStatus = "synthesizing"
	StatusActionPlanning  JobStatus = "action_planning"
	StatusCompleted       JobStatus = "completed"
	StatusFailed          JobStatus = "failed"
)

// Terminal reports whether no further transitions can happen.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ProgressEvent is published to the notifier around each stage.
// Only the completed event carries Results.
type ProgressEvent struct {
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
	Results any       `json:"results,omitempty"`
}

// Job tracks an asynchronously submitted request.
type Job struct {
	ID        string    `json:"id"`
	Request   Request   `json:"request"`
	Status    JobStatus `json:"status"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ReportID is set once the job completes.
	ReportID string `json:"report_id,omitempty"`
}

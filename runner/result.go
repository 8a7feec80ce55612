package runner

import (
	"time"
)

// Status is the outcome of one hook execution.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result records the outcome of a single hook.
type Result struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Repo     string        `json:"repo"`
	Status   Status        `json:"status"`
	ExitCode int           `json:"exitCode,omitempty"`
	Duration time.Duration `json:"duration"`
	Files    int           `json:"files"`
	Output   string        `json:"output,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// Report aggregates the results of one run.
type Report struct {
	Stage    string        `json:"stage"`
	Results  []Result      `json:"results"`
	Duration time.Duration `json:"duration"`
}

// Failed reports whether any hook failed.
func (r *Report) Failed() bool {
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Counts returns the number of passed, failed, and skipped hooks.
func (r *Report) Counts() (passed, failed, skipped int) {
	for _, result := range r.Results {
		switch result.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

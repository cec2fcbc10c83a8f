package domain

import "time"

// RunResult is the aggregate outcome of one verification run
type RunResult struct {
	Root         string        `json:"root"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	FilesScanned int           `json:"files_scanned"`
	Errors       []Finding     `json:"errors"`
	Warnings     []Finding     `json:"warnings"`
}

// ErrorCount returns the number of blocking findings
func (r *RunResult) ErrorCount() int {
	return len(r.Errors)
}

// WarningCount returns the number of advisory findings
func (r *RunResult) WarningCount() int {
	return len(r.Warnings)
}

// TotalFindings returns the total number of findings
func (r *RunResult) TotalFindings() int {
	return len(r.Errors) + len(r.Warnings)
}

// HasFindings returns true if there are any findings
func (r *RunResult) HasFindings() bool {
	return r.TotalFindings() > 0
}

// Findings returns errors followed by warnings, each in creation order
func (r *RunResult) Findings() []Finding {
	all := make([]Finding, 0, r.TotalFindings())
	all = append(all, r.Errors...)
	return append(all, r.Warnings...)
}

// ExitCode returns 1 when any error is present, 0 otherwise
func (r *RunResult) ExitCode() int {
	if r.ErrorCount() > 0 {
		return 1
	}
	return 0
}

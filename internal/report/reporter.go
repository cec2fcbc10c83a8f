package report

import (
	"fmt"
	"time"

	"github.com/juparave/appverify/internal/domain"
)

// Reporter accumulates findings for a single run. It is owned by the
// orchestrator and handed to each check in turn; it is not safe for
// concurrent use.
type Reporter struct {
	findings []domain.Finding
}

// NewReporter creates an empty Reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// Errorf records a blocking finding
func (r *Reporter) Errorf(check, file, format string, args ...interface{}) {
	r.add(check, domain.SeverityError, file, fmt.Sprintf(format, args...))
}

// Warnf records an advisory finding
func (r *Reporter) Warnf(check, file, format string, args ...interface{}) {
	r.add(check, domain.SeverityWarning, file, fmt.Sprintf(format, args...))
}

func (r *Reporter) add(check string, sev domain.Severity, file, msg string) {
	r.findings = append(r.findings, domain.Finding{
		Check:    check,
		Severity: sev,
		Message:  msg,
		File:     file,
	})
}

// Findings returns a copy of everything recorded so far, in creation order
func (r *Reporter) Findings() []domain.Finding {
	out := make([]domain.Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

// Len returns the number of recorded findings
func (r *Reporter) Len() int {
	return len(r.findings)
}

// Result splits the findings by severity into a RunResult. Both slices are
// non-nil so a clean run encodes as empty lists.
func (r *Reporter) Result(root string, started time.Time, filesScanned int) *domain.RunResult {
	res := &domain.RunResult{
		Root:         root,
		StartedAt:    started,
		Duration:     time.Since(started),
		FilesScanned: filesScanned,
		Errors:       []domain.Finding{},
		Warnings:     []domain.Finding{},
	}
	for _, f := range r.findings {
		if f.IsError() {
			res.Errors = append(res.Errors, f)
		} else {
			res.Warnings = append(res.Warnings, f)
		}
	}
	return res
}

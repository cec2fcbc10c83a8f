package domain

// Severity represents how a finding affects the compile verdict
type Severity string

const (
	// SeverityError blocks the "safe to compile" verdict
	SeverityError Severity = "Error"
	// SeverityWarning is advisory only
	SeverityWarning Severity = "Warning"
)

// Finding represents an issue discovered by one of the checks
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
}

// IsError returns true if the finding blocks compilation
func (f Finding) IsError() bool {
	return f.Severity == SeverityError
}

// Icon returns the marker printed in front of the message
func (f Finding) Icon() string {
	if f.IsError() {
		return "❌"
	}
	return "⚠️"
}

package core

import "fmt"

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

type Finding struct {
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Body     string   `json:"body,omitempty"`
	Function string   `json:"function,omitempty"`
	Rule     string   `json:"rule,omitempty"`
}

// Location is the path, suffixed with the line number when one is known.
func (f Finding) Location() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return f.Path
}

func (f Finding) IsHighPriority() bool {
	return f.Severity == SeverityHigh
}

// FilterBySeverity keeps the order of the input.
func FilterBySeverity(findings []Finding, severity Severity) []Finding {
	var filtered []Finding
	for _, finding := range findings {
		if finding.Severity == severity {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}

func HasHighSeverity(findings []Finding) bool {
	for _, finding := range findings {
		if finding.IsHighPriority() {
			return true
		}
	}
	return false
}

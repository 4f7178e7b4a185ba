package reporters

import (
	"encoding/json"
	"fmt"

	"github.com/reaandrew/perfdetector/core"
)

type JsonReport struct {
	Total    int            `json:"total"`
	High     int            `json:"high"`
	Medium   int            `json:"medium"`
	Findings []core.Finding `json:"findings"`
}

// JsonReporter is the machine-readable alternative to the markdown report.
type JsonReporter struct{}

func (JsonReporter) Extension() string {
	return "json"
}

func (JsonReporter) Render(findings []core.Finding) ([]byte, error) {
	report := JsonReport{
		Total:    len(findings),
		High:     len(core.FilterBySeverity(findings, core.SeverityHigh)),
		Medium:   len(core.FilterBySeverity(findings, core.SeverityMedium)),
		Findings: findings,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal findings to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

package reporters

import (
	"fmt"
	"strings"

	"github.com/reaandrew/perfdetector/core"
)

const (
	ReportTitle          = "# 🚀 Auto-Detected Performance Optimizations"
	HighPriorityHeader   = "## 🔴 High Priority"
	MediumPriorityHeader = "## 🟡 Medium Priority"
)

// MarkdownReporter renders findings in two sections by severity. Sections
// without findings are left out.
type MarkdownReporter struct{}

func (MarkdownReporter) Extension() string {
	return "md"
}

func (MarkdownReporter) Render(findings []core.Finding) ([]byte, error) {
	var b strings.Builder
	b.WriteString(ReportTitle + "\n\n")

	high := core.FilterBySeverity(findings, core.SeverityHigh)
	medium := core.FilterBySeverity(findings, core.SeverityMedium)

	if len(high) > 0 {
		b.WriteString(HighPriorityHeader + "\n\n")
		for _, f := range high {
			fmt.Fprintf(&b, "- **%s**: %s\n", f.Location(), f.Message)
			if f.Body != "" {
				fmt.Fprintf(&b, "```rust\n%s\n```\n", f.Body)
			}
		}
	}

	if len(medium) > 0 {
		b.WriteString("\n" + MediumPriorityHeader + "\n\n")
		for _, f := range medium {
			label := f.Function
			if label == "" {
				label = f.Location()
			}
			fmt.Fprintf(&b, "- %s: %s\n", label, f.Message)
		}
	}

	return []byte(b.String()), nil
}

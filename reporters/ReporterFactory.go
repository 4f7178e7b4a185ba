package reporters

import (
	"fmt"

	"github.com/reaandrew/perfdetector/core"
)

func CreateReporter(reportFormat string) (core.Reporter, error) {
	if reportFormat == "" || reportFormat == "markdown" || reportFormat == "md" {
		return MarkdownReporter{}, nil
	}
	if reportFormat == "json" {
		return JsonReporter{}, nil
	}

	return nil, fmt.Errorf("unknown report format: %s", reportFormat)
}

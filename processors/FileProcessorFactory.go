package processors

import (
	"embed"

	"github.com/reaandrew/perfdetector/core"
)

//go:embed data/rules/*.yaml
var rulesFS embed.FS

// InitializeProcessors creates the processors applied to every scanned file,
// in the order their findings are reported.
func InitializeProcessors(extensions []string) ([]core.FileProcessor, error) {
	var processors []core.FileProcessor

	complexityProcessor, err := NewComplexityPatternsProcessor(rulesFS, extensions)
	if err != nil {
		return nil, err
	}
	processors = append(processors, complexityProcessor)

	processors = append(processors, NewHashmapSuggestionProcessor(extensions))
	return processors, nil
}

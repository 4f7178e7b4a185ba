package processors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reaandrew/perfdetector/core"
)

// collection.iter().find(|item| ref.field == search)
var findByFieldRegex = regexp.MustCompile(`(\w+)\.iter\(\)\.find\(\|(\w+)\| (\w+)\.(\w+) == (\w+)\)`)

const hashmapSuggestionTemplate = `// BEFORE (O(n)):
%[1]s

// SUGGESTED (O(1)):
// Add this to your struct:
%[2]s_by_%[3]s: HashMap<_, usize>

// Then use:
if let Some(&idx) = self.%[2]s_by_%[3]s.get(&%[4]s) {
    let %[5]s = &self.%[2]s[idx];
}`

// HashmapSuggestionProcessor emits one finding per linear search by field,
// carrying a suggested index-based rewrite. The linear-search-by-field rule
// reports the same file as well; the two are not deduplicated.
type HashmapSuggestionProcessor struct {
	Extensions []string
}

func NewHashmapSuggestionProcessor(extensions []string) *HashmapSuggestionProcessor {
	return &HashmapSuggestionProcessor{Extensions: extensions}
}

func (p *HashmapSuggestionProcessor) Supports(path string) bool {
	return matchFileExtension(p.Extensions, path)
}

func (p *HashmapSuggestionProcessor) Process(path string, content string) ([]core.Finding, error) {
	var findings []core.Finding
	for _, loc := range findByFieldRegex.FindAllStringSubmatchIndex(content, -1) {
		group := func(i int) string {
			return content[loc[2*i]:loc[2*i+1]]
		}
		collection := group(1)
		itemVar := group(2)
		field := group(4)
		searchValue := group(5)

		findings = append(findings, core.Finding{
			Path:     path,
			Line:     lineNumberAt(content, loc[0]),
			Severity: core.SeverityHigh,
			Message:  fmt.Sprintf("Linear search on %s by %s - consider HashMap index", collection, field),
			Body:     RenderHashmapSuggestion(group(0), collection, itemVar, field, searchValue),
			Rule:     "hashmap-conversion",
		})
	}
	return findings, nil
}

func RenderHashmapSuggestion(matched, collection, itemVar, field, searchValue string) string {
	return fmt.Sprintf(hashmapSuggestionTemplate, matched, collection, field, searchValue, itemVar)
}

// lineNumberAt is 1-based.
func lineNumberAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

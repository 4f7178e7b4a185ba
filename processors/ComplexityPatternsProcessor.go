package processors

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reaandrew/perfdetector/core"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const rulesDir = "data/rules"

func isNilOrEmpty[T any](slice []T) bool {
	return len(slice) == 0
}

type Rule struct {
	Name    string         `yaml:"name"`
	Message string         `yaml:"message"`
	Pattern string         `yaml:"pattern"`
	Regex   *regexp.Regexp `yaml:"-"`
}

// ComplexityPatternsProcessor reports each rule at most once per file: a
// rule either matches somewhere in the whole text or it does not.
type ComplexityPatternsProcessor struct {
	Rules      []Rule
	Extensions []string
}

func NewComplexityPatternsProcessor(f fs.FS, extensions []string) (*ComplexityPatternsProcessor, error) {
	rules, err := LoadAllRules(f)
	if err != nil {
		return nil, err
	}
	processor := &ComplexityPatternsProcessor{Rules: rules, Extensions: extensions}
	if err := processor.CompileRules(); err != nil {
		return nil, err
	}
	return processor, nil
}

func (p *ComplexityPatternsProcessor) CompileRules() error {
	for i := range p.Rules {
		if p.Rules[i].Regex != nil {
			continue
		}
		regex, err := regexp.Compile(p.Rules[i].Pattern)
		if err != nil {
			return fmt.Errorf("rule '%s' has an invalid pattern: %w", p.Rules[i].Name, err)
		}
		p.Rules[i].Regex = regex
	}
	return nil
}

func LoadAllRules(f fs.FS) ([]Rule, error) {
	var allRules []Rule
	entries, err := fs.ReadDir(f, rulesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		content, err := fs.ReadFile(f, path.Join(rulesDir, entry.Name()))
		if err != nil {
			log.Warnf("Failed to read rules file %s: %v", entry.Name(), err)
			continue
		}

		var rules []Rule
		if err := yaml.Unmarshal(content, &rules); err != nil {
			log.Warnf("Failed to unmarshal YAML from rules file %s: %v", entry.Name(), err)
			continue
		}

		allRules = append(allRules, rules...)
	}
	return allRules, nil
}

func (p *ComplexityPatternsProcessor) Supports(path string) bool {
	return matchFileExtension(p.Extensions, path)
}

func matchFileExtension(extensions []string, path string) bool {
	if isNilOrEmpty(extensions) {
		return true
	}
	for _, extension := range extensions {
		if strings.TrimPrefix(filepath.Ext(path), ".") == strings.TrimPrefix(extension, ".") {
			return true
		}
	}
	return false
}

func (p *ComplexityPatternsProcessor) Process(path string, content string) ([]core.Finding, error) {
	var findings []core.Finding
	for _, rule := range p.Rules {
		if rule.Regex == nil {
			log.Errorf("Rule error: rule '%s' has not been compiled", rule.Name)
			continue
		}
		if !rule.Regex.MatchString(content) {
			continue
		}
		log.Debugf("Rule '%s' matched %s", rule.Name, path)
		findings = append(findings, core.Finding{
			Path:     path,
			Severity: core.SeverityHigh,
			Message:  rule.Message,
			Rule:     rule.Name,
		})
	}
	return findings, nil
}

package scanners

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reaandrew/perfdetector/core"
	"github.com/reaandrew/perfdetector/processors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedLoops = `
fn pairs(a: &[Unit], b: &[Unit]) {
    for x in a.iter() {
        for y in b.iter() {
            x.engage(y);
        }
    }
}
`

type recordingProcessor struct {
	seen []string
}

func (r *recordingProcessor) Supports(path string) bool {
	return filepath.Ext(path) == ".rs"
}

func (r *recordingProcessor) Process(path string, content string) ([]core.Finding, error) {
	r.seen = append(r.seen, path)
	return []core.Finding{{Path: path, Severity: core.SeverityMedium, Message: content}}, nil
}

type countingProgress struct {
	total      int
	increments int
	finished   bool
}

func (c *countingProgress) SetTotal(total int) { c.total = total }
func (c *countingProgress) Increment()         { c.increments++ }
func (c *countingProgress) Finish()            { c.finished = true }

func writeFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultScanner(t *testing.T, exclude ...string) *FsFileScanner {
	t.Helper()
	fileProcessors, err := processors.InitializeProcessors([]string{"rs"})
	require.NoError(t, err)
	scanner, err := NewFsFileScanner(fileProcessors, exclude)
	require.NoError(t, err)
	return scanner
}

func TestNestedLoopFileIsReported(t *testing.T) {
	root := t.TempDir()
	battle := writeFile(t, root, "military/battle.rs", nestedLoops)
	writeFile(t, root, "main.rs", "fn main() {}\n")

	findings, err := defaultScanner(t).TraverseAndSearch(root)

	assert.Nil(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, battle, findings[0].Path)
	assert.Equal(t, core.SeverityHigh, findings[0].Severity)
}

func TestNoMatchesYieldsNoFindings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}\n")
	writeFile(t, root, "ui/labels.rs", "pub fn label() -> &'static str { \"hi\" }\n")

	findings, err := defaultScanner(t).TraverseAndSearch(root)

	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestMissingRootIsNotAnError(t *testing.T) {
	findings, err := defaultScanner(t).TraverseAndSearch(filepath.Join(t.TempDir(), "src"))

	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestRootThatIsAFileIsNotAnError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lib.rs", nestedLoops)

	findings, err := defaultScanner(t).TraverseAndSearch(path)

	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestEmptyRootYieldsNoFindings(t *testing.T) {
	findings, err := defaultScanner(t).TraverseAndSearch(t.TempDir())

	assert.Nil(t, err)
	assert.Empty(t, findings)
}

func TestUnsupportedExcludedVendoredAndBinaryFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "scripts/loops.py", nestedLoops)
	writeFile(t, root, "target/debug/generated.rs", nestedLoops)
	writeFile(t, root, "vendor/dep/lib.rs", nestedLoops)
	writeFile(t, root, "blob.rs", "\x00\x01\x02"+nestedLoops)
	kept := writeFile(t, root, "world.rs", nestedLoops)

	scanner := defaultScanner(t, "**/target/**")
	scanner.SkipVendored = true

	findings, err := scanner.TraverseAndSearch(root)

	assert.Nil(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, kept, findings[0].Path)
}

func TestFirstPartyModulesWithVendorLikeNamesAreScanned(t *testing.T) {
	root := t.TempDir()
	lookup := writeFile(t, root, "world/cache/lookup.rs", nestedLoops)
	deps := writeFile(t, root, "deps/a.rs", nestedLoops)
	third := writeFile(t, root, "third_party/x.rs", nestedLoops)

	findings, err := defaultScanner(t).TraverseAndSearch(root)

	assert.Nil(t, err)
	var paths []string
	for _, finding := range findings {
		paths = append(paths, finding.Path)
	}
	assert.ElementsMatch(t, []string{deps, third, lookup}, paths)
}

func TestRuleFindingsPrecedeSuggestionsAcrossFiles(t *testing.T) {
	root := t.TempDir()
	search := "fn f(&self) {\n    let p = provinces.iter().find(|p| p.id == id);\n}\n"
	a := writeFile(t, root, "a.rs", search)
	b := writeFile(t, root, "b.rs", search)

	findings, err := defaultScanner(t).TraverseAndSearch(root)

	assert.Nil(t, err)
	require.Len(t, findings, 4)
	assert.Equal(t, []string{a, b, a, b}, []string{findings[0].Path, findings[1].Path, findings[2].Path, findings[3].Path})
	assert.Equal(t, "linear-search-by-field", findings[0].Rule)
	assert.Equal(t, "linear-search-by-field", findings[1].Rule)
	assert.Equal(t, "hashmap-conversion", findings[2].Rule)
	assert.Equal(t, "hashmap-conversion", findings[3].Rule)
}

func TestFilesAreVisitedInLexicalOrderWithFullContent(t *testing.T) {
	root := t.TempDir()
	b := writeFile(t, root, "b.rs", "second\nfile")
	a := writeFile(t, root, "a/z.rs", "first")
	writeFile(t, root, "notes.txt", "skipped")
	recorder := &recordingProcessor{}
	progress := &countingProgress{}
	scanner, err := NewFsFileScanner([]core.FileProcessor{recorder}, nil)
	require.NoError(t, err)
	scanner.Progress = progress

	findings, err := scanner.TraverseAndSearch(root)

	assert.Nil(t, err)
	assert.Equal(t, []string{a, b}, recorder.seen)
	require.Len(t, findings, 2)
	assert.Equal(t, "second\nfile", findings[1].Message)
	assert.Equal(t, 2, progress.total)
	assert.Equal(t, 2, progress.increments)
	assert.True(t, progress.finished)
}

func TestInvalidExcludePattern(t *testing.T) {
	_, err := NewFsFileScanner(nil, []string{"[unclosed"})

	assert.Error(t, err)
}

package reporters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memoryStorage struct {
	data   []byte
	writes int
	err    error
}

func (m *memoryStorage) Store(data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.data = data
	return nil
}

func (m *memoryStorage) Path() string {
	return "OPTIMIZATION_REPORT.md"
}

type fakeVCS struct {
	branch    string
	branchErr error
	createErr error
	switchErr error
	addErr    error
	calls     []string
}

func (f *fakeVCS) CurrentBranch() (string, error) {
	f.calls = append(f.calls, "branch")
	return f.branch, f.branchErr
}

func (f *fakeVCS) CreateBranch(name string) error {
	f.calls = append(f.calls, "create "+name)
	return f.createErr
}

func (f *fakeVCS) SwitchBranch(name string) error {
	f.calls = append(f.calls, "switch "+name)
	return f.switchErr
}

func (f *fakeVCS) Add(path string) error {
	f.calls = append(f.calls, "add "+path)
	return f.addErr
}

func (f *fakeVCS) Commit(message string) error {
	f.calls = append(f.calls, "commit "+message)
	return nil
}

const branch = "auto/performance-optimizations"
const message = "perf: Auto-detected optimization opportunities"

func newPublisher(storage *memoryStorage, vcs *fakeVCS, out *bytes.Buffer) Publisher {
	return Publisher{
		Reporter:      MarkdownReporter{},
		Storage:       storage,
		VCS:           vcs,
		Branch:        branch,
		CommitMessage: message,
		Out:           out,
	}
}

func TestEmptyFindingsWriteNothing(t *testing.T) {
	storage := &memoryStorage{}
	vcs := &fakeVCS{}
	out := &bytes.Buffer{}

	err := newPublisher(storage, vcs, out).Publish(nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, storage.writes)
	assert.Empty(t, vcs.calls)
	assert.Contains(t, out.String(), "No optimizations needed!")
}

func TestPublishCreatesBranchAndCommits(t *testing.T) {
	storage := &memoryStorage{}
	vcs := &fakeVCS{branch: "main"}
	out := &bytes.Buffer{}

	err := newPublisher(storage, vcs, out).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.Equal(t, 2, storage.writes, "report is rewritten after the checkout")
	assert.Contains(t, string(storage.data), HighPriorityHeader)
	assert.Equal(t, []string{
		"branch",
		"create " + branch,
		"add OPTIMIZATION_REPORT.md",
		"commit " + message,
	}, vcs.calls)
	assert.Contains(t, out.String(), "Found 4 optimization opportunities!")
	assert.Contains(t, out.String(), "High priority: 2")
	assert.Contains(t, out.String(), "Medium priority: 2")
}

func TestPublishSwitchesWhenBranchExists(t *testing.T) {
	vcs := &fakeVCS{branch: "main", createErr: errors.New("a branch named auto/performance-optimizations already exists")}

	err := newPublisher(&memoryStorage{}, vcs, &bytes.Buffer{}).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"branch",
		"create " + branch,
		"switch " + branch,
		"add OPTIMIZATION_REPORT.md",
		"commit " + message,
	}, vcs.calls)
}

func TestPublishOnAutomationBranchSkipsCheckout(t *testing.T) {
	vcs := &fakeVCS{branch: branch}

	err := newPublisher(&memoryStorage{}, vcs, &bytes.Buffer{}).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.Equal(t, []string{"branch", "add OPTIMIZATION_REPORT.md", "commit " + message}, vcs.calls)
}

func TestBranchQueryFailureStillAttemptsCheckout(t *testing.T) {
	vcs := &fakeVCS{branchErr: errors.New("reference not found")}

	err := newPublisher(&memoryStorage{}, vcs, &bytes.Buffer{}).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.Contains(t, vcs.calls, "create "+branch)
	assert.Contains(t, vcs.calls, "commit "+message)
}

func TestFailedCheckoutLeavesReportUncommitted(t *testing.T) {
	vcs := &fakeVCS{branch: "main", createErr: errors.New("exists"), switchErr: errors.New("unstaged changes")}
	out := &bytes.Buffer{}

	err := newPublisher(&memoryStorage{}, vcs, out).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.NotContains(t, vcs.calls, "add OPTIMIZATION_REPORT.md")
	assert.Contains(t, out.String(), "Found 4 optimization opportunities!")
}

func TestFailedStageSkipsCommit(t *testing.T) {
	vcs := &fakeVCS{branch: branch, addErr: errors.New("index locked")}

	err := newPublisher(&memoryStorage{}, vcs, &bytes.Buffer{}).Publish(sampleFindings())

	assert.NoError(t, err)
	assert.NotContains(t, vcs.calls, "commit "+message)
}

func TestWriteFailureSkipsVersionControl(t *testing.T) {
	storage := &memoryStorage{err: errors.New("read-only file system")}
	vcs := &fakeVCS{branch: "main"}

	err := newPublisher(storage, vcs, &bytes.Buffer{}).Publish(sampleFindings())

	assert.Error(t, err)
	assert.Empty(t, vcs.calls)
}

func TestNilVersionControlOnlyWritesReport(t *testing.T) {
	storage := &memoryStorage{}
	publisher := newPublisher(storage, nil, &bytes.Buffer{})
	publisher.VCS = nil

	err := publisher.Publish(sampleFindings())

	assert.NoError(t, err)
	assert.Equal(t, 1, storage.writes)
}

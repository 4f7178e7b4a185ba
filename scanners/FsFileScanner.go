package scanners

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
	"github.com/reaandrew/perfdetector/core"
	"github.com/reaandrew/perfdetector/utils"
	log "github.com/sirupsen/logrus"
)

type FileScanner interface {
	TraverseAndSearch(targetDir string) ([]core.Finding, error)
}

// FsFileScanner walks a directory tree in lexical order and hands the full
// text of every supported file to each processor. Unreadable files are
// logged and skipped. Findings are grouped by processor: everything the first
// processor reports across all files comes before anything from the second.
type FsFileScanner struct {
	Processors []core.FileProcessor
	Exclude    []glob.Glob
	Progress   utils.ProgressReporter
	// SkipVendored drops files go-enry classifies as vendored. Its path list
	// also matches first-party names such as cache/ or deps/, so it is off
	// unless asked for.
	SkipVendored bool
}

func NewFsFileScanner(processors []core.FileProcessor, excludePatterns []string) (*FsFileScanner, error) {
	var exclude []glob.Glob
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		exclude = append(exclude, g)
	}
	return &FsFileScanner{
		Processors: processors,
		Exclude:    exclude,
		Progress:   utils.NoopProgressReporter{},
	}, nil
}

func (fileScanner *FsFileScanner) TraverseAndSearch(targetDir string) ([]core.Finding, error) {
	info, err := os.Stat(targetDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Scan root '%s' does not exist, skipping pattern scan", targetDir)
		return nil, nil
	}
	if err != nil {
		log.Warnf("Cannot access scan root '%s': %v", targetDir, err)
		return nil, nil
	}
	if !info.IsDir() {
		log.Warnf("Scan root '%s' is not a directory, skipping pattern scan", targetDir)
		return nil, nil
	}

	files, err := fileScanner.collectFiles(targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to walk '%s': %w", targetDir, err)
	}
	log.Debugf("Found %d candidate files under %s", len(files), targetDir)

	progress := fileScanner.progress()
	progress.SetTotal(len(files))
	defer progress.Finish()

	byProcessor := make([][]core.Finding, len(fileScanner.Processors))
	for _, path := range files {
		fileScanner.processFile(path, byProcessor)
		progress.Increment()
	}

	var findings []core.Finding
	for _, results := range byProcessor {
		findings = append(findings, results...)
	}
	return findings, nil
}

func (fileScanner *FsFileScanner) progress() utils.ProgressReporter {
	if fileScanner.Progress == nil {
		return utils.NoopProgressReporter{}
	}
	return fileScanner.Progress
}

// collectFiles returns the regular files at least one processor supports.
func (fileScanner *FsFileScanner) collectFiles(targetDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == targetDir {
				return walkErr
			}
			log.Warnf("Error walking path %s: %v", path, walkErr)
			return nil
		}
		if d.IsDir() {
			if path != targetDir && fileScanner.isExcluded(filepath.ToSlash(path)+"/") {
				log.Debugf("Skipping excluded directory %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		slashed := filepath.ToSlash(path)
		if fileScanner.isExcluded(slashed) {
			log.Debugf("Skipping excluded file %s", path)
			return nil
		}
		if fileScanner.SkipVendored {
			if rel, err := filepath.Rel(targetDir, path); err == nil && enry.IsVendor(filepath.ToSlash(rel)) {
				log.Debugf("Skipping vendored file %s", path)
				return nil
			}
		}
		if fileScanner.supported(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (fileScanner *FsFileScanner) isExcluded(path string) bool {
	for _, g := range fileScanner.Exclude {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func (fileScanner *FsFileScanner) supported(path string) bool {
	for _, processor := range fileScanner.Processors {
		if processor.Supports(path) {
			return true
		}
	}
	return false
}

// processFile appends the findings of processor i to byProcessor[i].
func (fileScanner *FsFileScanner) processFile(path string, byProcessor [][]core.Finding) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("Failed to read file %s: %v", path, err)
		return
	}
	if enry.IsBinary(content) || !utf8.Valid(content) {
		log.Warnf("Skipping %s: content is not UTF-8 text", path)
		return
	}

	text := string(content)
	for i, processor := range fileScanner.Processors {
		if !processor.Supports(path) {
			continue
		}
		results, err := processor.Process(path, text)
		if err != nil {
			log.Errorf("Processing error in file %s: %v", path, err)
		}
		byProcessor[i] = append(byProcessor[i], results...)
	}
}

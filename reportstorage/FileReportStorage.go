package reportstorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultReportFile = "OPTIMIZATION_REPORT.md"

// FileReportStorage replaces the content of a single report file on every
// Store.
type FileReportStorage struct {
	OutputDir string
	Filename  string
}

// FilenameWithExtension swaps the extension of filename for ext.
func FilenameWithExtension(filename, ext string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "." + ext
}

func CreateFileReportStorage(outputDir, filename string) FileReportStorage {
	return FileReportStorage{
		OutputDir: outputDir,
		Filename:  filename,
	}
}

func (s FileReportStorage) Path() string {
	filename := s.Filename
	if filename == "" {
		filename = DefaultReportFile
	}
	if s.OutputDir == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.OutputDir, filename)
}

func (s FileReportStorage) Store(data []byte) error {
	outputFile, err := os.Create(s.Path())
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer outputFile.Close()

	if _, err := outputFile.Write(data); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return outputFile.Close()
}

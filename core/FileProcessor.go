package core

// FileProcessor is an interface that defines a generic processor.
type FileProcessor interface {
	Supports(filePath string) bool

	Process(path string, content string) ([]Finding, error)
}

package utils

import (
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// NewRunID tags the log lines of one invocation.
func NewRunID() string {
	return uuid.New().String()
}

func Contains(items []string, item string) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}

func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

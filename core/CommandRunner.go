package core

import (
	"context"
	"time"
)

type CommandResult struct {
	ExitCode int
	Duration time.Duration
	TimedOut bool
	Output   []byte
}

// CommandRunner runs an external program. A zero timeout means no limit.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (CommandResult, error)
}

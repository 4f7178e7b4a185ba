package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/reaandrew/perfdetector/core"
	log "github.com/sirupsen/logrus"
)

// ExecCommandRunner runs programs found on PATH, in Dir when set.
type ExecCommandRunner struct {
	Dir string
}

func (r ExecCommandRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (core.CommandResult, error) {
	var result core.CommandResult

	binary, err := exec.LookPath(name)
	if err != nil {
		return result, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output
	// Do not wait on pipes held open by grandchildren after a kill.
	cmd.WaitDelay = time.Second

	log.Debugf("Running %s %v", name, args)
	start := time.Now()
	runErr := cmd.Run()
	result.Duration = time.Since(start)
	result.Output = output.Bytes()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if runErr != nil {
		return result, fmt.Errorf("failed to run %s: %w", name, runErr)
	}
	return result, nil
}

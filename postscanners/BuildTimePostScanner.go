package postscanners

import (
	"context"
	"fmt"
	"time"

	"github.com/reaandrew/perfdetector/core"
	log "github.com/sirupsen/logrus"
)

const buildManifest = "Cargo.toml"

// BuildTimePostScanner times one full build. A build slower than Threshold
// yields a medium finding; one cut off at Timeout yields a high finding
// instead. Failing to start the build is logged and yields nothing.
type BuildTimePostScanner struct {
	Runner    core.CommandRunner
	Command   string
	Args      []string
	Threshold time.Duration
	Timeout   time.Duration
}

func (b BuildTimePostScanner) Name() string {
	return "build-time"
}

func (b BuildTimePostScanner) Scan(ctx context.Context) ([]core.Finding, error) {
	log.Infof("Timing build: %s %v (timeout %s)", b.Command, b.Args, b.Timeout)
	result, err := b.Runner.Run(ctx, b.Command, b.Args, b.Timeout)
	if err != nil {
		log.Warnf("Build check skipped: %v", err)
		return nil, nil
	}

	if result.TimedOut {
		log.Warnf("Build did not finish within %s", b.Timeout)
		return []core.Finding{{
			Path:     buildManifest,
			Severity: core.SeverityHigh,
			Message:  fmt.Sprintf("Build timed out after %.0fs", b.Timeout.Seconds()),
			Rule:     b.Name(),
		}}, nil
	}

	log.Debugf("Build finished in %s with exit code %d", result.Duration, result.ExitCode)
	if result.Duration > b.Threshold {
		return []core.Finding{{
			Path:     buildManifest,
			Severity: core.SeverityMedium,
			Message:  fmt.Sprintf("Build time is %.1fs - consider enabling more optimizations", result.Duration.Seconds()),
			Rule:     b.Name(),
		}}, nil
	}
	return nil, nil
}

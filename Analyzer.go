package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reaandrew/perfdetector/core"
	"github.com/reaandrew/perfdetector/scanners"
	log "github.com/sirupsen/logrus"
)

// Analyzer runs one pass: file scan, post scanners unless quick, publish.
type Analyzer struct {
	Scanner      scanners.FileScanner
	ScanRoot     string
	PostScanners []core.PostScanner
	Publisher    core.Publisher
	Out          io.Writer
}

// Run returns the accumulated findings and the process exit code, which is
// 1 when any finding is high severity.
func (a Analyzer) Run(ctx context.Context, quick bool) ([]core.Finding, int) {
	var findings []core.Finding

	if quick {
		fmt.Fprintln(a.Out, "Running quick checks...")
	} else {
		fmt.Fprintln(a.Out, "Running full analysis...")
	}

	matches, err := a.Scanner.TraverseAndSearch(a.ScanRoot)
	if err != nil {
		log.Errorf("Error scanning '%s': %v", a.ScanRoot, err)
	}
	log.Infof("Pattern scan of %s produced %d findings", a.ScanRoot, len(matches))
	findings = append(findings, matches...)

	if !quick {
		for _, postScanner := range a.PostScanners {
			results, err := postScanner.Scan(ctx)
			if err != nil {
				log.Errorf("Check %s failed: %v", postScanner.Name(), err)
				continue
			}
			findings = append(findings, results...)
		}
	}

	if err := a.Publisher.Publish(findings); err != nil {
		log.Errorf("Report not published: %v", err)
	}

	if core.HasHighSeverity(findings) {
		return findings, 1
	}
	return findings, 0
}

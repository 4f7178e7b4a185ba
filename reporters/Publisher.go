package reporters

import (
	"fmt"
	"io"

	"github.com/reaandrew/perfdetector/core"
	"github.com/reaandrew/perfdetector/utils"
	log "github.com/sirupsen/logrus"
)

// Publisher writes the report and commits it to the automation branch.
// Version control steps are best effort; VCS may be nil to skip them.
type Publisher struct {
	Reporter      core.Reporter
	Storage       core.ReportStorage
	VCS           core.VersionControl
	Branch        string
	CommitMessage string
	Out           io.Writer
}

// Publish returns an error only when the report could not be rendered or
// stored, in which case version control is left untouched.
func (p Publisher) Publish(findings []core.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintln(p.Out, utils.StyleSuccess.Render("✅ No optimizations needed!"))
		return nil
	}

	report, err := p.Reporter.Render(findings)
	if err != nil {
		log.Errorf("Failed to render report: %v", err)
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := p.Storage.Store(report); err != nil {
		log.Errorf("Failed to write report %s: %v", p.Storage.Path(), err)
		return err
	}
	log.Infof("Report written to %s", p.Storage.Path())

	p.commitReport(report)
	p.printSummary(findings)
	return nil
}

func (p Publisher) commitReport(report []byte) {
	if p.VCS == nil {
		log.Info("Version control disabled, report not committed")
		return
	}

	current, err := p.VCS.CurrentBranch()
	if err != nil {
		log.Warnf("Could not determine current branch: %v", err)
	}

	if current != p.Branch {
		if err := p.VCS.CreateBranch(p.Branch); err != nil {
			log.Debugf("Branch %s not created (%v), switching to it", p.Branch, err)
			if err := p.VCS.SwitchBranch(p.Branch); err != nil {
				log.Warnf("Could not check out %s, report left uncommitted: %v", p.Branch, err)
				return
			}
		}
		// Checking out an existing branch resets tracked files to its tip.
		if err := p.Storage.Store(report); err != nil {
			log.Warnf("Could not rewrite %s on %s: %v", p.Storage.Path(), p.Branch, err)
			return
		}
	}

	if err := p.VCS.Add(p.Storage.Path()); err != nil {
		log.Warnf("Could not stage %s: %v", p.Storage.Path(), err)
		return
	}
	if err := p.VCS.Commit(p.CommitMessage); err != nil {
		log.Warnf("Could not commit report: %v", err)
		return
	}
	log.Infof("Committed %s to %s", p.Storage.Path(), p.Branch)
}

func (p Publisher) printSummary(findings []core.Finding) {
	high := len(core.FilterBySeverity(findings, core.SeverityHigh))
	medium := len(core.FilterBySeverity(findings, core.SeverityMedium))

	fmt.Fprintln(p.Out, utils.StyleHeader.Render(fmt.Sprintf("📊 Found %d optimization opportunities!", len(findings))))
	fmt.Fprintln(p.Out, "   "+utils.StyleHigh.Render(fmt.Sprintf("High priority: %d", high)))
	fmt.Fprintln(p.Out, "   "+utils.StyleMedium.Render(fmt.Sprintf("Medium priority: %d", medium)))
}

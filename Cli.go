package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reaandrew/perfdetector/config"
	"github.com/reaandrew/perfdetector/core"
	"github.com/reaandrew/perfdetector/postscanners"
	"github.com/reaandrew/perfdetector/processors"
	"github.com/reaandrew/perfdetector/reporters"
	"github.com/reaandrew/perfdetector/reportstorage"
	"github.com/reaandrew/perfdetector/scanners"
	"github.com/reaandrew/perfdetector/tools"
	"github.com/reaandrew/perfdetector/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cli represents the command-line interface
type Cli struct {
	quick        bool
	configFile   string
	reportFormat string
	noCommit     bool
	progress     bool
	verbose      bool
	args         []string
	out          io.Writer
	exitCode     int
}

// Execute parses args and runs the analysis, returning the process exit
// code. Unknown flags and positional arguments are ignored; --quick counts
// wherever it appears, including after "--".
func (cli *Cli) Execute(args []string) int {
	cli.args = args
	rootCmd := cli.createRootCommand()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("Error executing command: %v", err)
	}
	return cli.exitCode
}

func (cli *Cli) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "perfdetector [--quick]",
		Short:   "perfdetector flags likely O(n²) loops and linear searches and commits a report.",
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.run(cmd.Context())
		},
	}
	rootCmd.SetOut(cli.out)

	rootCmd.Flags().BoolVar(&cli.quick, "quick", false, "Skip the build timing check")
	rootCmd.Flags().StringVar(&cli.configFile, "config", config.DefaultConfigFile, "Optional TOML configuration file")
	rootCmd.Flags().StringVar(&cli.reportFormat, "format", "markdown", "Report format (supported: markdown, json)")
	rootCmd.Flags().BoolVar(&cli.noCommit, "no-commit", false, "Write the report without touching version control")
	rootCmd.Flags().BoolVar(&cli.progress, "progress", false, "Show scan progress (default when stderr is a terminal)")
	rootCmd.Flags().BoolVar(&cli.verbose, "verbose", false, "Enable debug logging")
	return rootCmd
}

func (cli *Cli) run(ctx context.Context) error {
	if cli.verbose {
		log.SetLevel(log.DebugLevel)
	}
	runLog := log.WithField("run", utils.NewRunID())
	runLog.Info("Starting perfdetector")

	cfg, err := config.Load(cli.configFile)
	if err != nil {
		log.Warnf("Using default configuration: %v", err)
	}

	analyzer, err := cli.createAnalyzer(cfg)
	if err != nil {
		return err
	}

	quick := cli.quick || utils.Contains(cli.args, "--quick")
	findings, exitCode := analyzer.Run(ctx, quick)
	cli.exitCode = exitCode
	runLog.WithField("findings", len(findings)).Infof("Finished with exit code %d", exitCode)
	return nil
}

func (cli *Cli) createAnalyzer(cfg config.Config) (*Analyzer, error) {
	fileProcessors, err := processors.InitializeProcessors(cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	scanner, err := scanners.NewFsFileScanner(fileProcessors, cfg.Exclude)
	if err != nil {
		log.Warnf("Ignoring exclude patterns: %v", err)
		scanner, _ = scanners.NewFsFileScanner(fileProcessors, nil)
	}
	scanner.SkipVendored = cfg.SkipVendored
	if cli.progress || utils.IsTerminal(os.Stderr) {
		scanner.Progress = utils.NewBarProgressReporter(os.Stderr, "scanning")
	}

	reporter, err := reporters.CreateReporter(cli.reportFormat)
	if err != nil {
		log.Warnf("%v, falling back to markdown", err)
		reporter = reporters.MarkdownReporter{}
	}

	reportFile := cfg.ReportFile
	if reportFile == config.DefaultReportFile {
		reportFile = reportstorage.FilenameWithExtension(reportFile, reporter.Extension())
	}

	publisher := reporters.Publisher{
		Reporter:      reporter,
		Storage:       reportstorage.CreateFileReportStorage("", reportFile),
		Branch:        cfg.Branch,
		CommitMessage: cfg.CommitMessage,
		Out:           cli.out,
	}
	if vcs := cli.openVersionControl(); vcs != nil {
		publisher.VCS = vcs
	}

	buildScanner := postscanners.BuildTimePostScanner{
		Runner:    tools.ExecCommandRunner{},
		Command:   cfg.Build.Command,
		Args:      cfg.Build.Args,
		Threshold: cfg.Build.Threshold(),
		Timeout:   cfg.Build.Timeout(),
	}

	return &Analyzer{
		Scanner:      scanner,
		ScanRoot:     cfg.ScanRoot,
		PostScanners: []core.PostScanner{buildScanner},
		Publisher:    publisher,
		Out:          cli.out,
	}, nil
}

func (cli *Cli) openVersionControl() core.VersionControl {
	if cli.noCommit {
		return nil
	}
	client, err := utils.OpenGitRepository(".")
	if err != nil {
		log.Warnf("Report will not be committed: %v", err)
		return nil
	}
	return client
}

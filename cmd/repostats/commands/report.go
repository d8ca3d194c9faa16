// Package commands implements the CLI command handlers for repostats.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/repostats/internal/report"
	"github.com/Sumatoshi-tech/repostats/pkg/config"
	"github.com/Sumatoshi-tech/repostats/pkg/observability"
)

// positionalArgs is the required argument count: <owner/repo> <snapshot-dir>.
const positionalArgs = 2

// runExecutor runs a validated report request. Indirection for tests.
type runExecutor func(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
	req report.Request,
) (*report.Summary, error)

// ReportCommand holds flag state and dependencies for the root command.
type ReportCommand struct {
	configPath string

	resourcesDir string
	outputDir    string

	viewsClonesInPath  string
	viewsClonesOutPath string

	stargazerInPath  string
	stargazerOutPath string

	forkInPath  string
	forkOutPath string

	deleteFragments  bool
	archiveFragments bool

	verbose bool
	quiet   bool

	exec runExecutor
}

// NewRootCommand creates the root repostats command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(report.Run)
}

func newRootCommand(exec runExecutor) *cobra.Command {
	rc := &ReportCommand{exec: exec}

	cmd := &cobra.Command{
		Use:   "repostats <owner/repo> <snapshot-directory>",
		Short: "Aggregate a GitHub repository's popularity signals into CSV artifacts and an HTML report",
		Long: `repostats reads views/clones time-series fragments and top-referrer/top-path
snapshots from a snapshot directory, merges them with optional CSV inputs for
views/clones aggregates and star/fork time series, and writes resampled CSV
outputs plus an HTML chart report.`,
		Args:          cobra.ExactArgs(positionalArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cmd.PersistentFlags().BoolVarP(&rc.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&rc.quiet, "quiet", "q", false, "suppress output")

	flags := cmd.Flags()
	flags.StringVar(&rc.configPath, "config", "", "path to YAML config file")
	flags.StringVar(&rc.resourcesDir, "resources-directory", "resources", "directory copied into the output directory")
	flags.StringVar(&rc.outputDir, "output-directory", defaultOutputDir(), "report output directory (recreated per run)")
	flags.StringVar(&rc.viewsClonesInPath, "views-clones-aggregate-inpath", "", "views/clones aggregate CSV input")
	flags.StringVar(&rc.viewsClonesOutPath, "views-clones-aggregate-outpath", "", "views/clones aggregate CSV output")
	flags.StringVar(&rc.stargazerInPath, "stargazer-ts-inpath", "", "stargazer time series CSV input")
	flags.StringVar(&rc.stargazerOutPath, "stargazer-ts-resampled-outpath", "", "resampled stargazer time series CSV output")
	flags.StringVar(&rc.forkInPath, "fork-ts-inpath", "", "fork time series CSV input")
	flags.StringVar(&rc.forkOutPath, "fork-ts-resampled-outpath", "", "resampled fork time series CSV output")
	flags.BoolVar(&rc.deleteFragments, "delete-ts-fragments", false, "delete fragment files after folding them into the aggregate outpath")
	flags.BoolVar(&rc.archiveFragments, "archive-fragments", false, "pack fragment files into an lz4 tar archive before deletion")

	return cmd
}

func (rc *ReportCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.Logging, observability.LoggerOptions{
		Verbose: rc.verbose,
		Quiet:   rc.quiet,
	})

	req := report.Request{
		RepoSpec:           args[0],
		SnapshotDir:        args[1],
		ResourcesDir:       rc.resourcesDir,
		OutputDir:          rc.outputDir,
		ViewsClonesInPath:  rc.viewsClonesInPath,
		ViewsClonesOutPath: rc.viewsClonesOutPath,
		StargazerInPath:    rc.stargazerInPath,
		StargazerOutPath:   rc.stargazerOutPath,
		ForkInPath:         rc.forkInPath,
		ForkOutPath:        rc.forkOutPath,
		DeleteFragments:    rc.deleteFragments,
		ArchiveFragments:   rc.archiveFragments,
	}

	summary, err := rc.exec(cmd.Context(), logger, cfg, req)
	if err != nil {
		return err
	}

	if !rc.quiet {
		out := cmd.OutOrStdout()

		color.New(color.FgGreen).Fprintf(out, "report for %s written to %s\n", summary.RepoSpec, summary.ReportPath)
		summary.RenderTable(out)
	}

	return nil
}

func defaultOutputDir() string {
	return time.Now().UTC().Format("2006-01-02") + "_report"
}

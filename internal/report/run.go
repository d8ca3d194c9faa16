package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Sumatoshi-tech/repostats/internal/snapshot"
	"github.com/Sumatoshi-tech/repostats/pkg/config"
	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

// Cumulative series column names.
const (
	StarsColumn = "stars_cumulative"
	ForksColumn = "forks_cumulative"
)

// ReportFileName is the HTML report file within the output directory.
const ReportFileName = "report.html"

// ErrOutputNotDirectory indicates the output path exists but is a file.
var ErrOutputNotDirectory = errors.New("output directory path points to a file")

// Run executes a validated request end to end: aggregate views/clones data,
// resample star and fork series, write CSV artifacts, and render the HTML
// report into the output directory.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config, req Request) (*Summary, error) {
	av, err := req.Validate()
	if err != nil {
		return nil, err
	}

	traffic, err := loadTraffic(logger, av.FragmentPaths, req.ViewsClonesInPath)
	if err != nil {
		return nil, err
	}

	// Fragment files can exist yet hold zero samples; the rejection rule
	// is about data, not paths.
	if len(traffic) == 0 {
		return nil, ErrNoViewsClonesData
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run canceled: %w", err)
	}

	if req.ViewsClonesOutPath != "" {
		err = timeseries.WriteTrafficFile(req.ViewsClonesOutPath, traffic)
		if err != nil {
			return nil, fmt.Errorf("write views/clones aggregate: %w", err)
		}

		logger.Info("wrote views/clones aggregate",
			"path", req.ViewsClonesOutPath, "samples", len(traffic))
	}

	bin := time.Duration(cfg.Resample.BinHours) * time.Hour

	stars, err := resampleSignal(logger, "stargazer", req.StargazerInPath, req.StargazerOutPath, StarsColumn, bin)
	if err != nil {
		return nil, err
	}

	forks, err := resampleSignal(logger, "fork", req.ForkInPath, req.ForkOutPath, ForksColumn, bin)
	if err != nil {
		return nil, err
	}

	referrers, err := snapshot.LoadTopSnapshots(req.SnapshotDir, snapshot.ReferrersSuffix, "referrer", "referrers")
	if err != nil {
		return nil, fmt.Errorf("load referrer snapshots: %w", err)
	}

	paths, err := snapshot.LoadTopSnapshots(req.SnapshotDir, snapshot.PathsSuffix, "path")
	if err != nil {
		return nil, fmt.Errorf("load path snapshots: %w", err)
	}

	topReferrers := snapshot.TopUniqueSeries(referrers, cfg.Report.TopN)
	topPaths := snapshot.TopUniqueSeries(paths, cfg.Report.TopN)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run canceled: %w", err)
	}

	reportPath, err := writeOutputDir(logger, cfg, req, pageInputs{
		traffic:      traffic,
		stars:        stars,
		forks:        forks,
		topReferrers: topReferrers,
		topPaths:     topPaths,
	})
	if err != nil {
		return nil, err
	}

	err = finalizeFragments(logger, req, av.FragmentPaths)
	if err != nil {
		return nil, err
	}

	return newSummary(req.RepoSpec, reportPath, traffic, stars, forks, topReferrers, topPaths), nil
}

// loadTraffic merges fragment files and the optional aggregate input into a
// single deduplicated traffic series.
func loadTraffic(logger *slog.Logger, fragmentPaths []string, aggregateInPath string) (timeseries.TrafficSeries, error) {
	fragments, err := snapshot.LoadFragments(fragmentPaths)
	if err != nil {
		return nil, err
	}

	logger.Info("discovered views/clones fragments", "count", len(fragments))

	if aggregateInPath != "" {
		aggregate, err := timeseries.ReadTrafficFile(aggregateInPath)
		if err != nil {
			return nil, fmt.Errorf("read views/clones aggregate: %w", err)
		}

		fragments = append(fragments, aggregate)
	}

	return timeseries.MergeMax(fragments...), nil
}

// resampleSignal reads, resamples, and writes one cumulative signal. A
// missing input path skips the signal silently; a missing output path skips
// only the write.
func resampleSignal(logger *slog.Logger, name, inPath, outPath, column string, bin time.Duration) (timeseries.Series, error) {
	if inPath == "" {
		if outPath != "" {
			logger.Debug("no input for signal, skipping resampled output", "signal", name)
		}

		return nil, nil
	}

	series, err := timeseries.ReadCumulativeFile(inPath, column)
	if err != nil {
		return nil, fmt.Errorf("read %s time series: %w", name, err)
	}

	resampled := timeseries.Resample(series, bin)

	if outPath != "" {
		err = timeseries.WriteCumulativeFile(outPath, resampled, column)
		if err != nil {
			return nil, fmt.Errorf("write resampled %s time series: %w", name, err)
		}

		logger.Info("wrote resampled time series",
			"signal", name, "path", outPath, "samples", len(resampled))
	}

	return resampled, nil
}

// writeOutputDir recreates the output directory, copies resources, renders
// the HTML report, and writes the run metadata. Returns the report path.
func writeOutputDir(logger *slog.Logger, cfg *config.Config, req Request, inputs pageInputs) (string, error) {
	info, err := os.Stat(req.OutputDir)
	if err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrOutputNotDirectory, req.OutputDir)
	}

	if err == nil {
		logger.Info("remove existing output directory", "path", req.OutputDir)

		err = os.RemoveAll(req.OutputDir)
		if err != nil {
			return "", fmt.Errorf("remove output directory: %w", err)
		}
	}

	err = os.MkdirAll(req.OutputDir, 0o755)
	if err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	err = copyResources(logger, req.ResourcesDir, req.OutputDir)
	if err != nil {
		return "", err
	}

	reportPath := filepath.Join(req.OutputDir, ReportFileName)

	f, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	page := buildPage(req.RepoSpec, cfg.Report, inputs)

	err = page.Render(f)
	if err != nil {
		f.Close()

		return "", fmt.Errorf("render report: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}

	logger.Info("wrote report", "path", reportPath)

	err = writeMetadata(filepath.Join(req.OutputDir, MetadataFileName), newMetadata(req.RepoSpec, inputs))
	if err != nil {
		return "", err
	}

	return reportPath, nil
}

// copyResources copies the resources directory into the output directory.
// A missing resources directory is tolerated.
func copyResources(logger *slog.Logger, resourcesDir, outputDir string) error {
	if resourcesDir == "" {
		return nil
	}

	info, err := os.Stat(resourcesDir)
	if err != nil || !info.IsDir() {
		logger.Warn("resources directory not found, skipping copy", "path", resourcesDir)

		return nil
	}

	dst := filepath.Join(outputDir, filepath.Base(resourcesDir))

	err = os.CopyFS(dst, os.DirFS(resourcesDir))
	if err != nil {
		return fmt.Errorf("copy resources directory: %w", err)
	}

	return nil
}

// finalizeFragments archives and deletes the folded fragment files when
// requested. Deletion requires the aggregate to have been written out, so
// the data remains recoverable.
func finalizeFragments(logger *slog.Logger, req Request, fragmentPaths []string) error {
	if len(fragmentPaths) == 0 {
		return nil
	}

	if req.ArchiveFragments {
		archivePath := filepath.Join(req.OutputDir, ArchiveFileName)

		err := archiveFragments(archivePath, fragmentPaths)
		if err != nil {
			return err
		}

		logger.Info("archived fragments", "path", archivePath, "count", len(fragmentPaths))
	}

	if !req.DeleteFragments {
		return nil
	}

	if req.ViewsClonesOutPath == "" {
		logger.Warn("refusing to delete fragments without an aggregate outpath")

		return nil
	}

	for _, path := range fragmentPaths {
		err := os.Remove(path)
		if err != nil {
			return fmt.Errorf("delete fragment: %w", err)
		}
	}

	logger.Info("deleted fragments", "count", len(fragmentPaths))

	return nil
}

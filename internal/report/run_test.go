package report_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repostats/internal/report"
	"github.com/Sumatoshi-tech/repostats/pkg/config"
	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

const (
	starsDoc = `time_iso8601,stars_cumulative
2023-05-01T10:00:00Z,10
2023-05-03T18:00:00Z,25
`
	forksDoc = `time_iso8601,forks_cumulative
2023-05-01T09:00:00Z,2
2023-05-02T09:00:00Z,4
`
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	return cfg
}

// fullRequest builds a request over a populated snapshot directory with all
// optional inputs and outputs wired into temp locations.
func fullRequest(t *testing.T) report.Request {
	t.Helper()

	snapDir := t.TempDir()
	writeFile(t, snapDir, "2023-05-02_070801_views_clones_series_fragment.csv", fragmentDoc)
	writeFile(t, snapDir, "2023-05-01_070801_top_referrers_snapshot.csv",
		"referrer,count,count_unique\ngithub.com,50,20\nnews.ycombinator.com,30,25\n")
	writeFile(t, snapDir, "2023-05-01_070801_top_paths_snapshot.csv",
		"path,count,count_unique\n/,40,18\n/blob/main/README.md,12,9\n")

	inDir := t.TempDir()
	outDir := t.TempDir()

	return report.Request{
		RepoSpec:           "someone/widget",
		SnapshotDir:        snapDir,
		OutputDir:          filepath.Join(outDir, "report"),
		StargazerInPath:    writeFile(t, inDir, "stars.csv", starsDoc),
		StargazerOutPath:   filepath.Join(outDir, "stars_resampled.csv"),
		ForkInPath:         writeFile(t, inDir, "forks.csv", forksDoc),
		ForkOutPath:        filepath.Join(outDir, "forks_resampled.csv"),
		ViewsClonesOutPath: filepath.Join(outDir, "views_clones_aggregate.csv"),
	}
}

func TestRunFullRequest(t *testing.T) {
	t.Parallel()

	req := fullRequest(t)

	summary, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TrafficSamples)
	assert.Equal(t, int64(25), summary.Stars)
	assert.Equal(t, int64(4), summary.Forks)
	assert.Equal(t, []string{"news.ycombinator.com", "github.com"}, summary.TopReferrers)

	// Resampled star output: May 1 through May 3, forward filled.
	stars, err := timeseries.ReadCumulativeFile(req.StargazerOutPath, report.StarsColumn)
	require.NoError(t, err)
	require.Len(t, stars, 3)
	assert.Equal(t, int64(10), stars[1].Value)
	assert.Equal(t, int64(25), stars[2].Value)

	_, err = timeseries.ReadCumulativeFile(req.ForkOutPath, report.ForksColumn)
	require.NoError(t, err)

	aggregate, err := timeseries.ReadTrafficFile(req.ViewsClonesOutPath)
	require.NoError(t, err)
	assert.Len(t, aggregate, 2)

	html, err := os.ReadFile(summary.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Statistics for someone/widget")
	assert.Contains(t, string(html), "Stargazers")
	assert.Contains(t, string(html), "Top referrers")

	meta, err := os.ReadFile(filepath.Join(req.OutputDir, report.MetadataFileName))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "someone/widget")
}

func TestRunRejectsWithoutViewsClonesData(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	req := report.Request{
		RepoSpec:        "someone/widget",
		SnapshotDir:     t.TempDir(),
		OutputDir:       filepath.Join(t.TempDir(), "report"),
		StargazerInPath: writeFile(t, inDir, "stars.csv", starsDoc),
		ForkInPath:      writeFile(t, inDir, "forks.csv", forksDoc),
	}

	_, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.ErrorIs(t, err, report.ErrNoViewsClonesData)
	assert.Contains(t, err.Error(), "unexpected: no data for views/clones")
}

func TestRunRejectsHeaderOnlyFragments(t *testing.T) {
	t.Parallel()

	snapDir := t.TempDir()
	writeFile(t, snapDir, "2023-05-02_070801_views_clones_series_fragment.csv",
		"time_iso8601,views_total,views_unique,clones_total,clones_unique\n")

	req := report.Request{
		RepoSpec:    "someone/widget",
		SnapshotDir: snapDir,
		OutputDir:   filepath.Join(t.TempDir(), "report"),
	}

	_, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.ErrorIs(t, err, report.ErrNoViewsClonesData)
}

func TestRunAggregateInpathOnly(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	req := report.Request{
		RepoSpec:          "someone/widget",
		SnapshotDir:       t.TempDir(),
		OutputDir:         filepath.Join(t.TempDir(), "report"),
		ViewsClonesInPath: writeFile(t, inDir, "aggregate.csv", fragmentDoc),
	}

	summary, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TrafficSamples)
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	req := fullRequest(t)

	first, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	second, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	assert.Equal(t, first.TrafficSamples, second.TrafficSamples)
	assert.Equal(t, first.Stars, second.Stars)
	assert.Equal(t, first.Forks, second.Forks)
}

func TestRunArchivesAndDeletesFragments(t *testing.T) {
	t.Parallel()

	req := fullRequest(t)
	req.DeleteFragments = true
	req.ArchiveFragments = true

	_, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(req.OutputDir, report.ArchiveFileName))
	require.NoError(t, err)

	leftover, err := filepath.Glob(filepath.Join(req.SnapshotDir, "*views_clones*.csv"))
	require.NoError(t, err)
	assert.Empty(t, leftover)
}

func TestRunRefusesDeletionWithoutAggregateOutpath(t *testing.T) {
	t.Parallel()

	req := fullRequest(t)
	req.ViewsClonesOutPath = ""
	req.DeleteFragments = true

	_, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	leftover, err := filepath.Glob(filepath.Join(req.SnapshotDir, "*views_clones*.csv"))
	require.NoError(t, err)
	assert.Len(t, leftover, 1)
}

func TestRunCopiesResourcesDirectory(t *testing.T) {
	t.Parallel()

	req := fullRequest(t)

	resDir := t.TempDir()
	writeFile(t, resDir, "style.css", "body {}\n")
	req.ResourcesDir = resDir

	_, err := report.Run(context.Background(), testLogger(), testConfig(t), req)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(req.OutputDir, filepath.Base(resDir), "style.css"))
	require.NoError(t, err)
}

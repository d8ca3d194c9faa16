package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repostats/internal/snapshot"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const fragmentDoc = `time_iso8601,views_total,views_unique,clones_total,clones_unique
2023-05-01T00:00:00Z,10,4,2,1
`

func TestDiscoverFragments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "2023-05-02_070801_views_clones_series_fragment.csv", fragmentDoc)
	writeFile(t, dir, "2023-05-01_070801_views_clones_series_fragment.csv", fragmentDoc)
	writeFile(t, dir, "2023-05-01_070801_top_referrers_snapshot.csv", "referrer,count,count_unique\n")

	paths, err := snapshot.DiscoverFragments(dir)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	// Sorted by path, which sorts by the timestamp prefix.
	assert.Contains(t, paths[0], "2023-05-01")
}

func TestDiscoverFragmentsEmptyDir(t *testing.T) {
	t.Parallel()

	paths, err := snapshot.DiscoverFragments(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDiscoverFragmentsMissingDir(t *testing.T) {
	t.Parallel()

	paths, err := snapshot.DiscoverFragments(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLoadFragments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "views_clones_series_fragment.csv", fragmentDoc)

	fragments, err := snapshot.LoadFragments([]string{path})
	require.NoError(t, err)

	require.Len(t, fragments, 1)
	require.Len(t, fragments[0], 1)
	assert.Equal(t, int64(10), fragments[0][0].ViewsTotal)
}

func TestLoadFragmentsBadDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "views_clones_bad.csv", "wrong,header\n1,2\n")

	_, err := snapshot.LoadFragments([]string{path})
	require.Error(t, err)
}

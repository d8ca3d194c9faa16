// Package snapshot reads the contents of a repository snapshot directory:
// views/clones time-series fragments and top-referrer/top-path snapshots.
package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

// fragmentPattern matches views/clones time-series fragment files.
const fragmentPattern = "*views_clones*.csv"

// DiscoverFragments lists the views/clones fragment files in dir, sorted by
// path. A missing or empty directory yields an empty slice.
func DiscoverFragments(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, fragmentPattern))
	if err != nil {
		return nil, fmt.Errorf("glob fragments: %w", err)
	}

	sort.Strings(paths)

	return paths, nil
}

// LoadFragments parses each fragment file into a traffic series.
func LoadFragments(paths []string) ([]timeseries.TrafficSeries, error) {
	fragments := make([]timeseries.TrafficSeries, 0, len(paths))

	for _, path := range paths {
		fragment, err := timeseries.ReadTrafficFile(path)
		if err != nil {
			return nil, fmt.Errorf("load fragment: %w", err)
		}

		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

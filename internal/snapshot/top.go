package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

// Snapshot filename suffixes.
const (
	ReferrersSuffix = "_top_referrers_snapshot.csv"
	PathsSuffix     = "_top_paths_snapshot.csv"
)

// timePrefixLayout encodes the snapshot time (UTC) in the filename prefix.
const timePrefixLayout = "2006-01-02_150405"

// Snapshot CSV column names.
const (
	ColCount       = "count"
	ColCountUnique = "count_unique"
)

// ErrBadSnapshotName indicates a snapshot filename without a parseable
// timestamp prefix.
var ErrBadSnapshotName = errors.New("snapshot filename has no timestamp prefix")

// TopRow is one entry of a top-referrers or top-paths snapshot.
type TopRow struct {
	Name        string
	Count       int64
	CountUnique int64
}

// TopSnapshot is a point-in-time top-N capture, ordered as stored.
type TopSnapshot struct {
	Time time.Time
	Rows []TopRow
}

// LoadTopSnapshots reads all snapshot files in dir matching suffix. The name
// column is looked up under nameColumn, falling back to the given legacy
// aliases (older snapshots used a "referrers" header). Each file must carry
// exactly the name, count and count_unique columns; any other column set
// aborts the load. Snapshots are returned ordered ascending by capture time.
func LoadTopSnapshots(dir, suffix, nameColumn string, aliases ...string) ([]TopSnapshot, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, fmt.Errorf("glob snapshots: %w", err)
	}

	sort.Strings(paths)

	snapshots := make([]TopSnapshot, 0, len(paths))

	for _, path := range paths {
		snap, err := loadTopSnapshot(path, suffix, nameColumn, aliases)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Time.Before(snapshots[j].Time)
	})

	return snapshots, nil
}

func loadTopSnapshot(path, suffix, nameColumn string, aliases []string) (TopSnapshot, error) {
	prefix := strings.TrimSuffix(filepath.Base(path), suffix)

	snapTime, err := time.ParseInLocation(timePrefixLayout, prefix, time.UTC)
	if err != nil {
		return TopSnapshot{}, fmt.Errorf("%w: %s", ErrBadSnapshotName, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return TopSnapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return TopSnapshot{}, fmt.Errorf("%s: read csv: %w", path, err)
	}

	if len(records) == 0 {
		return TopSnapshot{}, fmt.Errorf("%s: %w", path, timeseries.ErrEmptyDocument)
	}

	header := normalizeHeader(records[0], nameColumn, aliases)

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	required := []string{nameColumn, ColCount, ColCountUnique}

	for _, col := range required {
		if _, ok := index[col]; !ok {
			return TopSnapshot{}, fmt.Errorf("%s: %w: %s", path, timeseries.ErrMissingColumn, col)
		}
	}

	if len(header) != len(required) {
		return TopSnapshot{}, fmt.Errorf("%s: %w: %v", path, timeseries.ErrColumnMismatch, header)
	}

	rows := make([]TopRow, 0, len(records)-1)

	for _, record := range records[1:] {
		count, err := strconv.ParseInt(record[index[ColCount]], 10, 64)
		if err != nil {
			return TopSnapshot{}, fmt.Errorf("%s: parse %s: %w", path, ColCount, err)
		}

		unique, err := strconv.ParseInt(record[index[ColCountUnique]], 10, 64)
		if err != nil {
			return TopSnapshot{}, fmt.Errorf("%s: parse %s: %w", path, ColCountUnique, err)
		}

		rows = append(rows, TopRow{
			Name:        record[index[nameColumn]],
			Count:       count,
			CountUnique: unique,
		})
	}

	return TopSnapshot{Time: snapTime, Rows: rows}, nil
}

// normalizeHeader rewrites legacy alias headers to the canonical name column.
func normalizeHeader(header []string, nameColumn string, aliases []string) []string {
	normalized := make([]string, len(header))

	for i, name := range header {
		for _, alias := range aliases {
			if name == alias {
				name = nameColumn
			}
		}

		normalized[i] = name
	}

	return normalized
}

// NamedSeries pairs an entity (referrer, path) with its unique-count series
// across snapshots.
type NamedSeries struct {
	Name   string
	Series timeseries.Series
}

// TopUniqueSeries builds the per-entity unique-count series across all
// snapshots and returns the topN entities ranked by their maximum
// count_unique, highest first. Ties rank alphabetically.
func TopUniqueSeries(snapshots []TopSnapshot, topN int) []NamedSeries {
	byName := make(map[string]timeseries.Series)

	for _, snap := range snapshots {
		for _, row := range snap.Rows {
			byName[row.Name] = append(byName[row.Name], timeseries.Sample{
				Time:  snap.Time,
				Value: row.CountUnique,
			})
		}
	}

	named := make([]NamedSeries, 0, len(byName))
	for name, series := range byName {
		series.Sort()
		named = append(named, NamedSeries{Name: name, Series: series})
	}

	maxUnique := func(s timeseries.Series) int64 {
		var m int64
		for _, sample := range s {
			m = max(m, sample.Value)
		}

		return m
	}

	sort.Slice(named, func(i, j int) bool {
		mi, mj := maxUnique(named[i].Series), maxUnique(named[j].Series)
		if mi != mj {
			return mi > mj
		}

		return named[i].Name < named[j].Name
	})

	if len(named) > topN {
		named = named[:topN]
	}

	return named
}

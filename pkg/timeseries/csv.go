package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// TimeColumn is the timestamp column shared by all CSV documents.
const TimeColumn = "time_iso8601"

// Traffic CSV column names.
const (
	ColViewsTotal   = "views_total"
	ColViewsUnique  = "views_unique"
	ColClonesTotal  = "clones_total"
	ColClonesUnique = "clones_unique"
)

// CSV parsing errors.
var (
	ErrEmptyDocument  = errors.New("csv document has no header row")
	ErrMissingColumn  = errors.New("csv document lacks required column")
	ErrColumnMismatch = errors.New("csv document has unexpected columns")
)

// trafficColumns is the canonical traffic CSV header.
var trafficColumns = []string{TimeColumn, ColViewsTotal, ColViewsUnique, ColClonesTotal, ColClonesUnique}

// Accepted timestamp layouts. The first is the canonical output form.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseTime parses a timestamp in any accepted layout, normalized to UTC.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// ReadTraffic reads a views/clones CSV document. The document must carry
// exactly the canonical traffic columns, in any order.
func ReadTraffic(r io.Reader) (TrafficSeries, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	header := records[0]

	index, err := columnIndex(header, trafficColumns...)
	if err != nil {
		return nil, err
	}

	if len(header) != len(trafficColumns) {
		return nil, fmt.Errorf("%w: %v", ErrColumnMismatch, header)
	}

	series := make(TrafficSeries, 0, len(records)-1)

	for _, record := range records[1:] {
		t, err := ParseTime(record[index[TimeColumn]])
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", TimeColumn, err)
		}

		sample := TrafficSample{Time: t}

		for col, dst := range map[string]*int64{
			ColViewsTotal:   &sample.ViewsTotal,
			ColViewsUnique:  &sample.ViewsUnique,
			ColClonesTotal:  &sample.ClonesTotal,
			ColClonesUnique: &sample.ClonesUnique,
		} {
			v, err := strconv.ParseInt(record[index[col]], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", col, err)
			}

			*dst = v
		}

		series = append(series, sample)
	}

	series.Sort()

	return series, nil
}

// ReadTrafficFile reads a views/clones CSV file from disk.
func ReadTrafficFile(path string) (TrafficSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open traffic csv: %w", err)
	}
	defer f.Close()

	series, err := ReadTraffic(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return series, nil
}

// WriteTraffic writes a views/clones CSV document with canonical columns.
func WriteTraffic(w io.Writer, series TrafficSeries) error {
	cw := csv.NewWriter(w)

	err := cw.Write(trafficColumns)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sample := range series {
		record := []string{
			sample.Time.UTC().Format(time.RFC3339),
			strconv.FormatInt(sample.ViewsTotal, 10),
			strconv.FormatInt(sample.ViewsUnique, 10),
			strconv.FormatInt(sample.ClonesTotal, 10),
			strconv.FormatInt(sample.ClonesUnique, 10),
		}

		err = cw.Write(record)
		if err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// WriteTrafficFile writes a views/clones CSV file to disk.
func WriteTrafficFile(path string, series TrafficSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create traffic csv: %w", err)
	}

	err = WriteTraffic(f, series)
	if err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close traffic csv: %w", err)
	}

	return nil
}

// ReadCumulative reads a two-column cumulative series CSV document, where
// valueColumn names the count column (e.g. stars_cumulative).
func ReadCumulative(r io.Reader, valueColumn string) (Series, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	index, err := columnIndex(records[0], TimeColumn, valueColumn)
	if err != nil {
		return nil, err
	}

	series := make(Series, 0, len(records)-1)

	for _, record := range records[1:] {
		t, err := ParseTime(record[index[TimeColumn]])
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", TimeColumn, err)
		}

		v, err := strconv.ParseInt(record[index[valueColumn]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", valueColumn, err)
		}

		series = append(series, Sample{Time: t, Value: v})
	}

	series.Sort()

	return series, nil
}

// ReadCumulativeFile reads a cumulative series CSV file from disk.
func ReadCumulativeFile(path, valueColumn string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series csv: %w", err)
	}
	defer f.Close()

	series, err := ReadCumulative(f, valueColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return series, nil
}

// WriteCumulative writes a two-column cumulative series CSV document.
func WriteCumulative(w io.Writer, series Series, valueColumn string) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{TimeColumn, valueColumn})
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sample := range series {
		err = cw.Write([]string{
			sample.Time.UTC().Format(time.RFC3339),
			strconv.FormatInt(sample.Value, 10),
		})
		if err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// WriteCumulativeFile writes a cumulative series CSV file to disk.
func WriteCumulativeFile(path string, series Series, valueColumn string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series csv: %w", err)
	}

	err = WriteCumulative(f, series, valueColumn)
	if err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close series csv: %w", err)
	}

	return nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string, columns ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s (header: %v)", ErrMissingColumn, col, header)
		}
	}

	return index, nil
}

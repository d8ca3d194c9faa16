// Package timeseries provides the sample types, aggregation, and resampling
// used for repository popularity signals.
package timeseries

import (
	"sort"
	"time"
)

// Sample is a single point of a cumulative time series (stars, forks).
type Sample struct {
	Time  time.Time
	Value int64
}

// Series is a cumulative time series, ordered ascending by time.
type Series []Sample

// Sort orders the series ascending by time, in place.
func (s Series) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Time.Before(s[j].Time)
	})
}

// TrafficSample is one row of views/clones traffic data for a point in time.
type TrafficSample struct {
	Time         time.Time
	ViewsTotal   int64
	ViewsUnique  int64
	ClonesTotal  int64
	ClonesUnique int64
}

// TrafficSeries is a views/clones time series, ordered ascending by time.
type TrafficSeries []TrafficSample

// Sort orders the series ascending by time, in place.
func (s TrafficSeries) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Time.Before(s[j].Time)
	})
}

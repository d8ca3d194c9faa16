package timeseries

import "time"

// Resample converts a cumulative series into a fixed-interval one with one
// sample per bin, from the bin of the first sample through the bin of the
// last. Each emitted sample carries the last cumulative value observed
// within its bin; bins without observations are forward-filled from the
// previous bin. Sample times are the UTC bin starts. An empty input yields
// an empty output.
func Resample(s Series, bin time.Duration) Series {
	if len(s) == 0 {
		return nil
	}

	sorted := make(Series, len(s))
	copy(sorted, s)
	sorted.Sort()

	first := sorted[0].Time.UTC().Truncate(bin)
	last := sorted[len(sorted)-1].Time.UTC().Truncate(bin)

	lastPerBin := make(map[time.Time]int64, len(sorted))
	for _, sample := range sorted {
		lastPerBin[sample.Time.UTC().Truncate(bin)] = sample.Value
	}

	var resampled Series

	value := sorted[0].Value
	for t := first; !t.After(last); t = t.Add(bin) {
		if v, ok := lastPerBin[t]; ok {
			value = v
		}

		resampled = append(resampled, Sample{Time: t, Value: value})
	}

	return resampled
}

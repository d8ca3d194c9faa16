package timeseries

import "time"

// MergeMax merges traffic series fragments into one aggregate series.
//
// Fragments obtained from the traffic API overlap, and the values reported
// for a timestamp near a fragment boundary can be lower than the values the
// same timestamp carries in the middle of another fragment. Reconcile by
// keeping the per-timestamp maximum of every column. The result is sorted
// ascending by time.
func MergeMax(fragments ...TrafficSeries) TrafficSeries {
	byTime := make(map[time.Time]TrafficSample)

	for _, fragment := range fragments {
		for _, sample := range fragment {
			key := sample.Time.UTC()

			current, seen := byTime[key]
			if !seen {
				sample.Time = key
				byTime[key] = sample

				continue
			}

			current.ViewsTotal = max(current.ViewsTotal, sample.ViewsTotal)
			current.ViewsUnique = max(current.ViewsUnique, sample.ViewsUnique)
			current.ClonesTotal = max(current.ClonesTotal, sample.ClonesTotal)
			current.ClonesUnique = max(current.ClonesUnique, sample.ClonesUnique)
			byTime[key] = current
		}
	}

	merged := make(TrafficSeries, 0, len(byTime))
	for _, sample := range byTime {
		merged = append(merged, sample)
	}

	merged.Sort()

	return merged
}

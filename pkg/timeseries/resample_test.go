package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)

	return parsed
}

func TestResampleEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, timeseries.Resample(nil, 24*time.Hour))
}

func TestResampleKeepsLastValuePerDay(t *testing.T) {
	t.Parallel()

	series := timeseries.Series{
		{Time: day(t, "2023-05-01T08:00:00Z"), Value: 10},
		{Time: day(t, "2023-05-01T19:30:00Z"), Value: 12},
		{Time: day(t, "2023-05-02T03:00:00Z"), Value: 13},
	}

	resampled := timeseries.Resample(series, 24*time.Hour)

	require.Len(t, resampled, 2)
	assert.Equal(t, day(t, "2023-05-01T00:00:00Z"), resampled[0].Time)
	assert.Equal(t, int64(12), resampled[0].Value)
	assert.Equal(t, day(t, "2023-05-02T00:00:00Z"), resampled[1].Time)
	assert.Equal(t, int64(13), resampled[1].Value)
}

func TestResampleForwardFillsGaps(t *testing.T) {
	t.Parallel()

	series := timeseries.Series{
		{Time: day(t, "2023-05-01T12:00:00Z"), Value: 5},
		{Time: day(t, "2023-05-04T12:00:00Z"), Value: 9},
	}

	resampled := timeseries.Resample(series, 24*time.Hour)

	require.Len(t, resampled, 4)
	assert.Equal(t, int64(5), resampled[0].Value)
	assert.Equal(t, int64(5), resampled[1].Value)
	assert.Equal(t, int64(5), resampled[2].Value)
	assert.Equal(t, int64(9), resampled[3].Value)
}

func TestResampleToleratesUnsortedInput(t *testing.T) {
	t.Parallel()

	series := timeseries.Series{
		{Time: day(t, "2023-05-02T00:00:00Z"), Value: 7},
		{Time: day(t, "2023-05-01T00:00:00Z"), Value: 3},
	}

	resampled := timeseries.Resample(series, 24*time.Hour)

	require.Len(t, resampled, 2)
	assert.Equal(t, int64(3), resampled[0].Value)
	assert.Equal(t, int64(7), resampled[1].Value)

	// Input order is preserved.
	assert.Equal(t, int64(7), series[0].Value)
}

func TestResampleCustomBin(t *testing.T) {
	t.Parallel()

	series := timeseries.Series{
		{Time: day(t, "2023-05-01T01:00:00Z"), Value: 1},
		{Time: day(t, "2023-05-01T13:00:00Z"), Value: 2},
	}

	resampled := timeseries.Resample(series, 12*time.Hour)

	require.Len(t, resampled, 2)
	assert.Equal(t, day(t, "2023-05-01T00:00:00Z"), resampled[0].Time)
	assert.Equal(t, day(t, "2023-05-01T12:00:00Z"), resampled[1].Time)
}

package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Sumatoshi-tech/repostats/internal/plotpage"
	"github.com/Sumatoshi-tech/repostats/internal/snapshot"
	"github.com/Sumatoshi-tech/repostats/pkg/config"
	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

// Axis label layouts.
const (
	dayLabelLayout      = "2006-01-02"
	snapshotLabelLayout = "2006-01-02 15:04"
)

// pageInputs carries the processed signals into report rendering.
type pageInputs struct {
	traffic      timeseries.TrafficSeries
	stars        timeseries.Series
	forks        timeseries.Series
	topReferrers []snapshot.NamedSeries
	topPaths     []snapshot.NamedSeries
}

// buildPage assembles the report page: views, clones, stars, forks, and
// top referrer/path sections, skipping signals without data.
func buildPage(repoSpec string, cfg config.ReportConfig, inputs pageInputs) *plotpage.Page {
	theme := plotpage.Theme(cfg.Theme)
	chartOpts := plotpage.NewChartOpts(theme)

	page := plotpage.NewPage(
		fmt.Sprintf("Statistics for %s", repoSpec),
		fmt.Sprintf("Generated with repostats at %s.", time.Now().UTC().Format("2006-01-02 15:04 UTC")),
	).WithTheme(theme)

	labels := make([]string, len(inputs.traffic))
	views := make([]plotpage.LineSeries, 2)
	clones := make([]plotpage.LineSeries, 2)

	views[0] = plotpage.LineSeries{Name: "total", Data: make([]plotpage.SeriesData, len(inputs.traffic))}
	views[1] = plotpage.LineSeries{Name: "unique", Data: make([]plotpage.SeriesData, len(inputs.traffic))}
	clones[0] = plotpage.LineSeries{Name: "total", Data: make([]plotpage.SeriesData, len(inputs.traffic))}
	clones[1] = plotpage.LineSeries{Name: "unique", Data: make([]plotpage.SeriesData, len(inputs.traffic))}

	for i, sample := range inputs.traffic {
		labels[i] = sample.Time.UTC().Format(dayLabelLayout)
		views[0].Data[i] = sample.ViewsTotal
		views[1].Data[i] = sample.ViewsUnique
		clones[0].Data[i] = sample.ClonesTotal
		clones[1].Data[i] = sample.ClonesUnique
	}

	page.Add(
		plotpage.Section{
			Title:    "Views",
			Subtitle: "Total and unique views per day.",
			Chart:    plotpage.BuildLineChart(chartOpts, labels, views, "views"),
		},
		plotpage.Section{
			Title:    "Clones",
			Subtitle: "Total and unique clones per day.",
			Chart:    plotpage.BuildLineChart(chartOpts, labels, clones, "clones"),
		},
	)

	if len(inputs.stars) > 0 {
		page.Add(cumulativeSection(chartOpts, "Stargazers", "Cumulative star count.", "stars", inputs.stars))
	}

	if len(inputs.forks) > 0 {
		page.Add(cumulativeSection(chartOpts, "Forks", "Cumulative fork count.", "forks", inputs.forks))
	}

	if len(inputs.topReferrers) > 0 {
		page.Add(namedSection(chartOpts, "Top referrers", "Unique views per referrer across snapshots.", "unique views", inputs.topReferrers))
	}

	if len(inputs.topPaths) > 0 {
		page.Add(namedSection(chartOpts, "Top paths", "Unique views per path across snapshots.", "unique views", inputs.topPaths))
	}

	return page
}

func cumulativeSection(chartOpts *plotpage.ChartOpts, title, subtitle, yLabel string, series timeseries.Series) plotpage.Section {
	labels := make([]string, len(series))
	data := make([]plotpage.SeriesData, len(series))

	for i, sample := range series {
		labels[i] = sample.Time.UTC().Format(dayLabelLayout)
		data[i] = sample.Value
	}

	line := plotpage.BuildLineChart(chartOpts, labels, []plotpage.LineSeries{
		{Name: yLabel, Data: data, AreaOpacity: 0.15},
	}, yLabel)

	return plotpage.Section{Title: title, Subtitle: subtitle, Chart: line}
}

// namedSection charts several named series over the union of their snapshot
// times; times a series lacks render as gaps.
func namedSection(chartOpts *plotpage.ChartOpts, title, subtitle, yLabel string, named []snapshot.NamedSeries) plotpage.Section {
	union := make(map[time.Time]struct{})
	for _, n := range named {
		for _, sample := range n.Series {
			union[sample.Time] = struct{}{}
		}
	}

	times := make([]time.Time, 0, len(union))
	for t := range union {
		times = append(times, t)
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	labels := make([]string, len(times))
	for i, t := range times {
		labels[i] = t.UTC().Format(snapshotLabelLayout)
	}

	lines := make([]plotpage.LineSeries, 0, len(named))

	for _, n := range named {
		byTime := make(map[time.Time]int64, len(n.Series))
		for _, sample := range n.Series {
			byTime[sample.Time] = sample.Value
		}

		data := make([]plotpage.SeriesData, len(times))
		for i, t := range times {
			if v, ok := byTime[t]; ok {
				data[i] = v
			}
		}

		lines = append(lines, plotpage.LineSeries{Name: n.Name, Data: data})
	}

	return plotpage.Section{
		Title:    title,
		Subtitle: subtitle,
		Chart:    plotpage.BuildLineChart(chartOpts, labels, lines, yLabel),
	}
}

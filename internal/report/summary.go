package report

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/repostats/internal/snapshot"
	"github.com/Sumatoshi-tech/repostats/pkg/timeseries"
)

// Summary is the terminal-facing digest of a completed run.
type Summary struct {
	RepoSpec   string
	ReportPath string

	TrafficSamples int
	ViewsTotal     int64
	ViewsUnique    int64
	ClonesTotal    int64
	ClonesUnique   int64

	StarSamples int
	Stars       int64

	ForkSamples int
	Forks       int64

	TopReferrers []string
	TopPaths     []string
}

func newSummary(
	repoSpec, reportPath string,
	traffic timeseries.TrafficSeries,
	stars, forks timeseries.Series,
	topReferrers, topPaths []snapshot.NamedSeries,
) *Summary {
	s := &Summary{
		RepoSpec:       repoSpec,
		ReportPath:     reportPath,
		TrafficSamples: len(traffic),
		StarSamples:    len(stars),
		ForkSamples:    len(forks),
	}

	for _, sample := range traffic {
		s.ViewsTotal += sample.ViewsTotal
		s.ViewsUnique += sample.ViewsUnique
		s.ClonesTotal += sample.ClonesTotal
		s.ClonesUnique += sample.ClonesUnique
	}

	if len(stars) > 0 {
		s.Stars = stars[len(stars)-1].Value
	}

	if len(forks) > 0 {
		s.Forks = forks[len(forks)-1].Value
	}

	for _, n := range topReferrers {
		s.TopReferrers = append(s.TopReferrers, n.Name)
	}

	for _, n := range topPaths {
		s.TopPaths = append(s.TopPaths, n.Name)
	}

	return s
}

// RenderTable writes the summary as a terminal table.
func (s *Summary) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Signal", "Samples", "Value"})
	t.AppendRows([]table.Row{
		{"views (total)", s.TrafficSamples, humanize.Comma(s.ViewsTotal)},
		{"views (unique)", s.TrafficSamples, humanize.Comma(s.ViewsUnique)},
		{"clones (total)", s.TrafficSamples, humanize.Comma(s.ClonesTotal)},
		{"clones (unique)", s.TrafficSamples, humanize.Comma(s.ClonesUnique)},
		{"stars", s.StarSamples, humanize.Comma(s.Stars)},
		{"forks", s.ForkSamples, humanize.Comma(s.Forks)},
	})

	if len(s.TopReferrers) > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"top referrers", len(s.TopReferrers), strings.Join(s.TopReferrers, ", ")})
	}

	if len(s.TopPaths) > 0 {
		t.AppendRow(table.Row{"top paths", len(s.TopPaths), strings.Join(s.TopPaths, ", ")})
	}

	t.Render()
}

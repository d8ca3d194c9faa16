package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart dimensions.
const (
	chartWidth  = "100%"
	chartHeight = "420px"
)

// SeriesData is a single numeric value in a chart series. It is any to
// allow both int64 and float64.
type SeriesData any

// LineSeries defines one line of a line chart.
type LineSeries struct {
	Name        string
	Data        []SeriesData
	Color       string  // Optional, theme palette if empty.
	AreaOpacity float32 // Optional, draws a filled area when positive.
}

// ChartOpts provides themed chart options.
type ChartOpts struct {
	theme ThemeConfig
}

// NewChartOpts creates chart options for the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// Init returns initialization options with the themed background.
func (c *ChartOpts) Init() opts.Initialization {
	return opts.Initialization{
		Width:           chartWidth,
		Height:          chartHeight,
		BackgroundColor: c.theme.ChartBackground,
		Theme:           c.theme.EChartsTheme,
	}
}

// XAxis returns themed x-axis options.
func (c *ChartOpts) XAxis() opts.XAxis {
	return opts.XAxis{
		AxisLabel: &opts.AxisLabel{Color: c.theme.MutedText},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// YAxis returns themed y-axis options with the given axis name.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.MutedText},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// Legend returns themed legend options.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "0",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.MutedText},
	}
}

// BuildLineChart constructs a configured go-echarts line chart. If cOpts is
// nil, light-theme options are used.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxisLabel string) *charts.Line {
	if cOpts == nil {
		cOpts = NewChartOpts(ThemeLight)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(cOpts.XAxis()),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			)
		}

		if s.AreaOpacity > 0 {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(s.AreaOpacity)}))
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}

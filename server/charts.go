package server

import (
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daytrack/models"
)

// buildLineChart turns one chart definition into a rendered go-echarts
// line chart: one series per entry in stored order (z-order), x-axis the
// ascending union of days across all entries, gaps left unconnected.
// focus, when set, dims every other series (the hover/select overlay).
func buildLineChart(u *models.UserData, lc *models.LineChart, focus *models.DataRef) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title: cases.Title(language.English).String(lc.DisplayName()),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:            opts.Bool(true),
			Trigger:         "item",
			BackgroundColor: "#f5f5f5",
			BorderColor:     "#ccc",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
			}}),
	)

	days := chartDays(u, lc)
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.String()
	}
	line.SetXAxis(labels)

	for _, entry := range lc.Entries {
		series := u.RefSeries(entry.Ref)
		hex := u.EffectiveHex(entry, focus)

		items := make([]opts.LineData, len(days))
		for i, d := range days {
			if v, ok := series[d]; ok {
				items[i] = opts.LineData{Value: v}
			} else {
				// null leaves a gap rather than interpolating over
				// unanswered days
				items[i] = opts.LineData{Value: nil}
			}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex}),
		}
		if lc.FillLines {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.2}))
		}
		line.AddSeries(u.RefLabel(entry.Ref), items, seriesOpts...)
	}

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line
}

// chartDays returns the ascending union of days across all entries.
func chartDays(u *models.UserData, lc *models.LineChart) []models.Day {
	seen := map[models.Day]bool{}
	for _, entry := range lc.Entries {
		for d := range u.RefSeries(entry.Ref) {
			seen[d] = true
		}
	}

	days := make([]models.Day, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

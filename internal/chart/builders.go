package chart

import (
	"slices"
	"strconv"

	"bikedash/internal/engine"
)

const (
	labelYear    = "Tahun"
	labelMonth   = "Bulan"
	labelHour    = "Jam"
	labelSeason  = "Musim"
	labelRentals = "Jumlah Penyewaan"
)

func buildYearly(s *engine.Summary) *ChartConfig {
	years := summaryYears(s)
	series := ChartSeries{Name: labelRentals, Data: make([]ChartPoint, 0, len(s.Yearly))}
	labels := make([]string, 0, len(s.Yearly))
	for _, row := range s.Yearly {
		labels = append(labels, strconv.Itoa(row.Year))
		series.Data = append(series.Data, point(strconv.Itoa(row.Year), row.Count))
		series.Colors = append(series.Colors, ColorForYear(row.Year, s.BaselineYear, years))
	}

	return &ChartConfig{
		Kind:      KindYearly,
		ChartType: "bar",
		Title:     "Performa Penyewaan Sepeda Per Tahun",
		XAxis:     labelYear,
		YAxis:     labelRentals,
		Labels:    labels,
		Series:    []ChartSeries{series},
	}
}

func buildMonthly(s *engine.Summary) *ChartConfig {
	b := newSeriesBuilder(s)
	for _, row := range s.Monthly {
		b.add(row.Year, strconv.Itoa(row.Month), row.Count)
	}

	return &ChartConfig{
		Kind:       KindMonthly,
		ChartType:  "line",
		Title:      "Statistik Penyewaan Sepeda Berdasarkan Bulan",
		XAxis:      labelMonth,
		YAxis:      labelRentals,
		Labels:     b.labels,
		Series:     b.series(),
		ShowLegend: true,
	}
}

func buildHourly(s *engine.Summary) *ChartConfig {
	b := newSeriesBuilder(s)
	for _, row := range s.Hourly {
		b.add(row.Year, strconv.Itoa(row.Hour), row.Count)
	}

	return &ChartConfig{
		Kind:       KindHourly,
		ChartType:  "line",
		Title:      "Statistik Penyewaan Sepeda Berdasarkan Jam",
		XAxis:      labelHour,
		YAxis:      labelRentals,
		Labels:     b.labels,
		Series:     b.series(),
		ShowLegend: true,
	}
}

func buildSeasonal(s *engine.Summary) *ChartConfig {
	b := newSeriesBuilder(s)
	for _, row := range s.Seasonal {
		b.add(row.Year, row.Season, row.Count)
	}

	return &ChartConfig{
		Kind:       KindSeasonal,
		ChartType:  "bar",
		Title:      "Penyewaan Sepeda Berdasarkan Musim",
		XAxis:      labelSeason,
		YAxis:      labelRentals,
		Labels:     b.labels,
		Series:     b.series(),
		ShowLegend: true,
	}
}

// seriesBuilder splits (label, year) rows into one series per year, the way
// the dashboard colors lines and bars by year. Rows arrive sorted by label
// first, so labels keeps the x-axis order even when a year starts mid-axis.
type seriesBuilder struct {
	baseline int
	years    []int
	byYear   map[int]*ChartSeries
	order    []int
	labels   []string
	seen     map[string]bool
}

func newSeriesBuilder(s *engine.Summary) *seriesBuilder {
	return &seriesBuilder{
		baseline: s.BaselineYear,
		years:    summaryYears(s),
		byYear:   make(map[int]*ChartSeries),
		labels:   []string{},
		seen:     make(map[string]bool),
	}
}

func (b *seriesBuilder) add(year int, label string, v int64) {
	if !b.seen[label] {
		b.seen[label] = true
		b.labels = append(b.labels, label)
	}
	series, ok := b.byYear[year]
	if !ok {
		series = &ChartSeries{
			Name:  strconv.Itoa(year),
			Color: ColorForYear(year, b.baseline, b.years),
			Data:  []ChartPoint{},
		}
		b.byYear[year] = series
		b.order = append(b.order, year)
	}
	series.Data = append(series.Data, point(label, v))
}

func (b *seriesBuilder) series() []ChartSeries {
	slices.Sort(b.order)
	out := make([]ChartSeries, 0, len(b.order))
	for _, y := range b.order {
		out = append(out, *b.byYear[y])
	}
	return out
}

// summaryYears collects every year any table of s mentions, ascending.
func summaryYears(s *engine.Summary) []int {
	var years []int
	for _, r := range s.Yearly {
		years = append(years, r.Year)
	}
	for _, r := range s.Monthly {
		years = append(years, r.Year)
	}
	for _, r := range s.Hourly {
		years = append(years, r.Year)
	}
	for _, r := range s.Seasonal {
		years = append(years, r.Year)
	}
	years = append(years, s.BaselineYear)
	slices.Sort(years)
	return slices.Compact(years)
}

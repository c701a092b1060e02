// Package engine turns rental records into the grouped summary tables shown
// on the dashboard.
//
// Every function here is pure: it reads the records it is given and returns
// freshly built tables, so a recomputation per date-range change needs no
// locking even when sessions run concurrently.
package engine

import (
	"bikedash/internal/dataset"
	"bikedash/internal/model"
)

// Summary bundles the four summary tables built for one date range.
type Summary struct {
	Range        model.DateRange         `json:"range"`
	BaselineYear int                     `json:"baselineYear"`
	Records      int                     `json:"records"`
	Yearly       []model.YearCount       `json:"yearly"`
	Monthly      []model.MonthYearCount  `json:"monthly"`
	Hourly       []model.HourYearCount   `json:"hourly"`
	Seasonal     []model.SeasonYearCount `json:"seasonal"`
}

// Compute filters the dataset to r and builds all four summary tables. The
// yearly table always carries the dataset's baseline year.
func Compute(ds *dataset.Dataset, r model.DateRange) *Summary {
	filtered := Filter(ds.Records(), r)

	return &Summary{
		Range:        model.NewDateRange(r.Start, r.End),
		BaselineYear: ds.BaselineYear(),
		Records:      len(filtered),
		Yearly:       NormalizeBaseline(ByYear(filtered), ds.BaselineYear()),
		Monthly:      ByMonth(filtered),
		Hourly:       ByHour(filtered),
		Seasonal:     BySeason(filtered),
	}
}

// Filter returns the records dated within r, inclusive on both ends and
// compared as calendar dates. Input order is preserved.
func Filter(records []model.RentalRecord, r model.DateRange) []model.RentalRecord {
	filtered := make([]model.RentalRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Date) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

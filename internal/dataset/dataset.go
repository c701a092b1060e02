package dataset

import (
	"errors"
	"slices"
	"time"

	"bikedash/internal/model"
)

// ErrEmptyDataset is returned when a dataset would hold no records, leaving
// no bounds and no baseline year to anchor the dashboard.
var ErrEmptyDataset = errors.New("dataset has no records")

// Dataset is the read-only collection of rental records the dashboard works on.
// It is built once at startup and shared by reference.
type Dataset struct {
	records      []model.RentalRecord
	minDate      time.Time
	maxDate      time.Time
	baselineYear int
	years        []int
}

// New copies records into a Dataset and computes its bounds and baseline year.
func New(records []model.RentalRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		records: make([]model.RentalRecord, len(records)),
	}
	copy(ds.records, records)

	seen := make(map[int]bool)
	for i := range ds.records {
		rec := &ds.records[i]
		rec.Date = model.Day(rec.Date)

		if i == 0 || rec.Date.Before(ds.minDate) {
			ds.minDate = rec.Date
		}
		if i == 0 || rec.Date.After(ds.maxDate) {
			ds.maxDate = rec.Date
		}
		if !seen[rec.Year] {
			seen[rec.Year] = true
			ds.years = append(ds.years, rec.Year)
		}
	}

	slices.Sort(ds.years)
	ds.baselineYear = ds.years[0]

	return ds, nil
}

// Records returns the records in load order. The slice is shared and must not be modified.
func (d *Dataset) Records() []model.RentalRecord {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Bounds returns the earliest and latest record dates.
func (d *Dataset) Bounds() (time.Time, time.Time) {
	return d.minDate, d.maxDate
}

// FullRange is the default date range covering every record.
func (d *Dataset) FullRange() model.DateRange {
	return model.DateRange{Start: d.minDate, End: d.maxDate}
}

// InBounds reports whether both ends of r lie within the observed dates.
func (d *Dataset) InBounds(r model.DateRange) bool {
	return d.FullRange().Contains(r.Start) && d.FullRange().Contains(r.End)
}

// BaselineYear is the earliest year present in the dataset.
func (d *Dataset) BaselineYear() int {
	return d.baselineYear
}

// Years lists the distinct years in ascending order.
func (d *Dataset) Years() []int {
	return slices.Clone(d.years)
}

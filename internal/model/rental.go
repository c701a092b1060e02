package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// RentalRecord is one observation of bike-share usage. Records are loaded once
// and never mutated.
type RentalRecord struct {
	Date    time.Time `json:"date"`
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Hour    int       `json:"hour"`
	HasHour bool      `json:"hasHour"` // false at daily grain
	Season  string    `json:"season"`
	Count   int64     `json:"count"`
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range with both ends truncated to calendar dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// Valid reports whether Start <= End.
func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Contains reports whether t falls inside the range, comparing calendar dates only.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Day drops the time-of-day part of t, keeping the calendar date it shows.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MarshalJSON writes both ends as plain calendar dates (2006-01-02).
func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(`{"start":"` + r.Start.Format(DateLayout) + `","end":"` + r.End.Format(DateLayout) + `"}`), nil
}

// UnmarshalJSON reads a range written by MarshalJSON.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(DateLayout, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(DateLayout, raw.End)
	if err != nil {
		return err
	}
	*r = DateRange{Start: start, End: end}
	return nil
}

package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikedash/internal/dataset"
	"bikedash/internal/engine"
	"bikedash/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, hour int, season string, count int64) model.RentalRecord {
	return model.RentalRecord{
		Date:    date,
		Year:    date.Year(),
		Month:   int(date.Month()),
		Hour:    hour,
		HasHour: true,
		Season:  season,
		Count:   count,
	}
}

func sampleRecords() []model.RentalRecord {
	return []model.RentalRecord{
		rec(day(2011, 1, 1), 0, "Spring", 10),
		rec(day(2011, 1, 1), 1, "Spring", 5),
		rec(day(2011, 3, 21), 8, "Spring", 40),
		rec(day(2011, 7, 4), 17, "Summer", 120),
		rec(day(2011, 12, 31), 23, "Winter", 7),
		rec(day(2012, 1, 1), 0, "Spring", 12),
		rec(day(2012, 6, 15), 14, "Summer", 25),
		rec(day(2012, 6, 15), 17, "Summer", 30),
		rec(day(2012, 10, 2), 8, "Fall", 60),
		rec(day(2012, 12, 31), 23, "Winter", 9),
	}
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(sampleRecords())
	require.NoError(t, err)
	return ds
}

func sumCounts(records []model.RentalRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.Count
	}
	return total
}

func Test_Compute_Scenario(t *testing.T) {
	ds, err := dataset.New([]model.RentalRecord{
		rec(day(2011, 1, 1), 0, "spring", 10),
		rec(day(2012, 6, 15), 14, "summer", 25),
	})
	require.NoError(t, err)

	s := engine.Compute(ds, model.NewDateRange(day(2012, 1, 1), day(2012, 12, 31)))

	assert.Equal(t, 1, s.Records)
	assert.Equal(t, 2011, s.BaselineYear)
	assert.Equal(t, []model.YearCount{{Year: 2011, Count: 0}, {Year: 2012, Count: 25}}, s.Yearly)
	assert.Equal(t, []model.MonthYearCount{{Month: 6, Year: 2012, Count: 25}}, s.Monthly)
	assert.Equal(t, []model.HourYearCount{{Hour: 14, Year: 2012, Count: 25}}, s.Hourly)
	assert.Equal(t, []model.SeasonYearCount{{Season: "summer", Year: 2012, Count: 25}}, s.Seasonal)
}

func Test_Filter_InclusiveBounds(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		r     model.DateRange
		count int
	}{
		{name: "full_range", r: model.NewDateRange(day(2011, 1, 1), day(2012, 12, 31)), count: 10},
		{name: "single_day_with_two_rows", r: model.NewDateRange(day(2012, 6, 15), day(2012, 6, 15)), count: 2},
		{name: "year_boundary", r: model.NewDateRange(day(2011, 12, 31), day(2012, 1, 1)), count: 2},
		{name: "gap_between_records", r: model.NewDateRange(day(2011, 8, 1), day(2011, 11, 30)), count: 0},
		{name: "before_dataset", r: model.NewDateRange(day(2009, 1, 1), day(2010, 12, 31)), count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := engine.Filter(records, tt.r)
			assert.Len(t, filtered, tt.count)

			// every kept record is inside, every excluded record is outside
			kept := make(map[int]bool)
			j := 0
			for i, r := range records {
				if j < len(filtered) && filtered[j] == r {
					kept[i] = true
					j++
				}
			}
			assert.Equal(t, len(filtered), j, "filtered records keep input order")
			for i, r := range records {
				inside := !r.Date.Before(tt.r.Start) && !r.Date.After(tt.r.End)
				assert.Equal(t, inside, kept[i], "record %d dated %s", i, r.Date.Format("2006-01-02"))
			}
		})
	}
}

func Test_Filter_ComparesCalendarDates(t *testing.T) {
	records := []model.RentalRecord{
		rec(time.Date(2012, 3, 5, 23, 30, 0, 0, time.UTC), 23, "Spring", 4),
	}

	r := model.DateRange{
		Start: time.Date(2012, 3, 5, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2012, 3, 5, 12, 0, 0, 0, time.UTC),
	}

	assert.Len(t, engine.Filter(records, r), 1)
}

func Test_Tables_ConserveSums(t *testing.T) {
	ds := sampleDataset(t)

	ranges := []model.DateRange{
		ds.FullRange(),
		model.NewDateRange(day(2011, 3, 1), day(2012, 6, 30)),
		model.NewDateRange(day(2012, 1, 1), day(2012, 12, 31)),
		model.NewDateRange(day(2011, 1, 1), day(2011, 1, 1)),
	}

	for _, r := range ranges {
		filtered := engine.Filter(ds.Records(), r)
		want := sumCounts(filtered)

		var yearly, monthly, hourly, seasonal int64
		for _, row := range engine.ByYear(filtered) {
			yearly += row.Count
		}
		for _, row := range engine.ByMonth(filtered) {
			monthly += row.Count
		}
		for _, row := range engine.ByHour(filtered) {
			hourly += row.Count
		}
		for _, row := range engine.BySeason(filtered) {
			seasonal += row.Count
		}

		assert.Equal(t, want, yearly)
		assert.Equal(t, want, monthly)
		assert.Equal(t, want, hourly)
		assert.Equal(t, want, seasonal)
	}
}

func Test_ByHour_SkipsDailyGrainRecords(t *testing.T) {
	records := []model.RentalRecord{
		{Date: day(2011, 2, 1), Year: 2011, Month: 2, Season: "Spring", Count: 100},
		rec(day(2011, 2, 1), 9, "Spring", 3),
	}

	assert.Equal(t, []model.HourYearCount{{Hour: 9, Year: 2011, Count: 3}}, engine.ByHour(records))
}

func Test_BySeason_OrdersThroughTheYear(t *testing.T) {
	s := engine.Compute(sampleDataset(t), model.NewDateRange(day(2011, 1, 1), day(2012, 12, 31)))

	var order []string
	for _, row := range s.Seasonal {
		order = append(order, fmt.Sprintf("%s/%d", row.Season, row.Year))
	}
	assert.Equal(t, []string{"Spring/2011", "Spring/2012", "Summer/2011", "Summer/2012", "Fall/2012", "Winter/2011", "Winter/2012"}, order)
}

func Test_ByMonth_GroupsAcrossYears(t *testing.T) {
	s := engine.Compute(sampleDataset(t), sampleDataset(t).FullRange())

	assert.Contains(t, s.Monthly, model.MonthYearCount{Month: 1, Year: 2011, Count: 15})
	assert.Contains(t, s.Monthly, model.MonthYearCount{Month: 1, Year: 2012, Count: 12})
	assert.Contains(t, s.Monthly, model.MonthYearCount{Month: 6, Year: 2012, Count: 55})
	assert.Equal(t, model.MonthYearCount{Month: 1, Year: 2011, Count: 15}, s.Monthly[0])
}

func Test_Yearly_BaselinePresence(t *testing.T) {
	ds := sampleDataset(t)

	ranges := []model.DateRange{
		ds.FullRange(),
		model.NewDateRange(day(2012, 1, 1), day(2012, 12, 31)),
		model.NewDateRange(day(2011, 6, 1), day(2011, 6, 30)),
		model.NewDateRange(day(2030, 1, 1), day(2030, 12, 31)),
	}

	for _, r := range ranges {
		s := engine.Compute(ds, r)

		baselineRows := 0
		for _, row := range s.Yearly {
			if row.Year == ds.BaselineYear() {
				baselineRows++
			}
		}
		assert.Equal(t, 1, baselineRows)
		assert.IsIncreasing(t, years(s.Yearly))
	}
}

func Test_NormalizeBaseline(t *testing.T) {
	tests := []struct {
		name     string
		in       []model.YearCount
		baseline int
		want     []model.YearCount
	}{
		{
			name:     "empty_table_gets_zero_row",
			in:       nil,
			baseline: 2011,
			want:     []model.YearCount{{Year: 2011, Count: 0}},
		},
		{
			name:     "missing_baseline_is_inserted_first",
			in:       []model.YearCount{{Year: 2012, Count: 25}},
			baseline: 2011,
			want:     []model.YearCount{{Year: 2011, Count: 0}, {Year: 2012, Count: 25}},
		},
		{
			name:     "existing_baseline_is_kept",
			in:       []model.YearCount{{Year: 2012, Count: 25}, {Year: 2011, Count: 3}},
			baseline: 2011,
			want:     []model.YearCount{{Year: 2011, Count: 3}, {Year: 2012, Count: 25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.NormalizeBaseline(tt.in, tt.baseline))
		})
	}
}

func Test_Compute_Idempotent(t *testing.T) {
	ds := sampleDataset(t)
	r := model.NewDateRange(day(2011, 3, 1), day(2012, 10, 31))

	assert.Equal(t, engine.Compute(ds, r), engine.Compute(ds, r))
}

func Test_Compute_RangeOutsideDataset(t *testing.T) {
	ds := sampleDataset(t)

	for _, r := range []model.DateRange{
		model.NewDateRange(day(2005, 1, 1), day(2010, 12, 31)),
		model.NewDateRange(day(2013, 1, 1), day(2014, 1, 1)),
	} {
		assert.Empty(t, engine.Filter(ds.Records(), r))

		s := engine.Compute(ds, r)
		assert.Zero(t, s.Records)
		assert.Equal(t, []model.YearCount{{Year: 2011, Count: 0}}, s.Yearly)
		assert.Empty(t, s.Monthly)
		assert.Empty(t, s.Hourly)
		assert.Empty(t, s.Seasonal)
	}
}

func Test_Compute_DoesNotTouchDataset(t *testing.T) {
	ds := sampleDataset(t)
	before := append([]model.RentalRecord(nil), ds.Records()...)

	engine.Compute(ds, model.NewDateRange(day(2012, 1, 1), day(2012, 12, 31)))

	assert.Equal(t, before, ds.Records())
}

func years(rows []model.YearCount) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Year)
	}
	return out
}

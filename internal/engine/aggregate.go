package engine

import (
	"cmp"
	"slices"

	"bikedash/internal/model"
)

// AggregateBy sums Count per distinct key returned by keyOf. Records for which
// keyOf reports false are skipped. Groups come back in first-seen order.
func AggregateBy[K comparable](records []model.RentalRecord, keyOf func(model.RentalRecord) (K, bool)) ([]K, map[K]int64) {
	sums := make(map[K]int64)
	order := make([]K, 0)

	for _, rec := range records {
		key, ok := keyOf(rec)
		if !ok {
			continue
		}
		if _, exists := sums[key]; !exists {
			order = append(order, key)
		}
		sums[key] += rec.Count
	}
	return order, sums
}

type monthKey struct{ month, year int }

type hourKey struct{ hour, year int }

type seasonKey struct {
	season string
	year   int
}

// ByYear sums rentals per year, ascending by year.
func ByYear(records []model.RentalRecord) []model.YearCount {
	keys, sums := AggregateBy(records, func(r model.RentalRecord) (int, bool) {
		return r.Year, true
	})

	rows := make([]model.YearCount, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.YearCount{Year: k, Count: sums[k]})
	}
	slices.SortFunc(rows, func(a, b model.YearCount) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return rows
}

// ByMonth sums rentals per (month, year), ordered by month then year.
func ByMonth(records []model.RentalRecord) []model.MonthYearCount {
	keys, sums := AggregateBy(records, func(r model.RentalRecord) (monthKey, bool) {
		return monthKey{month: r.Month, year: r.Year}, true
	})

	rows := make([]model.MonthYearCount, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.MonthYearCount{Month: k.month, Year: k.year, Count: sums[k]})
	}
	slices.SortFunc(rows, func(a, b model.MonthYearCount) int {
		return cmp.Or(cmp.Compare(a.Month, b.Month), cmp.Compare(a.Year, b.Year))
	})
	return rows
}

// ByHour sums rentals per (hour, year), ordered by hour then year. Records at
// daily grain carry no hour and are left out.
func ByHour(records []model.RentalRecord) []model.HourYearCount {
	keys, sums := AggregateBy(records, func(r model.RentalRecord) (hourKey, bool) {
		return hourKey{hour: r.Hour, year: r.Year}, r.HasHour
	})

	rows := make([]model.HourYearCount, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.HourYearCount{Hour: k.hour, Year: k.year, Count: sums[k]})
	}
	slices.SortFunc(rows, func(a, b model.HourYearCount) int {
		return cmp.Or(cmp.Compare(a.Hour, b.Hour), cmp.Compare(a.Year, b.Year))
	})
	return rows
}

// BySeason sums rentals per (season, year). Seasons follow the calendar
// (spring first); unrecognized names sort after winter alphabetically.
func BySeason(records []model.RentalRecord) []model.SeasonYearCount {
	keys, sums := AggregateBy(records, func(r model.RentalRecord) (seasonKey, bool) {
		return seasonKey{season: r.Season, year: r.Year}, true
	})

	rows := make([]model.SeasonYearCount, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.SeasonYearCount{Season: k.season, Year: k.year, Count: sums[k]})
	}
	slices.SortFunc(rows, func(a, b model.SeasonYearCount) int {
		return cmp.Or(
			cmp.Compare(model.SeasonRank(a.Season), model.SeasonRank(b.Season)),
			cmp.Compare(a.Season, b.Season),
			cmp.Compare(a.Year, b.Year),
		)
	})
	return rows
}

// NormalizeBaseline makes sure the yearly table holds a row for baseline,
// inserting a zero row when the filtered records never reached that year.
// The result is sorted ascending by year. The input slice is not modified.
func NormalizeBaseline(yearly []model.YearCount, baseline int) []model.YearCount {
	rows := slices.Clone(yearly)
	if rows == nil {
		rows = []model.YearCount{}
	}

	found := slices.ContainsFunc(rows, func(r model.YearCount) bool {
		return r.Year == baseline
	})
	if !found {
		rows = append(rows, model.YearCount{Year: baseline, Count: 0})
	}

	slices.SortStableFunc(rows, func(a, b model.YearCount) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return rows
}

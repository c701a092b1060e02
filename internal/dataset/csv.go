package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"bikedash/internal/model"
)

const (
	colDate   = "dateday"
	colYear   = "year"
	colMonth  = "month"
	colHour   = "hour"
	colSeason = "season"
	colCount  = "count"
)

// columnAliases maps header spellings found in published copies of the
// bike-sharing dataset onto the canonical column names.
var columnAliases = map[string]string{
	"dteday": colDate,
	"date":   colDate,
	"yr":     colYear,
	"mnth":   colMonth,
	"hr":     colHour,
	"cnt":    colCount,
}

var requiredColumns = []string{colDate, colYear, colMonth, colSeason, colCount}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

var seasonCodes = map[string]string{
	"1": model.SeasonSpring,
	"2": model.SeasonSummer,
	"3": model.SeasonFall,
	"4": model.SeasonWinter,
}

// LoadCSV reads the dataset file at path.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return New(records)
}

// ParseCSV converts CSV rows into rental records. Unknown columns are ignored;
// any malformed row aborts the load with an error naming its line.
func ParseCSV(r io.Reader) ([]model.RentalRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[canonicalColumn(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	hourIdx, hasHourColumn := index[colHour]

	var records []model.RentalRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if hasHourColumn && hourIdx < len(row) && strings.TrimSpace(row[hourIdx]) != "" {
			hour, err := strconv.Atoi(strings.TrimSpace(row[hourIdx]))
			if err != nil || hour < 0 || hour > 23 {
				return nil, fmt.Errorf("line %d: invalid hour %q", line, row[hourIdx])
			}
			rec.Hour = hour
			rec.HasHour = true
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (model.RentalRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := ParseDate(field(colDate))
	if err != nil {
		return model.RentalRecord{}, err
	}

	year, err := strconv.Atoi(field(colYear))
	if err != nil {
		return model.RentalRecord{}, fmt.Errorf("invalid year %q", field(colYear))
	}
	// 0/1 year codes resolve to the calendar year of the row.
	if year < 1000 {
		year = date.Year()
	}

	month, err := ParseMonth(field(colMonth))
	if err != nil {
		return model.RentalRecord{}, err
	}

	season := ParseSeason(field(colSeason))
	if season == "" {
		return model.RentalRecord{}, errors.New("empty season")
	}

	count, err := parseCount(field(colCount))
	if err != nil {
		return model.RentalRecord{}, err
	}

	return model.RentalRecord{
		Date:   date,
		Year:   year,
		Month:  month,
		Season: season,
		Count:  count,
	}, nil
}

// ParseDate accepts the date layouts seen in exports of the dataset and
// returns the calendar date.
func ParseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return model.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

// ParseMonth accepts 1-12 or an English month name or abbreviation.
func ParseMonth(v string) (int, error) {
	if m, err := strconv.Atoi(v); err == nil {
		if m < 1 || m > 12 {
			return 0, fmt.Errorf("month %d out of range", m)
		}
		return m, nil
	}
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, capitalize(v)); err == nil {
			return int(t.Month()), nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", v)
}

// ParseSeason maps numeric season codes onto names and capitalizes the rest.
func ParseSeason(v string) string {
	if name, ok := seasonCodes[v]; ok {
		return name
	}
	return capitalize(v)
}

func capitalize(v string) string {
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

func parseCount(v string) (int64, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid count %q", v)
	}
	return int64(f), nil
}

// canonicalColumn converts "Date Day" or "dteday" into the canonical column key.
func canonicalColumn(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	key = strings.TrimPrefix(key, "\ufeff")
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "_", "")
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"bikedash/internal/engine"
)

// WriteCSV writes the summary table behind one chart kind as CSV with a header row.
func WriteCSV(w io.Writer, s *engine.Summary, kind Kind) error {
	cw := csv.NewWriter(w)

	var rows [][]string
	switch kind {
	case KindYearly:
		rows = append(rows, []string{"year", "count"})
		for _, r := range s.Yearly {
			rows = append(rows, []string{strconv.Itoa(r.Year), fmtInt(r.Count)})
		}
	case KindMonthly:
		rows = append(rows, []string{"month", "year", "count"})
		for _, r := range s.Monthly {
			rows = append(rows, []string{strconv.Itoa(r.Month), strconv.Itoa(r.Year), fmtInt(r.Count)})
		}
	case KindHourly:
		rows = append(rows, []string{"hour", "year", "count"})
		for _, r := range s.Hourly {
			rows = append(rows, []string{strconv.Itoa(r.Hour), strconv.Itoa(r.Year), fmtInt(r.Count)})
		}
	case KindSeasonal:
		rows = append(rows, []string{"season", "year", "count"})
		for _, r := range s.Seasonal {
			rows = append(rows, []string{r.Season, strconv.Itoa(r.Year), fmtInt(r.Count)})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func fmtInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

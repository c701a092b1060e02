package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bikedash/internal/dataset"
	"bikedash/internal/logger"
	"bikedash/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidRange = errors.New("invalid date range")

// parseDate parses a date string in the format "2006-01-02" (HTML date input format).
func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", errInvalidRange, v)
	}
	return t, nil
}

// resolveRange turns optional start/end values into a range inside the
// dataset's observed dates. Missing ends default to the dataset bounds.
func resolveRange(ds *dataset.Dataset, start, end string) (model.DateRange, error) {
	r := ds.FullRange()

	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			return model.DateRange{}, err
		}
		r.Start = t
	}
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return model.DateRange{}, err
		}
		r.End = t
	}

	r = model.NewDateRange(r.Start, r.End)
	if !r.Valid() {
		return model.DateRange{}, fmt.Errorf("%w: end %s is before start %s",
			errInvalidRange, r.End.Format(model.DateLayout), r.Start.Format(model.DateLayout))
	}
	if !ds.InBounds(r) {
		minDate, maxDate := ds.Bounds()
		return model.DateRange{}, fmt.Errorf("%w: dates must lie between %s and %s",
			errInvalidRange, minDate.Format(model.DateLayout), maxDate.Format(model.DateLayout))
	}
	return r, nil
}

func rangeFromQuery(ds *dataset.Dataset, q url.Values) (model.DateRange, error) {
	return resolveRange(ds, q.Get("start"), q.Get("end"))
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// writeError sends a JSON error body. Range errors are the client's fault.
func writeError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status := http.StatusInternalServerError
	if errors.Is(err, errInvalidRange) {
		status = http.StatusBadRequest
	} else {
		logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()}, logger)
}

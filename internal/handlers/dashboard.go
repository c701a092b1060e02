package handlers

import (
	"errors"
	"net/http"

	"bikedash/internal/chart"
	"bikedash/internal/dataset"
	"bikedash/internal/engine"
	"bikedash/internal/logger"
	"bikedash/internal/model"
	"bikedash/internal/services/websocket"
)

// RangeInfo describes the dates the date picker may offer.
type RangeInfo struct {
	Min          string `json:"min"`
	Max          string `json:"max"`
	BaselineYear int    `json:"baselineYear"`
	Years        []int  `json:"years"`
	Records      int    `json:"records"`
}

// ChartsData is the payload behind the four dashboard charts.
type ChartsData struct {
	Range        model.DateRange      `json:"range"`
	BaselineYear int                  `json:"baselineYear"`
	Records      int                  `json:"records"`
	Charts       []*chart.ChartConfig `json:"charts"`
}

func buildChartsData(renderer chart.Renderer, s *engine.Summary) (*ChartsData, error) {
	charts, err := chart.RenderAll(renderer, s)
	if err != nil {
		return nil, err
	}
	return &ChartsData{
		Range:        s.Range,
		BaselineYear: s.BaselineYear,
		Records:      s.Records,
		Charts:       charts,
	}, nil
}

// RangeHandler returns the observed date bounds and the baseline year.
func RangeHandler(ds *dataset.Dataset, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minDate, maxDate := ds.Bounds()
		writeJSON(w, http.StatusOK, RangeInfo{
			Min:          minDate.Format(model.DateLayout),
			Max:          maxDate.Format(model.DateLayout),
			BaselineYear: ds.BaselineYear(),
			Years:        ds.Years(),
			Records:      ds.Len(),
		}, logger)
	}
}

// SummaryHandler returns the four summary tables for ?start=&end=.
func SummaryHandler(ds *dataset.Dataset, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dr, err := rangeFromQuery(ds, r.URL.Query())
		if err != nil {
			writeError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, engine.Compute(ds, dr), logger)
	}
}

// ChartsHandler returns all four chart configurations for ?start=&end=.
func ChartsHandler(ds *dataset.Dataset, renderer chart.Renderer, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dr, err := rangeFromQuery(ds, r.URL.Query())
		if err != nil {
			writeError(w, err, logger)
			return
		}

		data, err := buildChartsData(renderer, engine.Compute(ds, dr))
		if err != nil {
			writeError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, data, logger)
	}
}

// ChartHandler returns a single chart named by the :kind path parameter.
func ChartHandler(ds *dataset.Dataset, renderer chart.Renderer, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := chart.ParseKind(r.URL.Query().Get(":kind"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		dr, err := rangeFromQuery(ds, r.URL.Query())
		if err != nil {
			writeError(w, err, logger)
			return
		}

		c, err := renderer.Render(engine.Compute(ds, dr), kind)
		if err != nil {
			writeError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, c, logger)
	}
}

// ExportHandler streams one summary table, named by :table, as CSV.
func ExportHandler(ds *dataset.Dataset, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := chart.ParseKind(r.URL.Query().Get(":table"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		dr, err := rangeFromQuery(ds, r.URL.Query())
		if err != nil {
			writeError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
		if err := chart.WriteCSV(w, engine.Compute(ds, dr), kind); err != nil && !errors.Is(err, chart.ErrUnknownKind) {
			logger.Error("Error writing CSV export: %v", err)
		}
	}
}

// HealthHandler reports dataset size and live session count.
func HealthHandler(ds *dataset.Dataset, hub *websocket.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"records":  ds.Len(),
			"sessions": hub.SessionCount(),
		}, logger)
	}
}

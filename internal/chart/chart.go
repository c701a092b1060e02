// Package chart turns summary tables into render-ready chart configurations
// for the dashboard page. It never touches the dataset: everything it draws
// comes from an engine.Summary.
package chart

import (
	"errors"
	"fmt"
	"strconv"

	"bikedash/internal/engine"
)

// Kind names one of the dashboard's four charts.
type Kind string

const (
	KindYearly   Kind = "yearly"
	KindMonthly  Kind = "monthly"
	KindHourly   Kind = "hourly"
	KindSeasonal Kind = "seasonal"
)

// Kinds lists the charts in the order the page shows them.
var Kinds = []Kind{KindYearly, KindMonthly, KindHourly, KindSeasonal}

// ErrUnknownKind is returned for a chart kind the renderer does not draw.
var ErrUnknownKind = errors.New("unknown chart kind")

const (
	BaselineColor = "#808080"
	YearColor     = "#6ca0dc"
)

// Extra years beyond the first comparison year cycle through this palette.
var extraColors = []string{"#f59e0b", "#10b981", "#ef4444", "#8b5cf6"}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	Kind       Kind          `json:"kind"`
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis"`
	YAxis      string        `json:"yAxis"`
	Labels     []string      `json:"labels"` // x-axis categories in table order
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one line or bar group. Per-point colors are set on the
// yearly chart, where the baseline bar is drawn in grey.
type ChartSeries struct {
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Colors []string     `json:"colors,omitempty"`
	Data   []ChartPoint `json:"data"`
}

// ChartPoint is a single data point.
type ChartPoint struct {
	Label   string `json:"label"`
	Value   int64  `json:"value"`
	Display string `json:"display"`
}

// Renderer draws a summary as one chart kind.
type Renderer interface {
	Render(s *engine.Summary, kind Kind) (*ChartConfig, error)
}

// ConfigRenderer renders charts as ChartConfig values for the browser.
type ConfigRenderer struct{}

// NewRenderer returns the default renderer.
func NewRenderer() *ConfigRenderer {
	return &ConfigRenderer{}
}

// Render builds the chart for kind from s.
func (ConfigRenderer) Render(s *engine.Summary, kind Kind) (*ChartConfig, error) {
	switch kind {
	case KindYearly:
		return buildYearly(s), nil
	case KindMonthly:
		return buildMonthly(s), nil
	case KindHourly:
		return buildHourly(s), nil
	case KindSeasonal:
		return buildSeasonal(s), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// RenderAll renders every chart kind in page order.
func RenderAll(r Renderer, s *engine.Summary) ([]*ChartConfig, error) {
	charts := make([]*ChartConfig, 0, len(Kinds))
	for _, kind := range Kinds {
		c, err := r.Render(s, kind)
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}

// ParseKind validates a chart kind taken from a request.
func ParseKind(v string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, v)
}

// ColorForYear gives the baseline year its grey and every later year a color
// of its own, starting with the dashboard blue.
func ColorForYear(year, baseline int, years []int) string {
	if year == baseline {
		return BaselineColor
	}
	idx := 0
	for _, y := range years {
		if y == baseline {
			continue
		}
		if y == year {
			break
		}
		idx++
	}
	if idx == 0 {
		return YearColor
	}
	return extraColors[(idx-1)%len(extraColors)]
}

// FormatCount writes n with dots between thousands, as the dashboard's axes do.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func point(label string, v int64) ChartPoint {
	return ChartPoint{Label: label, Value: v, Display: FormatCount(v)}
}

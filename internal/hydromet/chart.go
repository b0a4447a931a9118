package hydromet

import (
	"fmt"
	"io"
	"strings"
)

// TemperatureSeries is the series name used for plotted temperatures.
const TemperatureSeries = "t°"

// LabelStyle selects how chart categories are labelled.
type LabelStyle string

const (
	// LabelTimeDay renders "09:00/01.02".
	LabelTimeDay LabelStyle = "time-day"
	// LabelDateTime renders "01.02.2024/09:00".
	LabelDateTime LabelStyle = "date-time"
)

// ChartPoint is one plotted value.
type ChartPoint struct {
	Category string  `json:"category"`
	Series   string  `json:"series"`
	Value    float64 `json:"value"`
}

// ChartSink accepts plotted values, e.g. a line chart dataset.
type ChartSink interface {
	AddValue(value float64, series, category string)
}

// ChartPoints lists the temperature of every observation in store order.
func (s *Store) ChartPoints(style LabelStyle, f DateFormat) []ChartPoint {
	points := make([]ChartPoint, 0, s.Count())
	for date, o := range s.All() {
		points = append(points, ChartPoint{
			Category: chartLabel(style, f, date, o.Time),
			Series:   TemperatureSeries,
			Value:    o.Temperature,
		})
	}
	return points
}

// Plot feeds every chart point into sink.
func (s *Store) Plot(sink ChartSink, style LabelStyle, f DateFormat) {
	for _, p := range s.ChartPoints(style, f) {
		sink.AddValue(p.Value, p.Series, p.Category)
	}
}

func chartLabel(style LabelStyle, f DateFormat, date, clock string) string {
	if style == LabelDateTime {
		return date + "/" + clock
	}
	parts := strings.Split(date, f.Separator)
	if len(parts) < 2 {
		return clock + "/" + date
	}
	return clock + "/" + parts[0] + "." + parts[1]
}

// WriteSummary prints the max/min console summary of a report.
func WriteSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "Max: %v° %s %s\n", r.Max.Temperature, r.Max.Date, r.Max.Time); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Min: %v° %s %s\n", r.Min.Temperature, r.Min.Date, r.Min.Time)
	return err
}

package hydromet

import (
	"time"
)

// Observation is one station measurement at a time of day.
// Values are copied out of the store, never shared.
type Observation struct {
	Time            string  `json:"time"` // always HH:MM
	Temperature     float64 `json:"temperatureC"`
	DewPoint        float64 `json:"dewPointC"`
	WeatherElements string  `json:"weatherElements"`
	WindDirection   string  `json:"windDirection"`
	WindSpeed       int     `json:"windSpeed"`
}

// DateBucket holds all observations of one calendar date, ordered by time.
type DateBucket struct {
	Date         string        `json:"date"`
	Observations []Observation `json:"observations"`
}

// DateFormat describes how the station writes dates, e.g. 02.01.2006.
type DateFormat struct {
	Separator string
}

var (
	DottedDate = DateFormat{Separator: "."}
	DashedDate = DateFormat{Separator: "-"}
)

// Layout is the zero-padded layout used for file names.
func (f DateFormat) Layout() string {
	return "02" + f.Separator + "01" + f.Separator + "2006"
}

// Parse accepts both padded and unpadded day/month values.
func (f DateFormat) Parse(s string) (time.Time, error) {
	return time.Parse("2"+f.Separator+"1"+f.Separator+"2006", s)
}

func (f DateFormat) Format(t time.Time) string {
	return t.Format(f.Layout())
}

// TempPoint is a temperature and the first moment it was observed.
type TempPoint struct {
	Temperature float64 `json:"temperatureC"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
}

// DailySummary is the extremum pair of one date bucket.
type DailySummary struct {
	Date         string  `json:"date"`
	Count        int     `json:"count"`
	MinTemp      float64 `json:"minTemperatureC"`
	MinTime      string  `json:"minTime"`
	MaxTemp      float64 `json:"maxTemperatureC"`
	MaxTime      string  `json:"maxTime"`
	AvgWindSpeed float64 `json:"avgWindSpeed"`
}

// Report is the outcome of one pipeline run.
type Report struct {
	RunID       string         `json:"runId"`
	Source      string         `json:"source"`
	File        string         `json:"file"`
	GeneratedAt time.Time      `json:"generatedAt"` // always UTC
	Max         TempPoint      `json:"max"`
	Min         TempPoint      `json:"min"`
	Days        []DailySummary `json:"days"`
	Skipped     int            `json:"skippedRecords"`

	Store *Store `json:"-"`
}

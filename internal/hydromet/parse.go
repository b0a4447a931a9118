package hydromet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fieldCount = 7
	clockWidth = len("15:04")
)

// Field positions within one record payload. Index 4 is unused by the station.
const (
	fieldTime = iota
	fieldTemperature
	fieldDewPoint
	fieldElements
	_
	fieldWindDirection
	fieldWindSpeed
)

// ParseObservation converts one comma-delimited payload into an Observation.
func ParseObservation(payload string) (Observation, error) {
	fields := strings.Split(payload, ",")
	for len(fields) > fieldCount && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) != fieldCount {
		return Observation{}, &RecordError{
			Line: payload,
			Err:  fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRecord, len(fields), fieldCount),
		}
	}

	tm := NormalizeTime(fields[fieldTime])
	if _, err := parseClock(tm); err != nil {
		return Observation{}, &RecordError{Line: payload, Field: "time", Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
	}

	temp, err := parseDecimal(fields[fieldTemperature])
	if err != nil {
		return Observation{}, &RecordError{Line: payload, Field: "temperature", Err: err}
	}
	dew, err := parseDecimal(fields[fieldDewPoint])
	if err != nil {
		return Observation{}, &RecordError{Line: payload, Field: "dew point", Err: err}
	}
	speed, err := strconv.Atoi(fields[fieldWindSpeed])
	if err != nil {
		return Observation{}, &RecordError{
			Line:  payload,
			Field: "wind speed",
			Err:   fmt.Errorf("%w: %q", ErrNumericFormat, fields[fieldWindSpeed]),
		}
	}

	return Observation{
		Time:            tm,
		Temperature:     temp,
		DewPoint:        dew,
		WeatherElements: fields[fieldElements],
		WindDirection:   fields[fieldWindDirection],
		WindSpeed:       speed,
	}, nil
}

// NormalizeTime left-pads short time tokens such as 9:30 to 09:30.
func NormalizeTime(s string) string {
	if len(s) < clockWidth {
		return "0" + s
	}
	return s
}

// NormalizeDecimal restores a missing leading zero, e.g. .5 becomes 0.5.
func NormalizeDecimal(s string) string {
	if strings.HasPrefix(s, ".") {
		return "0" + s
	}
	return s
}

func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(NormalizeDecimal(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNumericFormat, s)
	}
	return v, nil
}

// parseClock returns the offset from midnight of an HH:MM value.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// ParseOptions controls how record failures are handled.
type ParseOptions struct {
	// SkipMalformed drops bad records instead of failing the whole run.
	SkipMalformed bool
}

// ParseGroups turns every payload into an Observation, bucketed by date in
// the grouping order. With SkipMalformed the dropped records are returned as
// the second value; otherwise the first failure is returned as the error.
func ParseGroups(g *RawGroups, opts ParseOptions) ([]DateBucket, []error, error) {
	var (
		buckets []DateBucket
		skipped []error
	)
	for _, date := range g.Keys() {
		lines := g.Lines(date)
		obs := make([]Observation, 0, len(lines))
		for _, line := range lines {
			o, err := ParseObservation(line)
			if err != nil {
				if re, ok := err.(*RecordError); ok {
					re.Date = date
				}
				if !opts.SkipMalformed {
					return nil, nil, err
				}
				skipped = append(skipped, err)
				continue
			}
			obs = append(obs, o)
		}
		buckets = append(buckets, DateBucket{Date: date, Observations: obs})
	}
	return buckets, skipped, nil
}

package hydromet

import (
	"fmt"
	"math"
)

// MaxTemp returns the highest temperature across all dates.
func (s *Store) MaxTemp() (float64, error) {
	return s.foldTemp(math.Max)
}

// MinTemp returns the lowest temperature across all dates.
func (s *Store) MinTemp() (float64, error) {
	return s.foldTemp(math.Min)
}

func (s *Store) foldTemp(pick func(a, b float64) float64) (float64, error) {
	var (
		acc  float64
		seen bool
	)
	for _, o := range s.All() {
		if !seen {
			acc, seen = o.Temperature, true
			continue
		}
		acc = pick(acc, o.Temperature)
	}
	if !seen {
		return 0, ErrEmptyStore
	}
	return acc, nil
}

// FindObservationTime returns the first date and time, in store order, at
// which temp was observed. A zero epsilon means exact equality.
func (s *Store) FindObservationTime(temp, epsilon float64) (TempPoint, bool) {
	for date, o := range s.All() {
		if tempEqual(o.Temperature, temp, epsilon) {
			return TempPoint{Temperature: o.Temperature, Date: date, Time: o.Time}, true
		}
	}
	return TempPoint{}, false
}

func tempEqual(a, b, epsilon float64) bool {
	if epsilon <= 0 {
		return a == b
	}
	return math.Abs(a-b) <= epsilon
}

// Extremes resolves the maximum and minimum temperatures to the moments they
// first occurred.
func (s *Store) Extremes(epsilon float64) (maxPt, minPt TempPoint, err error) {
	hi, err := s.MaxTemp()
	if err != nil {
		return TempPoint{}, TempPoint{}, err
	}
	lo, err := s.MinTemp()
	if err != nil {
		return TempPoint{}, TempPoint{}, err
	}

	maxPt, ok := s.FindObservationTime(hi, epsilon)
	if !ok {
		return TempPoint{}, TempPoint{}, fmt.Errorf("max temperature %v has no observation", hi)
	}
	minPt, ok = s.FindObservationTime(lo, epsilon)
	if !ok {
		return TempPoint{}, TempPoint{}, fmt.Errorf("min temperature %v has no observation", lo)
	}
	return maxPt, minPt, nil
}

// DailySummaries computes per-date extremes. Dates without observations are
// left out.
func (s *Store) DailySummaries() []DailySummary {
	out := make([]DailySummary, 0, len(s.buckets))
	for _, b := range s.buckets {
		if len(b.Observations) == 0 {
			continue
		}
		first := b.Observations[0]
		d := DailySummary{
			Date:    b.Date,
			Count:   len(b.Observations),
			MinTemp: first.Temperature,
			MinTime: first.Time,
			MaxTemp: first.Temperature,
			MaxTime: first.Time,
		}
		var wind int
		for _, o := range b.Observations {
			if o.Temperature < d.MinTemp {
				d.MinTemp, d.MinTime = o.Temperature, o.Time
			}
			if o.Temperature > d.MaxTemp {
				d.MaxTemp, d.MaxTime = o.Temperature, o.Time
			}
			wind += o.WindSpeed
		}
		d.AvgWindSpeed = float64(wind) / float64(d.Count)
		out = append(out, d)
	}
	return out
}

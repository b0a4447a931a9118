package hydromet

import (
	"fmt"
	"slices"
	"time"
)

// Normalize orders each bucket by time of day and the buckets by calendar
// date, then builds the final Store. Both sorts are stable.
func Normalize(buckets []DateBucket, f DateFormat) (*Store, error) {
	type keyed struct {
		day    time.Time
		bucket DateBucket
	}

	sorted := make([]keyed, 0, len(buckets))
	for _, b := range buckets {
		day, err := f.Parse(b.Date)
		if err != nil {
			return nil, &RecordError{Date: b.Date, Field: "date", Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		obs, err := sortByClock(b)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, keyed{day: day, bucket: DateBucket{Date: b.Date, Observations: obs}})
	}

	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return a.day.Compare(b.day)
	})

	out := make([]DateBucket, 0, len(sorted))
	for _, k := range sorted {
		out = append(out, k.bucket)
	}
	return NewStore(out...), nil
}

func sortByClock(b DateBucket) ([]Observation, error) {
	type keyed struct {
		clock time.Duration
		obs   Observation
	}

	items := make([]keyed, 0, len(b.Observations))
	for _, o := range b.Observations {
		c, err := parseClock(o.Time)
		if err != nil {
			return nil, &RecordError{Date: b.Date, Line: o.Time, Field: "time", Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		items = append(items, keyed{clock: c, obs: o})
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.clock < b.clock:
			return -1
		case a.clock > b.clock:
			return 1
		}
		return 0
	})

	out := make([]Observation, 0, len(items))
	for _, it := range items {
		out = append(out, it.obs)
	}
	return out, nil
}

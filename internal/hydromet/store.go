package hydromet

import (
	"encoding/json"
	"iter"
)

// Store is the date-ordered collection of buckets produced by one run.
// It is never modified after construction.
type Store struct {
	buckets []DateBucket
	index   map[string]int
}

// NewStore keeps buckets in the given order. When a date repeats, the first
// bucket wins and later ones are discarded.
func NewStore(buckets ...DateBucket) *Store {
	s := &Store{index: make(map[string]int, len(buckets))}
	for _, b := range buckets {
		if _, ok := s.index[b.Date]; ok {
			continue
		}
		obs := make([]Observation, len(b.Observations))
		copy(obs, b.Observations)
		s.index[b.Date] = len(s.buckets)
		s.buckets = append(s.buckets, DateBucket{Date: b.Date, Observations: obs})
	}
	return s
}

// Len returns the number of dates.
func (s *Store) Len() int {
	return len(s.buckets)
}

// Count returns the number of observations across all dates.
func (s *Store) Count() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b.Observations)
	}
	return n
}

func (s *Store) Dates() []string {
	out := make([]string, 0, len(s.buckets))
	for _, b := range s.buckets {
		out = append(out, b.Date)
	}
	return out
}

// Bucket returns a copy of the bucket stored under date.
func (s *Store) Bucket(date string) (DateBucket, bool) {
	i, ok := s.index[date]
	if !ok {
		return DateBucket{}, false
	}
	return cloneBucket(s.buckets[i]), true
}

// Buckets returns copies of all buckets in store order.
func (s *Store) Buckets() []DateBucket {
	out := make([]DateBucket, 0, len(s.buckets))
	for _, b := range s.buckets {
		out = append(out, cloneBucket(b))
	}
	return out
}

// All yields every observation with its date, in store order.
func (s *Store) All() iter.Seq2[string, Observation] {
	return func(yield func(string, Observation) bool) {
		for _, b := range s.buckets {
			for _, o := range b.Observations {
				if !yield(b.Date, o) {
					return
				}
			}
		}
	}
}

func (s *Store) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.buckets)
}

func cloneBucket(b DateBucket) DateBucket {
	obs := make([]Observation, len(b.Observations))
	copy(obs, b.Observations)
	return DateBucket{Date: b.Date, Observations: obs}
}

package hydromet

import (
	"errors"
	"slices"
	"testing"
)

func obsAt(clock string, temp float64) Observation {
	return Observation{Time: clock, Temperature: temp}
}

func TestNormalizeOrdersTimesWithinDay(t *testing.T) {
	buckets := []DateBucket{{
		Date: "01.01.2024",
		Observations: []Observation{
			obsAt("21:00", 1), obsAt("09:00", 2), obsAt("00:00", 3), obsAt("23:59", 4), obsAt("03:00", 5),
		},
	}}

	s, err := Normalize(buckets, DottedDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := s.Bucket("01.01.2024")
	for i := 1; i < len(b.Observations); i++ {
		prev, _ := parseClock(b.Observations[i-1].Time)
		cur, _ := parseClock(b.Observations[i].Time)
		if prev > cur {
			t.Fatalf("observation %d (%s) after %s", i, b.Observations[i].Time, b.Observations[i-1].Time)
		}
	}
}

func TestNormalizeIsStable(t *testing.T) {
	buckets := []DateBucket{{
		Date:         "01.01.2024",
		Observations: []Observation{obsAt("12:00", 1), obsAt("06:00", 2), obsAt("12:00", 3), obsAt("12:00", 4)},
	}}

	s, err := Normalize(buckets, DottedDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := s.Bucket("01.01.2024")
	var temps []float64
	for _, o := range b.Observations {
		temps = append(temps, o.Temperature)
	}
	if want := []float64{2, 1, 3, 4}; !slices.Equal(temps, want) {
		t.Errorf("temperatures = %v; want %v", temps, want)
	}
}

func TestNormalizeOrdersDatesByCalendar(t *testing.T) {
	tests := []struct {
		name   string
		format DateFormat
		dates  []string
		want   []string
	}{
		{
			name:   "dotted unpadded",
			format: DottedDate,
			dates:  []string{"10.1.2024", "2.1.2024", "1.2.2024", "31.12.2023"},
			want:   []string{"31.12.2023", "2.1.2024", "10.1.2024", "1.2.2024"},
		},
		{
			name:   "dashed padded",
			format: DashedDate,
			dates:  []string{"03-01-2024", "01-02-2024", "02-01-2024"},
			want:   []string{"02-01-2024", "03-01-2024", "01-02-2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buckets []DateBucket
			for _, d := range tt.dates {
				buckets = append(buckets, DateBucket{Date: d, Observations: []Observation{obsAt("12:00", 0)}})
			}

			s, err := Normalize(buckets, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := s.Dates(); !slices.Equal(got, tt.want) {
				t.Errorf("Dates() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsBadDate(t *testing.T) {
	_, err := Normalize([]DateBucket{{Date: "yesterday"}}, DottedDate)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v; want ErrMalformedRecord", err)
	}
}

func TestNewStoreKeepsFirstDuplicate(t *testing.T) {
	first := DateBucket{Date: "01.01.2024", Observations: []Observation{obsAt("09:00", 1)}}
	second := DateBucket{Date: "01.01.2024", Observations: []Observation{obsAt("10:00", 2), obsAt("11:00", 3)}}
	other := DateBucket{Date: "02.01.2024", Observations: []Observation{obsAt("09:00", 4)}}

	s := NewStore(first, second, other)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", s.Len())
	}
	b, ok := s.Bucket("01.01.2024")
	if !ok {
		t.Fatal("bucket 01.01.2024 missing")
	}
	if !slices.Equal(b.Observations, first.Observations) {
		t.Errorf("surviving bucket = %+v; want %+v", b.Observations, first.Observations)
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d; want 2", s.Count())
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore(DateBucket{Date: "01.01.2024", Observations: []Observation{obsAt("09:00", 1)}})

	b, _ := s.Bucket("01.01.2024")
	b.Observations[0].Temperature = 99

	again, _ := s.Bucket("01.01.2024")
	if again.Observations[0].Temperature != 1 {
		t.Errorf("store was mutated through a returned bucket")
	}
}

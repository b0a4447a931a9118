package hydromet

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseObservation(t *testing.T) {
	got, err := ParseObservation("9:30,.5,-.7,Rain,x,NE,4,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Observation{
		Time:            "09:30",
		Temperature:     0.5,
		DewPoint:        -0.7,
		WeatherElements: "Rain",
		WindDirection:   "NE",
		WindSpeed:       4,
	}
	if got != want {
		t.Errorf("ParseObservation() = %+v; want %+v", got, want)
	}
}

func TestParseObservationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"too few fields", "09:00,5.0,2.1,Clear,,N", ErrMalformedRecord},
		{"empty payload", "", ErrMalformedRecord},
		{"extra data", "09:00,5.0,2.1,Clear,,N,10,x", ErrMalformedRecord},
		{"bad time", "ab:cd,5.0,2.1,Clear,,N,10", ErrMalformedRecord},
		{"bad temperature", "09:00,warm,2.1,Clear,,N,10", ErrNumericFormat},
		{"bad dew point", "09:00,5.0,,Clear,,N,10", ErrNumericFormat},
		{"bad wind speed", "09:00,5.0,2.1,Clear,,N,calm", ErrNumericFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObservation(tt.payload)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v; want %v", err, tt.want)
			}
			var re *RecordError
			if !errors.As(err, &re) {
				t.Fatalf("err = %T; want *RecordError", err)
			}
			if re.Line != tt.payload {
				t.Errorf("Line = %q; want %q", re.Line, tt.payload)
			}
		})
	}
}

func TestParseObservationTrailingSeparators(t *testing.T) {
	for _, payload := range []string{
		"09:00,5.0,2.1,Clear,,N,10",
		"09:00,5.0,2.1,Clear,,N,10,",
		"09:00,5.0,2.1,Clear,,N,10,,,",
	} {
		if _, err := ParseObservation(payload); err != nil {
			t.Errorf("ParseObservation(%q) error: %v", payload, err)
		}
	}
}

func TestNormalizeDecimal(t *testing.T) {
	for _, s := range []string{".5", ".25", ".0"} {
		got, err := strconv.ParseFloat(NormalizeDecimal(s), 64)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		want, _ := strconv.ParseFloat("0"+s, 64)
		if got != want {
			t.Errorf("%q parsed as %v; want %v", s, got, want)
		}
	}

	for _, s := range []string{"5.0", "-3.2", "0.5", "-.5", "12"} {
		if got := NormalizeDecimal(s); got != s {
			t.Errorf("NormalizeDecimal(%q) = %q; want unchanged", s, got)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := map[string]string{
		"9:30":  "09:30",
		"0:00":  "00:00",
		"09:30": "09:30",
		"21:00": "21:00",
	}
	for in, want := range tests {
		got := NormalizeTime(in)
		if got != want {
			t.Errorf("NormalizeTime(%q) = %q; want %q", in, got, want)
		}
		if len(got) != clockWidth {
			t.Errorf("len(NormalizeTime(%q)) = %d; want %d", in, len(got), clockWidth)
		}
	}
}

func TestParseGroups(t *testing.T) {
	g := GroupLines([]string{
		"01.01.2024 09:00,5.0,2.1,Clear,,N,10,",
		"01.01.2024 12:00,broken",
		"02.01.2024 06:00,-1.0,-3.0,Snow,,NE,5,",
	})

	t.Run("strict fails on first bad record", func(t *testing.T) {
		_, _, err := ParseGroups(g, ParseOptions{})
		if !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("err = %v; want ErrMalformedRecord", err)
		}
		var re *RecordError
		if errors.As(err, &re) && re.Date != "01.01.2024" {
			t.Errorf("Date = %q; want 01.01.2024", re.Date)
		}
	})

	t.Run("skip drops bad record", func(t *testing.T) {
		buckets, skipped, err := ParseGroups(g, ParseOptions{SkipMalformed: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(skipped) != 1 {
			t.Fatalf("skipped = %d; want 1", len(skipped))
		}
		if len(buckets) != 2 {
			t.Fatalf("buckets = %d; want 2", len(buckets))
		}
		if n := len(buckets[0].Observations); n != 1 {
			t.Errorf("first bucket has %d observations; want 1", n)
		}
	})
}

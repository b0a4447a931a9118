package hydromet

import "strings"

// RawGroups maps a date key to the field payloads seen for it,
// keeping keys in first-seen order.
type RawGroups struct {
	keys  []string
	lines map[string][]string
}

func NewRawGroups() *RawGroups {
	return &RawGroups{lines: make(map[string][]string)}
}

// Add splits a raw line into its date key and payload and appends the payload
// under that key.
func (g *RawGroups) Add(line string) {
	date, payload := SplitLine(line)
	if _, ok := g.lines[date]; !ok {
		g.keys = append(g.keys, date)
	}
	g.lines[date] = append(g.lines[date], payload)
}

// Keys returns the date keys in insertion order.
func (g *RawGroups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Lines returns the payloads recorded under date.
func (g *RawGroups) Lines(date string) []string {
	return g.lines[date]
}

// Total counts payloads across all dates.
func (g *RawGroups) Total() int {
	n := 0
	for _, l := range g.lines {
		n += len(l)
	}
	return n
}

// SplitLine separates "<date> <fragment> [fragment...]" on single spaces.
// Fragments after the date are joined without a delimiter; commas already in
// the payload are kept as they are.
func SplitLine(line string) (date, payload string) {
	parts := strings.Split(line, " ")
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], "")
}

// GroupLines groups every line by its date key.
func GroupLines(lines []string) *RawGroups {
	g := NewRawGroups()
	for _, l := range lines {
		g.Add(l)
	}
	return g
}

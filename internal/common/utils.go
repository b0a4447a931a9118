package common

import "strings"

// CollapseSpaces trims s and reduces each whitespace run, non-breaking
// spaces included, to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

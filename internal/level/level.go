// Package level defines the CEFR proficiency scale used throughout leveltext.
package level

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency level. The zero value is invalid; valid levels
// are strictly ordered A1 < A2 < B1 < B2 < C1.
type Level int

const (
	A1 Level = iota + 1
	A2
	B1
	B2
	C1
)

var names = map[Level]string{
	A1: "A1",
	A2: "A2",
	B1: "B1",
	B2: "B2",
	C1: "C1",
}

// All returns the supported levels in ascending order.
func All() []Level {
	return []Level{A1, A2, B1, B2, C1}
}

// String returns the canonical level name, e.g. "B1".
func (l Level) String() string {
	if name, ok := names[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	_, ok := names[l]
	return ok
}

// Above reports whether l is strictly harder than target.
func (l Level) Above(target Level) bool {
	return l > target
}

// UnsupportedLevelError is returned when an input string does not name a
// supported CEFR level.
type UnsupportedLevelError struct {
	Input string
}

func (e *UnsupportedLevelError) Error() string {
	return fmt.Sprintf("unsupported CEFR level %q (expected A1, A2, B1, B2 or C1)", e.Input)
}

// Parse converts a level name to a Level. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(s string) (Level, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for l, name := range names {
		if name == normalized {
			return l, nil
		}
	}
	return 0, &UnsupportedLevelError{Input: s}
}

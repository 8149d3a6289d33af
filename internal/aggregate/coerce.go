package aggregate

import (
	"math"
	"strconv"
	"strings"
)

// coerceInt reads a count column. Missing or non-numeric values are 0 and
// floats are truncated toward zero.
func coerceInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// coerceBool reads a flag column. Anything ParseBool understands is taken as
// is; other numbers are true when non-zero, other text is true when non-empty.
func coerceBool(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return true
}

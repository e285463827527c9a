package sequence

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseCount turns user input into a batch size. Anything that is not a
// positive integer becomes 1.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// CountFrom coerces a loosely typed count, as decoded from JSON or tool
// arguments, with the same rules as ParseCount. Fractional numbers are
// rejected rather than truncated.
func CountFrom(v any) int {
	switch n := v.(type) {
	case int:
		return normalizeCount(n)
	case int64:
		if n > math.MaxInt {
			return 1
		}
		return normalizeCount(int(n))
	case float64:
		if n != math.Trunc(n) || n <= 0 || n >= math.MaxInt {
			return 1
		}
		return normalizeCount(int(n))
	case json.Number:
		return ParseCount(string(n))
	case string:
		return ParseCount(n)
	default:
		return 1
	}
}

func normalizeCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

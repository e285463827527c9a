// Package article parses and formats article strings used as label text.
//
// An article string is an optional prefix, a run of digits called the
// number field, and an optional suffix. The number field is always the last
// maximal run of ASCII digits in the string.
package article

import (
	"fmt"
	"strconv"
)

// Article is the parsed form of an article string
type Article struct {
	// Prefix is everything before the number field. It is the key under
	// which the high-water mark is stored.
	Prefix string
	// Number is the value of the number field, nil when there is none
	Number *int
	// Width is the digit count of the number field, used for zero padding
	Width int
	// Suffix is everything after the number field
	Suffix string
}

// HasNumber reports whether the article has a number field
func (a Article) HasNumber() bool {
	return a.Number != nil
}

// NumberOr returns the number field or def when there is none
func (a Article) NumberOr(def int) int {
	if a.Number == nil {
		return def
	}
	return *a.Number
}

// WithNumber renders the article with n in place of its number field,
// padded to the original width. Articles without a number field are
// returned unchanged.
func (a Article) WithNumber(n int) string {
	if a.Number == nil {
		return a.Prefix
	}
	return Format(a.Prefix, n, a.Width, a.Suffix)
}

// String renders the article back to its original text
func (a Article) String() string {
	if a.Number == nil {
		return a.Prefix
	}
	return Format(a.Prefix, *a.Number, a.Width, a.Suffix)
}

// Parse splits s into prefix, number field and suffix.
//
// A digit run that does not fit into an int is treated like no digits at all.
func Parse(s string) Article {
	end := -1
	for i := len(s) - 1; i >= 0; i-- {
		if isDigit(s[i]) {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return Article{Prefix: s}
	}

	start := end - 1
	for start > 0 && isDigit(s[start-1]) {
		start--
	}

	digits := s[start:end]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Article{Prefix: s}
	}

	return Article{
		Prefix: s[:start],
		Number: &n,
		Width:  len(digits),
		Suffix: s[end:],
	}
}

// Format renders prefix + n zero padded to width + suffix. A number with
// more digits than width is written in full.
func Format(prefix string, n, width int, suffix string) string {
	return fmt.Sprintf("%s%0*d%s", prefix, width, n, suffix)
}

// DigitCount returns the number of decimal digits of n
func DigitCount(n int) int {
	return len(strconv.Itoa(n))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

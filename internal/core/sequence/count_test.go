package sequence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"3":     3,
		" 12 ":  12,
		"+4":    4,
		"0":     1,
		"-2":    1,
		"":      1,
		"three": 1,
		"2.5":   1,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCount(in), "ParseCount(%q)", in)
	}
}

func TestCountFrom(t *testing.T) {
	assert.Equal(t, 5, CountFrom(5))
	assert.Equal(t, 5, CountFrom(int64(5)))
	assert.Equal(t, 5, CountFrom(5.0))
	assert.Equal(t, 1, CountFrom(5.5))
	assert.Equal(t, 7, CountFrom(json.Number("7")))
	assert.Equal(t, 7, CountFrom("7"))
	assert.Equal(t, 1, CountFrom(nil))
	assert.Equal(t, 1, CountFrom(-3))
	assert.Equal(t, 1, CountFrom(true))
}

func TestCountFrom_LargeValuesMatchParseCount(t *testing.T) {
	const big = 5000000000
	assert.Equal(t, big, ParseCount("5000000000"))
	assert.Equal(t, big, CountFrom(int64(big)))
	assert.Equal(t, big, CountFrom(float64(big)))
	assert.Equal(t, big, CountFrom(json.Number("5000000000")))

	assert.Equal(t, 1, CountFrom(1e30), "beyond int")
	assert.Equal(t, 1, CountFrom(-1e30))

	// the generator cap applies to every path alike
	g := NewGenerator(nil, WithMaxCount(1000))
	assert.Len(t, g.Expand("A1", CountFrom(float64(big))), 1000)
	assert.Len(t, g.Expand("A1", ParseCount("5000000000")), 1000)
}

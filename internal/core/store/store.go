// Package store persists the last issued number per article prefix.
//
// Every backend fails open: an unreadable or corrupt backing store is logged
// and reported as "no record" by the read operations, so label generation
// keeps working when numbering history is lost.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name
var ErrUnknownDriver = errors.New("unknown store driver")

// ErrCorrupt is returned by OpenBolt and OpenSQLite when the file exists but
// is not a readable database
var ErrCorrupt = errors.New("sequence database is corrupt")

// Store maps an article prefix to its high-water mark
type Store interface {
	// GetLast returns the last issued number for prefix. Non-integer and
	// unreadable values are reported as not found.
	GetLast(ctx context.Context, prefix string) (int, bool)

	// SetLast records n as the high-water mark for prefix. The value is
	// durable once SetLast returns nil.
	SetLast(ctx context.Context, prefix string, n int) error

	// Lookup returns the raw persisted value for prefix, whatever its type
	Lookup(ctx context.Context, prefix string) (Value, bool)

	// List returns every record ordered by prefix
	List(ctx context.Context) ([]Record, error)

	// Close releases the backing resources
	Close() error
}

// Value is a loosely typed persisted value. Documents written by hand or by
// older tools may hold strings or floats where an integer is expected.
type Value struct {
	Raw any
}

// Int returns the value as an int when it is integer-valued
func (v Value) Int() (int, bool) {
	switch n := v.Raw.(type) {
	case int:
		return n, true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 0)
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// String renders the raw value for display
func (v Value) String() string {
	if v.Raw == nil {
		return "null"
	}
	return fmt.Sprint(v.Raw)
}

// Record is one persisted prefix entry
type Record struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Value  Value  `json:"-" yaml:"-"`
}

// Last returns the integer high-water mark of the record, if any
func (r Record) Last() (int, bool) {
	return r.Value.Int()
}

// Document is the on-disk shape of the file backend: prefix -> value
type Document map[string]any

func (d Document) records() []Record {
	records := make([]Record, 0, len(d))
	for prefix, raw := range d {
		records = append(records, Record{Prefix: prefix, Value: Value{Raw: raw}})
	}
	sortRecords(records)
	return records
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Prefix < records[j].Prefix
	})
}

// lastFrom adapts a Lookup result to GetLast semantics
func lastFrom(v Value, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	return v.Int()
}

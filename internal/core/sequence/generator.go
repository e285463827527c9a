// Package sequence allocates article numbers per prefix and expands a base
// article into a batch of sequential label strings.
package sequence

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/aki/qrlabel/internal/core/article"
	"github.com/aki/qrlabel/internal/core/logger"
	"github.com/aki/qrlabel/internal/core/store"
)

// Batch is the result of one allocation
type Batch struct {
	// ID identifies the batch in logs and responses
	ID string `json:"batch_id"`
	// Requested is the base article as supplied by the caller
	Requested string `json:"requested"`
	// Base is the article the batch actually starts with. It differs from
	// Requested when the requested number had already been issued.
	Base string `json:"base"`
	// Prefix is the store key the batch was allocated under
	Prefix string `json:"prefix"`
	// Count is the effective batch size after coercion
	Count int `json:"count"`
	// Labels are the label strings in print order
	Labels []string `json:"labels"`
	// NextNumber is where the following batch for Prefix starts. Zero when
	// nothing was allocated.
	NextNumber int `json:"next_number,omitempty"`
	// Width is the zero-padding width of the number field
	Width int `json:"num_len"`
	// Overridden reports that the requested number collided with the store
	Overridden bool `json:"overridden"`
}

// Allocated reports whether the batch advanced the store
func (b *Batch) Allocated() bool {
	return b.NextNumber > 0
}

// Peek is the read-only view of the next number for a prefix
type Peek struct {
	Prefix     string `json:"prefix"`
	NextNumber int    `json:"next_number"`
	Width      int    `json:"num_len"`
}

// NextArticle renders the article the next batch would start with
func (p Peek) NextArticle() string {
	return article.Format(p.Prefix, p.NextNumber, p.Width, "")
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for allocation events
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.log = logger.OrNop(l)
	}
}

// WithMaxCount caps the batch size. Larger requests are clamped.
func WithMaxCount(n int) Option {
	return func(g *Generator) {
		g.maxCount = n
	}
}

// WithIDFunc replaces the batch ID source
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) {
		g.newID = fn
	}
}

// Generator issues label batches backed by a Store
type Generator struct {
	store    store.Store
	locks    *keyedMutex
	log      logger.Logger
	maxCount int
	newID    func() string
}

// NewGenerator creates a Generator on top of s
func NewGenerator(s store.Store, opts ...Option) *Generator {
	g := &Generator{
		store: s,
		locks: newKeyedMutex(),
		log:   logger.Nop(),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) clamp(count int) int {
	count = normalizeCount(count)
	if g.maxCount > 0 && count > g.maxCount {
		g.log.Warn("batch size clamped", "requested", count, "max", g.maxCount)
		return g.maxCount
	}
	return count
}

// Generate allocates count labels starting at base.
//
// If the store already issued base's number or a later one for the same
// prefix, numbering continues after the stored high-water mark instead.
// Articles without a number field produce count copies of base and leave
// the store alone, as does an empty base, which yields no labels.
//
// A non-nil error means the new high-water mark could not be persisted. The
// returned batch is still complete in that case.
func (g *Generator) Generate(ctx context.Context, base string, count int) (*Batch, error) {
	count = g.clamp(count)

	b := &Batch{
		ID:        g.newID(),
		Requested: base,
		Base:      base,
		Count:     count,
		Labels:    []string{},
	}
	if base == "" {
		return b, nil
	}

	a := article.Parse(base)
	b.Prefix = a.Prefix
	b.Width = a.Width

	if !a.HasNumber() {
		b.Labels = repeat(base, count)
		return b, nil
	}

	unlock := g.locks.Lock(a.Prefix)
	defer unlock()

	log := g.log.With("batch", b.ID, "prefix", a.Prefix)

	number := *a.Number
	if last, ok := g.store.GetLast(ctx, a.Prefix); ok && number <= last {
		if last == math.MaxInt {
			log.Warn("number space exhausted, labels repeat the base", "last", last)
			b.Labels = repeat(base, count)
			return b, nil
		}
		log.Info("requested number already issued, continuing after high-water mark",
			"requested", number, "last", last)
		number = last + 1
		b.Overridden = true
	}
	// NextNumber has to be representable too
	if number > math.MaxInt-count {
		log.Warn("batch would overflow the number field, labels repeat the base",
			"first", number, "count", count)
		b.Base = base
		b.Overridden = false
		b.Labels = repeat(base, count)
		return b, nil
	}

	b.Base = a.WithNumber(number)
	b.Labels = expand(a, number, count)
	b.NextNumber = number + count

	high := number + count - 1
	if err := g.store.SetLast(ctx, a.Prefix, high); err != nil {
		log.Error("failed to persist high-water mark", "last", high, "error", err)
		return b, fmt.Errorf("persist high-water mark for %q: %w", a.Prefix, err)
	}

	log.Debug("batch allocated", "first", number, "last", high, "count", count)
	return b, nil
}

// Expand renders count labels starting at base without consulting or
// updating the store.
func (g *Generator) Expand(base string, count int) []string {
	return Expand(base, g.clamp(count))
}

// Expand renders count sequential labels starting at base. Non-positive
// counts are treated as 1.
func Expand(base string, count int) []string {
	count = normalizeCount(count)
	a := article.Parse(base)
	if !a.HasNumber() || !fits(*a.Number, count) {
		return repeat(base, count)
	}
	return expand(a, *a.Number, count)
}

// PeekNext reports the number the next batch for article's prefix would
// start with. The store is never modified.
func (g *Generator) PeekNext(ctx context.Context, art string) Peek {
	a := article.Parse(art)
	p := Peek{Prefix: a.Prefix, Width: a.Width}

	if last, ok := g.store.GetLast(ctx, a.Prefix); ok {
		// zero once the number space is exhausted
		if last < math.MaxInt {
			p.NextNumber = last + 1
		}
	} else if n := a.NumberOr(0); n != 0 {
		p.NextNumber = n
	} else {
		p.NextNumber = 1
	}

	// A bare prefix borrows its width from the stored integer, if there is one
	if p.Width == 0 {
		if v, ok := g.store.Lookup(ctx, a.Prefix); ok {
			if n, isInt := v.Int(); isInt {
				p.Width = article.DigitCount(n)
			}
		}
	}

	return p
}

// fits reports whether start..start+count-1 stays within int
func fits(start, count int) bool {
	return start <= math.MaxInt-count+1
}

func expand(a article.Article, start, count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = article.Format(a.Prefix, start+i, a.Width, a.Suffix)
	}
	return labels
}

func repeat(s string, count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = s
	}
	return labels
}

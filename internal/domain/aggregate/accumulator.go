// Package aggregate accumulates weighted survey counts per key and reduces
// them into percentage rankings.
package aggregate

import (
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Bucket holds the weighted totals of one key. Matched never exceeds Total.
type Bucket struct {
	Total   int64
	Matched int64
}

// Accumulator is a single-pass keyed counter. It is not safe for concurrent use.
type Accumulator[K comparable] struct {
	buckets map[K]*Bucket
	order   []K
	growing bool
}

// NewAccumulator seeds every key of domain at zero. Keys outside the domain are
// rejected by Add.
func NewAccumulator[K comparable](domain []K) *Accumulator[K] {
	a := &Accumulator[K]{buckets: make(map[K]*Bucket, len(domain))}
	for _, k := range domain {
		a.Seed(k)
	}
	return a
}

// NewGrowingAccumulator accepts any key and keeps first-seen order.
func NewGrowingAccumulator[K comparable]() *Accumulator[K] {
	return &Accumulator[K]{buckets: make(map[K]*Bucket), growing: true}
}

// Seed adds key to the domain at zero. Seeding an existing key is a no-op.
func (a *Accumulator[K]) Seed(key K) {
	if _, ok := a.buckets[key]; ok {
		return
	}
	a.buckets[key] = &Bucket{}
	a.order = append(a.order, key)
}

// Add counts weight towards key. When matched is true the weight also counts
// towards Matched.
func (a *Accumulator[K]) Add(key K, weight int64, matched bool) error {
	if weight < 0 {
		return fmt.Errorf("%w: negative weight %d", types.ErrMalformedNumeric, weight)
	}
	b, ok := a.buckets[key]
	if !ok {
		if !a.growing {
			return fmt.Errorf("%w: %v", types.ErrUnknownKey, key)
		}
		a.Seed(key)
		b = a.buckets[key]
	}
	b.Total += weight
	if matched {
		b.Matched += weight
	}
	return nil
}

// Has reports whether key belongs to the domain.
func (a *Accumulator[K]) Has(key K) bool {
	_, ok := a.buckets[key]
	return ok
}

// Bucket returns a copy of the bucket of key; unknown keys read as zero.
func (a *Accumulator[K]) Bucket(key K) Bucket {
	if b, ok := a.buckets[key]; ok {
		return *b
	}
	return Bucket{}
}

// Keys returns the domain in seeding order.
func (a *Accumulator[K]) Keys() []K {
	out := make([]K, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the domain size.
func (a *Accumulator[K]) Len() int {
	return len(a.order)
}

// Sum returns the bucket of all keys combined.
func (a *Accumulator[K]) Sum() Bucket {
	var s Bucket
	for _, k := range a.order {
		b := a.buckets[k]
		s.Total += b.Total
		s.Matched += b.Matched
	}
	return s
}

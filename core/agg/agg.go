// Package agg has the running accumulators behind the aggregation engine.
package agg

import "iter"

// Mean accumulates an arithmetic mean without holding the values.
type Mean struct {
	sum   float64
	count int
}

// Add folds v into the mean.
func (m *Mean) Add(v float64) {
	m.sum += v
	m.count++
}

// Count returns the number of values added.
func (m Mean) Count() int {
	return m.count
}

// Value returns the mean, or 0 when nothing was added. Callers check Count first.
func (m Mean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Grouped accumulates one Mean per key and remembers the order keys were first seen.
type Grouped[K comparable] struct {
	index map[K]int
	keys  []K
	means []Mean
}

// NewGrouped creates an empty Grouped accumulator.
func NewGrouped[K comparable]() *Grouped[K] {
	return &Grouped[K]{index: make(map[K]int)}
}

// Add folds v into the mean of key.
func (g *Grouped[K]) Add(key K, v float64) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.keys)
		g.index[key] = i
		g.keys = append(g.keys, key)
		g.means = append(g.means, Mean{})
	}
	g.means[i].Add(v)
}

// Len returns the number of distinct keys.
func (g *Grouped[K]) Len() int {
	return len(g.keys)
}

// All yields every key with its mean in first-seen order.
func (g *Grouped[K]) All() iter.Seq2[K, Mean] {
	return func(yield func(K, Mean) bool) {
		for i, k := range g.keys {
			if !yield(k, g.means[i]) {
				return
			}
		}
	}
}

// Fixed accumulates means over a dense range of small integer keys [0, n).
type Fixed struct {
	means []Mean
}

// NewFixed creates a Fixed accumulator with n buckets.
func NewFixed(n int) *Fixed {
	return &Fixed{means: make([]Mean, n)}
}

// Add folds v into bucket i. Out-of-range buckets are ignored.
func (f *Fixed) Add(i int, v float64) {
	if i < 0 || i >= len(f.means) {
		return
	}
	f.means[i].Add(v)
}

// NonEmpty yields the buckets that received at least one value, in key order.
func (f *Fixed) NonEmpty() iter.Seq2[int, Mean] {
	return func(yield func(int, Mean) bool) {
		for i, m := range f.means {
			if m.count == 0 {
				continue
			}
			if !yield(i, m) {
				return
			}
		}
	}
}

// Package bloom provides campaign-URL deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which campaign URLs a batch verification has already seen.
// Keys should be canonical URL forms so tracking-parameter variants of the
// same campaign page collapse to one entry.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a canonical URL key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Seen returns true if the key was probably added before.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

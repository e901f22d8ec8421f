package distance

import "math"

type pair[T comparable] struct {
	a, b T
}

// CacheStats reports how many distances a Cache computed and how many it
// served from memory.
type CacheStats struct {
	Computed int
	Hits     int
}

// Cache memoizes a metric per unordered pair of objects.
//
// Keys are object values, not addresses, and (a, b) and (b, a) share one
// slot. A Cache is meant to live for a single structural operation or query
// and is not safe for concurrent use.
type Cache[T comparable] struct {
	fn    Func[T]
	items map[pair[T]]float64
	stats CacheStats
}

// NewCache wraps fn.
func NewCache[T comparable](fn Func[T]) *Cache[T] {
	return &Cache[T]{
		fn:    fn,
		items: make(map[pair[T]]float64),
	}
}

// Distance returns fn(a, b), computing it at most once per unordered pair.
// Identical objects are at distance 0 without calling fn.
//
// Distance panics with *InvalidDistanceError if fn returns a negative or NaN
// value.
func (c *Cache[T]) Distance(a, b T) float64 {
	if a == b {
		return 0
	}
	if d, ok := c.items[pair[T]{a, b}]; ok {
		c.stats.Hits++
		return d
	}
	if d, ok := c.items[pair[T]{b, a}]; ok {
		c.stats.Hits++
		return d
	}
	d := c.fn(a, b)
	if d < 0 || math.IsNaN(d) {
		panic(&InvalidDistanceError{Distance: d})
	}
	c.items[pair[T]{a, b}] = d
	c.stats.Computed++
	return d
}

// Stats returns the computed/hit counters since creation or the last Reset.
func (c *Cache[T]) Stats() CacheStats {
	return c.stats
}

// Len returns the number of memoized pairs.
func (c *Cache[T]) Len() int {
	return len(c.items)
}

// Reset drops every memoized distance and zeroes the counters.
func (c *Cache[T]) Reset() {
	clear(c.items)
	c.stats = CacheStats{}
}

package config

import "sync"

// lazyCell is a write-once container: the first successful computation is
// retained for the lifetime of the owner. Failed computations are not
// memoized, so a later Get runs the computation again. Concurrent callers
// block while a computation is in flight and then observe its result.
type lazyCell[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

// Get returns the cached value, computing it first if the cell is empty.
func (c *lazyCell[T]) Get(compute func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set {
		return c.value, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = v
	c.set = true
	return v, nil
}

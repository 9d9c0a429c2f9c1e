// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a typed in-memory cache that coalesces concurrent
// fetches of the same key.
package cache

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNotExist is returned when a key does not exist in the cache.
var ErrNotExist = errors.New("does not exist")

// entry wraps the fetch for one key so that it runs at most once.
// It is a pointer type so entries stay comparable for CompareAndDelete.
type entry[V any] struct {
	get func() (V, error)
}

// Coalescing caches the result of a fetch per key. Concurrent callers of
// GetOrSet for the same key share a single fetch. Failed fetches are not
// retained.
type Coalescing[K comparable, V any] struct {
	data sync.Map // K -> *entry[V]
}

func (c *Coalescing[K, V]) resolve(key K, e *entry[V]) (V, error) {
	val, err := e.get()
	if err != nil {
		c.data.CompareAndDelete(key, e)
	}
	return val, err
}

// Get returns the cached value for key, or ErrNotExist.
func (c *Coalescing[K, V]) Get(key K) (V, error) {
	e, ok := c.data.Load(key)
	if !ok {
		var zero V
		return zero, ErrNotExist
	}
	return c.resolve(key, e.(*entry[V]))
}

// GetOrSet returns the cached value for key, running fetch to populate it
// when absent.
func (c *Coalescing[K, V]) GetOrSet(key K, fetch func() (V, error)) (V, error) {
	e, _ := c.data.LoadOrStore(key, &entry[V]{sync.OnceValues(fetch)})
	return c.resolve(key, e.(*entry[V]))
}

// Del removes key.
func (c *Coalescing[K, V]) Del(key K) {
	c.data.Delete(key)
}

// Clear removes every key.
func (c *Coalescing[K, V]) Clear() {
	c.data.Clear()
}

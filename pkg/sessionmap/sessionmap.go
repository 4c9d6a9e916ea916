// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sessionmap provides a concurrency-safe keyed store whose entries
// expire after a period of inactivity.
//
// # Usage
//
// It backs per-client state that only lives in process memory: rate limiters
// keyed by IP and card browsers keyed by browsing session. A janitor started
// with [Map.Run] evicts idle entries until its context is cancelled.
package sessionmap

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	lastSeen time.Time
}

// Map is a TTL map keyed by string. The zero value is not usable; see [New].
type Map[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// Option customises a [Map] at construction time.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces [time.Now] as the source of activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a Map whose entries are evicted once idle for longer than ttl.
func New[V any](ttl time.Duration, opts ...Option) *Map[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Map[V]{
		entries: make(map[string]*entry[V]),
		ttl:     ttl,
		now:     o.now,
	}
}

// GetOrCreate returns the value stored under key, creating it with create
// when absent. Either way the entry's activity timestamp is refreshed.
func (m *Map[V]) GetOrCreate(key string, create func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.entries[key]
	if !found {
		current = &entry[V]{value: create()}
		m.entries[key] = current
	}
	current.lastSeen = m.now()

	return current.value
}

// Get returns the value stored under key without refreshing it.
func (m *Map[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := m.entries[key]
	if !found {
		var zero V
		return zero, false
	}
	return current.value, true
}

// Delete removes key if present.
func (m *Map[V]) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len reports the number of live entries.
func (m *Map[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep evicts every entry idle for longer than the TTL and returns how many were removed.
func (m *Map[V]) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for key, current := range m.entries {
		if current.lastSeen.Before(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps the map every interval until ctx is cancelled. It blocks, so
// callers start it on its own goroutine.
func (m *Map[V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Package pqueue defines the options and sentinel errors of the generic
// min-priority queue.
package pqueue

import "errors"

// ErrEmptyQueue is returned by Dequeue when Count() == 0.
var ErrEmptyQueue = errors.New("pqueue: queue is empty")

// Option configures a Queue at construction.
type Option func(*Options)

// Options holds construction parameters for a Queue.
type Options struct {
	// Capacity pre-sizes the backing heap. Zero means no pre-allocation.
	Capacity int
}

// DefaultOptions returns Options with no pre-allocation.
func DefaultOptions() Options {
	return Options{Capacity: 0}
}

// WithCapacity pre-sizes the backing heap for n elements.
// Negative values are ignored.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Capacity = n
		}
	}
}

// Package pqueue provides a generic min-priority queue used by the
// cost-aware searches (Dijkstra and A*).
//
// Overview:
//
//   - Queue[T] stores (element, priority) pairs with no uniqueness
//     constraint: the same element may be queued repeatedly with different
//     priorities ("lazy decrease-key"), and every copy comes back out.
//   - Dequeue always returns an element of minimum priority. Ties go to the
//     element enqueued first, which keeps search results reproducible.
//
// Complexity:
//
//   - Enqueue: O(log n)
//   - Dequeue: O(log n)
//   - Count: O(1)
//
// Errors:
//
//   - ErrEmptyQueue: Dequeue on an empty queue.
//
// Thread safety: a Queue is not safe for concurrent use.
package pqueue

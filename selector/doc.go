// Package selector keeps the process-wide choice of search algorithm.
//
// The choice is restored from a Store at startup under the key
// "currentAlgorithm" and written back on every change. Components that
// depend on it (the sandbox) Subscribe and recompute when it changes:
//
//	sel, err := selector.New(prefs.NewMemoryStore())
//	sel.Subscribe(func(a search.Algorithm) { sb.Recompute() })
//	sel.SetCurrent(search.AStar) // update, persist, notify
//
// A missing or corrupt stored value silently (missing) or with a warning
// (out of range) falls back to breadth-first search.
package selector

// Package prefs provides the key-value stores behind selector.Store.
//
// FileStore persists a flat YAML mapping of string keys to integers:
//
//	currentAlgorithm: 2
//
// MemoryStore keeps values in memory only.
package prefs

package selector

import (
	"errors"
	"io"
	"log/slog"
)

// PreferenceKey is the key under which the chosen algorithm is persisted.
const PreferenceKey = "currentAlgorithm"

var (
	// ErrInvalidAlgorithm is returned by SetCurrent for a value outside the
	// search.Algorithm enum.
	ErrInvalidAlgorithm = errors.New("selector: invalid algorithm")

	// ErrNilStore is returned by New when no Store is given.
	ErrNilStore = errors.New("selector: store is nil")
)

// Store is a durable integer key-value store. Values survive restarts once
// Save has returned nil.
type Store interface {
	// GetInt returns the value stored under key and whether it exists.
	GetInt(key string) (int, bool, error)
	// SetInt stages v under key.
	SetInt(key string, v int) error
	// Save flushes staged values.
	Save() error
}

// Option configures a Selector.
type Option func(*Options)

// Options holds the logger used to report fallbacks and persistence issues.
type Options struct {
	Logger *slog.Logger
}

// DefaultOptions returns Options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

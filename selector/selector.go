package selector

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/tilepath/search"
)

// Selector holds the algorithm currently chosen by the user, persists every
// change and tells subscribers about it.
type Selector struct {
	mu      sync.Mutex
	store   Store
	current search.Algorithm
	subs    []func(search.Algorithm)
	log     *slog.Logger
}

// New restores the persisted choice from store. A missing or out-of-range
// value selects search.BreadthFirstSearch; an out-of-range value is also
// logged as a warning. Read errors from store are returned, and a nil store
// yields ErrNilStore.
func New(store Store, opts ...Option) (*Selector, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Selector{store: store, current: search.BreadthFirstSearch, log: o.Logger}
	v, ok, err := store.GetInt(PreferenceKey)
	if err != nil {
		return nil, fmt.Errorf("selector: restore %q: %w", PreferenceKey, err)
	}
	switch {
	case !ok:
	case !search.Algorithm(v).Valid():
		s.log.Warn("stored algorithm out of range, using default",
			slog.Int("stored", v),
			slog.String("default", s.current.String()),
		)
	default:
		s.current = search.Algorithm(v)
	}
	return s, nil
}

// Current returns the selected algorithm.
func (s *Selector) Current() search.Algorithm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to be called after every successful change.
// Callbacks run synchronously in registration order.
func (s *Selector) Subscribe(fn func(search.Algorithm)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// SetCurrent selects a, persists it under PreferenceKey and notifies the
// subscribers, in that order. An invalid a returns ErrInvalidAlgorithm and
// changes nothing. A persistence failure is returned after the in-memory
// change and the notification have happened.
func (s *Selector) SetCurrent(a search.Algorithm) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(a))
	}

	s.mu.Lock()
	s.current = a
	subs := make([]func(search.Algorithm), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	perr := s.persist(a)
	for _, fn := range subs {
		fn(a)
	}
	return perr
}

// Cycle advances to the next algorithm, wrapping after the last.
func (s *Selector) Cycle() error {
	return s.SetCurrent(s.Current().Next())
}

func (s *Selector) persist(a search.Algorithm) error {
	if err := s.store.SetInt(PreferenceKey, int(a)); err != nil {
		s.log.Warn("could not stage algorithm preference", slog.Any("error", err))
		return fmt.Errorf("selector: persist %s: %w", a, err)
	}
	if err := s.store.Save(); err != nil {
		s.log.Warn("could not save algorithm preference", slog.Any("error", err))
		return fmt.Errorf("selector: save %s: %w", a, err)
	}
	return nil
}

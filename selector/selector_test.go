package selector_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/prefs"
	"github.com/katalvlaran/tilepath/search"
	"github.com/katalvlaran/tilepath/selector"
)

var errDisk = errors.New("disk full")

// failingStore returns errors from the configured operations.
type failingStore struct {
	*prefs.MemoryStore
	getErr, setErr, saveErr error
}

func (f *failingStore) GetInt(key string) (int, bool, error) {
	if f.getErr != nil {
		return 0, false, f.getErr
	}
	return f.MemoryStore.GetInt(key)
}

func (f *failingStore) SetInt(key string, v int) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.SetInt(key, v)
}

func (f *failingStore) Save() error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save()
}

func newFailing() *failingStore {
	return &failingStore{MemoryStore: prefs.NewMemoryStore()}
}

func TestNew_Defaults(t *testing.T) {
	sel, err := selector.New(prefs.NewMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, search.BreadthFirstSearch, sel.Current())

	_, err = selector.New(nil)
	assert.ErrorIs(t, err, selector.ErrNilStore)
}

func TestNew_Restores(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, store.SetInt(selector.PreferenceKey, int(search.AStar)))
	sel, err := selector.New(store)
	require.NoError(t, err)
	assert.Equal(t, search.AStar, sel.Current())
}

func TestNew_OutOfRangeFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := prefs.NewMemoryStore()
	require.NoError(t, store.SetInt(selector.PreferenceKey, 9))

	sel, err := selector.New(store, selector.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, search.BreadthFirstSearch, sel.Current())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "stored=9")
}

func TestNew_ReadError(t *testing.T) {
	store := newFailing()
	store.getErr = errDisk
	_, err := selector.New(store)
	assert.ErrorIs(t, err, errDisk)
}

// TestSetCurrent_Order checks that the stored value is already updated when
// subscribers run.
func TestSetCurrent_Order(t *testing.T) {
	store := prefs.NewMemoryStore()
	sel, err := selector.New(store)
	require.NoError(t, err)

	var seen []search.Algorithm
	sel.Subscribe(func(a search.Algorithm) {
		assert.Equal(t, a, sel.Current())
		v, ok, _ := store.GetInt(selector.PreferenceKey)
		assert.True(t, ok)
		assert.Equal(t, int(a), v)
		assert.Equal(t, 1, store.Saves())
		seen = append(seen, a)
	})
	sel.Subscribe(nil)

	require.NoError(t, sel.SetCurrent(search.Dijkstra))
	assert.Equal(t, []search.Algorithm{search.Dijkstra}, seen)
}

func TestSetCurrent_Invalid(t *testing.T) {
	store := prefs.NewMemoryStore()
	sel, err := selector.New(store)
	require.NoError(t, err)
	called := false
	sel.Subscribe(func(search.Algorithm) { called = true })

	err = sel.SetCurrent(search.Algorithm(3))
	assert.ErrorIs(t, err, selector.ErrInvalidAlgorithm)
	assert.Equal(t, search.BreadthFirstSearch, sel.Current())
	assert.False(t, called)
	assert.Equal(t, 0, store.Saves())
}

func TestSetCurrent_PersistFailure(t *testing.T) {
	for name, configure := range map[string]func(*failingStore){
		"set":  func(f *failingStore) { f.setErr = errDisk },
		"save": func(f *failingStore) { f.saveErr = errDisk },
	} {
		t.Run(name, func(t *testing.T) {
			store := newFailing()
			sel, err := selector.New(store)
			require.NoError(t, err)
			configure(store)
			notified := 0
			sel.Subscribe(func(search.Algorithm) { notified++ })

			err = sel.SetCurrent(search.AStar)
			assert.ErrorIs(t, err, errDisk)
			assert.Equal(t, search.AStar, sel.Current())
			assert.Equal(t, 1, notified)
		})
	}
}

func TestCycle(t *testing.T) {
	sel, err := selector.New(prefs.NewMemoryStore())
	require.NoError(t, err)
	var got []search.Algorithm
	for i := 0; i < 4; i++ {
		require.NoError(t, sel.Cycle())
		got = append(got, sel.Current())
	}
	assert.Equal(t, []search.Algorithm{
		search.Dijkstra, search.AStar, search.BreadthFirstSearch, search.Dijkstra,
	}, got)
}

// TestPersistsAcrossRestart uses the YAML file store.
func TestPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	fs, err := prefs.NewFileStore(path)
	require.NoError(t, err)
	sel, err := selector.New(fs)
	require.NoError(t, err)
	require.NoError(t, sel.SetCurrent(search.Dijkstra))

	fs2, err := prefs.NewFileStore(path)
	require.NoError(t, err)
	sel2, err := selector.New(fs2)
	require.NoError(t, err)
	assert.Equal(t, search.Dijkstra, sel2.Current())
}

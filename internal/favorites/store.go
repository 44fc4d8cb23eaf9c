// Package favorites persists the shortlist of rooms a user has sent cards to.
//
// The file is rewritten in full on every change (load, mutate, save) with no
// file lock. Two cardcourier processes updating the same file at once can
// lose an update; the last writer wins. That is accepted for a single-user
// interactive tool.
package favorites

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/cardcourier/internal/types"
)

// Store is a JSON-file-backed favorites list, most recently added first.
type Store struct {
	path  string
	async bool

	// mu serializes load-mutate-save within one process. Background writes
	// are drained under mu before the next read.
	mu      sync.Mutex
	pending sync.WaitGroup
	errMu   sync.Mutex
	saveErr error
}

// Option configures a Store.
type Option func(*Store)

// WithAsyncWrites makes mutations return before the file is written.
// Callers must call Flush before exiting to learn whether writes succeeded.
func WithAsyncWrites() Option {
	return func(s *Store) { s.async = true }
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path used by this store.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored entries. A missing or unparsable file yields an
// empty list.
func (s *Store) Load() ([]types.FavoriteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()
	return s.load()
}

// Append adds entries to the end of the list without checking for
// duplicates and rewrites the file.
func (s *Store) Append(entries ...types.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()

	existing, err := s.load()
	if err != nil {
		return err
	}
	return s.commit(append(existing, entries...))
}

// PrependIfAbsent inserts entry at the front unless an entry with the same
// Value is already stored. It reports whether the list changed.
func (s *Store) PrependIfAbsent(entry types.FavoriteEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()

	existing, err := s.load()
	if err != nil {
		return false, err
	}
	if Contains(existing, entry.Value) {
		return false, nil
	}

	updated := make([]types.FavoriteEntry, 0, len(existing)+1)
	updated = append(updated, entry)
	updated = append(updated, existing...)
	return true, s.commit(updated)
}

// Save replaces the whole list.
func (s *Store) Save(entries []types.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()
	return s.commit(entries)
}

// Flush blocks until every asynchronous write has finished and returns the
// first error any of them hit. It is a no-op for synchronous stores.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Wait()
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.saveErr
}

// Contains reports whether any entry points at the given space.
func Contains(entries []types.FavoriteEntry, id types.SpaceID) bool {
	for _, e := range entries {
		if e.Value == id {
			return true
		}
	}
	return false
}

// commit writes entries now or in the background depending on the mode.
// Callers hold s.mu.
func (s *Store) commit(entries []types.FavoriteEntry) error {
	if !s.async {
		return s.save(entries)
	}

	snapshot := make([]types.FavoriteEntry, len(entries))
	copy(snapshot, entries)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.save(snapshot); err != nil {
			slog.Error("favorites write failed", "path", s.path, "error", err)
			s.errMu.Lock()
			if s.saveErr == nil {
				s.saveErr = err
			}
			s.errMu.Unlock()
		}
	}()
	return nil
}

// load reads the JSON file. Returns an empty list if the file doesn't exist
// or is not a JSON array of entries.
func (s *Store) load() ([]types.FavoriteEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []types.FavoriteEntry{}, nil
		}
		return nil, &types.LocalIOError{Op: "read favorites", Path: s.path, Err: err}
	}

	var entries []types.FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("ignoring unparsable favorites file", "path", s.path, "error", err)
		return []types.FavoriteEntry{}, nil
	}
	if entries == nil {
		entries = []types.FavoriteEntry{}
	}
	return entries, nil
}

// save writes the list to disk using atomic write (temp file + rename).
func (s *Store) save(entries []types.FavoriteEntry) error {
	if entries == nil {
		entries = []types.FavoriteEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &types.LocalIOError{Op: "marshal favorites", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &types.LocalIOError{Op: "create favorites dir", Path: dir, Err: err}
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &types.LocalIOError{Op: "write favorites", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &types.LocalIOError{Op: "rename favorites", Path: s.path, Err: err}
	}
	return nil
}

package state

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/velobg/rental-backend/user"
)

// Store owns the in-memory AppState and mirrors it to a JSON file. Saving is
// best-effort: a failed write is logged and the in-memory state stands, so a
// full disk never fails a rental operation.
type Store struct {
	mu         sync.Mutex
	path       string
	adminsPath string
	logger     *slog.Logger

	current AppState
	admins  []user.Admin
}

// Open loads the state file at path, seeding a fresh fleet when no file
// exists yet. Admins live in their own file next to the state: they are
// console credentials and must survive a full state replace from a client.
func Open(path, adminsPath string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:       path,
		adminsPath: adminsPath,
		logger:     logger,
	}

	if err := s.loadState(); err != nil {
		return nil, err
	}
	if err := s.loadAdmins(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadState() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.current = Seed()
		s.save(s.current)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}

	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	s.current = st
	return nil
}

func (s *Store) loadAdmins() error {
	data, err := os.ReadFile(s.adminsPath)
	if errors.Is(err, os.ErrNotExist) {
		admins, err := SeedAdmins()
		if err != nil {
			return err
		}
		s.admins = admins
		s.saveAdmins()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read admins file: %w", err)
	}

	if err := json.Unmarshal(data, &s.admins); err != nil {
		return fmt.Errorf("parse admins file %s: %w", s.adminsPath, err)
	}
	return nil
}

// View returns the current state snapshot. The copy-on-write discipline means
// the caller may read it freely without further locking.
func (s *Store) View() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update runs fn against the current snapshot and commits the state it
// returns. Either fn succeeds and its state becomes visible atomically, or it
// fails and nothing changes. This is the single writer: no two updates ever
// interleave.
func (s *Store) Update(fn func(AppState) (AppState, error)) (AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		return AppState{}, err
	}

	s.current = next
	s.save(next)
	return next, nil
}

// Replace swaps in a complete state pushed by a sync client.
func (s *Store) Replace(next AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	s.save(next)
}

func (s *Store) save(st AppState) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode state", "error", err)
		return
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("failed to save state", "path", s.path, "error", err)
	}
}

func (s *Store) saveAdmins() {
	data, err := json.MarshalIndent(s.admins, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode admins", "error", err)
		return
	}
	if err := writeFileAtomic(s.adminsPath, data); err != nil {
		s.logger.Error("failed to save admins", "path", s.adminsPath, "error", err)
	}
}

// Admins returns the console operators.
func (s *Store) Admins() []user.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admins
}

// FindAdmin returns the admin with the given id.
func (s *Store) FindAdmin(id string) (user.Admin, bool) {
	for _, a := range s.Admins() {
		if a.ID == id {
			return a, true
		}
	}
	return user.Admin{}, false
}

// FindAdminByUsername returns the admin with the given username,
// case-insensitively.
func (s *Store) FindAdminByUsername(username string) (user.Admin, bool) {
	for _, a := range s.Admins() {
		if strings.EqualFold(a.Username, username) {
			return a, true
		}
	}
	return user.Admin{}, false
}

// UpdateAdmin persists a changed admin record (password change).
func (s *Store) UpdateAdmin(updated user.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.admins {
		if a.ID == updated.ID {
			s.admins[i] = updated
			s.saveAdmins()
			return nil
		}
	}
	return user.ErrNotFound
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

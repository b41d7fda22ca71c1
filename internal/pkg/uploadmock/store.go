package uploadmock

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Record is one parsed CSV row, keyed by the header columns.
type Record map[string]string

// Store is the per-user record store behind the mock server. It is injected
// so tests can run against a fresh instance instead of process-global state.
type Store interface {
	Register(username, password string) error
	UserExists(username string) bool
	Usernames() []string
	AppendRecords(username string, records []Record) error
	Records(username string) ([]Record, error)
}

// MemoryStore is the in-memory Store implementation.
type MemoryStore struct {
	mu        sync.RWMutex
	passwords map[string]string
	records   map[string][]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		passwords: make(map[string]string),
		records:   make(map[string][]Record),
	}
}

func (s *MemoryStore) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passwords[username]; ok {
		return ErrUserExists
	}
	s.passwords[username] = password
	s.records[username] = []Record{}
	return nil
}

func (s *MemoryStore) UserExists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.passwords[username]
	return ok
}

func (s *MemoryStore) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.passwords))
	for name := range s.passwords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MemoryStore) AppendRecords(username string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passwords[username]; !ok {
		return ErrUserNotFound
	}
	s.records[username] = append(s.records[username], records...)
	return nil
}

func (s *MemoryStore) Records(username string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.passwords[username]; !ok {
		return nil, ErrUserNotFound
	}
	return s.records[username], nil
}

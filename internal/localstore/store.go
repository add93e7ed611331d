// Package localstore provides synchronous key-value persistence for guest
// state and session tokens. It is the desktop analog of per-origin browser
// storage: one file per key under the vitrin data directory.
package localstore

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a durable string key-value store. All operations are synchronous
// and never fail from the caller's perspective: values live in memory and are
// persisted to disk best-effort. A missing or unreadable file degrades to an
// absent key rather than an error.
type Store struct {
	mu     sync.Mutex
	dir    string
	values map[string]string
}

// Open loads any previously persisted keys from dir and returns a ready
// store. The directory is created when missing; failures to create or read it
// are logged and the store continues in-memory.
func Open(dir string) *Store {
	s := &Store{dir: dir, values: make(map[string]string)}
	if strings.TrimSpace(dir) == "" {
		return s
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Printf("localstore: create %s: %v", dir, err)
		return s
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("localstore: read %s: %v", dir, err)
		return s
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		s.values[entry.Name()] = string(data)
	}
	return s
}

// Get returns the value stored under key, or "" when absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set overwrites the value stored under key.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.persist(key, value)
}

// Delete removes key entirely.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	if s.dir == "" {
		return
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("localstore: remove %s: %v", key, err)
	}
}

func (s *Store) persist(key, value string) {
	if s.dir == "" {
		return
	}
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		log.Printf("localstore: write %s: %v", key, err)
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

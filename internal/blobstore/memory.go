package blobstore

import "sync"

// Memory is an in-process Store backed by a map. It never fails.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Remove deletes the key if present.
func (s *Memory) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Clear removes every key.
func (s *Memory) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]string)
	return nil
}

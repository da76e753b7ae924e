package sessionstore

import (
	"sync"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

type memoryStore struct {
	mutex  sync.RWMutex
	values map[string]string
}

var _ core.SessionStore = (*memoryStore)(nil)

// NewMemoryStore returns a session store living for the duration of the process.
func NewMemoryStore() core.SessionStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(key string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values[key]
}

func (s *memoryStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Remove(keys ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *memoryStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values = make(map[string]string)
	return nil
}

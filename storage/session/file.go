package sessionstore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

type fileStore struct {
	mutex  sync.RWMutex
	path   string
	values map[string]string
}

var _ core.SessionStore = (*fileStore)(nil)

// NewFileStore returns a session store persisted as YAML at path.
// A missing file is an empty session.
func NewFileStore(path string) (core.SessionStore, error) {
	s := &fileStore{path: path, values: make(map[string]string)}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading session file")
	}
	if err = yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrap(err, "decoding session file")
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *fileStore) Get(key string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.values[key]
}

func (s *fileStore) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
	return s.save()
}

func (s *fileStore) Remove(keys ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return s.save()
}

func (s *fileStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values = make(map[string]string)
	return s.save()
}

// save writes the session to a temp file then renames it over the old one.
// the caller must hold the lock.
func (s *fileStore) save() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	tmp, err := ioutil.TempFile(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing session")
	}
	if err = tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "setting session file mode")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing session")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing session file")
}

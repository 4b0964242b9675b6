package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LocalShard creates in-memory storage shards, mainly for tests and dry runs.
func LocalShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewLocalStorage(), nil
	}
}

// LocalStorage keeps serialized values in memory.
type LocalStorage struct {
	files map[Key]string
	mutex *sync.RWMutex
}

// NewLocalStorage creates a new in-memory storage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		files: make(map[Key]string),
		mutex: new(sync.RWMutex),
	}
}

func (l *LocalStorage) Store(k Key, value interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}

	l.files[k] = string(bb)
	return nil
}

func (l *LocalStorage) Load(k Key, value interface{}) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if v, ok := l.files[k]; ok {
		err := json.Unmarshal([]byte(v), value)
		if err != nil {
			return fmt.Errorf("could not unmarshal value: %w", err)
		}
		return nil
	}
	return fmt.Errorf("key not found '%+v': %w", k, NotFoundErr)
}

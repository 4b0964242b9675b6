package storage

import (
	"errors"
	"fmt"
)

const (
	// ReportsDir is the default table for analysis reports.
	ReportsDir = "reports"
)

var (
	// DefaultDir is the root directory for file backed storage.
	DefaultDir = "file-storage"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// Key identifies a stored analysis artifact.
type Key struct {
	Dataset string `json:"dataset"`
	Run     string `json:"run"`
	Label   string `json:"label"`
}

// Path encodes the key as a file name.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s_%s", k.Dataset, k.Run, k.Label)
}

// Persistence stores and retrieves json serializable values.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage is a noop storage
type VoidStorage struct {
}

// NewVoidStorage creates a new noop storage
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}

// VoidShard creates a new noop shard
func VoidShard(table string) Shard {
	return func(shard string) (Persistence, error) {
		return NewVoidStorage(), nil
	}
}

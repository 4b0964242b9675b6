package json

import (
	"path/filepath"

	"github.com/biolens/expca/internal/storage"
)

// BlobStorage stores values as standalone json files under path/table/shard.
type BlobStorage struct {
	path  string
	table string
	shard string
}

// BlobShard creates file backed storage shards for the given table.
func BlobShard(table string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(table, shard), nil
	}
}

// NewJsonBlob creates a new file backed storage under the default storage dir.
func NewJsonBlob(table string, shard string) *BlobStorage {
	return &BlobStorage{
		path:  storage.DefaultDir,
		table: table,
		shard: shard,
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	return Save(filepath.Join(s.path, s.table, s.shard), k.Path(), value)
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(filepath.Join(s.path, s.table, s.shard), k.Path(), value)
}

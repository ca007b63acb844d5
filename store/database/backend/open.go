package backend

import (
	"fmt"

	"github.com/thetatoken/checkpoint/store/database"
)

// Supported database backends
const (
	BackendLevelDB = "leveldb"
	BackendBadger  = "badger"
	BackendMemory  = "memory"
)

// OpenDatabase opens the database of the given backend under dir. cacheMB
// and handles only apply to LevelDB.
func OpenDatabase(backend string, dir string, cacheMB int, handles int) (database.Database, error) {
	switch backend {
	case BackendLevelDB, "":
		return NewLDBDatabase(dir, cacheMB, handles)
	case BackendBadger:
		return NewBadgerDatabase(dir)
	case BackendMemory:
		return NewMemDatabase(), nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %v", backend)
}

package backend

import (
	"os"
	"path"

	"github.com/pkg/errors"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/store/database"
)

// Open opens the database selected by kind under dataPath. The memdb backend
// ignores dataPath.
func Open(kind, dataPath string, cacheSize, fileHandles int) (database.Database, error) {
	if kind != common.StorageBackendMemDB {
		if err := os.MkdirAll(path.Join(dataPath, "db"), 0700); err != nil {
			return nil, errors.Wrap(err, "failed to create db folder")
		}
	}
	switch kind {
	case common.StorageBackendLevelDB, "":
		return NewLDBDatabase(path.Join(dataPath, "db", "main"), cacheSize, fileHandles)
	case common.StorageBackendBadgerDB:
		return NewBadgerDatabase(path.Join(dataPath, "db", "badger"))
	case common.StorageBackendMemDB:
		return NewMemDatabase(), nil
	default:
		return nil, errors.Errorf("unknown storage backend: %v", kind)
	}
}

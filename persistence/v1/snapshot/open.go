package snapshot

import (
	"context"
	"fmt"

	"github.com/onelastai/memory-notes/sys"
	"gocloud.dev/blob/fileblob"
)

// Open builds the Store selected by sys.Configs.Snapshot.Backend from the
// resources already in sys.R. The file backend opens its bucket and keeps it
// in sys.R.Bucket, the caller closes it.
func Open(_ context.Context) (Store, error) {
	cfg := sys.Configs.Snapshot

	switch cfg.Backend {
	case BackendRedis:
		if sys.R.Cache == nil {
			return nil, fmt.Errorf("snapshot backend %s needs a redis client", cfg.Backend)
		}
		return NewRedis(sys.R.Cache, sys.Configs.Cache.OperationTimeout, 0), nil
	case BackendMySQL:
		if sys.R.Database == nil {
			return nil, fmt.Errorf("snapshot backend %s needs a database", cfg.Backend)
		}
		primary := NewSQL(sys.R.Database, sys.Configs.Database.OperationTimeout)
		if sys.R.Cache == nil {
			return primary, nil
		}
		cache := NewRedis(sys.R.Cache, sys.Configs.Cache.OperationTimeout, sys.Configs.Cache.CacheTTL)
		return NewCached(sys.R.Log, primary, cache), nil
	case BackendFile, "":
		if sys.R.Bucket == nil {
			bucket, err := fileblob.OpenBucket(cfg.Dir, &fileblob.Options{CreateDir: true})
			if err != nil {
				return nil, fmt.Errorf("could not open snapshot dir %s: %w", cfg.Dir, err)
			}
			sys.R.Bucket = bucket
		}
		return NewBucket(sys.R.Bucket, cfg.OperationTimeout), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

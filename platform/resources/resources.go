package resources

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/onelastai/memory-notes/business/v1/note"
	"github.com/onelastai/memory-notes/persistence/v1/snapshot"
	"github.com/onelastai/memory-notes/platform/env"
	"github.com/onelastai/memory-notes/sys"
	"go.uber.org/zap"
)

// LoadConfigs fills the database, cache and snapshot sections of sys.Configs
func LoadConfigs(log *zap.SugaredLogger) {
	sys.Configs.Database.ConnectionURL = env.OrDefault(log, "DATABASE_CONNECTION_URL", "root:admin@tcp(localhost:3306)/note?parseTime=true")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")
	sys.Configs.Cache.ConnectionURL = env.OrDefault(log, "CACHE_CONNECTION_URL", "localhost:6379")
	sys.Configs.Cache.User = env.OrDefault(log, "CACHE_USER", "")
	sys.Configs.Cache.Pass = env.OrDefault(log, "CACHE_PASS", "")
	sys.Configs.Cache.PingTimeout = env.DurationDefault(log, "CACHE_PING_TIMEOUT", "2s")
	sys.Configs.Cache.OperationTimeout = env.DurationDefault(log, "CACHE_OPERATION_TIMEOUT", "10s")
	sys.Configs.Cache.CacheTTL = env.DurationDefault(log, "CACHE_CACHE_TTL", "24h")
	sys.Configs.Snapshot.Backend = env.OrDefault(log, "SNAPSHOT_BACKEND", snapshot.BackendFile)
	sys.Configs.Snapshot.Dir = env.OrDefault(log, "SNAPSHOT_DIR", "./data")
	sys.Configs.Snapshot.Key = env.OrDefault(log, "SNAPSHOT_KEY", note.DefaultKey)
	sys.Configs.Snapshot.ProfileKey = env.OrDefault(log, "SNAPSHOT_PROFILE_KEY", note.DefaultProfileKey)
	sys.Configs.Snapshot.TaxonomyFile = env.OrDefault(log, "SNAPSHOT_TAXONOMY_FILE", "")
	sys.Configs.Snapshot.OperationTimeout = env.DurationDefault(log, "SNAPSHOT_OPERATION_TIMEOUT", "5s")
}

// Open connects what the configured snapshot backend needs, builds the note
// store and initializes it. The returned func releases every opened resource.
func Open(ctx context.Context, log *zap.SugaredLogger) (func(), error) {
	sys.R.Log = log

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	backend := sys.Configs.Snapshot.Backend

	// mysql
	if backend == snapshot.BackendMySQL {
		db, err := OpenDatabase(ctx, "mysql", sys.Configs.Database.ConnectionURL)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() {
			if err := db.Close(); err != nil {
				log.Errorf("could not close db conn gracefully: %s", err)
			}
		})
		sys.R.Database = db
	}

	// redis
	if backend == snapshot.BackendMySQL || backend == snapshot.BackendRedis {
		rdb, err := OpenCache(ctx)
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("could not close redis conn gracefully: %s", err)
			}
		})
		sys.R.Cache = rdb
	}

	snaps, err := snapshot.Open(ctx)
	if err != nil {
		closeAll()
		return nil, err
	}
	if sys.R.Bucket != nil {
		bucket := sys.R.Bucket
		closers = append(closers, func() {
			if err := bucket.Close(); err != nil {
				log.Errorf("could not close bucket gracefully: %s", err)
			}
		})
	}

	store, err := NewStore(log, snaps)
	if err != nil {
		closeAll()
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		// the store starts empty and keeps serving
		log.Warnw("startup", "status", "notes not restored", "ERROR", err)
	}
	sys.R.Notes = store

	return closeAll, nil
}

// NewStore builds a note store over snaps using sys.Configs.Snapshot
func NewStore(log *zap.SugaredLogger, snaps note.Snapshots) (*note.Store, error) {
	cfg := note.Config{
		Key:        sys.Configs.Snapshot.Key,
		ProfileKey: sys.Configs.Snapshot.ProfileKey,
	}

	if path := sys.Configs.Snapshot.TaxonomyFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open taxonomy file: %w", err)
		}
		defer f.Close()
		taxonomy, err := note.LoadTaxonomy(f)
		if err != nil {
			return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
		}
		cfg.Taxonomy = &taxonomy
	}

	return note.NewStore(snaps, log, cfg), nil
}

// OpenDatabase opens and pings a database/sql pool
func OpenDatabase(ctx context.Context, driver, url string) (*sql.DB, error) {
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("error to connect to database: %w", err)
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.PingTimeout)
	defer dbCancel()
	if err := db.PingContext(dbCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return db, nil
}

// OpenCache opens and pings the redis client described by sys.Configs.Cache
func OpenCache(ctx context.Context) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     sys.Configs.Cache.ConnectionURL,
		Username: sys.Configs.Cache.User,
		Password: sys.Configs.Cache.Pass,
	})
	rdsCtx, rdsCancel := context.WithTimeout(ctx, sys.Configs.Cache.PingTimeout)
	defer rdsCancel()
	if err := rdb.Ping(rdsCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return rdb, nil
}

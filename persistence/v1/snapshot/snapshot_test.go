package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/onelastai/memory-notes/persistence/v1/schema"
	"github.com/onelastai/memory-notes/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gocloud.dev/blob/memblob"

	_ "github.com/proullon/ramsql/driver"
)

const timeout = 5 * time.Second

// exercise runs the behaviour every Store must share
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save(ctx, "ai-memories", []byte(`[{"id":1}]`)))
	got, err = s.Load(ctx, "ai-memories")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, s.Save(ctx, "ai-memories", []byte(`[]`)))
	got, err = s.Load(ctx, "ai-memories")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Save(ctx, "ai-username", []byte("Ada")))
	got, err = s.Load(ctx, "ai-memories")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func newDatabase(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("ramsql", name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sys.R.Database = db
	t.Cleanup(func() { sys.R.Database = nil })
	require.NoError(t, schema.Create(context.Background()))
	return db
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, rdb
}

func TestSQL(t *testing.T) {
	db := newDatabase(t, "TestSQL")
	exercise(t, NewSQL(db, timeout))
}

func TestRedis(t *testing.T) {
	s, rdb := newRedis(t)
	exercise(t, NewRedis(rdb, timeout, 0))
	assert.Equal(t, time.Duration(0), s.TTL("ai-memories"))

	ttl := NewRedis(rdb, timeout, time.Hour)
	require.NoError(t, ttl.Save(context.Background(), "cached", []byte("x")))
	assert.Equal(t, time.Hour, s.TTL("cached"))

	require.NoError(t, ttl.Invalidate(context.Background(), "cached"))
	assert.False(t, s.Exists("cached"))
}

func TestBucket(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()
	exercise(t, NewBucket(bucket, timeout))
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	db := newDatabase(t, "TestCached")
	s, rdb := newRedis(t)

	primary := NewSQL(db, timeout)
	c := NewCached(zap.NewNop().Sugar(), primary, NewRedis(rdb, timeout, time.Hour))
	exercise(t, c)

	// primary is the source of truth, a cold cache is back-filled
	s.FlushAll()
	got, err := c.Load(ctx, "ai-memories")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.True(t, s.Exists("ai-memories"))

	// a warm cache answers without the primary
	require.NoError(t, s.Set("ai-memories", `[{"id":2}]`))
	got, err = c.Load(ctx, "ai-memories")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2}]`, string(got))
}

type failing struct{}

func (failing) Load(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failing) Save(context.Context, string, []byte) error { return errors.New("down") }

func TestCachedSurvivesCacheFailure(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	c := NewCached(zap.NewNop().Sugar(), NewBucket(bucket, timeout), failing{})
	require.NoError(t, c.Save(ctx, "k", []byte("v")))
	got, err := c.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	broken := NewCached(zap.NewNop().Sugar(), failing{}, NewBucket(bucket, timeout))
	assert.Error(t, broken.Save(ctx, "k", []byte("v2")))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	defer func() {
		sys.R.Cache = nil
		sys.R.Database = nil
		sys.R.Bucket = nil
	}()

	sys.Configs.Snapshot.Backend = "tape"
	_, err := Open(ctx)
	assert.Error(t, err)

	sys.Configs.Snapshot.Backend = BackendRedis
	_, err = Open(ctx)
	assert.Error(t, err)

	_, rdb := newRedis(t)
	sys.R.Cache = rdb
	s, err := Open(ctx)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, s)

	sys.R.Log = zap.NewNop().Sugar()
	sys.Configs.Snapshot.Backend = BackendMySQL
	newDatabase(t, "TestOpen")
	s, err = Open(ctx)
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, s)

	sys.Configs.Snapshot.Backend = BackendFile
	sys.Configs.Snapshot.Dir = t.TempDir()
	sys.Configs.Snapshot.OperationTimeout = timeout
	s, err = Open(ctx)
	require.NoError(t, err)
	require.NotNil(t, sys.R.Bucket)
	defer sys.R.Bucket.Close()
	exercise(t, s)
}

package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type memSnapshots struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	failErr error
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: map[string][]byte{}}
}

func (m *memSnapshots) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memSnapshots) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.data[key] = append([]byte{}, data...)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, snaps Snapshots, clock *fakeClock, importance int) *Store {
	t.Helper()
	s := NewStore(snaps, zap.NewNop().Sugar(), Config{
		Clock:      clock.Now,
		Importance: func() int { return importance },
	})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func testClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
}

func TestAddAssignsMetadata(t *testing.T) {
	ctx := context.Background()
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, testClock(), 3)

	n, err := s.Add(ctx, NewNote{Content: "  Remember to call mom about the birthday party  "})
	require.NoError(t, err)

	assert.Equal(t, "Remember to call mom about the birthday party", n.Content)
	assert.Equal(t, "personal", n.Category)
	assert.Equal(t, 3, n.Importance)
	assert.LessOrEqual(t, len(n.Tags), 3)
	assert.Equal(t, []string{"remember", "birthday", "about"}, n.Tags)
	assert.NotZero(t, n.Id)

	list := s.List(0)
	require.Len(t, list, 1)
	assert.Equal(t, n, list[0])
	assert.Equal(t, 1, snaps.saves)
}

func TestAddExplicitCategoryAndImportance(t *testing.T) {
	s := newTestStore(t, newMemSnapshots(), testClock(), 1)

	n, err := s.Add(context.Background(), NewNote{Content: "birthday party", Category: "Work", Importance: 5})
	require.NoError(t, err)
	assert.Equal(t, "work", n.Category)
	assert.Equal(t, 5, n.Importance)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, testClock(), 3)

	for _, in := range []NewNote{
		{Content: ""},
		{Content: "   "},
		{Content: "fine", Category: "astrology"},
		{Content: "fine", Importance: 6},
		{Content: "fine", Importance: -1},
	} {
		_, err := s.Add(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}
	assert.Empty(t, s.List(0))
	assert.Zero(t, snaps.saves)
}

func TestAddKeepsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	clock := testClock()
	s := newTestStore(t, newMemSnapshots(), clock, 2)

	var ids []uint64
	for i := 0; i < 5; i++ {
		n, err := s.Add(ctx, NewNote{Content: fmt.Sprintf("note number %d", i)})
		require.NoError(t, err)
		ids = append(ids, n.Id)
		clock.Advance(time.Minute)
	}

	list := s.List(0)
	require.Len(t, list, 5)
	for i := 0; i < len(list); i++ {
		assert.Equal(t, ids[len(ids)-1-i], list[i].Id)
		if i > 0 {
			assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
		}
	}

	assert.Len(t, s.List(2), 2)
	assert.Equal(t, ids[4], s.List(2)[0].Id)
}

func TestIdsUniqueWhenClockStalls(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newMemSnapshots(), testClock(), 2)

	seen := map[uint64]bool{}
	var last uint64
	for i := 0; i < 20; i++ {
		n, err := s.Add(ctx, NewNote{Content: "same instant"})
		require.NoError(t, err)
		assert.False(t, seen[n.Id])
		assert.Greater(t, n.Id, last)
		seen[n.Id] = true
		last = n.Id
	}

	// equal timestamps: reverse insertion order
	list := s.List(0)
	assert.Equal(t, last, list[0].Id)
}

func TestAddClockSteppingBack(t *testing.T) {
	ctx := context.Background()
	clock := testClock()
	s := newTestStore(t, newMemSnapshots(), clock, 3)

	first, err := s.Add(ctx, NewNote{Content: "before the clock moved"})
	require.NoError(t, err)
	clock.Advance(-time.Minute)
	second, err := s.Add(ctx, NewNote{Content: "after the clock moved back"})
	require.NoError(t, err)

	assert.Greater(t, second.Id, first.Id)
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))

	list := s.List(0)
	require.Len(t, list, 2)
	assert.Equal(t, second.Id, list[0].Id)
	assert.Equal(t, first.Id, list[1].Id)
}

func TestConcurrentAdds(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	snaps := newMemSnapshots()
	s := NewStore(snaps, zap.NewNop().Sugar(), Config{})
	require.NoError(t, s.Initialize(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Add(ctx, NewNote{Content: fmt.Sprintf("concurrent note %d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list := s.List(0)
	require.Len(t, list, 50)
	ids := map[uint64]bool{}
	for _, n := range list {
		assert.False(t, ids[n.Id])
		ids[n.Id] = true
		assert.GreaterOrEqual(t, n.Importance, 1)
		assert.LessOrEqual(t, n.Importance, 5)
	}

	var persisted []Note
	require.NoError(t, json.Unmarshal(snaps.data[DefaultKey], &persisted))
	assert.Len(t, persisted, 50)
}

func TestAddPersistFailureLeavesStoreUnchanged(t *testing.T) {
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, testClock(), 3)
	snaps.failErr = errors.New("disk full")

	_, err := s.Add(context.Background(), NewNote{Content: "will not stick"})
	require.Error(t, err)
	assert.Empty(t, s.List(0))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	clock := testClock()
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, clock, 3)

	a, err := s.Add(ctx, NewNote{Content: "first"})
	require.NoError(t, err)
	clock.Advance(time.Second)
	b, err := s.Add(ctx, NewNote{Content: "second"})
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, a.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	saves := snaps.saves

	for _, n := range s.List(0) {
		assert.NotEqual(t, a.Id, n.Id)
	}

	deleted, err = s.Delete(ctx, a.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, saves, snaps.saves)

	list := s.List(0)
	require.Len(t, list, 1)
	assert.Equal(t, b.Id, list[0].Id)

	_, found := s.Find(a.Id)
	assert.False(t, found)
	got, found := s.Find(b.Id)
	assert.True(t, found)
	assert.Equal(t, b, got)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := testClock()
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, clock, 4)

	for _, c := range []string{"project deadline friday", "book about databases", "flight to lisbon"} {
		_, err := s.Add(ctx, NewNote{Content: c})
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}
	require.NoError(t, s.SetOwnerName(ctx, "Ada"))

	reloaded := newTestStore(t, snaps, clock, 1)
	assert.Equal(t, s.List(0), reloaded.List(0))
	assert.Equal(t, "Ada", reloaded.OwnerName())

	// ids keep increasing after a reload
	n, err := reloaded.Add(ctx, NewNote{Content: "after reload"})
	require.NoError(t, err)
	assert.Greater(t, n.Id, s.List(1)[0].Id)
}

func TestInitializeCorrupt(t *testing.T) {
	ctx := context.Background()

	for name, blob := range map[string]string{
		"not json":       "{{{",
		"wrong shape":    `{"id": 1}`,
		"empty content":  `[{"id":1,"content":" ","category":"general","tags":[],"importance":3,"createdAt":"2026-10-18T09:00:00Z"}]`,
		"bad importance": `[{"id":1,"content":"x","category":"general","tags":[],"importance":9,"createdAt":"2026-10-18T09:00:00Z"}]`,
		"duplicate ids":  `[{"id":1,"content":"x","importance":3},{"id":1,"content":"y","importance":3}]`,
		"too many tags":  `[{"id":1,"content":"x","tags":["a","b","c","d"],"importance":3}]`,
	} {
		t.Run(name, func(t *testing.T) {
			snaps := newMemSnapshots()
			snaps.data[DefaultKey] = []byte(blob)

			s := NewStore(snaps, zap.NewNop().Sugar(), Config{Clock: testClock().Now})
			err := s.Initialize(ctx)
			assert.ErrorIs(t, err, ErrPersistenceCorrupt)
			assert.Empty(t, s.List(0))

			_, err = s.Add(ctx, NewNote{Content: "still usable"})
			assert.NoError(t, err)
			assert.Len(t, s.List(0), 1)
		})
	}
}

func TestInitializeEmptyAndNull(t *testing.T) {
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, testClock(), 3)
	assert.Empty(t, s.List(0))
	assert.Equal(t, DefaultOwnerName, s.OwnerName())

	snaps.data[DefaultKey] = []byte("null")
	require.NoError(t, s.Initialize(context.Background()))
	assert.Empty(t, s.List(0))
}

func TestOwnerName(t *testing.T) {
	ctx := context.Background()
	snaps := newMemSnapshots()
	s := newTestStore(t, snaps, testClock(), 3)

	assert.ErrorIs(t, s.SetOwnerName(ctx, "  "), ErrInvalidInput)
	require.NoError(t, s.SetOwnerName(ctx, " Grace "))
	assert.Equal(t, "Grace", s.OwnerName())
	assert.Equal(t, "Grace", string(snaps.data[DefaultProfileKey]))
}

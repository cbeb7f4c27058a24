package note

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultKey is the snapshot key holding the serialized note list
	DefaultKey = "ai-memories"
	// DefaultProfileKey is the snapshot key holding the owner name
	DefaultProfileKey = "ai-username"
	// DefaultOwnerName is used until a name has been set
	DefaultOwnerName = "User"
)

// Snapshots is the key-value blob storage the store mirrors its state into.
// Load returns nil data and a nil error when the key does not exist.
// Save overwrites the whole value under key.
type Snapshots interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Config tunes a Store, zero values fall back to defaults
type Config struct {
	Key        string
	ProfileKey string
	Taxonomy   *Taxonomy
	Clock      func() time.Time
	Importance func() int
}

// Store owns the authoritative in-memory note list and persists the complete
// list after every mutation. It is safe for concurrent use.
type Store struct {
	log        *zap.SugaredLogger
	snapshots  Snapshots
	key        string
	profileKey string
	taxonomy   Taxonomy
	clock      func() time.Time
	importance func() int

	mu     sync.RWMutex
	notes  []Note
	owner  string
	lastID uint64
}

// NewStore builds an empty store, call Initialize to load persisted state
func NewStore(snapshots Snapshots, log *zap.SugaredLogger, cfg Config) *Store {
	s := &Store{
		log:        log,
		snapshots:  snapshots,
		key:        cfg.Key,
		profileKey: cfg.ProfileKey,
		clock:      cfg.Clock,
		importance: cfg.Importance,
		owner:      DefaultOwnerName,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.profileKey == "" {
		s.profileKey = DefaultProfileKey
	}
	if cfg.Taxonomy != nil {
		s.taxonomy = *cfg.Taxonomy
	} else {
		s.taxonomy = DefaultTaxonomy()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.importance == nil {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		var rndMu sync.Mutex
		s.importance = func() int {
			rndMu.Lock()
			defer rndMu.Unlock()
			return rnd.Intn(5) + 1
		}
	}
	return s
}

// Initialize loads the persisted collection and owner name. Any failure leaves
// the store empty and usable, the returned error is a report for the caller to log.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = []Note{}
	s.lastID = 0
	s.owner = DefaultOwnerName

	if name, err := s.snapshots.Load(ctx, s.profileKey); err != nil {
		s.log.Warnw("initialize", "key", s.profileKey, "ERROR", err)
	} else if n := strings.TrimSpace(string(name)); n != "" {
		s.owner = n
	}

	data, err := s.snapshots.Load(ctx, s.key)
	if err != nil {
		s.log.Warnw("initialize", "key", s.key, "status", "starting empty", "ERROR", err)
		return fmt.Errorf("%w: load %s: %v", ErrPersistenceCorrupt, s.key, err)
	}
	if len(data) == 0 {
		return nil
	}

	notes, err := decode(data)
	if err != nil {
		s.log.Warnw("initialize", "key", s.key, "status", "starting empty", "ERROR", err)
		return fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
	}

	sortRecentFirst(notes)
	s.notes = notes
	for _, n := range notes {
		if n.Id > s.lastID {
			s.lastID = n.Id
		}
	}
	s.log.Infow("initialize", "key", s.key, "notes", len(notes))
	return nil
}

// Add validates, enriches and stores a new note at the head of the list
func (s *Store) Add(ctx context.Context, newN NewNote) (Note, error) {
	content := strings.TrimSpace(newN.Content)
	if content == "" {
		return Note{}, fmt.Errorf("%w: content is empty", ErrInvalidInput)
	}
	category := strings.ToLower(strings.TrimSpace(newN.Category))
	if category != "" && !s.taxonomy.Known(category) {
		return Note{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, newN.Category)
	}
	if newN.Importance != 0 && (newN.Importance < 1 || newN.Importance > 5) {
		return Note{}, fmt.Errorf("%w: importance %d out of [1,5]", ErrInvalidInput, newN.Importance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// never older than the head, new notes always land at position 0
	now := s.clock()
	if len(s.notes) > 0 && now.Before(s.notes[0].CreatedAt) {
		now = s.notes[0].CreatedAt
	}
	n := Note{
		Id:         s.nextID(now),
		Content:    content,
		Category:   category,
		Tags:       s.taxonomy.Tags(content),
		Importance: newN.Importance,
		CreatedAt:  now,
	}
	if n.Category == "" {
		n.Category = s.taxonomy.Categorize(content)
	}
	if n.Importance == 0 {
		n.Importance = s.importance()
	}

	updated := make([]Note, 0, len(s.notes)+1)
	updated = append(updated, n)
	updated = append(updated, s.notes...)
	sortRecentFirst(updated)

	if err := s.persist(ctx, updated); err != nil {
		return Note{}, err
	}
	s.notes = updated
	s.lastID = n.Id

	return n.clone(), nil
}

// List returns notes most recent first, limit <= 0 returns all of them
func (s *Store) List(limit int) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := len(s.notes)
	if limit > 0 && limit < count {
		count = limit
	}
	out := make([]Note, count)
	for i := 0; i < count; i++ {
		out[i] = s.notes[i].clone()
	}
	return out
}

// Find returns the note with id
func (s *Store) Find(id uint64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.Id == id {
			return n.clone(), true
		}
	}
	return Note{}, false
}

// Delete removes the note with id. Unknown ids are a no-op and report false.
func (s *Store) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.notes {
		if n.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	updated := make([]Note, 0, len(s.notes)-1)
	updated = append(updated, s.notes[:idx]...)
	updated = append(updated, s.notes[idx+1:]...)

	if err := s.persist(ctx, updated); err != nil {
		return false, err
	}
	s.notes = updated
	return true, nil
}

// OwnerName returns the display name of the collection owner
func (s *Store) OwnerName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

// SetOwnerName persists a new owner display name
func (s *Store) SetOwnerName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.snapshots.Save(ctx, s.profileKey, []byte(name)); err != nil {
		return fmt.Errorf("save %s: %w", s.profileKey, err)
	}
	s.owner = name
	return nil
}

// nextID is time based and strictly increasing even when the clock stalls or goes back
func (s *Store) nextID(now time.Time) uint64 {
	id := uint64(now.UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

func (s *Store) persist(ctx context.Context, notes []Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.snapshots.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func decode(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	if notes == nil {
		return []Note{}, nil
	}

	ids := make(map[uint64]bool, len(notes))
	for i, n := range notes {
		switch {
		case strings.TrimSpace(n.Content) == "":
			return nil, fmt.Errorf("note %d has empty content", n.Id)
		case ids[n.Id]:
			return nil, fmt.Errorf("note id %d is duplicated", n.Id)
		case n.Importance < 1 || n.Importance > 5:
			return nil, fmt.Errorf("note %d importance %d out of [1,5]", n.Id, n.Importance)
		case len(n.Tags) > maxTags:
			return nil, fmt.Errorf("note %d has %d tags", n.Id, len(n.Tags))
		}
		ids[n.Id] = true
		if n.Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	return notes, nil
}

// sortRecentFirst keeps equal timestamps in their current relative order
func sortRecentFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

package favorites

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
)

// Backend is the scoped key-value store favourites persist through.
// Failures never surface to callers: reads degrade to an empty set and
// writes are logged and dropped.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const keyPrefix = "favorites:"

type write struct {
	key     string
	payload string
}

// Store holds the favourite set of every device seen this session and
// writes each mutation through to the backend as a JSON array of event
// ids. In-memory state is authoritative: Toggle applies synchronously
// and the durable write is fire-and-forget behind a single writer
// goroutine, so overlapping toggles persist in issue order and a late
// failure cannot clobber a newer set.
type Store struct {
	backend Backend

	mu     sync.Mutex
	sets   map[string]map[string]bool
	closed bool

	writes chan write
	wg     sync.WaitGroup
}

func NewStore(backend Backend) *Store {
	s := &Store{
		backend: backend,
		sets:    make(map[string]map[string]bool),
		writes:  make(chan write, 256),
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// Close drains pending writes and stops the writer. Toggles racing a
// graceful shutdown still apply in memory; their writes are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.writes)
	s.wg.Wait()
}

func (s *Store) writer() {
	defer s.wg.Done()
	for w := range s.writes {
		if err := s.backend.Set(context.Background(), w.key, w.payload); err != nil {
			log.Printf("favorites: write for %s dropped: %v", w.key, err)
		}
	}
}

// load returns the device's live set, reading it from the backend on
// first touch. A missing, unreadable or unparsable stored value starts
// the device empty. Callers must hold s.mu.
func (s *Store) load(ctx context.Context, deviceID string) map[string]bool {
	if set, ok := s.sets[deviceID]; ok {
		return set
	}
	set := make(map[string]bool)
	raw, err := s.backend.Get(ctx, keyPrefix+deviceID)
	if err != nil {
		log.Printf("favorites: read for %s failed, starting empty: %v", deviceID, err)
	} else if raw != "" {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			log.Printf("favorites: stored value for %s unparsable, starting empty: %v", deviceID, err)
		} else {
			for _, id := range ids {
				set[id] = true
			}
		}
	}
	s.sets[deviceID] = set
	return set
}

// IsFavorite reports membership for one event id.
func (s *Store) IsFavorite(ctx context.Context, deviceID, eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, deviceID)[eventID]
}

// Members returns a copy of the device's favourite set.
func (s *Store) Members(ctx context.Context, deviceID string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.load(ctx, deviceID)
	out := make(map[string]bool, len(set))
	for id := range set {
		out[id] = true
	}
	return out
}

// IDs returns the device's favourite ids, sorted for stable responses.
func (s *Store) IDs(ctx context.Context, deviceID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.load(ctx, deviceID))
}

// Toggle flips membership for eventID and reports the new state plus the
// resulting id list. The write captures the full resulting set, not a
// delta, and is enqueued while the lock is held so queued payloads follow
// in-memory order even for back-to-back toggles.
func (s *Store) Toggle(ctx context.Context, deviceID, eventID string) (bool, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx, deviceID)
	if set[eventID] {
		delete(set, eventID)
	} else {
		set[eventID] = true
	}

	ids := sortedIDs(set)
	if s.closed {
		log.Printf("favorites: store closed, write for %s dropped", deviceID)
	} else {
		payload, _ := json.Marshal(ids)
		s.writes <- write{key: keyPrefix + deviceID, payload: string(payload)}
	}

	return set[eventID], ids
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

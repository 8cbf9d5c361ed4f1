package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	_ "embed"

	"darklands/models"
)

//go:embed events.json
var bundled []byte

// ValidationError reports an admin catalog replacement that could not be
// applied. It is the only error class the API surfaces to users directly.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + e.Reason
}

// Store owns the event catalog for the lifetime of the process. The
// catalog is never persisted: an admin replace lasts until restart.
// Mutation is a whole-slice swap, so readers always see a consistent
// snapshot.
type Store struct {
	mu     sync.RWMutex
	events []models.Event
}

// New returns a store seeded with the bundled catalog.
func New() *Store {
	events, err := decode(bundled)
	if err != nil {
		// The bundled catalog ships inside the binary; failing to decode
		// it is a build defect, not a runtime condition.
		log.Fatalf("bundled events.json: %v", err)
	}
	return &Store{events: events}
}

// NewWith returns a store seeded with the given events. Used by tests.
func NewWith(events []models.Event) *Store {
	return &Store{events: events}
}

// Load returns a snapshot of the current catalog.
func (s *Store) Load() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Get looks up a single event by id.
func (s *Store) Get(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// Count returns the number of events in the catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Replace swaps in a whole new catalog parsed from raw JSON text. The
// input is parsed and validated before any mutation; on failure the
// current catalog is left untouched.
func (s *Store) Replace(raw []byte) error {
	events, err := decode(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

func decode(raw []byte) ([]models.Event, error) {
	var events []models.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, &ValidationError{Reason: "not a JSON event list"}
	}
	if events == nil {
		// json "null" unmarshals into a nil slice without error.
		return nil, &ValidationError{Reason: "not a JSON event list"}
	}
	for i, e := range events {
		if e.ID == "" || e.Date == "" || e.Title == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("event %d is missing id, date or title", i)}
		}
	}
	return events, nil
}

// Package inmem implements the core repositories in memory, keyed by
// region. It backs tests and local development without a MongoDB.
package inmem

import (
	"sync"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/analytics"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
	"github.com/Akr1040317/hiveUniDash/core/user"
)

// Store holds every region's collections behind one lock. A forced error
// can be injected to exercise degraded paths.
type Store struct {
	mu      sync.RWMutex
	regions map[string]*regionData

	errMu  sync.RWMutex
	forced error
}

type regionData struct {
	users     []user.User
	content   []content.Content
	bugs      []bug.Bug
	features  []feature.Feature
	events    []event.Event
	quizzes   []quiz.Quiz
	analytics []analytics.Entry
}

func NewStore() *Store {
	return &Store{regions: make(map[string]*regionData)}
}

// SetError makes every subsequent operation fail with err until reset
// with nil.
func (s *Store) SetError(err error) {
	s.errMu.Lock()
	s.forced = err
	s.errMu.Unlock()
}

func (s *Store) err() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.forced
}

// region lazily creates the region's collections. Callers must hold the
// write lock.
func (s *Store) region(region string) *regionData {
	rd, ok := s.regions[region]
	if !ok {
		rd = &regionData{}
		s.regions[region] = rd
	}
	return rd
}

// regionView is the read-path counterpart of region: it never touches the
// map, so it is safe under the read lock. Unknown regions get an empty
// throwaway value.
func (s *Store) regionView(region string) *regionData {
	if rd, ok := s.regions[region]; ok {
		return rd
	}
	return &regionData{}
}

// matches applies a cleaned filter to a document's flattened fields:
// equality for scalars, any-of for []string, inclusive bounds for
// date_from/date_to against the "date" field.
func matches(fields map[string]interface{}, filter core.Filter) bool {
	for key, want := range filter {
		switch key {
		case "date_from":
			if date, _ := fields["date"].(string); date < want.(string) {
				return false
			}
		case "date_to":
			if date, _ := fields["date"].(string); date > want.(string) {
				return false
			}
		default:
			switch w := want.(type) {
			case []string:
				found := false
				for _, candidate := range w {
					if fields[key] == candidate {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			default:
				if fields[key] != want {
					return false
				}
			}
		}
	}
	return true
}

// Package achievement defines the achievement catalog and unlock evaluation.
package achievement

import (
	"sort"

	"github.com/verte-zerg/catchme/internal/model"
)

// ID identifies an achievement. Declaration order is catalog order.
type ID uint8

// Achievements.
const (
	FirstCatch ID = iota
	FiveCatches
	TenCatches
	PerfectRate
)

const perfectRateMinAttempts = 5

// Definition describes an achievement for presentation.
type Definition struct {
	ID          ID
	Title       string
	Description string
	Icon        string
}

var catalog = [...]Definition{
	{ID: FirstCatch, Title: "First Catch!", Description: "You caught the button for the first time!", Icon: "🎯"},
	{ID: FiveCatches, Title: "Getting Good!", Description: "You've caught the button 5 times!", Icon: "⭐"},
	{ID: TenCatches, Title: "Button Master!", Description: "You've caught the button 10 times!", Icon: "🏆"},
	{ID: PerfectRate, Title: "Perfect Score!", Description: "100% success rate with 5+ attempts!", Icon: "👑"},
}

// String returns the stable identifier, e.g. "first_catch".
func (id ID) String() string {
	switch id {
	case FirstCatch:
		return "first_catch"
	case FiveCatches:
		return "five_catches"
	case TenCatches:
		return "ten_catches"
	case PerfectRate:
		return "perfect_rate"
	default:
		return "unknown"
	}
}

// Catalog returns all definitions in catalog order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	if int(id) >= len(catalog) {
		return Definition{}, false
	}
	return catalog[id], true
}

// Holds reports whether the achievement's condition is met by stats.
func Holds(id ID, stats model.SessionStats) bool {
	switch id {
	case FirstCatch:
		return stats.Catches == 1
	case FiveCatches:
		return stats.Catches == 5
	case TenCatches:
		return stats.Catches == 10
	case PerfectRate:
		return stats.Attempts >= perfectRateMinAttempts && stats.Catches == stats.Attempts
	default:
		return false
	}
}

// Set records which achievements have been unlocked in a session.
type Set struct {
	ids map[ID]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{ids: map[ID]struct{}{}}
}

// Has reports whether id is unlocked.
func (s *Set) Has(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Add marks id unlocked and reports whether it was new.
func (s *Set) Add(id ID) bool {
	if s.ids == nil {
		s.ids = map[ID]struct{}{}
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of unlocked achievements.
func (s *Set) Len() int {
	return len(s.ids)
}

// Clear forgets every unlock.
func (s *Set) Clear() {
	s.ids = map[ID]struct{}{}
}

// IDs returns unlocked ids in catalog order.
func (s *Set) IDs() []ID {
	out := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Evaluate checks every catalog entry against stats, in catalog order, and
// returns the ones that hold and were not yet in unlocked. Returned entries
// are added to unlocked.
func Evaluate(stats model.SessionStats, unlocked *Set) []Definition {
	var out []Definition
	for _, def := range catalog {
		if !Holds(def.ID, stats) {
			continue
		}
		if !unlocked.Add(def.ID) {
			continue
		}
		out = append(out, def)
	}
	return out
}

package directory

import (
	"sort"
	"sync"

	"github.com/marcus/aba-directory/internal/models"
)

// Repository holds the in-memory provider collection for the life of the
// process. It is populated by bulk replace and mutated only through
// single-field rank updates. The deployment is single-writer/many-reader
// (admin import and rank edits are rare, human-triggered); the RWMutex makes
// that discipline explicit so concurrent reads stay race-free.
type Repository struct {
	mu        sync.RWMutex
	providers []models.Provider
}

func NewRepository() *Repository {
	return &Repository{}
}

// ReplaceAll swaps the entire collection. No merge semantics.
func (r *Repository) ReplaceAll(providers []models.Provider) {
	snapshot := make([]models.Provider, len(providers))
	copy(snapshot, providers)

	r.mu.Lock()
	r.providers = snapshot
	r.mu.Unlock()
}

// GetAll returns a copy of the current snapshot.
func (r *Repository) GetAll() []models.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// GetByID returns the provider with the given id. A miss is an explicit
// false, never an error.
func (r *Repository) GetByID(id string) (models.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Provider{}, false
}

// UpdateRank sets the rank for the provider with the given id, in place.
// A no-op when the id is absent.
func (r *Repository) UpdateRank(id string, newRank int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.providers {
		if r.providers[i].ID == id {
			rank := newRank
			r.providers[i].Rank = &rank
			return
		}
	}
}

// ListCounties returns the raw county strings actually present, sorted.
// Distinct from the canonical list: callers choose which to use.
func (r *Repository) ListCounties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.providers {
		if p.County != "" {
			seen[p.County] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len reports the current collection size.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

package directory

import (
	"math/rand"
	"strings"

	"github.com/marcus/aba-directory/internal/models"
)

// SelectFeatured builds the landing-page featured set: the first provider
// whose name contains pinSubstring is pinned at index 0, the rest of the pool
// is deduplicated by normalized name and uniformly shuffled, and the first
// count survivors follow the pin. Result length is at most count+1. The
// shuffle makes the set intentionally non-deterministic across requests; rng
// is injected so tests can fix the seed. A missing pinned provider is not an
// error, the result is simply the shuffled sample.
func SelectFeatured(providers []models.Provider, pinSubstring string, count int, rng *rand.Rand) []models.Provider {
	pinSubstring = strings.ToLower(strings.TrimSpace(pinSubstring))

	var pinned *models.Provider
	pool := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if pinned == nil && pinSubstring != "" &&
			strings.Contains(strings.ToLower(p.Name), pinSubstring) {
			pp := p
			pinned = &pp
			continue
		}
		pool = append(pool, p)
	}

	deduped := dedupeByName(pool)

	// Defensive: a record with no rank, no rating, and no name renders as an
	// empty card; drop it.
	kept := deduped[:0]
	for _, p := range deduped {
		if !p.HasRank() && !p.HasRating() && strings.TrimSpace(p.Name) == "" {
			continue
		}
		kept = append(kept, p)
	}
	deduped = kept

	// Fisher–Yates.
	for i := len(deduped) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}

	if count < 0 {
		count = 0
	}
	if len(deduped) > count {
		deduped = deduped[:count]
	}

	if pinned != nil {
		return append([]models.Provider{*pinned}, deduped...)
	}
	return deduped
}

// dedupeByName collapses records sharing a normalized (trimmed, lower-cased)
// name, keeping the best record per name: a ranked record beats an unranked
// one, a smaller rank beats a larger, a rated record beats an unrated one, a
// larger rating beats a smaller, otherwise the first encountered wins.
func dedupeByName(providers []models.Provider) []models.Provider {
	index := make(map[string]int, len(providers))
	out := make([]models.Provider, 0, len(providers))

	for _, p := range providers {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, p)
			continue
		}
		if betterFeatured(p, out[at]) {
			out[at] = p
		}
	}
	return out
}

// betterFeatured reports whether candidate should replace incumbent in the
// deduplicated pool. Ties keep the incumbent (first-seen wins).
func betterFeatured(candidate, incumbent models.Provider) bool {
	if candidate.HasRank() != incumbent.HasRank() {
		return candidate.HasRank()
	}
	if candidate.HasRank() {
		return *candidate.Rank < *incumbent.Rank
	}
	if candidate.HasRating() != incumbent.HasRating() {
		return candidate.HasRating()
	}
	if candidate.HasRating() {
		return *candidate.Rating > *incumbent.Rating
	}
	return false
}

package directory

import (
	"sort"
	"strings"

	"github.com/marcus/aba-directory/internal/models"
)

// Sort keys accepted by Sort. Any other value returns the input unchanged.
const (
	SortRecommended    = "recommended"
	SortRatingDesc     = "rating-desc"
	SortRatingAsc      = "rating-asc"
	SortNameAsc        = "name-asc"
	SortNameDesc       = "name-desc"
	SortExperienceDesc = "experience-desc"
	SortExperienceAsc  = "experience-asc"
	SortRankAsc        = "rank-asc"
	SortRankDesc       = "rank-desc"
)

// PinnedNameSubstring marks the provider pinned first by the recommended
// ordering and the featured selector.
const PinnedNameSubstring = "golden touch"

// Sort orders providers by the given key. Non-mutating and stable: equal keys
// keep their relative input order. Missing ratings and experience sort as 0,
// missing ranks as the 999 sentinel; these defaults exist only to give the
// sort a total order and are never written back to the records.
func Sort(providers []models.Provider, key string) []models.Provider {
	out := make([]models.Provider, len(providers))
	copy(out, providers)

	switch key {
	case SortRecommended:
		sort.SliceStable(out, func(i, j int) bool { return recommendedLess(out[i], out[j]) })
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RatingOrZero() > out[j].RatingOrZero() })
	case SortRatingAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RatingOrZero() < out[j].RatingOrZero() })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case SortExperienceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExperienceOrZero() > out[j].ExperienceOrZero() })
	case SortExperienceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExperienceOrZero() < out[j].ExperienceOrZero() })
	case SortRankAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RankOrSentinel() < out[j].RankOrSentinel() })
	case SortRankDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RankOrSentinel() > out[j].RankOrSentinel() })
	}

	return out
}

func isPinned(p models.Provider) bool {
	return strings.Contains(strings.ToLower(p.Name), PinnedNameSubstring)
}

// recommendedLess orders: pinned provider absolute first, then has-rank
// before no-rank, ascending rank, has-rating before no-rating, descending
// rating, ascending name as the final tie-break.
func recommendedLess(a, b models.Provider) bool {
	ap, bp := isPinned(a), isPinned(b)
	if ap != bp {
		return ap
	}

	if a.HasRank() != b.HasRank() {
		return a.HasRank()
	}
	if a.HasRank() && *a.Rank != *b.Rank {
		return *a.Rank < *b.Rank
	}

	if a.HasRating() != b.HasRating() {
		return a.HasRating()
	}
	if a.HasRating() && *a.Rating != *b.Rating {
		return *a.Rating > *b.Rating
	}

	return a.Name < b.Name
}

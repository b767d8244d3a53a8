package directory

import (
	"strings"

	"github.com/marcus/aba-directory/internal/models"
)

// FilterSpec holds six independent, AND-combined predicates. Empty sets and
// zero minimums are vacuously true.
type FilterSpec struct {
	Insurance      []string
	Services       []string
	AgeGroups      []string
	Certifications []string
	MinRating      float64
	MinExperience  int
}

// IsEmpty reports whether the spec constrains nothing.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Insurance) == 0 && len(f.Services) == 0 &&
		len(f.AgeGroups) == 0 && len(f.Certifications) == 0 &&
		f.MinRating == 0 && f.MinExperience == 0
}

// Filter returns the providers matching every predicate of spec. Input order
// is preserved; the input slice is not mutated.
func Filter(providers []models.Provider, spec FilterSpec) []models.Provider {
	if spec.IsEmpty() {
		out := make([]models.Provider, len(providers))
		copy(out, providers)
		return out
	}

	out := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if matches(p, spec) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Provider, spec FilterSpec) bool {
	if !tagsMatch(p.InsuranceAccepted, spec.Insurance) {
		return false
	}
	if !tagsMatch(p.Services, spec.Services) {
		return false
	}
	if !tagsMatch(p.AgeGroups, spec.AgeGroups) {
		return false
	}
	if !tagsMatch(p.Certifications, spec.Certifications) {
		return false
	}
	// Presence checks here are deliberate: a provider with no rating fails a
	// positive minRating, it is not treated as rating 0. The sort engine has
	// the opposite policy; keep the two apart.
	if spec.MinRating > 0 {
		if p.Rating == nil || *p.Rating < spec.MinRating {
			return false
		}
	}
	if spec.MinExperience > 0 {
		if p.YearsExperience == nil || *p.YearsExperience < spec.MinExperience {
			return false
		}
	}
	return true
}

// tagsMatch reports whether any provider tag case-insensitively contains any
// wanted term as a substring. Substring (not exact) matching tolerates label
// variants like "Medicaid" vs "Utah Medicaid".
// TODO(product): confirm substring vs exact-match is the intended policy.
func tagsMatch(tags, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	if len(tags) == 0 {
		return false
	}
	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		for _, w := range wanted {
			if w == "" {
				continue
			}
			if strings.Contains(tagLower, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

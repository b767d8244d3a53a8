package directory

import "github.com/marcus/aba-directory/internal/models"

// UnknownCounty is the bucket for providers with an absent county. Providers
// whose county is present but unrecognized are excluded from per-county views
// entirely (they remain in the full repository).
const UnknownCounty = "Unknown"

// DirectoryGroupLimit caps each county's directory listing. Fixed product
// constant, not configurable.
const DirectoryGroupLimit = 8

// GroupByCounty partitions providers by canonical county, preserving the
// input order within each group (callers sort before grouping).
func GroupByCounty(providers []models.Provider) map[string][]models.Provider {
	groups := make(map[string][]models.Provider)
	for _, p := range providers {
		key := UnknownCounty
		if p.County != "" {
			c, ok := Normalize(p.County)
			if !ok {
				continue
			}
			key = c
		}
		groups[key] = append(groups[key], p)
	}
	return groups
}

// TruncateGroups limits each group to its first DirectoryGroupLimit entries.
// The kept entries are a prefix of the group's sequence, so order survives.
func TruncateGroups(groups map[string][]models.Provider) map[string][]models.Provider {
	out := make(map[string][]models.Provider, len(groups))
	for county, group := range groups {
		if len(group) > DirectoryGroupLimit {
			group = group[:DirectoryGroupLimit]
		}
		out[county] = group
	}
	return out
}

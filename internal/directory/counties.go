package directory

import (
	"embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/counties.yaml
var countiesYAML embed.FS

// geoRegistry holds the canonical county list, the city lookup table, and the
// phrases that mean "serves more than one county".
type geoRegistry struct {
	Counties         []string          `yaml:"counties"`
	Cities           map[string]string `yaml:"cities"`
	StatewidePhrases []string          `yaml:"statewide_phrases"`
}

var (
	registryOnce sync.Once
	registry     geoRegistry
	countyByFold map[string]string   // lower-cased canonical -> canonical
	countyOrder  map[string]int      // canonical -> position in canonical order
	statewideSet map[string]struct{} // lower-cased phrase set
)

func loadRegistry() {
	registryOnce.Do(func() {
		data, err := countiesYAML.ReadFile("config/counties.yaml")
		if err != nil {
			panic("directory: embedded county registry missing: " + err.Error())
		}
		if err := yaml.Unmarshal(data, &registry); err != nil {
			panic("directory: invalid county registry: " + err.Error())
		}

		countyByFold = make(map[string]string, len(registry.Counties))
		countyOrder = make(map[string]int, len(registry.Counties))
		for i, c := range registry.Counties {
			countyByFold[strings.ToLower(c)] = c
			countyOrder[c] = i
		}
		statewideSet = make(map[string]struct{}, len(registry.StatewidePhrases))
		for _, p := range registry.StatewidePhrases {
			statewideSet[strings.ToLower(p)] = struct{}{}
		}
	})
}

// CanonicalCounties returns the 29 canonical county names in fixed order.
func CanonicalCounties() []string {
	loadRegistry()
	out := make([]string, len(registry.Counties))
	copy(out, registry.Counties)
	return out
}

// Normalize maps a raw county/region label to a canonical county name.
// Matching is deterministic and runs in fixed priority order: exact canonical
// match, substring heuristics, statewide phrases (explicit no-county), then
// the city lookup table. ok is false when the label names no single county;
// callers exclude such records from per-county views, they are not errors.
func Normalize(raw string) (county string, ok bool) {
	loadRegistry()

	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	// Exact canonical match wins immediately, with or without a trailing
	// "county" ("Salt Lake County" appears in imported data).
	if c, found := countyByFold[s]; found {
		return c, true
	}
	if trimmed := strings.TrimSuffix(s, " county"); trimmed != s {
		if c, found := countyByFold[strings.TrimSpace(trimmed)]; found {
			return c, true
		}
	}

	// Substring heuristics, fixed priority order.
	switch {
	case strings.Contains(s, "weber"):
		return "Weber", true
	case strings.Contains(s, "salt lake"):
		return "Salt Lake", true
	case strings.Contains(s, "st. george"), strings.Contains(s, "st george"),
		strings.Contains(s, "washington county"):
		return "Washington", true
	case strings.Contains(s, "juab"):
		return "Juab", true
	}

	if _, statewide := statewideSet[s]; statewide {
		return "", false
	}

	if c, found := registry.Cities[s]; found {
		return c, true
	}

	return "", false
}

// ValidCounties normalizes a batch of raw labels, discards unmapped entries,
// deduplicates, and returns the result in canonical county order. The stable
// ordering is what drives the filter dropdown.
func ValidCounties(rawCounties []string) []string {
	loadRegistry()

	seen := make(map[string]struct{}, len(rawCounties))
	for _, raw := range rawCounties {
		if c, ok := Normalize(raw); ok {
			seen[c] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for _, c := range registry.Counties {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

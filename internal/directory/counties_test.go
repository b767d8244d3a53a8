package directory

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "Exact canonical match", raw: "Cache", expected: "Cache", ok: true},
		{name: "Exact match is case-insensitive", raw: "salt lake", expected: "Salt Lake", ok: true},
		{name: "Trailing county suffix", raw: "Davis County", expected: "Davis", ok: true},
		{name: "Weber substring", raw: "Weber (limited)", expected: "Weber", ok: true},
		{name: "Salt Lake City phrase", raw: "Salt Lake City", expected: "Salt Lake", ok: true},
		{name: "St. George maps to Washington", raw: "St. George", expected: "Washington", ok: true},
		{name: "Washington county phrase", raw: "serving Washington County", expected: "Washington", ok: true},
		{name: "Juab substring", raw: "Juab and surrounding areas", expected: "Juab", ok: true},
		{name: "Statewide is explicit no-county", raw: "Statewide", ok: false},
		{name: "Telehealth is no-county", raw: "Telehealth", ok: false},
		{name: "City lookup Sandy", raw: "Sandy", expected: "Salt Lake", ok: true},
		{name: "City lookup Logan", raw: "Logan", expected: "Cache", ok: true},
		{name: "City lookup Provo", raw: "Provo", expected: "Utah", ok: true},
		{name: "Unknown label is unmapped", raw: "Logan to Spanish Fork", ok: false},
		{name: "Empty string", raw: "", ok: false},
		{name: "Whitespace only", raw: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIsReferentiallyStable(t *testing.T) {
	inputs := []string{"Weber (limited)", "Statewide", "Sandy", "nonsense", "Salt Lake City"}
	for _, in := range inputs {
		first, firstOK := Normalize(in)
		for i := 0; i < 5; i++ {
			got, ok := Normalize(in)
			if got != first || ok != firstOK {
				t.Fatalf("Normalize(%q) changed across calls: (%q,%v) then (%q,%v)", in, first, firstOK, got, ok)
			}
		}
	}
}

func TestCanonicalCounties(t *testing.T) {
	counties := CanonicalCounties()
	if len(counties) != 29 {
		t.Fatalf("expected 29 canonical counties, got %d", len(counties))
	}
	if counties[0] != "Beaver" || counties[len(counties)-1] != "Weber" {
		t.Errorf("unexpected canonical ordering: first=%q last=%q", counties[0], counties[len(counties)-1])
	}
}

func TestValidCounties(t *testing.T) {
	raw := []string{"Sandy", "Weber (limited)", "Statewide", "sandy", "Cache", "not a place"}
	got := ValidCounties(raw)

	// Canonical order, deduplicated, unmapped discarded.
	want := []string{"Cache", "Salt Lake", "Weber"}
	if len(got) != len(want) {
		t.Fatalf("ValidCounties = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ValidCounties = %v, want %v", got, want)
		}
	}
}

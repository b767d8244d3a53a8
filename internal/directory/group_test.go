package directory

import (
	"fmt"
	"testing"

	"github.com/marcus/aba-directory/internal/models"
)

func TestGroupByCountyScenario(t *testing.T) {
	providers := []models.Provider{
		{ID: "1", Name: "A", County: "Sandy", Rank: intp(2)},
		{ID: "2", Name: "B", County: "Salt Lake", Rank: intp(1)},
		{ID: "3", Name: "C", County: "Weber (limited)", Rating: floatp(4.5)},
	}

	groups := GroupByCounty(Sort(providers, SortRankAsc))

	saltLake, ok := groups["Salt Lake"]
	if !ok || len(saltLake) != 2 {
		t.Fatalf("Salt Lake group = %v", ids(saltLake))
	}
	// Rank-asc order within the group: B(rank 1) then A(rank 2).
	if saltLake[0].ID != "2" || saltLake[1].ID != "1" {
		t.Fatalf("Salt Lake order = %v, want [2 1]", ids(saltLake))
	}

	weber, ok := groups["Weber"]
	if !ok || len(weber) != 1 || weber[0].ID != "3" {
		t.Fatalf("Weber group = %v", ids(weber))
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestGroupByCountyUnknownAndUnmapped(t *testing.T) {
	providers := []models.Provider{
		{ID: "1", Name: "A", County: ""},          // absent -> Unknown bucket
		{ID: "2", Name: "B", County: "Statewide"}, // unmapped -> excluded
		{ID: "3", Name: "C", County: "Cache"},
	}

	groups := GroupByCounty(providers)

	if got := groups[UnknownCounty]; len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Unknown bucket = %v", ids(got))
	}
	if _, ok := groups["Statewide"]; ok {
		t.Fatal("unmapped county leaked into groups")
	}
	if got := groups["Cache"]; len(got) != 1 {
		t.Fatalf("Cache group = %v", ids(got))
	}
}

func TestTruncateGroupsKeepsPrefix(t *testing.T) {
	var providers []models.Provider
	for i := 0; i < 12; i++ {
		rank := i + 1
		providers = append(providers, models.Provider{
			ID:     fmt.Sprintf("p%d", rank),
			Name:   fmt.Sprintf("Provider %02d", rank),
			County: "Davis",
			Rank:   &rank,
		})
	}

	full := GroupByCounty(Sort(providers, SortRankAsc))
	truncated := TruncateGroups(full)

	group := truncated["Davis"]
	if len(group) != DirectoryGroupLimit {
		t.Fatalf("expected %d entries, got %d", DirectoryGroupLimit, len(group))
	}
	// The kept entries are a prefix of the full sorted sequence.
	for i, p := range group {
		if p.ID != full["Davis"][i].ID {
			t.Fatalf("truncated group is not a prefix at index %d", i)
		}
	}
}

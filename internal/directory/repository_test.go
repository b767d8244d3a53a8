package directory

import (
	"testing"

	"github.com/marcus/aba-directory/internal/models"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestRepositoryReplaceAndLookup(t *testing.T) {
	repo := NewRepository()
	repo.ReplaceAll([]models.Provider{
		{ID: "1", Name: "A", County: "Sandy"},
		{ID: "2", Name: "B", County: "Salt Lake"},
	})

	if repo.Len() != 2 {
		t.Fatalf("expected 2 providers, got %d", repo.Len())
	}

	p, ok := repo.GetByID("2")
	if !ok || p.Name != "B" {
		t.Fatalf("GetByID(2) = %+v, %v", p, ok)
	}

	if _, ok := repo.GetByID("missing"); ok {
		t.Fatal("expected not-found for missing id")
	}

	// Replace has no merge semantics.
	repo.ReplaceAll([]models.Provider{{ID: "3", Name: "C"}})
	if repo.Len() != 1 {
		t.Fatalf("expected 1 provider after replace, got %d", repo.Len())
	}
	if _, ok := repo.GetByID("1"); ok {
		t.Fatal("old provider survived ReplaceAll")
	}
}

func TestRepositoryUpdateRank(t *testing.T) {
	repo := NewRepository()
	repo.ReplaceAll([]models.Provider{{ID: "1", Name: "A"}})

	repo.UpdateRank("1", 3)
	p, _ := repo.GetByID("1")
	if p.Rank == nil || *p.Rank != 3 {
		t.Fatalf("expected rank 3, got %v", p.Rank)
	}

	// Missing id is a no-op, not an error.
	repo.UpdateRank("missing", 1)
	if repo.Len() != 1 {
		t.Fatal("UpdateRank on missing id changed the collection")
	}
}

func TestRepositoryGetAllReturnsSnapshot(t *testing.T) {
	repo := NewRepository()
	repo.ReplaceAll([]models.Provider{{ID: "1", Name: "A"}})

	snap := repo.GetAll()
	snap[0].Name = "mutated"

	p, _ := repo.GetByID("1")
	if p.Name != "A" {
		t.Fatal("mutating GetAll result leaked into the repository")
	}
}

func TestRepositoryListCounties(t *testing.T) {
	repo := NewRepository()
	repo.ReplaceAll([]models.Provider{
		{ID: "1", County: "Weber (limited)"},
		{ID: "2", County: "Salt Lake"},
		{ID: "3", County: "Salt Lake"},
		{ID: "4", County: ""},
	})

	got := repo.ListCounties()
	want := []string{"Salt Lake", "Weber (limited)"}
	if len(got) != len(want) {
		t.Fatalf("ListCounties = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListCounties = %v, want %v (raw strings, sorted)", got, want)
		}
	}
}

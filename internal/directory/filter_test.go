package directory

import (
	"testing"

	"github.com/marcus/aba-directory/internal/models"
)

func filterFixture() []models.Provider {
	return []models.Provider{
		{
			ID:                "1",
			Name:              "Alpine Behavior",
			InsuranceAccepted: []string{"Utah Medicaid", "SelectHealth"},
			Services:          []string{"In-Home ABA", "Social Skills Groups"},
			AgeGroups:         []string{"Toddlers (0-3)", "Children (4-12)"},
			Certifications:    []string{"BCBA"},
			Rating:            floatp(4.5),
			YearsExperience:   intp(10),
		},
		{
			ID:                "2",
			Name:              "Benchmark ABA",
			InsuranceAccepted: []string{"Cigna"},
			Services:          []string{"Clinic-Based ABA"},
			Rating:            floatp(3.9),
		},
		{
			ID:   "3",
			Name: "Cedar Therapy",
			// no insurance, no rating, no experience
			Services: []string{"Telehealth ABA"},
		},
	}
}

func TestFilter(t *testing.T) {
	providers := filterFixture()

	tests := []struct {
		name    string
		spec    FilterSpec
		wantIDs []string
	}{
		{
			name:    "Empty spec is identity",
			spec:    FilterSpec{},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name:    "Insurance substring matches label variant",
			spec:    FilterSpec{Insurance: []string{"Medicaid"}},
			wantIDs: []string{"1"},
		},
		{
			name:    "Insurance is case-insensitive",
			spec:    FilterSpec{Insurance: []string{"cigna"}},
			wantIDs: []string{"2"},
		},
		{
			name:    "Empty insurance list fails positive constraint",
			spec:    FilterSpec{Insurance: []string{"Aetna"}},
			wantIDs: []string{},
		},
		{
			name:    "Service substring any-of-any",
			spec:    FilterSpec{Services: []string{"ABA"}},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name:    "Age group substring",
			spec:    FilterSpec{AgeGroups: []string{"Toddlers"}},
			wantIDs: []string{"1"},
		},
		{
			name:    "Certification match",
			spec:    FilterSpec{Certifications: []string{"BCBA"}},
			wantIDs: []string{"1"},
		},
		{
			name:    "Min rating requires presence",
			spec:    FilterSpec{MinRating: 4.0},
			wantIDs: []string{"1"},
		},
		{
			name:    "Min rating zero passes unrated providers",
			spec:    FilterSpec{MinRating: 0},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name:    "Min experience requires presence",
			spec:    FilterSpec{MinExperience: 5},
			wantIDs: []string{"1"},
		},
		{
			name:    "Predicates AND together",
			spec:    FilterSpec{Services: []string{"ABA"}, MinRating: 3.5},
			wantIDs: []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(providers, tt.spec)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d providers, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestFilterMonotonicity(t *testing.T) {
	providers := filterFixture()

	fewer := FilterSpec{Services: []string{"ABA"}}
	more := FilterSpec{Services: []string{"ABA"}, MinRating: 4.0, Insurance: []string{"Medicaid"}}

	if len(Filter(providers, more)) > len(Filter(providers, fewer)) {
		t.Fatal("adding constraints increased the result size")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	providers := filterFixture()
	before := providers[0].ID
	_ = Filter(providers, FilterSpec{MinRating: 4.9})
	if providers[0].ID != before {
		t.Fatal("Filter mutated its input")
	}
}

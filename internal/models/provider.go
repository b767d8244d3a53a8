package models

// Provider is the central directory entity. Optional numeric fields are
// pointers: absent rank/rating must never collapse to a sortable zero.
type Provider struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	County            string            `json:"county"` // raw free text, canonicalized at read time
	City              string            `json:"city,omitempty"`
	Address           string            `json:"address,omitempty"`
	Phone             string            `json:"phone,omitempty"`
	Email             string            `json:"email,omitempty"`
	Website           string            `json:"website,omitempty"`
	Description       string            `json:"description,omitempty"`
	Services          []string          `json:"services,omitempty"`
	Certifications    []string          `json:"certifications,omitempty"`
	InsuranceAccepted []string          `json:"insuranceAccepted,omitempty"`
	AgeGroups         []string          `json:"ageGroups,omitempty"`
	Rating            *float64          `json:"rating,omitempty"`
	Rank              *int              `json:"rank,omitempty"`
	YearsExperience   *int              `json:"yearsExperience,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"` // unrecognized import columns, preserved verbatim
}

// HasRank reports whether an administrator assigned a rank.
func (p *Provider) HasRank() bool {
	return p.Rank != nil
}

// HasRating reports whether the record carries a rating.
func (p *Provider) HasRating() bool {
	return p.Rating != nil
}

// RankOrSentinel returns the rank, or 999 when absent. The sentinel gives
// "missing" a definite last position in rank ordering without conflating it
// with a real rank value.
func (p *Provider) RankOrSentinel() int {
	if p.Rank == nil {
		return 999
	}
	return *p.Rank
}

// RatingOrZero returns the rating, or 0 when absent. Used only by the sort
// engine, which needs a total order; the filter engine checks presence
// instead and must not use this.
func (p *Provider) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// ExperienceOrZero returns yearsExperience, or 0 when absent. Same caveat as
// RatingOrZero.
func (p *Provider) ExperienceOrZero() int {
	if p.YearsExperience == nil {
		return 0
	}
	return *p.YearsExperience
}

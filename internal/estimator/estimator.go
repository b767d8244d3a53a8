package estimator

// Input captures the cost-estimator form. Coverage is a percentage in
// [0,100]; Deductible is the family's remaining annual deductible.
type Input struct {
	HoursPerWeek    float64 `json:"hoursPerWeek" validate:"required,gt=0,lte=60"`
	HourlyRate      float64 `json:"hourlyRate" validate:"gte=0"`
	CoveragePercent float64 `json:"coveragePercent" validate:"gte=0,lte=100"`
	Deductible      float64 `json:"deductible" validate:"gte=0"`
}

// Estimate is the computed cost breakdown. Gross figures ignore insurance;
// OutOfPocket figures apply coverage after the deductible is met.
type Estimate struct {
	WeeklyGross        float64 `json:"weeklyGross"`
	MonthlyGross       float64 `json:"monthlyGross"`
	AnnualGross        float64 `json:"annualGross"`
	AnnualOutOfPocket  float64 `json:"annualOutOfPocket"`
	MonthlyOutOfPocket float64 `json:"monthlyOutOfPocket"`
}

// defaultHourlyRate is the regional average billed rate used when the form
// leaves the rate blank.
const defaultHourlyRate = 120

const weeksPerYear = 52

// Calculate produces the cost breakdown. Pure arithmetic, no I/O.
func Calculate(in Input) Estimate {
	rate := in.HourlyRate
	if rate <= 0 {
		rate = defaultHourlyRate
	}

	coverage := in.CoveragePercent
	if coverage < 0 {
		coverage = 0
	}
	if coverage > 100 {
		coverage = 100
	}

	weekly := in.HoursPerWeek * rate
	annual := weekly * weeksPerYear

	// The deductible is paid in full first; coverage applies to the rest.
	deductible := in.Deductible
	if deductible > annual {
		deductible = annual
	}
	covered := (annual - deductible) * coverage / 100
	annualOOP := annual - covered

	return Estimate{
		WeeklyGross:        round2(weekly),
		MonthlyGross:       round2(annual / 12),
		AnnualGross:        round2(annual),
		AnnualOutOfPocket:  round2(annualOOP),
		MonthlyOutOfPocket: round2(annualOOP / 12),
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

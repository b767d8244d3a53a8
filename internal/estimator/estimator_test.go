package estimator

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Estimate
	}{
		{
			name: "Full self-pay",
			in:   Input{HoursPerWeek: 10, HourlyRate: 100},
			want: Estimate{
				WeeklyGross:        1000,
				MonthlyGross:       4333.33,
				AnnualGross:        52000,
				AnnualOutOfPocket:  52000,
				MonthlyOutOfPocket: 4333.33,
			},
		},
		{
			name: "Eighty percent coverage after deductible",
			in:   Input{HoursPerWeek: 10, HourlyRate: 100, CoveragePercent: 80, Deductible: 2000},
			want: Estimate{
				WeeklyGross:        1000,
				MonthlyGross:       4333.33,
				AnnualGross:        52000,
				AnnualOutOfPocket:  12000, // 2000 deductible + 20% of 50000
				MonthlyOutOfPocket: 1000,
			},
		},
		{
			name: "Blank rate uses regional default",
			in:   Input{HoursPerWeek: 1},
			want: Estimate{
				WeeklyGross:        120,
				MonthlyGross:       520,
				AnnualGross:        6240,
				AnnualOutOfPocket:  6240,
				MonthlyOutOfPocket: 520,
			},
		},
		{
			name: "Deductible larger than annual cost",
			in:   Input{HoursPerWeek: 1, HourlyRate: 10, CoveragePercent: 100, Deductible: 99999},
			want: Estimate{
				WeeklyGross:        10,
				MonthlyGross:       43.33,
				AnnualGross:        520,
				AnnualOutOfPocket:  520,
				MonthlyOutOfPocket: 43.33,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			if got != tt.want {
				t.Fatalf("Calculate(%+v)\n got %+v\nwant %+v", tt.in, got, tt.want)
			}
		})
	}
}

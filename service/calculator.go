package service

import (
	"fmt"
	"math"

	"tax-agent/domain"
)

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// ComputeTax calculates the total marginal tax owed on income under an
// already-validated bracket schedule. Pure function; the running total is
// accumulated at full precision and never rounded here.
func ComputeTax(income float64, schedule domain.BracketSchedule) (float64, error) {
	total, _, err := ComputeTaxBreakdown(income, schedule)
	return total, err
}

// ComputeTaxBreakdown calculates the total marginal tax together with the
// per-bracket breakdown. Each bracket taxes the slice of income in
// [Min, Max) at its rate; income exactly on a boundary belongs to the lower
// bracket. Iteration stops at the first bracket the income does not reach.
// The total is unrounded; detail amounts are rounded to cents for display.
func ComputeTaxBreakdown(
	income float64,
	schedule domain.BracketSchedule,
) (float64, []domain.TaxDetail, error) {

	if math.IsNaN(income) || math.IsInf(income, 0) {
		return 0, nil, fmt.Errorf("%w: income must be a finite number", domain.ErrInvalidIncome)
	}
	if income < 0 {
		return 0, nil, fmt.Errorf("%w: income cannot be negative", domain.ErrInvalidIncome)
	}

	var total float64
	details := []domain.TaxDetail{}

	for _, bracket := range schedule.Brackets {
		if income <= bracket.Min {
			break
		}

		upper := income
		if bracket.Max != nil && *bracket.Max < income {
			upper = *bracket.Max
		}

		tax := (upper - bracket.Min) * bracket.Rate
		total += tax

		details = append(details, domain.TaxDetail{
			Min:     bracket.Min,
			Max:     bracket.Max,
			TaxPaid: roundTo2Decimals(tax),
		})
	}

	return total, details, nil
}

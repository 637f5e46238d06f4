package service

import (
	"context"
	"fmt"
	"math"

	"tax-agent/domain"
	"tax-agent/repository"
)

type TaxService struct {
	provider repository.BracketProvider
}

// NewTaxService creates a new TaxService backed by the given bracket provider.
func NewTaxService(provider repository.BracketProvider) *TaxService {
	return &TaxService{provider: provider}
}

// CalculateTax resolves the bracket schedule for the requested year and
// computes the marginal tax owed on the annual income. Input is validated
// before any provider call; a provider or schedule error is returned as-is
// so the caller can map it by kind.
func (s *TaxService) CalculateTax(
	ctx context.Context,
	input domain.TaxCalculationInput,
) (domain.TaxCalculationResult, error) {

	if math.IsNaN(input.AnnualIncome) || math.IsInf(input.AnnualIncome, 0) {
		return domain.TaxCalculationResult{},
			fmt.Errorf("%w: income must be a finite number", domain.ErrInvalidIncome)
	}
	if input.AnnualIncome < 0 {
		return domain.TaxCalculationResult{},
			fmt.Errorf("%w: income cannot be negative", domain.ErrInvalidIncome)
	}
	if input.TaxYear <= 0 {
		return domain.TaxCalculationResult{},
			fmt.Errorf("%w: %d is not a calendar year", domain.ErrUnknownYear, input.TaxYear)
	}

	schedule, err := s.provider.FetchBrackets(ctx, input.TaxYear)
	if err != nil {
		return domain.TaxCalculationResult{}, err
	}

	total, details, err := ComputeTaxBreakdown(input.AnnualIncome, schedule)
	if err != nil {
		return domain.TaxCalculationResult{}, err
	}

	var effectiveRate float64
	if input.AnnualIncome > 0 {
		effectiveRate = roundTo2Decimals(total / input.AnnualIncome * 100)
	}

	return domain.TaxCalculationResult{
		TotalTax:      roundTo2Decimals(total),
		TaxDetails:    details,
		EffectiveRate: effectiveRate,
	}, nil
}

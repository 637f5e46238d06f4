package service

import (
	"context"
	"errors"
	"testing"

	"tax-agent/domain"
)

type MockBracketProvider struct {
	Schedule domain.BracketSchedule
	Err      error
	Calls    int
}

func (m *MockBracketProvider) FetchBrackets(
	ctx context.Context,
	year int,
) (domain.BracketSchedule, error) {
	m.Calls++
	if m.Err != nil {
		return domain.BracketSchedule{}, m.Err
	}
	return m.Schedule, nil
}

func TestCalculateTax_ValidRequest(t *testing.T) {
	mockProvider := &MockBracketProvider{
		Schedule: domain.BracketSchedule{
			Year: 2021,
			Brackets: []domain.TaxBracket{
				{Min: 0, Max: fptr(50197), Rate: 0.15},
				{Min: 50197, Rate: 0.2},
			},
		},
	}
	service := NewTaxService(mockProvider)

	result, err := service.CalculateTax(context.Background(), domain.TaxCalculationInput{
		AnnualIncome: 145000,
		TaxYear:      2021,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalTax != 26490.15 {
		t.Errorf("expected total tax 26490.15, got %f", result.TotalTax)
	}
	if result.EffectiveRate != 18.27 {
		t.Errorf("expected effective rate 18.27, got %f", result.EffectiveRate)
	}
	if len(result.TaxDetails) != 2 {
		t.Fatalf("expected 2 detail entries, got %d", len(result.TaxDetails))
	}
	if result.TaxDetails[0].TaxPaid != 7529.55 || result.TaxDetails[1].TaxPaid != 18960.6 {
		t.Errorf("unexpected detail amounts: %+v", result.TaxDetails)
	}
	if mockProvider.Calls != 1 {
		t.Errorf("expected 1 provider call, got %d", mockProvider.Calls)
	}
}

func TestCalculateTax_ZeroIncome(t *testing.T) {
	mockProvider := &MockBracketProvider{Schedule: twoBracketSchedule()}
	service := NewTaxService(mockProvider)

	result, err := service.CalculateTax(context.Background(), domain.TaxCalculationInput{
		AnnualIncome: 0,
		TaxYear:      2022,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalTax != 0 {
		t.Errorf("expected 0 tax, got %f", result.TotalTax)
	}
	if result.EffectiveRate != 0 {
		t.Errorf("expected 0 effective rate, got %f", result.EffectiveRate)
	}
	if len(result.TaxDetails) != 0 {
		t.Errorf("expected no detail entries, got %d", len(result.TaxDetails))
	}
}

func TestCalculateTax_NegativeIncome(t *testing.T) {
	mockProvider := &MockBracketProvider{Schedule: twoBracketSchedule()}
	service := NewTaxService(mockProvider)

	_, err := service.CalculateTax(context.Background(), domain.TaxCalculationInput{
		AnnualIncome: -5000,
		TaxYear:      2022,
	})

	if !errors.Is(err, domain.ErrInvalidIncome) {
		t.Errorf("expected ErrInvalidIncome, got %v", err)
	}
	if mockProvider.Calls != 0 {
		t.Errorf("provider should not be called for invalid income, got %d calls", mockProvider.Calls)
	}
}

func TestCalculateTax_NonPositiveYear(t *testing.T) {
	mockProvider := &MockBracketProvider{Schedule: twoBracketSchedule()}
	service := NewTaxService(mockProvider)

	_, err := service.CalculateTax(context.Background(), domain.TaxCalculationInput{
		AnnualIncome: 50000,
		TaxYear:      0,
	})

	if !errors.Is(err, domain.ErrUnknownYear) {
		t.Errorf("expected ErrUnknownYear, got %v", err)
	}
	if mockProvider.Calls != 0 {
		t.Errorf("provider should not be called for an invalid year, got %d calls", mockProvider.Calls)
	}
}

func TestCalculateTax_ProviderErrorPropagates(t *testing.T) {
	mockProvider := &MockBracketProvider{Err: domain.ErrProviderUnavailable}
	service := NewTaxService(mockProvider)

	_, err := service.CalculateTax(context.Background(), domain.TaxCalculationInput{
		AnnualIncome: 50000,
		TaxYear:      2022,
	})

	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

package domain

// TaxCalculationInput are the parameters of one tax calculation.
type TaxCalculationInput struct {
	AnnualIncome float64
	TaxYear      int
}

// TaxDetail is the tax paid within a single bracket, rounded to cents.
// Max is omitted for the unbounded top bracket.
type TaxDetail struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max,omitempty"`
	TaxPaid float64  `json:"tax_paid"`
}

// TaxCalculationResult is the outcome of a tax calculation. TotalTax is
// rounded to cents and EffectiveRate is a percentage rounded to two
// decimals; both are zero for zero income.
type TaxCalculationResult struct {
	TotalTax      float64     `json:"total_tax"`
	TaxDetails    []TaxDetail `json:"tax_details"`
	EffectiveRate float64     `json:"effective_rate"`
}

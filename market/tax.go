package market

import "github.com/shopspring/decimal"

// =============================================================================
// TAX ESTIMATION - Stage 3 brackets, FY2024-25
// =============================================================================

// EstimateAnnualTax computes tax payable on a gross annual income using the
// resident brackets in tables.go. Levies and offsets are out of scope; this
// is a plausibility figure, not a tax return.
func EstimateAnnualTax(grossIncome decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	for i, bracket := range taxBrackets2024 {
		if grossIncome.LessThanOrEqual(bracket.threshold) {
			break
		}
		upper := grossIncome
		if i+1 < len(taxBrackets2024) && grossIncome.GreaterThan(taxBrackets2024[i+1].threshold) {
			upper = taxBrackets2024[i+1].threshold
		}
		tax = tax.Add(upper.Sub(bracket.threshold).Mul(bracket.rate))
	}
	return tax
}

// EffectiveTaxRate is tax payable over gross income, in [0,1).
func EffectiveTaxRate(grossIncome decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	return EstimateAnnualTax(grossIncome).Div(grossIncome)
}

// WithheldLooksPlausible flags whether reported withholding is within a
// tolerance band of the bracket estimate. Used as a soft consistency signal
// on yearly summaries, never as a rejection.
func WithheldLooksPlausible(grossIncome, taxWithheld decimal.Decimal) bool {
	if !grossIncome.IsPositive() {
		return false
	}
	estimate := EstimateAnnualTax(grossIncome)
	tolerance := estimate.Mul(decimal.NewFromFloat(0.25)).Add(decimal.NewFromInt(2000))
	diff := taxWithheld.Sub(estimate).Abs()
	return diff.LessThanOrEqual(tolerance)
}

/*
Package market provides a static Australian market reference data set.

PURPOSE:
  Implements the engine's MarketReference contract with built-in tables:
  industry median salaries, growth-rate baselines by seniority, the CPI
  baseline, superannuation guarantee rates by year, and Stage 3 tax
  brackets. The tables are config-grade constants; swapping in a live data
  source means providing another MarketReference implementation, not
  touching the engine.

PERCENTILE CURVE:
  The percentile lookup is a piecewise curve anchored on the industry
  median: linear from the 10th percentile at half the median up to the 90th
  at twice the median. Monotonic in compensation, clamped to [0,100],
  which is all the engine's contract requires.

SEE ALSO:
  - tables.go: The raw data tables
  - tax.go: Marginal tax estimation
*/
package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
)

// Reference is the static data set. The zero value is ready to use.
type Reference struct{}

var _ engine.MarketReference = Reference{}

// =============================================================================
// PERCENTILE
// =============================================================================

// IncomePercentile maps annual compensation onto [0,100] against the
// industry median, shifted slightly by seniority expectations.
func (Reference) IncomePercentile(industry string, level engine.SeniorityLevel, annual decimal.Decimal) (decimal.Decimal, error) {
	median, err := Reference{}.IndustryMedian(industry)
	if err != nil {
		return decimal.Zero, err
	}

	// Seniority shifts the expected median: a senior engineer at the
	// all-of-industry median is below peers.
	adjusted := median.Mul(seniorityMedianFactor(level))

	half := adjusted.Div(two)
	double := adjusted.Mul(two)

	switch {
	case annual.LessThanOrEqual(half):
		return decimal.NewFromInt(10).Mul(clampRatio(annual, half)), nil
	case annual.LessThanOrEqual(adjusted):
		// 10th..50th across [half, median]
		span := adjusted.Sub(half)
		progress := annual.Sub(half).Div(span)
		return decimal.NewFromInt(10).Add(progress.Mul(decimal.NewFromInt(40))), nil
	case annual.LessThan(double):
		// 50th..90th across [median, 2x median]
		span := double.Sub(adjusted)
		progress := annual.Sub(adjusted).Div(span)
		return decimal.NewFromInt(50).Add(progress.Mul(decimal.NewFromInt(40))), nil
	default:
		return decimal.NewFromInt(90), nil
	}
}

func clampRatio(value, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	ratio := value.Div(limit)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	if ratio.IsNegative() {
		return decimal.Zero
	}
	return ratio
}

func seniorityMedianFactor(level engine.SeniorityLevel) decimal.Decimal {
	if factor, ok := seniorityFactors[level]; ok {
		return factor
	}
	return decimal.NewFromInt(1)
}

// =============================================================================
// GROWTH BASELINES
// =============================================================================

// GrowthRate returns the reference annual growth rate for a baseline.
func (Reference) GrowthRate(baseline engine.GrowthBaseline, industry string, level engine.SeniorityLevel) (decimal.Decimal, error) {
	switch baseline {
	case engine.BaselineIndustryAverage:
		return industryAverageGrowth, nil
	case engine.BaselineCPI:
		return cpiAdjustedGrowth, nil
	case engine.BaselineRoleLevel, "":
		if rate, ok := roleLevelGrowth[level]; ok {
			return rate, nil
		}
		return roleLevelGrowth[engine.SeniorityMid], nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown growth baseline %q", engine.ErrInsufficientData, baseline)
	}
}

// IndustryMedian returns the median annual compensation for an industry.
// Matching is substring-based and case-insensitive, with a generic
// fallback median for unknown industries.
func (Reference) IndustryMedian(industry string) (decimal.Decimal, error) {
	if industry == "" {
		return decimal.Zero, fmt.Errorf("%w: no industry given", engine.ErrInsufficientData)
	}
	needle := strings.ToLower(industry)
	for _, row := range industryMedians {
		if strings.Contains(needle, row.keyword) {
			return row.median, nil
		}
	}
	return fallbackMedian, nil
}

// =============================================================================
// SUPER GUARANTEE
// =============================================================================

// SuperGuaranteeRate returns the statutory employer contribution rate (as a
// percentage) for the financial year beginning in the given calendar year.
// Years past the table's end hold at the final legislated rate.
func SuperGuaranteeRate(year int) decimal.Decimal {
	rate := superGuaranteeRates[0].rate
	for _, row := range superGuaranteeRates {
		if year >= row.fromYear {
			rate = row.rate
		}
	}
	return rate
}

// ConcessionalCap returns the statutory pre-tax contribution cap.
func ConcessionalCap() decimal.Decimal { return concessionalCap }

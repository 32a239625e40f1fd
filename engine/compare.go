/*
compare.go - Reality-check comparison functions

PURPOSE:
  Pure comparison functions with no hidden state: real hourly rate vs the
  standard-hours rate, market-rate gap, and the coarse overtime/loyalty
  threshold flags. These are the cheap heuristics a "reality check" card
  renders; the precise loyalty-tax dollar figure lives in analyze.go.

SEE ALSO:
  - analyze.go: The precise loyalty tax calculation
  - weekly.go: RealHourlyRate companion for timesheet data
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// THRESHOLDS
// =============================================================================

// OvertimeConcernMarginHours: working this many hours over standard per week
// flags an overtime concern.
var OvertimeConcernMarginHours = decimal.NewFromInt(5)

// LoyaltyConcernTenureYears: tenure at or past this flags a loyalty concern,
// independent of the dollar loyalty-tax figure.
const LoyaltyConcernTenureYears = 2.0

// =============================================================================
// RATE COMPARISONS
// =============================================================================

// RealHourlyRate is annual gross divided by actual annual hours.
// Returns zero when hours is zero.
func RealHourlyRate(annualGross, actualHoursPerWeek decimal.Decimal) decimal.Decimal {
	annualHours := actualHoursPerWeek.Mul(weeksPerYear)
	if !annualHours.IsPositive() {
		return decimal.Zero
	}
	return annualGross.Div(annualHours)
}

// MarketGap is how far the real rate falls below the market rate, floored
// at zero. Earning above market is not a gap.
func MarketGap(realRate, marketRate decimal.Decimal) decimal.Decimal {
	gap := marketRate.Sub(realRate)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// AnnualizedGap converts an hourly market gap to an annual dollar figure at
// the given actual weekly hours.
func AnnualizedGap(hourlyGap, actualHoursPerWeek decimal.Decimal) decimal.Decimal {
	return hourlyGap.Mul(actualHoursPerWeek).Mul(weeksPerYear)
}

// =============================================================================
// THRESHOLD FLAGS
// =============================================================================

// OvertimeConcern flags actual hours exceeding standard hours by more than
// the fixed margin.
func OvertimeConcern(actualHoursPerWeek, standardHoursPerWeek decimal.Decimal) bool {
	return actualHoursPerWeek.Sub(standardHoursPerWeek).GreaterThan(OvertimeConcernMarginHours)
}

// LoyaltyConcern flags tenure at or beyond the threshold at the current
// employer. This is a coarse heuristic warning, separate from the precise
// loyalty-tax dollars in analyze.go.
func LoyaltyConcern(position Position, asOf time.Time) bool {
	return position.TenureYears(asOf) >= LoyaltyConcernTenureYears
}

// RealityCheck bundles the comparison outputs for a single position.
type RealityCheck struct {
	RealHourlyRate  decimal.Decimal
	StandardRate    decimal.Decimal
	MarketGapHourly decimal.Decimal
	MarketGapAnnual decimal.Decimal
	OvertimeConcern bool
	LoyaltyConcern  bool
}

// CheckReality compares an annual gross figure against standard hours and a
// market hourly rate.
func CheckReality(annualGross, actualHoursPerWeek, standardHoursPerWeek, marketHourlyRate decimal.Decimal, position Position, asOf time.Time) RealityCheck {
	real := RealHourlyRate(annualGross, actualHoursPerWeek)
	standard := RealHourlyRate(annualGross, standardHoursPerWeek)
	gap := MarketGap(real, marketHourlyRate)

	return RealityCheck{
		RealHourlyRate:  real,
		StandardRate:    standard,
		MarketGapHourly: gap,
		MarketGapAnnual: AnnualizedGap(gap, actualHoursPerWeek),
		OvertimeConcern: OvertimeConcern(actualHoursPerWeek, standardHoursPerWeek),
		LoyaltyConcern:  LoyaltyConcern(position, asOf),
	}
}

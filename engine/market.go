package engine

import "github.com/shopspring/decimal"

// =============================================================================
// MARKET REFERENCE - Contract for external market data
// =============================================================================

// GrowthBaseline selects which reference growth rate the loyalty tax
// calculation compares against.
type GrowthBaseline string

const (
	BaselineIndustryAverage GrowthBaseline = "industry_average"
	BaselineRoleLevel       GrowthBaseline = "role_level"
	BaselineCPI             GrowthBaseline = "cpi_adjusted"
)

// MarketReference supplies percentile curves and growth-rate baselines.
// The engine defines only the contract; the data set is external.
//
// Contract:
//   - IncomePercentile returns a value in [0,100], monotonic in compensation
//     for a fixed industry/level.
//   - All methods return ErrInsufficientData (possibly wrapped) when the
//     industry or baseline is unknown; the engine degrades the dependent
//     metric rather than failing.
type MarketReference interface {
	IncomePercentile(industry string, level SeniorityLevel, annualCompensation decimal.Decimal) (decimal.Decimal, error)

	GrowthRate(baseline GrowthBaseline, industry string, level SeniorityLevel) (decimal.Decimal, error)

	// IndustryMedian returns the median annual total compensation.
	IndustryMedian(industry string) (decimal.Decimal, error)
}

/*
normalize.go - Record validation and annualization

PURPOSE:
  Converts each compensation record variant into the common NormalizedAnnual
  representation: base, overtime, allowances, bonuses, super, tax withheld,
  with a confidence score. This is the first stage of the pipeline and the
  only place record-level validation happens.

ANNUALIZATION RULES:
  Base:       Salary -> base rate as-is. Hourly -> rate x weekly hours x 52.
  Overtime:   annual_hours x multiplier x base_rate when annual hours are
              supplied, else avg_hours_per_week x multiplier x base_rate x 52.
              The hour bases are mutually exclusive; annual hours win.
  Allowances: amount x frequency multiplier (52/26/12/1), summed.
  Bonuses:    summed as-is (already annual point-in-time amounts).
  Yearly:     gross income is taken as already aggregated; no overtime or
              allowance breakdown is re-derived.
  Weekly:     NOT annualized here. Weekly records flow to weekly.go for
              statistical projection.

THE LEGACY OVERTIME FORMULA:
  The overtime formula multiplies the raw base rate even when the pay type is
  Salary, where an hourly rate arguably belongs. That produces overtime far
  exceeding base pay for salaried records with nonzero overtime hours. The
  legacy behavior is kept as the default for compatibility with existing
  data; OvertimeBasisHourly derives an hourly rate from the annual salary
  (base / (weekly hours x 52)) first. Pick the basis on the Normalizer.

CONFIDENCE SCORING:
  Exact   -> fixed 100.
  Fuzzy   -> base 60, +10 hourly pay type, +5 overtime tracked, +5 allowances
             present, -5 when the base rate is a round slider number.
             Clamped to [50, 90].
  Yearly  -> 95 (authoritative tax data).
  Scores are a pure function of record field values, never of UI state.

SEE ALSO:
  - types.go: Record variants and NormalizedAnnual
  - errors.go: RecordError and the rejection contract
*/
package engine

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	weeksPerYear = decimal.NewFromInt(52)
	maxWeekHours = decimal.NewFromInt(168)
	hundred      = decimal.NewFromInt(100)
)

// OvertimeBasis selects which overtime formula Normalize applies to
// salaried records.
type OvertimeBasis int

const (
	// OvertimeBasisLegacy multiplies the raw base rate, reproducing the
	// historical behavior even for annual salaries.
	OvertimeBasisLegacy OvertimeBasis = iota

	// OvertimeBasisHourly derives an hourly rate from annual salary first.
	OvertimeBasisHourly
)

// Normalizer converts compensation records to NormalizedAnnual.
// The zero value uses the legacy overtime basis.
type Normalizer struct {
	Overtime OvertimeBasis
}

// NormalizationResult partitions records into annualized entries, weekly
// records (which skip annualization), and per-record rejections.
type NormalizationResult struct {
	Annual   []NormalizedAnnual
	Weekly   []WeeklyRecord
	Rejected []*RecordError
}

// NormalizeAll runs Normalize over a record set. A rejected record never
// aborts the batch.
func (n Normalizer) NormalizeAll(records []CompensationRecord) NormalizationResult {
	var result NormalizationResult
	for _, rec := range records {
		if weekly, ok := rec.(WeeklyRecord); ok {
			if err := validateWeekly(weekly); err != nil {
				result.Rejected = append(result.Rejected, err)
				continue
			}
			result.Weekly = append(result.Weekly, weekly)
			continue
		}
		na, err := n.Normalize(rec)
		if err != nil {
			if recErr, ok := err.(*RecordError); ok {
				result.Rejected = append(result.Rejected, recErr)
				continue
			}
			result.Rejected = append(result.Rejected, &RecordError{
				RecordID: rec.RecordID(), Field: "", Reason: err.Error(), Err: ErrInvalidInput,
			})
			continue
		}
		result.Annual = append(result.Annual, na)
	}
	return result
}

// Normalize converts a single non-weekly record. Weekly records are not
// annualized individually; pass them through NormalizeAll instead.
func (n Normalizer) Normalize(rec CompensationRecord) (NormalizedAnnual, error) {
	switch r := rec.(type) {
	case ExactRecord:
		return n.normalizeExact(r)
	case FuzzyRecord:
		return n.normalizeFuzzy(r)
	case YearlySummaryRecord:
		return n.normalizeYearly(r)
	case WeeklyRecord:
		return NormalizedAnnual{}, invalidField(r.ID, "kind", "weekly records are projected, not annualized")
	default:
		return NormalizedAnnual{}, invalidField(rec.RecordID(), "kind", "unknown record kind")
	}
}

// NormalizeAll with the default legacy overtime basis.
func NormalizeAll(records []CompensationRecord) NormalizationResult {
	return Normalizer{}.NormalizeAll(records)
}

// =============================================================================
// EXACT / FUZZY
// =============================================================================

func (n Normalizer) normalizeExact(r ExactRecord) (NormalizedAnnual, error) {
	if err := validatePayBasis(r.ID, r.BaseRate, r.StandardWeeklyHours); err != nil {
		return NormalizedAnnual{}, err
	}
	if err := validateOvertime(r.ID, r.Overtime); err != nil {
		return NormalizedAnnual{}, err
	}

	base := annualBase(r.PayType, r.BaseRate, r.StandardWeeklyHours)

	allowances := decimal.Zero
	for i, a := range r.Allowances {
		if a.Amount.IsNegative() {
			return NormalizedAnnual{}, invalidField(r.ID, fieldAt("allowances", i), "negative amount")
		}
		allowances = allowances.Add(a.Amount.Mul(a.Frequency.AnnualMultiplier()))
	}

	bonuses := decimal.Zero
	for i, b := range r.Bonuses {
		if b.Amount.IsNegative() {
			return NormalizedAnnual{}, invalidField(r.ID, fieldAt("bonuses", i), "negative amount")
		}
		bonuses = bonuses.Add(b.Amount)
	}

	overtime := n.overtimeAnnual(r.PayType, r.BaseRate, r.StandardWeeklyHours, r.Overtime)

	return NormalizedAnnual{
		RecordID:            r.ID,
		PositionID:          r.PositionID,
		Kind:                KindExact,
		EffectiveDate:       r.EffectiveDate,
		Base:                base,
		Overtime:            overtime,
		Allowances:          allowances,
		Bonuses:             bonuses,
		SuperEmployer:       employerSuper(base, r.Super),
		SuperPersonal:       r.Super.SalarySacrifice,
		StandardWeeklyHours: r.StandardWeeklyHours,
		ActualWeeklyHours:   actualWeeklyHours(r.StandardWeeklyHours, r.Overtime),
		Confidence:          100,
	}, nil
}

func (n Normalizer) normalizeFuzzy(r FuzzyRecord) (NormalizedAnnual, error) {
	if err := validatePayBasis(r.ID, r.BaseRate, r.StandardWeeklyHours); err != nil {
		return NormalizedAnnual{}, err
	}
	if err := validateOvertime(r.ID, r.Overtime); err != nil {
		return NormalizedAnnual{}, err
	}
	if r.AggregateAllowance.IsNegative() {
		return NormalizedAnnual{}, invalidField(r.ID, "aggregate_allowance", "negative amount")
	}

	base := annualBase(r.PayType, r.BaseRate, r.StandardWeeklyHours)
	overtime := n.overtimeAnnual(r.PayType, r.BaseRate, r.StandardWeeklyHours, r.Overtime)

	return NormalizedAnnual{
		RecordID:            r.ID,
		PositionID:          r.PositionID,
		Kind:                KindFuzzy,
		EffectiveDate:       r.EffectiveDate,
		Base:                base,
		Overtime:            overtime,
		Allowances:          r.AggregateAllowance,
		SuperEmployer:       employerSuper(base, r.Super),
		SuperPersonal:       r.Super.SalarySacrifice,
		StandardWeeklyHours: r.StandardWeeklyHours,
		ActualWeeklyHours:   actualWeeklyHours(r.StandardWeeklyHours, r.Overtime),
		Confidence:          FuzzyConfidence(r),
	}, nil
}

// FuzzyConfidence scores a fuzzy record from its field values alone.
// Base 60; hourly pay implies more granular tracking (+10); tracked overtime
// (+5) and a recorded allowance (+5) each add signal; a base rate landing on
// a round slider step ($10k salary, $5 hourly) loses 5. Clamped to [50, 90].
func FuzzyConfidence(r FuzzyRecord) int {
	score := 60
	if r.PayType == PayHourly {
		score += 10
	}
	if r.Overtime.Frequency != OvertimeNone && overtimeHours(r.Overtime).IsPositive() {
		score += 5
	}
	if r.AggregateAllowance.IsPositive() {
		score += 5
	}
	if isRoundRate(r.PayType, r.BaseRate) {
		score -= 5
	}
	if score > 90 {
		score = 90
	}
	if score < 50 {
		score = 50
	}
	return score
}

func isRoundRate(payType PayType, rate decimal.Decimal) bool {
	step := decimal.NewFromInt(10000)
	if payType == PayHourly {
		step = decimal.NewFromInt(5)
	}
	return rate.Mod(step).IsZero()
}

// =============================================================================
// YEARLY SUMMARY
// =============================================================================

func (n Normalizer) normalizeYearly(r YearlySummaryRecord) (NormalizedAnnual, error) {
	if !r.GrossIncome.IsPositive() {
		return NormalizedAnnual{}, invalidField(r.ID, "gross_income", "must be positive")
	}
	if r.TaxWithheld.IsNegative() {
		return NormalizedAnnual{}, invalidField(r.ID, "tax_withheld", "negative amount")
	}
	if r.TaxWithheld.GreaterThan(r.GrossIncome) {
		return NormalizedAnnual{}, inconsistentField(r.ID, "tax_withheld", "exceeds gross income")
	}
	fy, err := ParseFYLabel(r.FinancialYearLabel)
	if err != nil {
		return NormalizedAnnual{}, invalidField(r.ID, "financial_year", "expected YYYY-YYYY")
	}

	// Listed allowances are informational detail; gross income already
	// folds them in, so they are not added a second time.
	return NormalizedAnnual{
		RecordID:      r.ID,
		PositionID:    r.PositionID,
		Kind:          KindYearlySummary,
		EffectiveDate: fy.EffectiveDate(),
		Base:          r.GrossIncome,
		SuperEmployer: r.ReportableSuper,
		TaxWithheld:   r.TaxWithheld,
		Confidence:    95,
	}, nil
}

// NetIncome is gross minus tax withheld for a yearly summary.
func NetIncome(r YearlySummaryRecord) decimal.Decimal {
	return r.GrossIncome.Sub(r.TaxWithheld)
}

// =============================================================================
// SHARED CALCULATION HELPERS
// =============================================================================

func annualBase(payType PayType, rate, weeklyHours decimal.Decimal) decimal.Decimal {
	if payType == PayHourly {
		return rate.Mul(weeklyHours).Mul(weeksPerYear)
	}
	return rate
}

// overtimeAnnual applies the configured overtime basis. Annual hours take
// precedence over the weekly average when present.
func (n Normalizer) overtimeAnnual(payType PayType, baseRate, weeklyHours decimal.Decimal, ot OvertimeDetails) decimal.Decimal {
	hours := overtimeHours(ot)
	if ot.Frequency == OvertimeNone || !hours.IsPositive() || !ot.RateMultiplier.IsPositive() {
		return decimal.Zero
	}

	rate := baseRate
	if n.Overtime == OvertimeBasisHourly && payType == PaySalary {
		divisor := weeklyHours.Mul(weeksPerYear)
		if !divisor.IsPositive() {
			return decimal.Zero
		}
		rate = baseRate.Div(divisor)
	}

	if ot.AnnualHours != nil {
		return ot.AnnualHours.Mul(ot.RateMultiplier).Mul(rate)
	}
	return ot.AverageHoursPerWeek.Mul(ot.RateMultiplier).Mul(rate).Mul(weeksPerYear)
}

func overtimeHours(ot OvertimeDetails) decimal.Decimal {
	if ot.AnnualHours != nil {
		return *ot.AnnualHours
	}
	return ot.AverageHoursPerWeek
}

func employerSuper(base decimal.Decimal, s SuperDetails) decimal.Decimal {
	guarantee := base.Mul(s.ContributionRate).Div(hundred)
	return guarantee.Add(s.AdditionalContributions)
}

func actualWeeklyHours(standard decimal.Decimal, ot OvertimeDetails) decimal.Decimal {
	if ot.AnnualHours != nil {
		return standard.Add(ot.AnnualHours.Div(weeksPerYear))
	}
	return standard.Add(ot.AverageHoursPerWeek)
}

// =============================================================================
// VALIDATION
// =============================================================================

func validatePayBasis(id RecordID, baseRate, weeklyHours decimal.Decimal) *RecordError {
	if !baseRate.IsPositive() {
		return invalidField(id, "base_rate", "must be positive")
	}
	if weeklyHours.IsNegative() || weeklyHours.GreaterThan(maxWeekHours) {
		return invalidField(id, "standard_weekly_hours", "outside [0,168]")
	}
	return nil
}

func validateOvertime(id RecordID, ot OvertimeDetails) *RecordError {
	if ot.AverageHoursPerWeek.IsNegative() {
		return invalidField(id, "overtime.average_hours_per_week", "negative hours")
	}
	if ot.AverageHoursPerWeek.GreaterThan(maxWeekHours) {
		return invalidField(id, "overtime.average_hours_per_week", "outside [0,168]")
	}
	if ot.AnnualHours != nil && ot.AnnualHours.IsNegative() {
		return invalidField(id, "overtime.annual_hours", "negative hours")
	}
	if ot.RateMultiplier.IsNegative() {
		return invalidField(id, "overtime.rate_multiplier", "negative multiplier")
	}
	return nil
}

func validateWeekly(r WeeklyRecord) *RecordError {
	if r.GrossPay.IsNegative() {
		return invalidField(r.ID, "gross_pay", "negative amount")
	}
	if r.NetPay.IsNegative() {
		return invalidField(r.ID, "net_pay", "negative amount")
	}
	if r.TaxWithheld.IsNegative() {
		return invalidField(r.ID, "tax_withheld", "negative amount")
	}
	if r.TaxWithheld.GreaterThan(r.GrossPay) {
		return inconsistentField(r.ID, "tax_withheld", "exceeds gross pay")
	}
	if r.OrdinaryHours.IsNegative() || r.OrdinaryHours.GreaterThan(maxWeekHours) {
		return invalidField(r.ID, "ordinary_hours", "outside [0,168]")
	}
	if r.OvertimeHours.IsNegative() || r.OvertimeHours.GreaterThan(maxWeekHours) {
		return invalidField(r.ID, "overtime_hours", "outside [0,168]")
	}
	if r.OrdinaryHours.Add(r.OvertimeHours).GreaterThan(maxWeekHours) {
		return inconsistentField(r.ID, "overtime_hours", "total hours exceed 168")
	}
	return nil
}

func fieldAt(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

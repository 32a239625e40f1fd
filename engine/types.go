/*
Package engine provides the core earnings analysis engine.

PURPOSE:
  This package contains the pure calculation pipeline that turns heterogeneous
  compensation records (exact payslips, fuzzy estimates, yearly tax summaries,
  weekly timesheets) into normalized annual figures and derived insights:
  effective hourly rates, income percentiles, loyalty tax, and superannuation
  trajectories.

KEY CONCEPTS IN THIS FILE (types.go):
  - Position: A period of employment (employer, title, dates, seniority)
  - CompensationRecord: Sum type over the four record variants
  - NormalizedAnnual: The common annualized representation
  - EarningsSnapshot / EarningsAnalysis: Derived outputs

DESIGN PRINCIPLES:
  1. Purity: Every stage is a pure function of its inputs. The "current date"
     is always an explicit parameter, never read from a global clock.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in money math.
  3. One-way flow: records -> normalization -> aggregation -> analysis -> insights.
     No stage mutates another's output.
  4. Partial failure: a bad record is rejected individually; it never aborts
     the whole analysis.

USAGE:
  result := engine.NormalizeAll(records)
  timeline := engine.AggregateTimeline(result.Annual, engine.AggregateOptions{})
  analysis, err := analyzer.Analyze(engine.AnalysisInput{
      AsOf:     asOf,
      Profile:  profile,
      Timeline: timeline,
      ...
  })

SEE ALSO:
  - normalize.go: Record validation and annualization
  - aggregate.go: Timeline construction
  - weekly.go: Weekly timesheet statistics and projection
  - analyze.go: Derived metrics and insights
  - compare.go: Reality-check comparison functions
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type PositionID string
type RecordID string

// =============================================================================
// ENUMS
// =============================================================================

type PayType string

const (
	PaySalary PayType = "salary" // base rate is an annual salary
	PayHourly PayType = "hourly" // base rate is an hourly rate
)

type EmploymentType string

const (
	EmploymentPermanent EmploymentType = "permanent"
	EmploymentContract  EmploymentType = "contract"
	EmploymentCasual    EmploymentType = "casual"
)

// SeniorityLevel is an ordered scale: Entry < Junior < ... < Executive.
// The ordering matters for market growth-rate lookups.
type SeniorityLevel int

const (
	SeniorityEntry SeniorityLevel = iota
	SeniorityJunior
	SeniorityMid
	SenioritySenior
	SeniorityLead
	SeniorityManager
	SeniorityDirector
	SeniorityExecutive
)

var seniorityNames = map[SeniorityLevel]string{
	SeniorityEntry:     "entry",
	SeniorityJunior:    "junior",
	SeniorityMid:       "mid",
	SenioritySenior:    "senior",
	SeniorityLead:      "lead",
	SeniorityManager:   "manager",
	SeniorityDirector:  "director",
	SeniorityExecutive: "executive",
}

func (s SeniorityLevel) String() string {
	if name, ok := seniorityNames[s]; ok {
		return name
	}
	return "entry"
}

// ParseSeniority maps a label back to a level. Unknown labels map to Entry.
func ParseSeniority(label string) SeniorityLevel {
	for level, name := range seniorityNames {
		if name == label {
			return level
		}
	}
	return SeniorityEntry
}

type OvertimeFrequency string

const (
	OvertimeNone       OvertimeFrequency = "none"
	OvertimeOccasional OvertimeFrequency = "occasional"
	OvertimeFrequent   OvertimeFrequency = "frequent"
	OvertimeExtreme    OvertimeFrequency = "extreme"
)

// PayFrequency is used for allowances and payslips.
type PayFrequency string

const (
	FreqWeekly      PayFrequency = "weekly"
	FreqFortnightly PayFrequency = "fortnightly"
	FreqMonthly     PayFrequency = "monthly"
	FreqAnnually    PayFrequency = "annually"
)

// AnnualMultiplier returns how many occurrences per year a frequency implies.
func (f PayFrequency) AnnualMultiplier() decimal.Decimal {
	switch f {
	case FreqWeekly:
		return decimal.NewFromInt(52)
	case FreqFortnightly:
		return decimal.NewFromInt(26)
	case FreqMonthly:
		return decimal.NewFromInt(12)
	default:
		return decimal.NewFromInt(1)
	}
}

type SummarySource string

const (
	SourceATO    SummarySource = "ato"
	SourceManual SummarySource = "manual"
)

// =============================================================================
// POSITION - A period of employment
// =============================================================================

// Position represents one employment period. EndDate nil means current.
// Invariant: EndDate (if present) >= StartDate.
type Position struct {
	ID               PositionID
	UserID           UserID
	EmployerName     string
	JobTitle         string
	EmploymentType   EmploymentType
	SeniorityLevel   SeniorityLevel
	Location         string
	StartDate        time.Time
	EndDate          *time.Time
	Responsibilities string
	Skills           []string
	Achievements     []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCurrent reports whether the position is open-ended or still active at asOf.
func (p Position) IsCurrent(asOf time.Time) bool {
	return p.EndDate == nil || !p.EndDate.Before(asOf)
}

// TenureYears returns tenure in fractional years as of the given date.
// Closed positions are measured to their end date.
func (p Position) TenureYears(asOf time.Time) float64 {
	end := asOf
	if p.EndDate != nil && p.EndDate.Before(asOf) {
		end = *p.EndDate
	}
	days := end.Sub(p.StartDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return days / 365.25
}

// =============================================================================
// COMPENSATION RECORDS - Sum type over four variants
// =============================================================================

type RecordKind string

const (
	KindExact         RecordKind = "exact"
	KindFuzzy         RecordKind = "fuzzy"
	KindYearlySummary RecordKind = "yearly_summary"
	KindWeekly        RecordKind = "weekly"
)

// CompensationRecord is implemented by the four record variants.
// Each record belongs to exactly one position and does not outlive it.
type CompensationRecord interface {
	RecordID() RecordID
	Position() PositionID
	Kind() RecordKind
}

// OvertimeDetails describes regular overtime on an exact or fuzzy record.
// Exactly one of AverageHoursPerWeek or AnnualHours is used as the hour
// basis; AnnualHours takes precedence when non-nil.
type OvertimeDetails struct {
	Frequency           OvertimeFrequency
	RateMultiplier      decimal.Decimal // 1.5x, 2.0x, or a mixed weighted value
	AverageHoursPerWeek decimal.Decimal
	AnnualHours         *decimal.Decimal
}

type Allowance struct {
	Name      string
	Amount    decimal.Decimal
	Frequency PayFrequency
	Taxable   bool
}

type Bonus struct {
	Name        string
	Amount      decimal.Decimal
	DateAwarded time.Time
	Taxable     bool
}

// SuperDetails captures superannuation contributions on a record.
type SuperDetails struct {
	ContributionRate        decimal.Decimal // employer rate, percent of base
	AdditionalContributions decimal.Decimal // extra employer $/year
	SalarySacrifice         decimal.Decimal // personal pre-tax $/year
}

// ExactRecord is a payslip-derived entry. Confidence is always 100.
type ExactRecord struct {
	ID                  RecordID
	PositionID          PositionID
	PayType             PayType
	BaseRate            decimal.Decimal // annual salary OR hourly rate per PayType
	StandardWeeklyHours decimal.Decimal
	Overtime            OvertimeDetails
	Allowances          []Allowance
	Bonuses             []Bonus
	Super               SuperDetails
	PayslipFrequency    PayFrequency
	EffectiveDate       time.Time
	Notes               string
}

func (r ExactRecord) RecordID() RecordID   { return r.ID }
func (r ExactRecord) Position() PositionID { return r.PositionID }
func (r ExactRecord) Kind() RecordKind     { return KindExact }

// FuzzyRecord has the same shape as ExactRecord but is derived from coarse
// slider-style inputs. Confidence is a function of input granularity.
type FuzzyRecord struct {
	ID                  RecordID
	PositionID          PositionID
	PayType             PayType
	BaseRate            decimal.Decimal
	StandardWeeklyHours decimal.Decimal
	Overtime            OvertimeDetails
	AggregateAllowance  decimal.Decimal // single annual estimate, no breakdown
	Super               SuperDetails
	EffectiveDate       time.Time
	Notes               string
}

func (r FuzzyRecord) RecordID() RecordID   { return r.ID }
func (r FuzzyRecord) Position() PositionID { return r.PositionID }
func (r FuzzyRecord) Kind() RecordKind     { return KindFuzzy }

// YearlySummaryRecord is an ATO-style financial year summary. Gross income
// already folds in base, overtime and allowances.
type YearlySummaryRecord struct {
	ID                 RecordID
	PositionID         PositionID
	GrossIncome        decimal.Decimal
	TaxWithheld        decimal.Decimal
	ReportableSuper    decimal.Decimal
	ReportableFringe   decimal.Decimal
	Allowances         []Allowance
	FinancialYearLabel string // "YYYY-YYYY"
	Source             SummarySource
	Notes              string
}

func (r YearlySummaryRecord) RecordID() RecordID   { return r.ID }
func (r YearlySummaryRecord) Position() PositionID { return r.PositionID }
func (r YearlySummaryRecord) Kind() RecordKind     { return KindYearlySummary }

// WeeklyRecord is a single week's payslip. Weekly records are not annualized
// individually; they flow to the aggregation layer for statistical projection.
type WeeklyRecord struct {
	ID               RecordID
	PositionID       PositionID
	WeekEnding       time.Time
	GrossPay         decimal.Decimal
	TaxWithheld      decimal.Decimal
	NetPay           decimal.Decimal
	OrdinaryHours    decimal.Decimal
	OvertimeHours    decimal.Decimal
	OvertimeRateMul  decimal.Decimal // weighted average when mixing 1.5x/2x bands
	SuperContributed decimal.Decimal
	Allowances       decimal.Decimal
	Notes            string
}

func (r WeeklyRecord) RecordID() RecordID   { return r.ID }
func (r WeeklyRecord) Position() PositionID { return r.PositionID }
func (r WeeklyRecord) Kind() RecordKind     { return KindWeekly }

// WeightedOvertimeMultiplier computes the blended multiplier for a week that
// mixes penalty bands, weighted by hours in each band.
func WeightedOvertimeMultiplier(bands []OvertimeBand) decimal.Decimal {
	totalHours := decimal.Zero
	weighted := decimal.Zero
	for _, b := range bands {
		totalHours = totalHours.Add(b.Hours)
		weighted = weighted.Add(b.Hours.Mul(b.Multiplier))
	}
	if totalHours.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(totalHours)
}

// OvertimeBand is a penalty band on a weekly payslip (e.g., 3h at 1.5x).
type OvertimeBand struct {
	Hours      decimal.Decimal
	Multiplier decimal.Decimal
}

// =============================================================================
// USER PROFILE
// =============================================================================

// OvertimeAppetite is a coarse preference scale carried on the profile.
type OvertimeAppetite string

const (
	AppetiteNone     OvertimeAppetite = "none"
	AppetiteMinimal  OvertimeAppetite = "minimal"
	AppetiteModerate OvertimeAppetite = "moderate"
	AppetiteHigh     OvertimeAppetite = "high"
	AppetiteExtreme  OvertimeAppetite = "extreme"
)

type CareerPreferences struct {
	EmploymentTypePreference EmploymentType
	OvertimeAppetite         OvertimeAppetite
}

// UserProfile carries the user context the analysis engine needs for market
// lookups. Account mechanics live outside the engine; the profile is plain data.
type UserProfile struct {
	UserID              UserID
	State               string // e.g., "NSW"
	Industry            string
	Qualification       string
	StandardWeeklyHours decimal.Decimal // defaults to 38 when zero
	Preferences         CareerPreferences
}

// EffectiveStandardHours returns the profile's standard weekly hours, falling
// back to the Australian full-time standard of 38.
func (p UserProfile) EffectiveStandardHours() decimal.Decimal {
	if p.StandardWeeklyHours.IsPositive() {
		return p.StandardWeeklyHours
	}
	return decimal.NewFromInt(38)
}

// =============================================================================
// NORMALIZED ANNUAL - Output of the normalization layer
// =============================================================================

// NormalizedAnnual is the common annualized representation of a record.
type NormalizedAnnual struct {
	RecordID      RecordID
	PositionID    PositionID
	Kind          RecordKind
	EffectiveDate time.Time

	Base       decimal.Decimal
	Overtime   decimal.Decimal
	Allowances decimal.Decimal
	Bonuses    decimal.Decimal

	SuperEmployer decimal.Decimal
	SuperPersonal decimal.Decimal
	TaxWithheld   decimal.Decimal

	// Hours context for effective-rate calculation. Zero when the source
	// record carries no hours (yearly summaries).
	StandardWeeklyHours decimal.Decimal
	ActualWeeklyHours   decimal.Decimal

	Confidence int // 0-100
}

// TotalAnnual is base + overtime + allowances + bonuses.
func (n NormalizedAnnual) TotalAnnual() decimal.Decimal {
	return n.Base.Add(n.Overtime).Add(n.Allowances).Add(n.Bonuses)
}

// TotalWithSuper adds employer and personal super on top of TotalAnnual.
func (n NormalizedAnnual) TotalWithSuper() decimal.Decimal {
	return n.TotalAnnual().Add(n.SuperEmployer).Add(n.SuperPersonal)
}

// =============================================================================
// DERIVED OUTPUT TYPES
// =============================================================================

// EarningsSnapshot is a point on the normalized annual timeline.
type EarningsSnapshot struct {
	Date                time.Time
	PositionID          PositionID
	BaseAnnual          decimal.Decimal
	ActualAnnual        decimal.Decimal
	TotalWithSuper      decimal.Decimal
	EffectiveHourlyRate decimal.Decimal
	Confidence          int
}

// HoursEarningsPoint aggregates hours vs earnings for one calendar year.
type HoursEarningsPoint struct {
	Year               int
	TotalHoursWorked   decimal.Decimal
	TotalEarnings      decimal.Decimal
	OvertimePercentage decimal.Decimal
}

// SuperSnapshot aggregates contributions for one financial year.
type SuperSnapshot struct {
	FinancialYear   string
	Employer        decimal.Decimal
	Personal        decimal.Decimal
	Total           decimal.Decimal
	CapUtilisation  decimal.Decimal // percent of concessional cap
	CapHeadroom     decimal.Decimal
}

// SuperProjection is a long-horizon future value of current contributions.
type SuperProjection struct {
	Years              int
	AssumedReturn      decimal.Decimal
	AnnualContribution decimal.Decimal
	FutureValue        decimal.Decimal
}

type InsightCategory string

const (
	InsightUnderpaid         InsightCategory = "underpaid"
	InsightFairlyPaid        InsightCategory = "fairly_paid"
	InsightOverpaid          InsightCategory = "overpaid"
	InsightOvertimeHeavy     InsightCategory = "overtime_heavy"
	InsightLoyaltyTax        InsightCategory = "loyalty_tax"
	InsightMarketOpportunity InsightCategory = "market_opportunity"
)

// EarningsInsight is a categorized, human-readable finding.
// ConfidenceLevel is a heuristic in [0,1], not a statistical p-value.
type EarningsInsight struct {
	Category        InsightCategory
	Title           string
	Description     string
	ConfidenceLevel float64
	DataPoints      []string
}

// TenureBlock summarizes loyalty at a single employer.
type TenureBlock struct {
	EmployerName         string
	StartDate            time.Time
	EndDate              *time.Time
	YearsOfService       float64
	ActualProgressionPct decimal.Decimal
	MarketExpectedPct    decimal.Decimal
	LoyaltyTaxImpact     decimal.Decimal
}

// CareerSummary carries whole-of-career aggregates.
type CareerSummary struct {
	TotalCareerEarnings      decimal.Decimal
	YearsExperience          float64
	AverageAnnualIncreasePct decimal.Decimal
}

// EarningsAnalysis is the aggregate output of the analysis engine.
// Percentile and loyalty tax degrade to nil when the data to compute them
// is missing; they never abort the analysis.
type EarningsAnalysis struct {
	AsOf time.Time

	CurrentTotalCompensation   decimal.Decimal
	CurrentEffectiveHourlyRate decimal.Decimal

	IncomePercentile     *decimal.Decimal
	LoyaltyTaxAnnual     *decimal.Decimal
	LoyaltyTaxCumulative *decimal.Decimal

	EarningsOverTime []EarningsSnapshot
	HoursVsEarnings  []HoursEarningsPoint
	SuperTrajectory  []SuperSnapshot
	SuperProjection  *SuperProjection
	TenureBlocks     []TenureBlock
	Career           CareerSummary
	Insights         []EarningsInsight

	// Rejected carries the records the normalization pass refused, so
	// callers surface them without normalizing a second time.
	Rejected []*RecordError
}

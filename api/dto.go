/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract:
  money crosses the wire as float64, dates as ISO strings, and the engine
  never sees a DTO.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these mirror
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
)

const dateLayout = "2006-01-02"

// =============================================================================
// PROFILE
// =============================================================================

type ProfileDTO struct {
	UserID              string  `json:"user_id"`
	State               string  `json:"state"`
	Industry            string  `json:"industry"`
	Qualification       string  `json:"qualification"`
	StandardWeeklyHours float64 `json:"standard_weekly_hours"`
	OvertimeAppetite    string  `json:"overtime_appetite,omitempty"`
}

func toProfileDTO(p engine.UserProfile) ProfileDTO {
	hours, _ := p.StandardWeeklyHours.Float64()
	return ProfileDTO{
		UserID:              string(p.UserID),
		State:               p.State,
		Industry:            p.Industry,
		Qualification:       p.Qualification,
		StandardWeeklyHours: hours,
		OvertimeAppetite:    string(p.Preferences.OvertimeAppetite),
	}
}

func (d ProfileDTO) toDomain(userID engine.UserID) engine.UserProfile {
	return engine.UserProfile{
		UserID:              userID,
		State:               d.State,
		Industry:            d.Industry,
		Qualification:       d.Qualification,
		StandardWeeklyHours: decimal.NewFromFloat(d.StandardWeeklyHours),
		Preferences: engine.CareerPreferences{
			OvertimeAppetite: engine.OvertimeAppetite(d.OvertimeAppetite),
		},
	}
}

// =============================================================================
// POSITIONS
// =============================================================================

type PositionDTO struct {
	ID               string   `json:"id"`
	EmployerName     string   `json:"employer_name"`
	JobTitle         string   `json:"job_title"`
	EmploymentType   string   `json:"employment_type"`
	SeniorityLevel   string   `json:"seniority_level"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          *string  `json:"end_date,omitempty"`
	Responsibilities string   `json:"responsibilities,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

func toPositionDTO(p engine.Position) PositionDTO {
	dto := PositionDTO{
		ID:               string(p.ID),
		EmployerName:     p.EmployerName,
		JobTitle:         p.JobTitle,
		EmploymentType:   string(p.EmploymentType),
		SeniorityLevel:   p.SeniorityLevel.String(),
		Location:         p.Location,
		StartDate:        p.StartDate.Format(dateLayout),
		Responsibilities: p.Responsibilities,
		Skills:           p.Skills,
		Achievements:     p.Achievements,
	}
	if p.EndDate != nil {
		end := p.EndDate.Format(dateLayout)
		dto.EndDate = &end
	}
	return dto
}

func (d PositionDTO) toDomain(userID engine.UserID) (engine.Position, error) {
	start, err := time.Parse(dateLayout, d.StartDate)
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w: start_date %q", engine.ErrInvalidInput, d.StartDate)
	}
	position := engine.Position{
		ID:               engine.PositionID(d.ID),
		UserID:           userID,
		EmployerName:     d.EmployerName,
		JobTitle:         d.JobTitle,
		EmploymentType:   engine.EmploymentType(d.EmploymentType),
		SeniorityLevel:   engine.ParseSeniority(d.SeniorityLevel),
		Location:         d.Location,
		StartDate:        start,
		Responsibilities: d.Responsibilities,
		Skills:           d.Skills,
		Achievements:     d.Achievements,
	}
	if d.EndDate != nil {
		end, err := time.Parse(dateLayout, *d.EndDate)
		if err != nil {
			return engine.Position{}, fmt.Errorf("%w: end_date %q", engine.ErrInvalidInput, *d.EndDate)
		}
		position.EndDate = &end
	}
	return position, nil
}

// =============================================================================
// COMPENSATION RECORDS
// =============================================================================

// RecordRequest is the polymorphic record payload, discriminated by kind.
// Only the fields for the given kind are read.
type RecordRequest struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	// exact + fuzzy
	PayType             string             `json:"pay_type,omitempty"`
	BaseRate            float64            `json:"base_rate,omitempty"`
	StandardWeeklyHours float64            `json:"standard_weekly_hours,omitempty"`
	Overtime            *OvertimeDTO       `json:"overtime,omitempty"`
	Allowances          []AllowanceDTO     `json:"allowances,omitempty"`
	Bonuses             []BonusDTO         `json:"bonuses,omitempty"`
	AggregateAllowance  float64            `json:"aggregate_allowance,omitempty"`
	Super               *SuperDetailsDTO   `json:"super,omitempty"`
	PayslipFrequency    string             `json:"payslip_frequency,omitempty"`
	EffectiveDate       string             `json:"effective_date,omitempty"`

	// yearly summary
	GrossIncome      float64 `json:"gross_income,omitempty"`
	TaxWithheld      float64 `json:"tax_withheld,omitempty"`
	ReportableSuper  float64 `json:"reportable_super,omitempty"`
	ReportableFringe float64 `json:"reportable_fringe,omitempty"`
	FinancialYear    string  `json:"financial_year,omitempty"`
	Source           string  `json:"source,omitempty"`

	// weekly
	WeekEnding       string  `json:"week_ending,omitempty"`
	GrossPay         float64 `json:"gross_pay,omitempty"`
	NetPay           float64 `json:"net_pay,omitempty"`
	OrdinaryHours    float64 `json:"ordinary_hours,omitempty"`
	OvertimeHours    float64 `json:"overtime_hours,omitempty"`
	OvertimeRateMul  float64 `json:"overtime_rate_multiplier,omitempty"`
	SuperContributed float64 `json:"super_contributed,omitempty"`
	AllowancesTotal  float64 `json:"allowances_total,omitempty"`

	Notes string `json:"notes,omitempty"`
}

type OvertimeDTO struct {
	Frequency           string   `json:"frequency"`
	RateMultiplier      float64  `json:"rate_multiplier"`
	AverageHoursPerWeek float64  `json:"average_hours_per_week"`
	AnnualHours         *float64 `json:"annual_hours,omitempty"`
}

type AllowanceDTO struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	Taxable   bool    `json:"taxable"`
}

type BonusDTO struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DateAwarded string  `json:"date_awarded"`
	Taxable     bool    `json:"taxable"`
}

type SuperDetailsDTO struct {
	ContributionRate        float64 `json:"contribution_rate"`
	AdditionalContributions float64 `json:"additional_contributions"`
	SalarySacrifice         float64 `json:"salary_sacrifice"`
}

func (d RecordRequest) toDomain(positionID engine.PositionID) (engine.CompensationRecord, error) {
	switch engine.RecordKind(d.Kind) {
	case engine.KindExact:
		effective, err := time.Parse(dateLayout, d.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: effective_date %q", engine.ErrInvalidInput, d.EffectiveDate)
		}
		allowances, err := toAllowances(d.Allowances)
		if err != nil {
			return nil, err
		}
		bonuses, err := toBonuses(d.Bonuses)
		if err != nil {
			return nil, err
		}
		return engine.ExactRecord{
			ID:                  engine.RecordID(d.ID),
			PositionID:          positionID,
			PayType:             engine.PayType(d.PayType),
			BaseRate:            decimal.NewFromFloat(d.BaseRate),
			StandardWeeklyHours: decimal.NewFromFloat(d.StandardWeeklyHours),
			Overtime:            toOvertime(d.Overtime),
			Allowances:          allowances,
			Bonuses:             bonuses,
			Super:               toSuper(d.Super),
			PayslipFrequency:    engine.PayFrequency(d.PayslipFrequency),
			EffectiveDate:       effective,
			Notes:               d.Notes,
		}, nil

	case engine.KindFuzzy:
		effective, err := time.Parse(dateLayout, d.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: effective_date %q", engine.ErrInvalidInput, d.EffectiveDate)
		}
		return engine.FuzzyRecord{
			ID:                  engine.RecordID(d.ID),
			PositionID:          positionID,
			PayType:             engine.PayType(d.PayType),
			BaseRate:            decimal.NewFromFloat(d.BaseRate),
			StandardWeeklyHours: decimal.NewFromFloat(d.StandardWeeklyHours),
			Overtime:            toOvertime(d.Overtime),
			AggregateAllowance:  decimal.NewFromFloat(d.AggregateAllowance),
			Super:               toSuper(d.Super),
			EffectiveDate:       effective,
			Notes:               d.Notes,
		}, nil

	case engine.KindYearlySummary:
		allowances, err := toAllowances(d.Allowances)
		if err != nil {
			return nil, err
		}
		return engine.YearlySummaryRecord{
			ID:                 engine.RecordID(d.ID),
			PositionID:         positionID,
			GrossIncome:        decimal.NewFromFloat(d.GrossIncome),
			TaxWithheld:        decimal.NewFromFloat(d.TaxWithheld),
			ReportableSuper:    decimal.NewFromFloat(d.ReportableSuper),
			ReportableFringe:   decimal.NewFromFloat(d.ReportableFringe),
			Allowances:         allowances,
			FinancialYearLabel: d.FinancialYear,
			Source:             engine.SummarySource(d.Source),
			Notes:              d.Notes,
		}, nil

	case engine.KindWeekly:
		weekEnding, err := time.Parse(dateLayout, d.WeekEnding)
		if err != nil {
			return nil, fmt.Errorf("%w: week_ending %q", engine.ErrInvalidInput, d.WeekEnding)
		}
		return engine.WeeklyRecord{
			ID:               engine.RecordID(d.ID),
			PositionID:       positionID,
			WeekEnding:       weekEnding,
			GrossPay:         decimal.NewFromFloat(d.GrossPay),
			TaxWithheld:      decimal.NewFromFloat(d.TaxWithheld),
			NetPay:           decimal.NewFromFloat(d.NetPay),
			OrdinaryHours:    decimal.NewFromFloat(d.OrdinaryHours),
			OvertimeHours:    decimal.NewFromFloat(d.OvertimeHours),
			OvertimeRateMul:  decimal.NewFromFloat(d.OvertimeRateMul),
			SuperContributed: decimal.NewFromFloat(d.SuperContributed),
			Allowances:       decimal.NewFromFloat(d.AllowancesTotal),
			Notes:            d.Notes,
		}, nil

	default:
		return nil, fmt.Errorf("%w: record kind %q", engine.ErrInvalidInput, d.Kind)
	}
}

func toOvertime(d *OvertimeDTO) engine.OvertimeDetails {
	if d == nil {
		return engine.OvertimeDetails{Frequency: engine.OvertimeNone}
	}
	ot := engine.OvertimeDetails{
		Frequency:           engine.OvertimeFrequency(d.Frequency),
		RateMultiplier:      decimal.NewFromFloat(d.RateMultiplier),
		AverageHoursPerWeek: decimal.NewFromFloat(d.AverageHoursPerWeek),
	}
	if d.AnnualHours != nil {
		annual := decimal.NewFromFloat(*d.AnnualHours)
		ot.AnnualHours = &annual
	}
	return ot
}

func toAllowances(dtos []AllowanceDTO) ([]engine.Allowance, error) {
	var allowances []engine.Allowance
	for _, a := range dtos {
		allowances = append(allowances, engine.Allowance{
			Name:      a.Name,
			Amount:    decimal.NewFromFloat(a.Amount),
			Frequency: engine.PayFrequency(a.Frequency),
			Taxable:   a.Taxable,
		})
	}
	return allowances, nil
}

func toBonuses(dtos []BonusDTO) ([]engine.Bonus, error) {
	var bonuses []engine.Bonus
	for _, b := range dtos {
		awarded, err := time.Parse(dateLayout, b.DateAwarded)
		if err != nil {
			return nil, fmt.Errorf("%w: date_awarded %q", engine.ErrInvalidInput, b.DateAwarded)
		}
		bonuses = append(bonuses, engine.Bonus{
			Name:        b.Name,
			Amount:      decimal.NewFromFloat(b.Amount),
			DateAwarded: awarded,
			Taxable:     b.Taxable,
		})
	}
	return bonuses, nil
}

func toSuper(d *SuperDetailsDTO) engine.SuperDetails {
	if d == nil {
		return engine.SuperDetails{}
	}
	return engine.SuperDetails{
		ContributionRate:        decimal.NewFromFloat(d.ContributionRate),
		AdditionalContributions: decimal.NewFromFloat(d.AdditionalContributions),
		SalarySacrifice:         decimal.NewFromFloat(d.SalarySacrifice),
	}
}

// =============================================================================
// ANALYSIS RESPONSES
// =============================================================================

type AnalysisDTO struct {
	State string `json:"state"` // "ok" or "no_data"
	AsOf  string `json:"as_of,omitempty"`

	CurrentTotalCompensation   float64  `json:"current_total_compensation,omitempty"`
	CurrentEffectiveHourlyRate float64  `json:"current_effective_hourly_rate,omitempty"`
	IncomePercentile           *float64 `json:"income_percentile,omitempty"`
	LoyaltyTaxAnnual           *float64 `json:"loyalty_tax_annual,omitempty"`
	LoyaltyTaxCumulative       *float64 `json:"loyalty_tax_cumulative,omitempty"`

	EarningsOverTime []SnapshotDTO        `json:"earnings_over_time,omitempty"`
	HoursVsEarnings  []HoursEarningsDTO   `json:"hours_vs_earnings,omitempty"`
	SuperTrajectory  []SuperSnapshotDTO   `json:"super_trajectory,omitempty"`
	SuperProjection  *SuperProjectionDTO  `json:"super_projection,omitempty"`
	TenureBlocks     []TenureBlockDTO     `json:"tenure_blocks,omitempty"`
	Career           *CareerSummaryDTO    `json:"career,omitempty"`
	Insights         []InsightDTO         `json:"insights,omitempty"`
	RejectedRecords  []RejectedRecordDTO  `json:"rejected_records,omitempty"`
}

type SnapshotDTO struct {
	Date                string  `json:"date"`
	BaseAnnual          float64 `json:"base_annual"`
	ActualAnnual        float64 `json:"actual_annual"`
	TotalWithSuper      float64 `json:"total_with_super"`
	EffectiveHourlyRate float64 `json:"effective_hourly_rate"`
	Confidence          int     `json:"confidence"`
}

type HoursEarningsDTO struct {
	Year               int     `json:"year"`
	TotalHoursWorked   float64 `json:"total_hours_worked"`
	TotalEarnings      float64 `json:"total_earnings"`
	OvertimePercentage float64 `json:"overtime_percentage"`
}

type SuperSnapshotDTO struct {
	FinancialYear  string  `json:"financial_year"`
	Employer       float64 `json:"employer"`
	Personal       float64 `json:"personal"`
	Total          float64 `json:"total"`
	CapUtilisation float64 `json:"cap_utilisation"`
	CapHeadroom    float64 `json:"cap_headroom"`
}

type SuperProjectionDTO struct {
	Years              int     `json:"years"`
	AssumedReturn      float64 `json:"assumed_return"`
	AnnualContribution float64 `json:"annual_contribution"`
	FutureValue        float64 `json:"future_value"`
}

type TenureBlockDTO struct {
	EmployerName         string  `json:"employer_name"`
	StartDate            string  `json:"start_date"`
	EndDate              *string `json:"end_date,omitempty"`
	YearsOfService       float64 `json:"years_of_service"`
	ActualProgressionPct float64 `json:"actual_progression_pct"`
	MarketExpectedPct    float64 `json:"market_expected_pct"`
	LoyaltyTaxImpact     float64 `json:"loyalty_tax_impact"`
}

type CareerSummaryDTO struct {
	TotalCareerEarnings      float64 `json:"total_career_earnings"`
	YearsExperience          float64 `json:"years_experience"`
	AverageAnnualIncreasePct float64 `json:"average_annual_increase_pct"`
}

type InsightDTO struct {
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ConfidenceLevel float64  `json:"confidence_level"`
	DataPoints      []string `json:"data_points,omitempty"`
}

type RejectedRecordDTO struct {
	RecordID string `json:"record_id"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
}

type WeeklyProjectionDTO struct {
	State                string  `json:"state"`
	AverageWeeklyGross   float64 `json:"average_weekly_gross,omitempty"`
	MedianWeeklyGross    float64 `json:"median_weekly_gross,omitempty"`
	AverageWeeklyNet     float64 `json:"average_weekly_net,omitempty"`
	ProjectedAnnualGross float64 `json:"projected_annual_gross,omitempty"`
	ProjectedAnnualNet   float64 `json:"projected_annual_net,omitempty"`
	RealHourlyRate       float64 `json:"real_hourly_rate,omitempty"`
	Trend                string  `json:"trend,omitempty"`
	SampleSize           int     `json:"sample_size,omitempty"`
}

type RealityCheckDTO struct {
	RealHourlyRate  float64 `json:"real_hourly_rate"`
	StandardRate    float64 `json:"standard_rate"`
	MarketGapHourly float64 `json:"market_gap_hourly"`
	MarketGapAnnual float64 `json:"market_gap_annual"`
	OvertimeConcern bool    `json:"overtime_concern"`
	LoyaltyConcern  bool    `json:"loyalty_concern"`
}

// =============================================================================
// RESUME EXPORT
// =============================================================================

type ResumeDTO struct {
	Summary      ResumeSummaryDTO      `json:"summary"`
	Timeline     []ResumePositionDTO   `json:"timeline"`
	Achievements []string              `json:"achievements,omitempty"`
	Skills       []string              `json:"skills,omitempty"`
	Compensation ResumeCompensationDTO `json:"compensation"`
	Preferences  ResumePreferencesDTO  `json:"preferences"`
}

type ResumeSummaryDTO struct {
	Location        string  `json:"location,omitempty"`
	Industry        string  `json:"industry,omitempty"`
	SeniorityLevel  string  `json:"seniority_level"`
	YearsExperience float64 `json:"years_experience"`
}

type ResumePositionDTO struct {
	Employer         string   `json:"employer"`
	Title            string   `json:"title"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	Skills           []string `json:"skills,omitempty"`
}

type ResumeCompensationDTO struct {
	CurrentBase              float64 `json:"current_base"`
	CurrentTotal             float64 `json:"current_total"`
	TotalCareerEarnings      float64 `json:"total_career_earnings"`
	AverageAnnualIncreasePct float64 `json:"average_annual_increase_pct"`
}

type ResumePreferencesDTO struct {
	EmploymentType   string `json:"employment_type,omitempty"`
	OvertimeAppetite string `json:"overtime_appetite,omitempty"`
}

func toResumeDTO(r engine.ResumeExport) ResumeDTO {
	dto := ResumeDTO{
		Summary: ResumeSummaryDTO{
			Location:        r.Summary.Location,
			Industry:        r.Summary.Industry,
			SeniorityLevel:  r.Summary.SeniorityLevel.String(),
			YearsExperience: r.Summary.YearsExperience,
		},
		Achievements: r.Achievements,
		Skills:       r.Skills,
		Compensation: ResumeCompensationDTO{
			CurrentBase:              f(r.Compensation.CurrentBase),
			CurrentTotal:             f(r.Compensation.CurrentTotal),
			TotalCareerEarnings:      f(r.Compensation.TotalCareerEarnings),
			AverageAnnualIncreasePct: f(r.Compensation.AverageAnnualIncreasePct),
		},
		Preferences: ResumePreferencesDTO{
			EmploymentType:   string(r.Preferences.EmploymentTypePreference),
			OvertimeAppetite: string(r.Preferences.OvertimeAppetite),
		},
	}
	for _, p := range r.Timeline {
		dto.Timeline = append(dto.Timeline, ResumePositionDTO{
			Employer:         p.Employer,
			Title:            p.Title,
			Duration:         p.Duration,
			Responsibilities: p.Responsibilities,
			Achievements:     p.Achievements,
			Skills:           p.Skills,
		})
	}
	return dto
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func fptr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v, _ := d.Float64()
	return &v
}

func toAnalysisDTO(a *engine.EarningsAnalysis) AnalysisDTO {
	dto := AnalysisDTO{
		State:                      "ok",
		AsOf:                       a.AsOf.Format(dateLayout),
		CurrentTotalCompensation:   f(a.CurrentTotalCompensation),
		CurrentEffectiveHourlyRate: f(a.CurrentEffectiveHourlyRate),
		IncomePercentile:           fptr(a.IncomePercentile),
		LoyaltyTaxAnnual:           fptr(a.LoyaltyTaxAnnual),
		LoyaltyTaxCumulative:       fptr(a.LoyaltyTaxCumulative),
	}

	for _, s := range a.EarningsOverTime {
		dto.EarningsOverTime = append(dto.EarningsOverTime, SnapshotDTO{
			Date:                s.Date.Format(dateLayout),
			BaseAnnual:          f(s.BaseAnnual),
			ActualAnnual:        f(s.ActualAnnual),
			TotalWithSuper:      f(s.TotalWithSuper),
			EffectiveHourlyRate: f(s.EffectiveHourlyRate),
			Confidence:          s.Confidence,
		})
	}
	for _, h := range a.HoursVsEarnings {
		dto.HoursVsEarnings = append(dto.HoursVsEarnings, HoursEarningsDTO{
			Year:               h.Year,
			TotalHoursWorked:   f(h.TotalHoursWorked),
			TotalEarnings:      f(h.TotalEarnings),
			OvertimePercentage: f(h.OvertimePercentage),
		})
	}
	for _, s := range a.SuperTrajectory {
		dto.SuperTrajectory = append(dto.SuperTrajectory, SuperSnapshotDTO{
			FinancialYear:  s.FinancialYear,
			Employer:       f(s.Employer),
			Personal:       f(s.Personal),
			Total:          f(s.Total),
			CapUtilisation: f(s.CapUtilisation),
			CapHeadroom:    f(s.CapHeadroom),
		})
	}
	if p := a.SuperProjection; p != nil {
		dto.SuperProjection = &SuperProjectionDTO{
			Years:              p.Years,
			AssumedReturn:      f(p.AssumedReturn),
			AnnualContribution: f(p.AnnualContribution),
			FutureValue:        f(p.FutureValue),
		}
	}
	for _, b := range a.TenureBlocks {
		blockDTO := TenureBlockDTO{
			EmployerName:         b.EmployerName,
			StartDate:            b.StartDate.Format(dateLayout),
			YearsOfService:       b.YearsOfService,
			ActualProgressionPct: f(b.ActualProgressionPct),
			MarketExpectedPct:    f(b.MarketExpectedPct),
			LoyaltyTaxImpact:     f(b.LoyaltyTaxImpact),
		}
		if b.EndDate != nil {
			end := b.EndDate.Format(dateLayout)
			blockDTO.EndDate = &end
		}
		dto.TenureBlocks = append(dto.TenureBlocks, blockDTO)
	}
	dto.Career = &CareerSummaryDTO{
		TotalCareerEarnings:      f(a.Career.TotalCareerEarnings),
		YearsExperience:          a.Career.YearsExperience,
		AverageAnnualIncreasePct: f(a.Career.AverageAnnualIncreasePct),
	}
	for _, i := range a.Insights {
		dto.Insights = append(dto.Insights, InsightDTO{
			Category:        string(i.Category),
			Title:           i.Title,
			Description:     i.Description,
			ConfidenceLevel: i.ConfidenceLevel,
			DataPoints:      i.DataPoints,
		})
	}
	for _, rej := range a.Rejected {
		dto.RejectedRecords = append(dto.RejectedRecords, RejectedRecordDTO{
			RecordID: string(rej.RecordID),
			Field:    rej.Field,
			Reason:   rej.Reason,
		})
	}
	return dto
}

func toWeeklyProjectionDTO(p engine.WeeklyProjection) WeeklyProjectionDTO {
	return WeeklyProjectionDTO{
		State:                "ok",
		AverageWeeklyGross:   f(p.AverageWeeklyGross),
		MedianWeeklyGross:    f(p.MedianWeeklyGross),
		AverageWeeklyNet:     f(p.AverageWeeklyNet),
		ProjectedAnnualGross: f(p.ProjectedAnnualGross),
		ProjectedAnnualNet:   f(p.ProjectedAnnualNet),
		RealHourlyRate:       f(p.RealHourlyRate),
		Trend:                string(p.Trend),
		SampleSize:           p.SampleSize,
	}
}

func toRealityCheckDTO(c engine.RealityCheck) RealityCheckDTO {
	return RealityCheckDTO{
		RealHourlyRate:  f(c.RealHourlyRate),
		StandardRate:    f(c.StandardRate),
		MarketGapHourly: f(c.MarketGapHourly),
		MarketGapAnnual: f(c.MarketGapAnnual),
		OvertimeConcern: c.OvertimeConcern,
		LoyaltyConcern:  c.LoyaltyConcern,
	}
}

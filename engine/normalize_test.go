package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func salaryRecord(id string, salary float64, effective time.Time) engine.ExactRecord {
	return engine.ExactRecord{
		ID:                  engine.RecordID(id),
		PositionID:          "pos-1",
		PayType:             engine.PaySalary,
		BaseRate:            d(salary),
		StandardWeeklyHours: d(38),
		EffectiveDate:       effective,
	}
}

func fuzzyRecord(id string, salary float64) engine.FuzzyRecord {
	return engine.FuzzyRecord{
		ID:                  engine.RecordID(id),
		PositionID:          "pos-1",
		PayType:             engine.PaySalary,
		BaseRate:            d(salary),
		StandardWeeklyHours: d(38),
		EffectiveDate:       date(2024, time.March, 1),
	}
}

// =============================================================================
// EXACT RECORD NORMALIZATION
// =============================================================================

func TestNormalizeExact_Salary_BaseAsIs(t *testing.T) {
	// GIVEN: A salaried payslip record at $120,000/year
	// WHEN: Normalizing
	// THEN: Base is the salary unchanged, confidence is 100

	na, err := engine.Normalizer{}.Normalize(salaryRecord("r1", 120000, date(2024, time.January, 15)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !na.Base.Equal(d(120000)) {
		t.Errorf("expected base 120000, got %v", na.Base)
	}
	if na.Confidence != 100 {
		t.Errorf("exact record confidence must be 100, got %d", na.Confidence)
	}
}

func TestNormalizeExact_Hourly_RateTimesHoursTimes52(t *testing.T) {
	// GIVEN: An hourly payslip at $50/hr, 40 hours/week
	// WHEN: Normalizing
	// THEN: Base is 50 x 40 x 52 = 104,000

	rec := salaryRecord("r1", 50, date(2024, time.January, 15))
	rec.PayType = engine.PayHourly
	rec.StandardWeeklyHours = d(40)

	na, err := engine.Normalizer{}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !na.Base.Equal(d(104000)) {
		t.Errorf("expected base 104000, got %v", na.Base)
	}
}

func TestNormalizeExact_AllowanceFrequencies(t *testing.T) {
	// GIVEN: A $100 allowance at each pay frequency
	// WHEN: Normalizing
	// THEN: Monthly -> 1200, Weekly -> 5200, Fortnightly -> 2600, Annually -> 100

	cases := []struct {
		freq engine.PayFrequency
		want float64
	}{
		{engine.FreqMonthly, 1200},
		{engine.FreqWeekly, 5200},
		{engine.FreqFortnightly, 2600},
		{engine.FreqAnnually, 100},
	}

	for _, tc := range cases {
		rec := salaryRecord("r1", 100000, date(2024, time.January, 15))
		rec.Allowances = []engine.Allowance{{Name: "tool", Amount: d(100), Frequency: tc.freq}}

		na, err := engine.Normalizer{}.Normalize(rec)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.freq, err)
		}
		if !na.Allowances.Equal(d(tc.want)) {
			t.Errorf("%s: expected allowances %v, got %v", tc.freq, tc.want, na.Allowances)
		}
	}
}

func TestNormalizeExact_LegacyOvertime_UsesRawBaseRate(t *testing.T) {
	// GIVEN: A salaried record at $120,000 with 4h/week overtime at 1.5x
	// WHEN: Normalizing with the default (legacy) overtime basis
	// THEN: Overtime is 4 x 1.5 x 120000 x 52, the raw salary used as a rate

	rec := salaryRecord("r1", 120000, date(2024, time.January, 15))
	rec.Overtime = engine.OvertimeDetails{
		Frequency:           engine.OvertimeFrequent,
		RateMultiplier:      d(1.5),
		AverageHoursPerWeek: d(4),
	}

	na, err := engine.Normalizer{}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := d(4).Mul(d(1.5)).Mul(d(120000)).Mul(d(52))
	if !na.Overtime.Equal(want) {
		t.Errorf("expected legacy overtime %v, got %v", want, na.Overtime)
	}
}

func TestNormalizeExact_HourlyBasisOvertime_DerivesRateFromSalary(t *testing.T) {
	// GIVEN: The same salaried record with 4h/week overtime at 1.5x
	// WHEN: Normalizing with the hourly overtime basis
	// THEN: Overtime uses salary / (38 x 52) as the rate

	rec := salaryRecord("r1", 120000, date(2024, time.January, 15))
	rec.Overtime = engine.OvertimeDetails{
		Frequency:           engine.OvertimeFrequent,
		RateMultiplier:      d(1.5),
		AverageHoursPerWeek: d(4),
	}

	na, err := engine.Normalizer{Overtime: engine.OvertimeBasisHourly}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hourly := d(120000).Div(d(38).Mul(d(52)))
	want := d(4).Mul(d(1.5)).Mul(hourly).Mul(d(52))
	if !na.Overtime.Round(2).Equal(want.Round(2)) {
		t.Errorf("expected hourly-basis overtime %v, got %v", want.Round(2), na.Overtime.Round(2))
	}
	if na.Overtime.GreaterThan(na.Base) {
		t.Errorf("hourly-basis overtime should stay below base, got %v vs %v", na.Overtime, na.Base)
	}
}

func TestNormalizeExact_AnnualOvertimeHours_TakePrecedence(t *testing.T) {
	// GIVEN: Overtime with both annual hours (100) and a weekly average (10)
	// WHEN: Normalizing
	// THEN: Annual hours win: 100 x 2.0 x rate, not 10 x 2.0 x rate x 52

	annual := d(100)
	rec := salaryRecord("r1", 100000, date(2024, time.January, 15))
	rec.PayType = engine.PayHourly
	rec.BaseRate = d(60)
	rec.StandardWeeklyHours = d(38)
	rec.Overtime = engine.OvertimeDetails{
		Frequency:           engine.OvertimeOccasional,
		RateMultiplier:      d(2),
		AverageHoursPerWeek: d(10),
		AnnualHours:         &annual,
	}

	na, err := engine.Normalizer{}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := d(100).Mul(d(2)).Mul(d(60))
	if !na.Overtime.Equal(want) {
		t.Errorf("expected overtime %v from annual hours, got %v", want, na.Overtime)
	}
}

func TestNormalizeExact_EmployerSuper(t *testing.T) {
	// GIVEN: $100,000 base with an 11.5% contribution rate and $1,000 extra
	// WHEN: Normalizing
	// THEN: Employer super is 11,500 + 1,000; salary sacrifice lands in personal

	rec := salaryRecord("r1", 100000, date(2024, time.August, 1))
	rec.Super = engine.SuperDetails{
		ContributionRate:        d(11.5),
		AdditionalContributions: d(1000),
		SalarySacrifice:         d(5000),
	}

	na, err := engine.Normalizer{}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !na.SuperEmployer.Equal(d(12500)) {
		t.Errorf("expected employer super 12500, got %v", na.SuperEmployer)
	}
	if !na.SuperPersonal.Equal(d(5000)) {
		t.Errorf("expected personal super 5000, got %v", na.SuperPersonal)
	}
}

// =============================================================================
// VALIDATION AND REJECTION
// =============================================================================

func TestNormalize_HoursOutsideRange_Rejected(t *testing.T) {
	// GIVEN: A record claiming 200 standard weekly hours
	// WHEN: Normalizing
	// THEN: Rejected with ErrInvalidInput naming the field

	rec := salaryRecord("r1", 100000, date(2024, time.January, 15))
	rec.StandardWeeklyHours = d(200)

	_, err := engine.Normalizer{}.Normalize(rec)
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var recErr *engine.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %T", err)
	}
	if recErr.Field != "standard_weekly_hours" {
		t.Errorf("expected field standard_weekly_hours, got %q", recErr.Field)
	}
}

func TestNormalize_NonPositiveBaseRate_Rejected(t *testing.T) {
	// GIVEN: A record with a zero base rate
	// WHEN: Normalizing
	// THEN: Rejected with ErrInvalidInput

	rec := salaryRecord("r1", 0, date(2024, time.January, 15))
	if _, err := (engine.Normalizer{}).Normalize(rec); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeAll_BadRecordDoesNotAbortBatch(t *testing.T) {
	// GIVEN: One valid and one invalid record
	// WHEN: Normalizing the batch
	// THEN: The valid record is annualized, the invalid one rejected

	bad := salaryRecord("bad", -5, date(2024, time.January, 15))
	good := salaryRecord("good", 90000, date(2024, time.February, 1))

	result := engine.NormalizeAll([]engine.CompensationRecord{bad, good})
	if len(result.Annual) != 1 || result.Annual[0].RecordID != "good" {
		t.Fatalf("expected one annualized record, got %d", len(result.Annual))
	}
	if len(result.Rejected) != 1 || result.Rejected[0].RecordID != "bad" {
		t.Fatalf("expected one rejection for the bad record, got %d", len(result.Rejected))
	}
}

func TestNormalizeAll_Idempotent(t *testing.T) {
	// GIVEN: A fixed record set
	// WHEN: Normalizing twice
	// THEN: Identical output both times

	records := []engine.CompensationRecord{
		salaryRecord("r1", 95000, date(2023, time.March, 1)),
		fuzzyRecord("r2", 87000),
	}

	first := engine.NormalizeAll(records)
	second := engine.NormalizeAll(records)

	if len(first.Annual) != len(second.Annual) {
		t.Fatalf("run lengths differ: %d vs %d", len(first.Annual), len(second.Annual))
	}
	for i := range first.Annual {
		if !first.Annual[i].TotalAnnual().Equal(second.Annual[i].TotalAnnual()) {
			t.Errorf("entry %d differs between runs", i)
		}
		if first.Annual[i].Confidence != second.Annual[i].Confidence {
			t.Errorf("entry %d confidence differs between runs", i)
		}
	}
}

// =============================================================================
// FUZZY CONFIDENCE
// =============================================================================

func TestFuzzyConfidence_AlwaysWithinBounds(t *testing.T) {
	// GIVEN: Fuzzy records across the input spectrum
	// WHEN: Scoring confidence
	// THEN: Every score lands in [50, 90]

	annual := d(200)
	variants := []engine.FuzzyRecord{
		fuzzyRecord("f1", 87345),
		fuzzyRecord("f2", 90000), // round salary
		{
			ID: "f3", PositionID: "pos-1", PayType: engine.PayHourly,
			BaseRate: d(47.50), StandardWeeklyHours: d(38),
			Overtime: engine.OvertimeDetails{
				Frequency: engine.OvertimeFrequent, RateMultiplier: d(1.5), AnnualHours: &annual,
			},
			AggregateAllowance: d(3000),
			EffectiveDate:      date(2024, time.March, 1),
		},
	}

	for _, r := range variants {
		score := engine.FuzzyConfidence(r)
		if score < 50 || score > 90 {
			t.Errorf("record %s: confidence %d outside [50,90]", r.ID, score)
		}
	}
}

func TestFuzzyConfidence_Scoring(t *testing.T) {
	// GIVEN: A non-round salary estimate with no extras
	// WHEN: Scoring
	// THEN: Base 60; a round $90,000 slider value scores 5 lower

	precise := engine.FuzzyConfidence(fuzzyRecord("f1", 87345))
	if precise != 60 {
		t.Errorf("expected base score 60, got %d", precise)
	}

	round := engine.FuzzyConfidence(fuzzyRecord("f2", 90000))
	if round != 55 {
		t.Errorf("expected round-number score 55, got %d", round)
	}
}

func TestFuzzyConfidence_HourlyWithTrackedDetail(t *testing.T) {
	// GIVEN: An hourly estimate with tracked overtime and an allowance
	// WHEN: Scoring
	// THEN: 60 +10 hourly +5 overtime +5 allowance = 80

	rec := engine.FuzzyRecord{
		ID: "f1", PositionID: "pos-1", PayType: engine.PayHourly,
		BaseRate: d(47.50), StandardWeeklyHours: d(38),
		Overtime: engine.OvertimeDetails{
			Frequency:           engine.OvertimeOccasional,
			RateMultiplier:      d(1.5),
			AverageHoursPerWeek: d(3),
		},
		AggregateAllowance: d(2000),
		EffectiveDate:      date(2024, time.March, 1),
	}
	if score := engine.FuzzyConfidence(rec); score != 80 {
		t.Errorf("expected score 80, got %d", score)
	}
}

// =============================================================================
// YEARLY SUMMARY
// =============================================================================

func TestNormalizeYearly_Confidence95AndFYAnchor(t *testing.T) {
	// GIVEN: An ATO summary for 2023-2024
	// WHEN: Normalizing
	// THEN: Confidence 95, effective date 30 June 2024

	rec := engine.YearlySummaryRecord{
		ID: "y1", PositionID: "pos-1",
		GrossIncome: d(110000), TaxWithheld: d(25000), ReportableSuper: d(12000),
		FinancialYearLabel: "2023-2024", Source: engine.SourceATO,
	}

	na, err := engine.Normalizer{}.Normalize(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if na.Confidence != 95 {
		t.Errorf("expected confidence 95, got %d", na.Confidence)
	}
	want := date(2024, time.June, 30)
	if !na.EffectiveDate.Equal(want) {
		t.Errorf("expected effective date %v, got %v", want, na.EffectiveDate)
	}
	if !na.Base.Equal(d(110000)) {
		t.Errorf("expected base from gross income, got %v", na.Base)
	}
}

func TestNormalizeYearly_TaxExceedsGross_Inconsistent(t *testing.T) {
	// GIVEN: A summary where withheld tax exceeds gross income
	// WHEN: Normalizing
	// THEN: Rejected with ErrInconsistentData

	rec := engine.YearlySummaryRecord{
		ID: "y1", PositionID: "pos-1",
		GrossIncome: d(50000), TaxWithheld: d(60000),
		FinancialYearLabel: "2023-2024",
	}
	if _, err := (engine.Normalizer{}).Normalize(rec); !errors.Is(err, engine.ErrInconsistentData) {
		t.Fatalf("expected ErrInconsistentData, got %v", err)
	}
}

func TestNormalizeYearly_BadFYLabel_Rejected(t *testing.T) {
	// GIVEN: A summary with a malformed financial year label
	// WHEN: Normalizing
	// THEN: Rejected with ErrInvalidInput

	rec := engine.YearlySummaryRecord{
		ID: "y1", PositionID: "pos-1",
		GrossIncome: d(50000), FinancialYearLabel: "2023/24",
	}
	if _, err := (engine.Normalizer{}).Normalize(rec); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// =============================================================================
// WEEKLY RECORDS IN A BATCH
// =============================================================================

func TestNormalizeAll_WeeklyRecordsPartitionedOut(t *testing.T) {
	// GIVEN: A batch mixing an exact record and a weekly timesheet
	// WHEN: Normalizing
	// THEN: The weekly record flows to the Weekly slice, not Annual

	weekly := engine.WeeklyRecord{
		ID: "w1", PositionID: "pos-1",
		WeekEnding: date(2024, time.May, 5),
		GrossPay:   d(2100), NetPay: d(1600), TaxWithheld: d(500),
		OrdinaryHours: d(38), OvertimeHours: d(6),
	}
	result := engine.NormalizeAll([]engine.CompensationRecord{
		salaryRecord("r1", 100000, date(2024, time.January, 15)),
		weekly,
	})

	if len(result.Annual) != 1 {
		t.Errorf("expected 1 annual entry, got %d", len(result.Annual))
	}
	if len(result.Weekly) != 1 || result.Weekly[0].ID != "w1" {
		t.Errorf("expected the weekly record partitioned out, got %d", len(result.Weekly))
	}
}

func TestNormalizeAll_WeeklyTaxExceedsGross_Rejected(t *testing.T) {
	// GIVEN: A weekly record where withheld tax exceeds gross pay
	// WHEN: Normalizing
	// THEN: Rejected with ErrInconsistentData

	weekly := engine.WeeklyRecord{
		ID: "w1", PositionID: "pos-1",
		WeekEnding: date(2024, time.May, 5),
		GrossPay:   d(1000), TaxWithheld: d(1200),
		OrdinaryHours: d(38),
	}
	result := engine.NormalizeAll([]engine.CompensationRecord{weekly})
	if len(result.Rejected) != 1 || !errors.Is(result.Rejected[0], engine.ErrInconsistentData) {
		t.Fatalf("expected one inconsistent-data rejection, got %+v", result.Rejected)
	}
}

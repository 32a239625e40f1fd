package engine_test

import (
	"testing"
	"time"

	"github.com/paylens/earnings-engine/engine"
)

// =============================================================================
// SUPER TRAJECTORY
// =============================================================================

func TestSuperTrajectory_CapUtilisation(t *testing.T) {
	// GIVEN: $25,000 total contributions in one FY against the $30,000 cap
	// WHEN: Building the trajectory
	// THEN: 83% utilisation (rounded), $5,000 headroom

	entries := []engine.NormalizedAnnual{
		{
			RecordID: "r1", PositionID: "pos-1", Kind: engine.KindExact,
			EffectiveDate: date(2024, time.August, 1),
			Base:          d(180000),
			SuperEmployer: d(20000),
			SuperPersonal: d(5000),
			Confidence:    100,
		},
	}

	trajectory := engine.SuperTrajectory(entries, engine.SuperAssumptions{})
	if len(trajectory) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(trajectory))
	}
	s := trajectory[0]
	if s.FinancialYear != "2024-2025" {
		t.Errorf("expected FY 2024-2025, got %q", s.FinancialYear)
	}
	if !s.Total.Equal(d(25000)) {
		t.Errorf("expected total 25000, got %v", s.Total)
	}
	if !s.CapUtilisation.Round(0).Equal(d(83)) {
		t.Errorf("expected ~83%% utilisation, got %v", s.CapUtilisation.Round(0))
	}
	if !s.CapHeadroom.Equal(d(5000)) {
		t.Errorf("expected headroom 5000, got %v", s.CapHeadroom)
	}
}

func TestSuperTrajectory_MidYearRaiseSupersedes(t *testing.T) {
	// GIVEN: Two payslips landing in the same FY, the second a mid-year raise
	// WHEN: Building the trajectory
	// THEN: The later record's annual contribution replaces the earlier
	//       one's; they are never summed

	entries := []engine.NormalizedAnnual{
		{
			RecordID: "r1", PositionID: "pos-1", Kind: engine.KindExact,
			EffectiveDate: date(2023, time.August, 1),
			Base:          d(100000),
			SuperEmployer: d(11000),
		},
		{
			RecordID: "r2", PositionID: "pos-1", Kind: engine.KindExact,
			EffectiveDate: date(2024, time.February, 1),
			Base:          d(110000),
			SuperEmployer: d(12650),
		},
	}

	trajectory := engine.SuperTrajectory(entries, engine.SuperAssumptions{})
	if len(trajectory) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(trajectory))
	}
	s := trajectory[0]
	if s.FinancialYear != "2023-2024" {
		t.Errorf("expected FY 2023-2024, got %q", s.FinancialYear)
	}
	if !s.Total.Equal(d(12650)) {
		t.Errorf("expected the raise's 12650, not a doubled sum; got %v", s.Total)
	}
	if !s.Employer.Equal(d(12650)) {
		t.Errorf("expected employer 12650, got %v", s.Employer)
	}
}

func TestSuperTrajectory_OverCap_HeadroomFloorsAtZero(t *testing.T) {
	// GIVEN: Contributions above the concessional cap
	// WHEN: Building the trajectory
	// THEN: Utilisation exceeds 100%, headroom is zero not negative

	entries := []engine.NormalizedAnnual{
		{
			RecordID: "r1", PositionID: "pos-1", Kind: engine.KindExact,
			EffectiveDate: date(2024, time.August, 1),
			SuperEmployer: d(28000),
			SuperPersonal: d(8000),
		},
	}

	trajectory := engine.SuperTrajectory(entries, engine.SuperAssumptions{})
	s := trajectory[0]
	if !s.CapUtilisation.GreaterThan(d(100)) {
		t.Errorf("expected utilisation above 100%%, got %v", s.CapUtilisation)
	}
	if !s.CapHeadroom.IsZero() {
		t.Errorf("expected zero headroom, got %v", s.CapHeadroom)
	}
}

func TestSuperTrajectory_SkipsYearsWithoutContributions(t *testing.T) {
	// GIVEN: One entry with super and one without
	// WHEN: Building the trajectory
	// THEN: Only the contributing FY appears

	entries := []engine.NormalizedAnnual{
		{
			RecordID: "r1", PositionID: "pos-1",
			EffectiveDate: date(2023, time.August, 1),
			SuperEmployer: d(11000),
		},
		{
			RecordID: "r2", PositionID: "pos-1",
			EffectiveDate: date(2024, time.August, 1),
		},
	}

	trajectory := engine.SuperTrajectory(entries, engine.SuperAssumptions{})
	if len(trajectory) != 1 || trajectory[0].FinancialYear != "2023-2024" {
		t.Fatalf("expected only FY 2023-2024, got %+v", trajectory)
	}
}

// =============================================================================
// PROJECTION
// =============================================================================

func TestFutureValueOfAnnuity(t *testing.T) {
	// GIVEN: $10,000/year for 10 years at 7%
	// WHEN: Computing future value
	// THEN: 10000 x ((1.07^10 - 1) / 0.07) ~= 138,164.48

	fv := engine.FutureValueOfAnnuity(d(10000), d(0.07), 10)
	if !fv.Round(0).Equal(d(138165)) && !fv.Round(0).Equal(d(138164)) {
		t.Errorf("expected ~138164, got %v", fv.Round(0))
	}
}

func TestFutureValueOfAnnuity_ZeroRate(t *testing.T) {
	// GIVEN: A zero return assumption
	// WHEN: Computing future value
	// THEN: Simple accumulation C x n

	fv := engine.FutureValueOfAnnuity(d(10000), d(0), 10)
	if !fv.Equal(d(100000)) {
		t.Errorf("expected 100000, got %v", fv)
	}
}

func TestProjectSuper_UsesLatestYearContribution(t *testing.T) {
	// GIVEN: A trajectory ending with a $12,000 contribution year
	// WHEN: Projecting with defaults (7%, 10 years)
	// THEN: Projection carries that contribution forward

	trajectory := []engine.SuperSnapshot{
		{FinancialYear: "2022-2023", Total: d(10000)},
		{FinancialYear: "2023-2024", Total: d(12000)},
	}

	p := engine.ProjectSuper(trajectory, engine.SuperAssumptions{})
	if p == nil {
		t.Fatal("expected a projection")
	}
	if !p.AnnualContribution.Equal(d(12000)) {
		t.Errorf("expected contribution 12000, got %v", p.AnnualContribution)
	}
	if p.Years != 10 {
		t.Errorf("expected default horizon 10, got %d", p.Years)
	}
	want := engine.FutureValueOfAnnuity(d(12000), d(0.07), 10)
	if !p.FutureValue.Equal(want) {
		t.Errorf("expected FV %v, got %v", want, p.FutureValue)
	}
}

func TestProjectSuper_EmptyTrajectory(t *testing.T) {
	// GIVEN: No trajectory
	// WHEN: Projecting
	// THEN: nil, not a zero-value projection

	if p := engine.ProjectSuper(nil, engine.SuperAssumptions{}); p != nil {
		t.Errorf("expected nil projection, got %+v", p)
	}
}

package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
)

// =============================================================================
// WEEKLY PROJECTION
// =============================================================================

func week(id string, ending time.Time, gross, net, ordinary, overtime float64) engine.WeeklyRecord {
	return engine.WeeklyRecord{
		ID:            engine.RecordID(id),
		PositionID:    "pos-1",
		WeekEnding:    ending,
		GrossPay:      d(gross),
		NetPay:        d(net),
		OrdinaryHours: d(ordinary),
		OvertimeHours: d(overtime),
	}
}

func TestProjectFromWeekly_FlatAnnualExtrapolation(t *testing.T) {
	// GIVEN: Four identical $2,000 gross weeks
	// WHEN: Projecting
	// THEN: Average 2000, annual projection 2000 x 52 = 104,000

	entries := []engine.WeeklyRecord{
		week("w1", date(2024, time.May, 26), 2000, 1500, 38, 0),
		week("w2", date(2024, time.May, 19), 2000, 1500, 38, 0),
		week("w3", date(2024, time.May, 12), 2000, 1500, 38, 0),
		week("w4", date(2024, time.May, 5), 2000, 1500, 38, 0),
	}

	p, err := engine.ProjectFromWeekly(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.AverageWeeklyGross.Equal(d(2000)) {
		t.Errorf("expected average 2000, got %v", p.AverageWeeklyGross)
	}
	if !p.ProjectedAnnualGross.Equal(d(104000)) {
		t.Errorf("expected annual projection 104000, got %v", p.ProjectedAnnualGross)
	}
	if !p.ProjectedAnnualNet.Equal(d(78000)) {
		t.Errorf("expected annual net 78000, got %v", p.ProjectedAnnualNet)
	}
	if p.SampleSize != 4 {
		t.Errorf("expected sample size 4, got %d", p.SampleSize)
	}
}

func TestProjectFromWeekly_RealHourlyRate_RatioOfSums(t *testing.T) {
	// GIVEN: Weeks with differing hours, including a zero-hour week
	// WHEN: Projecting
	// THEN: Real rate is sum(gross)/sum(hours), not an average of rates

	entries := []engine.WeeklyRecord{
		week("w1", date(2024, time.May, 26), 2200, 1700, 38, 6),
		week("w2", date(2024, time.May, 19), 1900, 1450, 38, 0),
		week("w3", date(2024, time.May, 12), 500, 450, 0, 0), // paid leave, no hours
	}

	p, err := engine.ProjectFromWeekly(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := d(4600).Div(d(82))
	if !p.RealHourlyRate.Round(2).Equal(want.Round(2)) {
		t.Errorf("expected real rate %v, got %v", want.Round(2), p.RealHourlyRate.Round(2))
	}
}

func TestProjectFromWeekly_Empty(t *testing.T) {
	// GIVEN: No weekly entries
	// WHEN: Projecting
	// THEN: ErrInsufficientData

	if _, err := engine.ProjectFromWeekly(nil); !errors.Is(err, engine.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

// =============================================================================
// TREND CLASSIFICATION
// =============================================================================

func TestClassifyTrend_SixEntriesUpThirtyPercent(t *testing.T) {
	// GIVEN: Six entries, recent half 30% above the older half
	// WHEN: Classifying (values ordered most recent first)
	// THEN: Trending up

	values := []decimal.Decimal{
		d(1300), d(1300), d(1300), // recent
		d(1000), d(1000), d(1000), // older
	}
	if trend := engine.ClassifyTrend(values); trend != engine.TrendUp {
		t.Errorf("expected trending up, got %q", trend)
	}
}

func TestClassifyTrend_DownAndStable(t *testing.T) {
	// GIVEN: Falling and flat sequences
	// WHEN: Classifying
	// THEN: Down past -5%, stable within the band

	down := []decimal.Decimal{d(900), d(900), d(1000), d(1000)}
	if trend := engine.ClassifyTrend(down); trend != engine.TrendDown {
		t.Errorf("expected trending down, got %q", trend)
	}

	stable := []decimal.Decimal{d(1020), d(1000), d(1010), d(1000)}
	if trend := engine.ClassifyTrend(stable); trend != engine.TrendStable {
		t.Errorf("expected stable, got %q", trend)
	}
}

func TestClassifyTrend_FewerThanFourEntries(t *testing.T) {
	// GIVEN: Only three entries
	// WHEN: Classifying
	// THEN: Not enough data, regardless of slope

	values := []decimal.Decimal{d(2000), d(1500), d(1000)}
	if trend := engine.ClassifyTrend(values); trend != engine.TrendNotEnoughData {
		t.Errorf("expected not enough data, got %q", trend)
	}
}

// =============================================================================
// HOURS VS EARNINGS
// =============================================================================

func TestHoursVsEarnings_PerYearWithOvertimeShare(t *testing.T) {
	// GIVEN: Two 2024 weeks totalling 88 hours, 8 of them overtime
	// WHEN: Aggregating per calendar year
	// THEN: One point: 88 hours, summed gross, overtime share 8/88

	entries := []engine.WeeklyRecord{
		week("w1", date(2024, time.May, 26), 2200, 1700, 38, 6),
		week("w2", date(2024, time.May, 19), 2050, 1600, 42, 2),
	}

	points := engine.HoursVsEarnings(entries)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	if p.Year != 2024 {
		t.Errorf("expected year 2024, got %d", p.Year)
	}
	if !p.TotalHoursWorked.Equal(d(88)) {
		t.Errorf("expected 88 hours, got %v", p.TotalHoursWorked)
	}
	if !p.TotalEarnings.Equal(d(4250)) {
		t.Errorf("expected earnings 4250, got %v", p.TotalEarnings)
	}
	want := d(8).Div(d(88)).Mul(d(100))
	if !p.OvertimePercentage.Round(2).Equal(want.Round(2)) {
		t.Errorf("expected overtime %v%%, got %v%%", want.Round(2), p.OvertimePercentage.Round(2))
	}
}

func TestHoursVsEarnings_SplitsAcrossYears(t *testing.T) {
	// GIVEN: Weeks ending in 2023 and 2024
	// WHEN: Aggregating
	// THEN: Two points, ascending by year

	entries := []engine.WeeklyRecord{
		week("w1", date(2024, time.January, 7), 2000, 1500, 38, 0),
		week("w2", date(2023, time.December, 31), 1900, 1450, 38, 0),
	}

	points := engine.HoursVsEarnings(entries)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Year != 2023 || points[1].Year != 2024 {
		t.Errorf("expected years ascending, got %d then %d", points[0].Year, points[1].Year)
	}
}

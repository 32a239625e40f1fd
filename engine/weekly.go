/*
weekly.go - Statistical projection from weekly timesheets

PURPOSE:
  A single week's payslip says little on its own. This file turns a run of
  weekly records into a projected annual picture: average and median weekly
  gross/net, a flat x52 annual projection, a ratio-of-sums real hourly rate,
  and a coarse trend classification.

POLICY DECISIONS (deliberate simplifications, not bugs):
  - Projection is flat extrapolation: average weekly x 52. No weighted
    regression, no seasonality model.
  - Real hourly rate is sum(gross) / sum(hours) across all entries, NOT an
    average of per-entry rates. Ratio-of-sums keeps zero-hour weeks from
    biasing the figure.
  - Trend splits the entries into two halves by slice order as given (the
    caller decides whether that order is by date) and compares half averages.
    More than +5% -> trending up, less than -5% -> trending down.
    Fewer than 4 entries -> not enough data.

SEE ALSO:
  - aggregate.go: Stats (average/median)
  - analyze.go: Hours-vs-earnings series built from the same records
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WEEKLY PROJECTION
// =============================================================================

type Trend string

const (
	TrendUp           Trend = "trending up"
	TrendDown         Trend = "trending down"
	TrendStable       Trend = "stable"
	TrendNotEnoughData Trend = "not enough data"
)

// trendMinEntries is the sample size below which no trend is reported.
const trendMinEntries = 4

var trendThreshold = decimal.NewFromFloat(0.05)

// WeeklyProjection is the derived "current income picture" from timesheets.
type WeeklyProjection struct {
	AverageWeeklyGross   decimal.Decimal
	MedianWeeklyGross    decimal.Decimal
	AverageWeeklyNet     decimal.Decimal
	ProjectedAnnualGross decimal.Decimal
	ProjectedAnnualNet   decimal.Decimal
	RealHourlyRate       decimal.Decimal
	Trend                Trend
	SampleSize           int
}

// ProjectFromWeekly computes the weekly projection. Returns
// ErrInsufficientData for an empty set; the trend alone degrades to
// "not enough data" below four entries.
func ProjectFromWeekly(entries []WeeklyRecord) (WeeklyProjection, error) {
	if len(entries) == 0 {
		return WeeklyProjection{}, ErrInsufficientData
	}

	gross := make([]decimal.Decimal, len(entries))
	net := make([]decimal.Decimal, len(entries))
	totalGross := decimal.Zero
	totalHours := decimal.Zero
	for i, e := range entries {
		gross[i] = e.GrossPay
		net[i] = e.NetPay
		totalGross = totalGross.Add(e.GrossPay)
		totalHours = totalHours.Add(e.OrdinaryHours).Add(e.OvertimeHours)
	}

	grossStats := Stats(gross)
	netStats := Stats(net)

	realRate := decimal.Zero
	if totalHours.IsPositive() {
		realRate = totalGross.Div(totalHours)
	}

	return WeeklyProjection{
		AverageWeeklyGross:   grossStats.Average,
		MedianWeeklyGross:    grossStats.Median,
		AverageWeeklyNet:     netStats.Average,
		ProjectedAnnualGross: grossStats.Average.Mul(weeksPerYear),
		ProjectedAnnualNet:   netStats.Average.Mul(weeksPerYear),
		RealHourlyRate:       realRate,
		Trend:                ClassifyTrend(gross),
		SampleSize:           len(entries),
	}, nil
}

// ClassifyTrend splits values into two halves by count order (first half
// treated as most recent) and compares half averages against a 5% band.
func ClassifyTrend(values []decimal.Decimal) Trend {
	if len(values) < trendMinEntries {
		return TrendNotEnoughData
	}

	mid := len(values) / 2
	recent := Stats(values[:mid]).Average
	older := Stats(values[mid:]).Average
	if !older.IsPositive() {
		return TrendStable
	}

	change := recent.Sub(older).Div(older)
	switch {
	case change.GreaterThan(trendThreshold):
		return TrendUp
	case change.LessThan(trendThreshold.Neg()):
		return TrendDown
	default:
		return TrendStable
	}
}

// HoursVsEarnings aggregates weekly records per calendar year: total hours,
// total gross earnings, and the share of hours that were overtime.
func HoursVsEarnings(entries []WeeklyRecord) []HoursEarningsPoint {
	type yearAgg struct {
		hours    decimal.Decimal
		overtime decimal.Decimal
		earnings decimal.Decimal
	}
	byYear := make(map[int]*yearAgg)
	for _, e := range entries {
		y := e.WeekEnding.Year()
		agg, ok := byYear[y]
		if !ok {
			agg = &yearAgg{}
			byYear[y] = agg
		}
		agg.hours = agg.hours.Add(e.OrdinaryHours).Add(e.OvertimeHours)
		agg.overtime = agg.overtime.Add(e.OvertimeHours)
		agg.earnings = agg.earnings.Add(e.GrossPay)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]HoursEarningsPoint, 0, len(years))
	for _, y := range years {
		agg := byYear[y]
		pct := decimal.Zero
		if agg.hours.IsPositive() {
			pct = agg.overtime.Div(agg.hours).Mul(hundred)
		}
		points = append(points, HoursEarningsPoint{
			Year:               y,
			TotalHoursWorked:   agg.hours,
			TotalEarnings:      agg.earnings,
			OvertimePercentage: pct,
		})
	}
	return points
}

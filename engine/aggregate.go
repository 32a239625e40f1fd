/*
aggregate.go - Timeline construction from normalized records

PURPOSE:
  Builds the earnings timeline: one EarningsSnapshot per distinct effective
  date, ordered ascending. When several records share an effective date the
  later-inserted record wins (last-write-wins by insertion order, not by
  magnitude) - an edit to the same date is a correction, not a merge.

HOURS FALLBACK:
  Yearly summaries carry no hours. Their effective hourly rate falls back to
  the configured default weekly hours (38 when unset) so the timeline stays
  comparable across record kinds.

SEE ALSO:
  - normalize.go: Produces NormalizedAnnual inputs
  - weekly.go: Statistical projection for weekly timesheets
  - analyze.go: Consumes the snapshot sequence
*/
package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIMELINE AGGREGATION
// =============================================================================

// AggregateOptions tunes timeline construction.
type AggregateOptions struct {
	// DefaultWeeklyHours is used for records that carry no hours context.
	// Zero means the Australian full-time standard of 38.
	DefaultWeeklyHours decimal.Decimal
}

func (o AggregateOptions) defaultHours() decimal.Decimal {
	if o.DefaultWeeklyHours.IsPositive() {
		return o.DefaultWeeklyHours
	}
	return decimal.NewFromInt(38)
}

// AggregateTimeline produces the snapshot sequence, ascending by effective
// date, one snapshot per distinct date.
func AggregateTimeline(entries []NormalizedAnnual, opts AggregateOptions) []EarningsSnapshot {
	if len(entries) == 0 {
		return nil
	}

	// Last-write-wins per date: later slice positions supersede earlier ones.
	byDate := make(map[int64]NormalizedAnnual, len(entries))
	for _, e := range entries {
		byDate[e.EffectiveDate.Unix()] = e
	}

	snapshots := make([]EarningsSnapshot, 0, len(byDate))
	for _, e := range byDate {
		snapshots = append(snapshots, toSnapshot(e, opts))
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})
	return snapshots
}

func toSnapshot(e NormalizedAnnual, opts AggregateOptions) EarningsSnapshot {
	actual := e.TotalAnnual()

	hours := e.ActualWeeklyHours
	if !hours.IsPositive() {
		hours = opts.defaultHours()
	}
	annualHours := hours.Mul(weeksPerYear)

	rate := decimal.Zero
	if annualHours.IsPositive() {
		rate = actual.Div(annualHours)
	}

	return EarningsSnapshot{
		Date:                e.EffectiveDate,
		PositionID:          e.PositionID,
		BaseAnnual:          e.Base,
		ActualAnnual:        actual,
		TotalWithSuper:      e.TotalWithSuper(),
		EffectiveHourlyRate: rate,
		Confidence:          e.Confidence,
	}
}

// LatestSnapshot returns the last snapshot at or before asOf, or the
// earliest snapshot when all post-date asOf. Returns false for an empty
// timeline.
func LatestSnapshot(timeline []EarningsSnapshot, asOf time.Time) (EarningsSnapshot, bool) {
	if len(timeline) == 0 {
		return EarningsSnapshot{}, false
	}
	latest := timeline[0]
	for _, s := range timeline[1:] {
		if s.Date.After(asOf) {
			break
		}
		latest = s
	}
	return latest, true
}

// RunningStatistics summarizes an irregular-interval value sequence.
type RunningStatistics struct {
	Average decimal.Decimal
	Median  decimal.Decimal
	Count   int
}

// Stats computes average and median over the values. Median sorts ascending
// and takes the middle element, or the mean of the two middles for even
// counts.
func Stats(values []decimal.Decimal) RunningStatistics {
	n := len(values)
	if n == 0 {
		return RunningStatistics{}
	}

	sum := decimal.Zero
	sorted := make([]decimal.Decimal, n)
	copy(sorted, values)
	for _, v := range values {
		sum = sum.Add(v)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	var median decimal.Decimal
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
	}

	return RunningStatistics{
		Average: sum.Div(decimal.NewFromInt(int64(n))),
		Median:  median,
		Count:   n,
	}
}

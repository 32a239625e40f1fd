/*
analyze.go - The earnings analysis engine

PURPOSE:
  Runs the full pipeline over a user's positions and compensation records
  and derives the comparative metrics: current compensation, effective
  hourly rate, income percentile, loyalty tax, super trajectory, hours vs
  earnings, tenure blocks, and categorized insights.

PURITY:
  Analyze is deterministic: the same input yields the same output. The
  "current date" is the explicit AsOf parameter, never a global clock.
  Recomputation is O(records); there is no cache to invalidate.

DEGRADATION:
  Metrics that cannot be computed (unknown industry, too little history)
  are omitted - nil pointer fields - rather than failing the analysis.
  Only a total absence of compensation data returns ErrNoData, which
  callers render as an empty/onboarding state.

LOYALTY TAX:
  The comparison window runs from the user's last position change to AsOf.
  actual growth  = ((lastBase - firstBase) / firstBase) / windowYears
  annual figure  = max(0, (referenceGrowth - actualGrowth) x currentBase)
  The cumulative figure compounds year over year: for each whole year k in
  the window, the expected base is firstBase x (1+ref)^k, the realized base
  is read from the snapshot sequence, and the positive gaps are summed.
  Actual growth at or above the reference yields zero, never negative.

SEE ALSO:
  - normalize.go, aggregate.go, weekly.go, super.go: Pipeline stages
  - insights.go: The insight rule set
  - market.go: The MarketReference contract
*/
package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer derives an EarningsAnalysis from validated input data.
type Analyzer struct {
	Market     MarketReference
	Super      SuperAssumptions
	Normalizer Normalizer
}

// AnalysisInput is everything Analyze needs, passed explicitly.
type AnalysisInput struct {
	AsOf      time.Time
	Profile   *UserProfile
	Positions []Position
	Records   []CompensationRecord

	// Baseline selects the loyalty-tax reference growth rate.
	// Empty means BaselineRoleLevel.
	Baseline GrowthBaseline
}

// LoyaltyTaxMateriality is the cumulative dollar threshold above which the
// loyalty-tax insight fires.
var LoyaltyTaxMateriality = decimal.NewFromInt(5000)

// Analyze runs the pipeline. Returns ErrNoData when the input contains no
// usable compensation data at all.
func (a *Analyzer) Analyze(in AnalysisInput) (*EarningsAnalysis, error) {
	norm := a.Normalizer.NormalizeAll(in.Records)
	if len(norm.Annual) == 0 && len(norm.Weekly) == 0 {
		return nil, ErrNoData
	}

	opts := AggregateOptions{}
	if in.Profile != nil {
		opts.DefaultWeeklyHours = in.Profile.EffectiveStandardHours()
	}
	timeline := AggregateTimeline(norm.Annual, opts)

	analysis := &EarningsAnalysis{
		AsOf:             in.AsOf,
		EarningsOverTime: timeline,
		HoursVsEarnings:  HoursVsEarnings(norm.Weekly),
		SuperTrajectory:  SuperTrajectory(norm.Annual, a.Super),
		Rejected:         norm.Rejected,
	}
	analysis.SuperProjection = ProjectSuper(analysis.SuperTrajectory, a.Super)

	latest, ok := LatestSnapshot(timeline, in.AsOf)
	if ok {
		analysis.CurrentTotalCompensation = latest.TotalWithSuper
		analysis.CurrentEffectiveHourlyRate = latest.EffectiveHourlyRate
	}

	if a.Market != nil && in.Profile != nil && ok {
		if pct, err := a.Market.IncomePercentile(in.Profile.Industry, currentSeniority(in.Positions, in.AsOf), latest.TotalWithSuper); err == nil {
			analysis.IncomePercentile = &pct
		}
	}

	baseline := in.Baseline
	if baseline == "" {
		baseline = BaselineRoleLevel
	}
	if annual, cumulative, err := a.loyaltyTax(in, timeline, baseline); err == nil {
		analysis.LoyaltyTaxAnnual = &annual
		analysis.LoyaltyTaxCumulative = &cumulative
	}

	analysis.TenureBlocks = a.tenureBlocks(in, timeline)
	analysis.Career = careerSummary(in.Positions, timeline, in.AsOf)

	latestNorm := latestNormalized(norm.Annual, in.AsOf)
	analysis.Insights = generateInsights(insightContext{
		analysis:     analysis,
		profile:      in.Profile,
		market:       a.Market,
		positions:    in.Positions,
		latest:       latestNorm,
		weeklySample: len(norm.Weekly),
		hasTimeline:  ok,
	})

	return analysis, nil
}

// =============================================================================
// LOYALTY TAX
// =============================================================================

func (a *Analyzer) loyaltyTax(in AnalysisInput, timeline []EarningsSnapshot, baseline GrowthBaseline) (annual, cumulative decimal.Decimal, err error) {
	if a.Market == nil || in.Profile == nil || len(timeline) < 2 {
		return decimal.Zero, decimal.Zero, ErrInsufficientData
	}

	windowStart := lastPositionChange(in.Positions, timeline)
	window := snapshotsSince(timeline, windowStart, in.AsOf)
	if len(window) < 2 {
		return decimal.Zero, decimal.Zero, ErrInsufficientData
	}

	first := window[0]
	last := window[len(window)-1]
	years := yearsBetween(first.Date, last.Date)
	if years < 0.5 || !first.BaseAnnual.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrInsufficientData
	}

	ref, err := a.Market.GrowthRate(baseline, in.Profile.Industry, currentSeniority(in.Positions, in.AsOf))
	if err != nil {
		return decimal.Zero, decimal.Zero, ErrInsufficientData
	}

	actual := last.BaseAnnual.Sub(first.BaseAnnual).
		Div(first.BaseAnnual).
		Div(decimal.NewFromFloat(years))

	rateGap := ref.Sub(actual)
	if rateGap.IsNegative() {
		return decimal.Zero, decimal.Zero, nil
	}

	annual = rateGap.Mul(last.BaseAnnual)

	// Compound the gap year over year against the realized snapshot bases.
	one := decimal.NewFromInt(1)
	for k := 1; k <= int(years); k++ {
		at := first.Date.AddDate(k, 0, 0)
		expected := first.BaseAnnual.Mul(one.Add(ref).Pow(decimal.NewFromInt(int64(k))))
		realized := baseAt(window, at)
		gap := expected.Sub(realized)
		if gap.IsPositive() {
			cumulative = cumulative.Add(gap)
		}
	}
	return annual, cumulative, nil
}

// lastPositionChange returns the start of the most recent position, or the
// first snapshot date when no positions are known.
func lastPositionChange(positions []Position, timeline []EarningsSnapshot) time.Time {
	if len(positions) == 0 {
		return timeline[0].Date
	}
	latest := positions[0].StartDate
	for _, p := range positions[1:] {
		if p.StartDate.After(latest) {
			latest = p.StartDate
		}
	}
	return latest
}

func snapshotsSince(timeline []EarningsSnapshot, from, to time.Time) []EarningsSnapshot {
	var out []EarningsSnapshot
	for _, s := range timeline {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// baseAt reads the realized base at a date from the snapshot sequence,
// carrying the last known value forward.
func baseAt(snapshots []EarningsSnapshot, at time.Time) decimal.Decimal {
	base := snapshots[0].BaseAnnual
	for _, s := range snapshots {
		if s.Date.After(at) {
			break
		}
		base = s.BaseAnnual
	}
	return base
}

// =============================================================================
// TENURE BLOCKS - Per-employer loyalty summary
// =============================================================================

func (a *Analyzer) tenureBlocks(in AnalysisInput, timeline []EarningsSnapshot) []TenureBlock {
	byEmployer := make(map[string][]Position)
	for _, p := range in.Positions {
		byEmployer[p.EmployerName] = append(byEmployer[p.EmployerName], p)
	}

	employers := make([]string, 0, len(byEmployer))
	for name := range byEmployer {
		employers = append(employers, name)
	}
	sort.Strings(employers)

	var blocks []TenureBlock
	for _, name := range employers {
		group := byEmployer[name]
		sort.Slice(group, func(i, j int) bool { return group[i].StartDate.Before(group[j].StartDate) })

		start := group[0].StartDate
		end := in.AsOf
		var endPtr *time.Time
		if last := group[len(group)-1]; last.EndDate != nil {
			end = *last.EndDate
			endPtr = last.EndDate
		}
		tenure := yearsBetween(start, end)
		if tenure <= LoyaltyConcernTenureYears {
			continue
		}

		firstBase, lastBase, found := employerBases(group, timeline)
		if !found || !firstBase.IsPositive() {
			continue
		}

		actualPct := lastBase.Sub(firstBase).Div(firstBase).
			Div(decimal.NewFromFloat(tenure)).Mul(hundred)

		expectedRate := decimal.NewFromFloat(0.05)
		if a.Market != nil && in.Profile != nil {
			level := group[len(group)-1].SeniorityLevel
			if rate, err := a.Market.GrowthRate(BaselineRoleLevel, in.Profile.Industry, level); err == nil {
				expectedRate = rate
			}
		}

		impact := decimal.Zero
		rateGap := expectedRate.Sub(actualPct.Div(hundred))
		if rateGap.IsPositive() {
			impact = lastBase.Mul(rateGap).Mul(decimal.NewFromFloat(tenure))
		}

		blocks = append(blocks, TenureBlock{
			EmployerName:         name,
			StartDate:            start,
			EndDate:              endPtr,
			YearsOfService:       tenure,
			ActualProgressionPct: actualPct,
			MarketExpectedPct:    expectedRate.Mul(hundred),
			LoyaltyTaxImpact:     impact,
		})
	}
	return blocks
}

// employerBases finds the first and last snapshot base across an employer's
// positions.
func employerBases(group []Position, timeline []EarningsSnapshot) (first, last decimal.Decimal, found bool) {
	ids := make(map[PositionID]bool, len(group))
	for _, p := range group {
		ids[p.ID] = true
	}
	for _, s := range timeline {
		if !ids[s.PositionID] {
			continue
		}
		if !found {
			first = s.BaseAnnual
			found = true
		}
		last = s.BaseAnnual
	}
	return first, last, found
}

// =============================================================================
// CAREER SUMMARY
// =============================================================================

func careerSummary(positions []Position, timeline []EarningsSnapshot, asOf time.Time) CareerSummary {
	var summary CareerSummary
	for _, p := range positions {
		summary.YearsExperience += p.TenureYears(asOf)
	}

	// Career earnings: each position's latest annual figure held for its tenure.
	latestByPosition := make(map[PositionID]decimal.Decimal)
	for _, s := range timeline {
		latestByPosition[s.PositionID] = s.ActualAnnual
	}
	for _, p := range positions {
		if annual, ok := latestByPosition[p.ID]; ok {
			summary.TotalCareerEarnings = summary.TotalCareerEarnings.
				Add(annual.Mul(decimal.NewFromFloat(p.TenureYears(asOf))))
		}
	}

	if len(timeline) >= 2 && summary.YearsExperience > 0 {
		first := timeline[0].BaseAnnual
		last := timeline[len(timeline)-1].BaseAnnual
		if first.IsPositive() {
			summary.AverageAnnualIncreasePct = last.Sub(first).Div(first).
				Div(decimal.NewFromFloat(summary.YearsExperience)).Mul(hundred)
		}
	}
	return summary
}

// =============================================================================
// HELPERS
// =============================================================================

func currentSeniority(positions []Position, asOf time.Time) SeniorityLevel {
	level := SeniorityEntry
	var latest time.Time
	for _, p := range positions {
		if p.IsCurrent(asOf) && (latest.IsZero() || p.StartDate.After(latest)) {
			latest = p.StartDate
			level = p.SeniorityLevel
		}
	}
	return level
}

func latestNormalized(entries []NormalizedAnnual, asOf time.Time) *NormalizedAnnual {
	var latest *NormalizedAnnual
	for i := range entries {
		e := &entries[i]
		if e.EffectiveDate.After(asOf) {
			continue
		}
		if latest == nil || e.EffectiveDate.After(latest.EffectiveDate) {
			latest = e
		}
	}
	if latest == nil && len(entries) > 0 {
		latest = &entries[0]
	}
	return latest
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / 365.25
}

/*
insights.go - Categorized insight rules

PURPOSE:
  Each insight is produced by an independent rule evaluated against the
  computed metrics. A rule emits a category, a title/description with the
  literal numbers substituted, a heuristic confidence level, and the data
  points it used. Rules that lack their inputs simply stay silent.

CONFIDENCE LEVELS:
  Heuristic, not statistical: 0.85 for the loyalty-tax class, 0.95 for the
  overtime class when the sample is adequate (0.85 otherwise), 0.75 for
  percentile-based classes.

SEE ALSO:
  - analyze.go: Builds the insightContext and calls generateInsights
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// overtimeHeavyShare is the fraction of total income above which earnings
// count as overtime-heavy.
var overtimeHeavyShare = decimal.NewFromFloat(0.2)

type insightContext struct {
	analysis     *EarningsAnalysis
	profile      *UserProfile
	market       MarketReference
	positions    []Position
	latest       *NormalizedAnnual
	weeklySample int
	hasTimeline  bool
}

type insightRule func(insightContext) *EarningsInsight

var insightRules = []insightRule{
	underpaidRule,
	overpaidRule,
	overtimeHeavyRule,
	loyaltyTaxRule,
	marketOpportunityRule,
}

func generateInsights(ctx insightContext) []EarningsInsight {
	var insights []EarningsInsight
	for _, rule := range insightRules {
		if insight := rule(ctx); insight != nil {
			insights = append(insights, *insight)
		}
	}
	return insights
}

// =============================================================================
// RULES
// =============================================================================

func underpaidRule(ctx insightContext) *EarningsInsight {
	if ctx.analysis.IncomePercentile == nil {
		return nil
	}
	pct := *ctx.analysis.IncomePercentile
	if !pct.LessThan(decimal.NewFromInt(25)) {
		return nil
	}

	points := []string{
		fmt.Sprintf("Current total: $%s", ctx.analysis.CurrentTotalCompensation.Round(0)),
	}
	if ctx.market != nil && ctx.profile != nil {
		if median, err := ctx.market.IndustryMedian(ctx.profile.Industry); err == nil {
			points = append(points, fmt.Sprintf("Industry median: $%s", median.Round(0)))
		}
	}

	return &EarningsInsight{
		Category: InsightUnderpaid,
		Title:    "Earnings Below Market Median",
		Description: fmt.Sprintf(
			"You're in the %sth percentile for your industry and location. Consider negotiating or exploring market opportunities.",
			pct.Round(0)),
		ConfidenceLevel: 0.75,
		DataPoints:      points,
	}
}

func overpaidRule(ctx insightContext) *EarningsInsight {
	if ctx.analysis.IncomePercentile == nil {
		return nil
	}
	pct := *ctx.analysis.IncomePercentile
	if !pct.GreaterThan(decimal.NewFromInt(75)) {
		return nil
	}
	return &EarningsInsight{
		Category: InsightOverpaid,
		Title:    "Earnings Above Market",
		Description: fmt.Sprintf(
			"You're in the %sth percentile for your industry and location.", pct.Round(0)),
		ConfidenceLevel: 0.75,
		DataPoints: []string{
			fmt.Sprintf("Current total: $%s", ctx.analysis.CurrentTotalCompensation.Round(0)),
			"You're well compensated compared to peers",
		},
	}
}

func overtimeHeavyRule(ctx insightContext) *EarningsInsight {
	if ctx.latest == nil {
		return nil
	}
	total := ctx.latest.TotalAnnual()
	if !total.IsPositive() || !ctx.latest.Overtime.Div(total).GreaterThan(overtimeHeavyShare) {
		return nil
	}

	confidence := 0.85
	if ctx.weeklySample >= trendMinEntries || ctx.latest.Kind == KindExact {
		confidence = 0.95
	}
	share := ctx.latest.Overtime.Div(total).Mul(hundred)

	return &EarningsInsight{
		Category: InsightOvertimeHeavy,
		Title:    "Overtime-Heavy Compensation Detected",
		Description: fmt.Sprintf(
			"Overtime makes up %s%% of your earnings. Your base rate may appear below market, but actual earnings place you higher.",
			share.Round(0)),
		ConfidenceLevel: confidence,
		DataPoints: []string{
			fmt.Sprintf("Overtime income: $%s/year", ctx.latest.Overtime.Round(0)),
			fmt.Sprintf("Effective hourly rate: $%s/hr", ctx.analysis.CurrentEffectiveHourlyRate.Round(2)),
			"Consider roles with better base rates if overtime burnout is a concern",
		},
	}
}

func loyaltyTaxRule(ctx insightContext) *EarningsInsight {
	if ctx.analysis.LoyaltyTaxCumulative == nil {
		return nil
	}
	cumulative := *ctx.analysis.LoyaltyTaxCumulative
	if !cumulative.GreaterThan(LoyaltyTaxMateriality) {
		return nil
	}

	points := []string{
		fmt.Sprintf("Cumulative loyalty tax: $%s", cumulative.Round(0)),
	}
	if ctx.analysis.LoyaltyTaxAnnual != nil {
		points = append(points, fmt.Sprintf("Annual gap: $%s", ctx.analysis.LoyaltyTaxAnnual.Round(0)))
	}

	return &EarningsInsight{
		Category: InsightLoyaltyTax,
		Title:    "Loyalty Is Costing You",
		Description: fmt.Sprintf(
			"Staying put has cost an estimated $%s versus market-rate salary growth since your last move.",
			cumulative.Round(0)),
		ConfidenceLevel: 0.85,
		DataPoints:      points,
	}
}

func marketOpportunityRule(ctx insightContext) *EarningsInsight {
	if ctx.analysis.IncomePercentile == nil || !ctx.hasTimeline {
		return nil
	}
	pct := *ctx.analysis.IncomePercentile
	if pct.GreaterThanOrEqual(decimal.NewFromInt(50)) {
		return nil
	}

	tenured := false
	for _, p := range ctx.positions {
		if p.IsCurrent(ctx.analysis.AsOf) && LoyaltyConcern(p, ctx.analysis.AsOf) {
			tenured = true
			break
		}
	}
	if !tenured {
		return nil
	}

	return &EarningsInsight{
		Category: InsightMarketOpportunity,
		Title:    "Market Opportunity",
		Description: fmt.Sprintf(
			"Below-median pay (%sth percentile) combined with %d+ years of tenure suggests the market would pay more for your experience.",
			pct.Round(0), int(LoyaltyConcernTenureYears)),
		ConfidenceLevel: 0.70,
		DataPoints: []string{
			fmt.Sprintf("Income percentile: %s", pct.Round(0)),
			fmt.Sprintf("Current total: $%s", ctx.analysis.CurrentTotalCompensation.Round(0)),
		},
	}
}

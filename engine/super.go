/*
super.go - Superannuation trajectory and projection

PURPOSE:
  Derives the employer + personal super contribution level per financial
  year, tracks it against the concessional contribution cap, and projects a
  long-horizon balance with the standard future-value-of-annuity formula:

      FV = C x ((1+r)^n - 1) / r

  where C is the current annual contribution, r the assumed annual return,
  and n the projection horizon in years.

SEE ALSO:
  - fy.go: Financial year boundaries
  - analyze.go: Wires the trajectory into EarningsAnalysis
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ASSUMPTIONS
// =============================================================================

// SuperAssumptions configures the trajectory and projection. Zero values
// fall back to the defaults below.
type SuperAssumptions struct {
	ConcessionalCap decimal.Decimal // statutory pre-tax cap, default $30,000
	AssumedReturn   decimal.Decimal // annual compound return, default 0.07
	ProjectionYears int             // horizon, default 10
}

var (
	defaultConcessionalCap = decimal.NewFromInt(30000)
	defaultAssumedReturn   = decimal.NewFromFloat(0.07)
)

const defaultProjectionYears = 10

func (a SuperAssumptions) cap() decimal.Decimal {
	if a.ConcessionalCap.IsPositive() {
		return a.ConcessionalCap
	}
	return defaultConcessionalCap
}

func (a SuperAssumptions) returnRate() decimal.Decimal {
	if a.AssumedReturn.IsPositive() {
		return a.AssumedReturn
	}
	return defaultAssumedReturn
}

func (a SuperAssumptions) years() int {
	if a.ProjectionYears > 0 {
		return a.ProjectionYears
	}
	return defaultProjectionYears
}

// =============================================================================
// TRAJECTORY
// =============================================================================

// SuperTrajectory reports contributions per financial year against the
// concessional cap. Within a financial year the latest-effective record
// supersedes earlier ones, mirroring the timeline's last-write-wins rule: a
// mid-year raise replaces the contribution level, it does not stack on top
// of it. Records without super detail never supersede ones that carry it.
// Only financial years with contributions appear.
func SuperTrajectory(entries []NormalizedAnnual, assumptions SuperAssumptions) []SuperSnapshot {
	byFY := make(map[FinancialYear]NormalizedAnnual)
	for _, e := range entries {
		if e.SuperEmployer.IsZero() && e.SuperPersonal.IsZero() {
			continue
		}
		fy := FYForDate(e.EffectiveDate)
		current, ok := byFY[fy]
		if !ok || !e.EffectiveDate.Before(current.EffectiveDate) {
			byFY[fy] = e
		}
	}

	fys := make([]FinancialYear, 0, len(byFY))
	for fy := range byFY {
		fys = append(fys, fy)
	}
	sort.Slice(fys, func(i, j int) bool { return fys[i] < fys[j] })

	capAmount := assumptions.cap()
	snapshots := make([]SuperSnapshot, 0, len(fys))
	for _, fy := range fys {
		e := byFY[fy]
		total := e.SuperEmployer.Add(e.SuperPersonal)
		headroom := capAmount.Sub(total)
		if headroom.IsNegative() {
			headroom = decimal.Zero
		}
		snapshots = append(snapshots, SuperSnapshot{
			FinancialYear:  fy.Label(),
			Employer:       e.SuperEmployer,
			Personal:       e.SuperPersonal,
			Total:          total,
			CapUtilisation: total.Div(capAmount).Mul(hundred),
			CapHeadroom:    headroom,
		})
	}
	return snapshots
}

// ProjectSuper applies the future-value-of-annuity formula to the latest
// financial year's total contribution. Returns nil when the trajectory is
// empty.
func ProjectSuper(trajectory []SuperSnapshot, assumptions SuperAssumptions) *SuperProjection {
	if len(trajectory) == 0 {
		return nil
	}
	contribution := trajectory[len(trajectory)-1].Total
	r := assumptions.returnRate()
	n := assumptions.years()

	fv := FutureValueOfAnnuity(contribution, r, n)
	return &SuperProjection{
		Years:              n,
		AssumedReturn:      r,
		AnnualContribution: contribution,
		FutureValue:        fv,
	}
}

// FutureValueOfAnnuity computes C x ((1+r)^n - 1) / r. A zero rate
// degenerates to simple accumulation C x n.
func FutureValueOfAnnuity(c, r decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if r.IsZero() {
		return c.Mul(decimal.NewFromInt(int64(n)))
	}
	growth := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(n)))
	return c.Mul(growth.Sub(decimal.NewFromInt(1))).Div(r)
}

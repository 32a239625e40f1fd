/*
resume.go - Resume export derivation

PURPOSE:
  Flattens a user's positions and profile into an export-ready resume: a
  reverse-chronological career timeline with per-position responsibilities,
  skills, and achievements, aggregate skill/achievement lists, and a
  compensation summary read from the earnings analysis.

  Pure like the rest of the engine: the caller supplies everything,
  including the analysis. A nil analysis (no compensation data yet) yields
  a resume with a zeroed compensation summary - positions alone are enough
  to export.

SEE ALSO:
  - analyze.go: Produces the EarningsAnalysis the compensation block reads
  - types.go: The Position free-text fields this flattens
*/
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TYPES
// =============================================================================

// ResumeExport is the flattened, export-ready career document.
type ResumeExport struct {
	Summary      ResumeSummary
	Timeline     []ResumePosition
	Achievements []string
	Skills       []string
	Compensation ResumeCompensation
	Preferences  CareerPreferences
}

// ResumeSummary is the header block.
type ResumeSummary struct {
	Location        string
	Industry        string
	SeniorityLevel  SeniorityLevel
	YearsExperience float64
}

// ResumePosition is one timeline entry, newest first.
type ResumePosition struct {
	Employer         string
	Title            string
	Duration         string
	Responsibilities []string
	Achievements     []string
	Skills           []string
}

// ResumeCompensation summarizes earnings for the export.
type ResumeCompensation struct {
	CurrentBase              decimal.Decimal
	CurrentTotal             decimal.Decimal
	TotalCareerEarnings      decimal.Decimal
	AverageAnnualIncreasePct decimal.Decimal
}

// =============================================================================
// DERIVATION
// =============================================================================

// BuildResume derives the export from positions, profile, and an optional
// earnings analysis.
func BuildResume(profile *UserProfile, positions []Position, analysis *EarningsAnalysis, asOf time.Time) ResumeExport {
	ordered := make([]Position, len(positions))
	copy(ordered, positions)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartDate.After(ordered[j].StartDate)
	})

	resume := ResumeExport{
		Timeline: make([]ResumePosition, 0, len(ordered)),
	}

	var years float64
	for _, p := range ordered {
		years += p.TenureYears(asOf)
		resume.Timeline = append(resume.Timeline, ResumePosition{
			Employer:         p.EmployerName,
			Title:            p.JobTitle,
			Duration:         serviceSpan(p, asOf),
			Responsibilities: splitLines(p.Responsibilities),
			Achievements:     p.Achievements,
			Skills:           p.Skills,
		})
		resume.Achievements = append(resume.Achievements, p.Achievements...)
		resume.Skills = appendUnique(resume.Skills, p.Skills)
	}

	resume.Summary = ResumeSummary{YearsExperience: years}
	if profile != nil {
		resume.Summary.Location = profile.State
		resume.Summary.Industry = profile.Industry
		resume.Preferences = profile.Preferences
	}
	if len(ordered) > 0 {
		resume.Summary.SeniorityLevel = ordered[0].SeniorityLevel
	}

	if analysis != nil {
		resume.Compensation = ResumeCompensation{
			CurrentTotal:             analysis.CurrentTotalCompensation,
			TotalCareerEarnings:      analysis.Career.TotalCareerEarnings,
			AverageAnnualIncreasePct: analysis.Career.AverageAnnualIncreasePct,
		}
		if latest, ok := LatestSnapshot(analysis.EarningsOverTime, asOf); ok {
			resume.Compensation.CurrentBase = latest.BaseAnnual
		}
	}
	return resume
}

// =============================================================================
// HELPERS
// =============================================================================

// serviceSpan renders an ongoing position as a date range and a finished one
// as its length of service.
func serviceSpan(p Position, asOf time.Time) string {
	if p.EndDate == nil {
		return fmt.Sprintf("%s - Present", p.StartDate.Format("Jan 2006"))
	}

	months := (p.EndDate.Year()-p.StartDate.Year())*12 +
		int(p.EndDate.Month()) - int(p.StartDate.Month())
	if months < 0 {
		months = 0
	}
	years, remainder := months/12, months%12
	switch {
	case years > 0 && remainder > 0:
		return fmt.Sprintf("%dy %dm", years, remainder)
	case years > 0:
		return fmt.Sprintf("%dy", years)
	default:
		return fmt.Sprintf("%dm", remainder)
	}
}

// splitLines breaks a free-text block into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// appendUnique merges additions into list, preserving first-seen order.
func appendUnique(list, additions []string) []string {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		seen[s] = true
	}
	for _, s := range additions {
		if !seen[s] {
			seen[s] = true
			list = append(list, s)
		}
	}
	return list
}

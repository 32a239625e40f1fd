package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// FINANCIAL YEAR - Australian reporting period (1 July - 30 June)
// =============================================================================

// FinancialYear identifies an Australian financial year by its starting
// calendar year: FinancialYear(2024) is 1 Jul 2024 - 30 Jun 2025,
// labelled "2024-2025".
type FinancialYear int

// FYForDate returns the financial year containing the given date.
func FYForDate(date time.Time) FinancialYear {
	if date.Month() >= time.July {
		return FinancialYear(date.Year())
	}
	return FinancialYear(date.Year() - 1)
}

// ParseFYLabel parses a "YYYY-YYYY" label. The second year must be the
// first plus one.
func ParseFYLabel(label string) (FinancialYear, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: financial year label %q", ErrInvalidInput, label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: financial year label %q", ErrInvalidInput, label)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return 0, fmt.Errorf("%w: financial year label %q", ErrInvalidInput, label)
	}
	return FinancialYear(start), nil
}

func (fy FinancialYear) Label() string {
	return fmt.Sprintf("%d-%d", int(fy), int(fy)+1)
}

func (fy FinancialYear) String() string { return fy.Label() }

// Start returns 1 July of the starting year.
func (fy FinancialYear) Start() time.Time {
	return time.Date(int(fy), time.July, 1, 0, 0, 0, 0, time.UTC)
}

// End returns 30 June of the following year.
func (fy FinancialYear) End() time.Time {
	return time.Date(int(fy)+1, time.June, 30, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the date falls within the financial year.
func (fy FinancialYear) Contains(date time.Time) bool {
	return FYForDate(date) == fy
}

func (fy FinancialYear) Next() FinancialYear     { return fy + 1 }
func (fy FinancialYear) Previous() FinancialYear { return fy - 1 }

// EffectiveDate is the timeline anchor used for yearly summary records:
// the end of the financial year, when the summary becomes known.
func (fy FinancialYear) EffectiveDate() time.Time { return fy.End() }

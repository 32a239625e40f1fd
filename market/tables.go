package market

import (
	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
)

// =============================================================================
// DATA TABLES - Australian market assumptions, 2024
// =============================================================================

var two = decimal.NewFromInt(2)

// Industry median annual salaries. Keyword match, first hit wins.
var industryMedians = []struct {
	keyword string
	median  decimal.Decimal
}{
	{"mining", decimal.NewFromInt(125000)},
	{"technology", decimal.NewFromInt(110000)},
	{"it", decimal.NewFromInt(110000)},
	{"engineering", decimal.NewFromInt(105000)},
	{"finance", decimal.NewFromInt(100000)},
	{"construction", decimal.NewFromInt(95000)},
	{"healthcare", decimal.NewFromInt(85000)},
	{"education", decimal.NewFromInt(80000)},
}

var fallbackMedian = decimal.NewFromInt(90000)

// Expected annual salary growth by role level.
var roleLevelGrowth = map[engine.SeniorityLevel]decimal.Decimal{
	engine.SeniorityEntry:     decimal.NewFromFloat(0.04),
	engine.SeniorityJunior:    decimal.NewFromFloat(0.05),
	engine.SeniorityMid:       decimal.NewFromFloat(0.06),
	engine.SenioritySenior:    decimal.NewFromFloat(0.07),
	engine.SeniorityLead:      decimal.NewFromFloat(0.08),
	engine.SeniorityManager:   decimal.NewFromFloat(0.08),
	engine.SeniorityDirector:  decimal.NewFromFloat(0.09),
	engine.SeniorityExecutive: decimal.NewFromFloat(0.10),
}

var (
	industryAverageGrowth = decimal.NewFromFloat(0.06)
	cpiAdjustedGrowth     = decimal.NewFromFloat(0.03)
)

// Expected median multiplier by seniority relative to the all-of-industry
// median.
var seniorityFactors = map[engine.SeniorityLevel]decimal.Decimal{
	engine.SeniorityEntry:     decimal.NewFromFloat(0.65),
	engine.SeniorityJunior:    decimal.NewFromFloat(0.80),
	engine.SeniorityMid:       decimal.NewFromFloat(1.00),
	engine.SenioritySenior:    decimal.NewFromFloat(1.20),
	engine.SeniorityLead:      decimal.NewFromFloat(1.40),
	engine.SeniorityManager:   decimal.NewFromFloat(1.35),
	engine.SeniorityDirector:  decimal.NewFromFloat(1.75),
	engine.SeniorityExecutive: decimal.NewFromFloat(2.40),
}

// Superannuation guarantee rates (percent) by the financial year's starting
// calendar year.
var superGuaranteeRates = []struct {
	fromYear int
	rate     decimal.Decimal
}{
	{2020, decimal.NewFromFloat(9.5)},
	{2021, decimal.NewFromFloat(10.0)},
	{2022, decimal.NewFromFloat(10.5)},
	{2023, decimal.NewFromFloat(11.0)},
	{2025, decimal.NewFromFloat(11.5)},
	{2026, decimal.NewFromFloat(12.0)},
}

// Concessional (pre-tax) contribution cap, FY2024-25.
var concessionalCap = decimal.NewFromInt(30000)

// Stage 3 tax brackets, 2024-2025 financial year.
// Each row: income threshold and the marginal rate above it.
var taxBrackets2024 = []struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}{
	{decimal.Zero, decimal.Zero},
	{decimal.NewFromInt(18200), decimal.NewFromFloat(0.16)},
	{decimal.NewFromInt(45000), decimal.NewFromFloat(0.30)},
	{decimal.NewFromInt(135000), decimal.NewFromFloat(0.37)},
	{decimal.NewFromInt(190000), decimal.NewFromFloat(0.45)},
}

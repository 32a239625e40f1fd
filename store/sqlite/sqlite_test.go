package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/earnings-engine/engine"
	"github.com/paylens/earnings-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRepo(t *testing.T) *sqlite.Repository {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testPosition(id, userID string, start time.Time) engine.Position {
	return engine.Position{
		ID:             engine.PositionID(id),
		UserID:         engine.UserID(userID),
		EmployerName:   "Initech",
		JobTitle:       "Engineer",
		EmploymentType: engine.EmploymentPermanent,
		SeniorityLevel: engine.SeniorityMid,
		StartDate:      start,
	}
}

func testExactRecord(id, positionID string, salary float64) engine.ExactRecord {
	return engine.ExactRecord{
		ID:                  engine.RecordID(id),
		PositionID:          engine.PositionID(positionID),
		PayType:             engine.PaySalary,
		BaseRate:            decimal.NewFromFloat(salary),
		StandardWeeklyHours: decimal.NewFromInt(38),
		EffectiveDate:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// PROFILES
// =============================================================================

func TestProfile_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	profile := engine.UserProfile{
		UserID:              "user-1",
		State:               "NSW",
		Industry:            "technology",
		StandardWeeklyHours: decimal.NewFromInt(38),
	}
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "technology", got.Industry)
	assert.True(t, got.StandardWeeklyHours.Equal(decimal.NewFromInt(38)))
}

func TestProfile_Upsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	profile := engine.UserProfile{UserID: "user-1", Industry: "technology"}
	require.NoError(t, repo.SaveProfile(ctx, profile))

	profile.Industry = "mining"
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "mining", got.Industry)
}

func TestProfile_Missing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// POSITIONS
// =============================================================================

func TestPosition_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	position := testPosition("pos-1", "user-1", start)
	position.EndDate = &end
	position.Skills = []string{"go", "sql"}

	require.NoError(t, repo.SavePosition(ctx, position))

	got, err := repo.GetPosition(ctx, "pos-1")
	require.NoError(t, err)
	assert.Equal(t, position.EmployerName, got.EmployerName)
	assert.True(t, got.StartDate.Equal(start))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
}

func TestPosition_ListOrderedByStartDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	later := testPosition("pos-2", "user-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC))
	earlier := testPosition("pos-1", "user-1", time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC))
	other := testPosition("pos-3", "user-2", time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.SavePosition(ctx, later))
	require.NoError(t, repo.SavePosition(ctx, earlier))
	require.NoError(t, repo.SavePosition(ctx, other))

	positions, err := repo.ListPositions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, engine.PositionID("pos-1"), positions[0].ID)
	assert.Equal(t, engine.PositionID("pos-2"), positions[1].ID)
}

func TestPosition_InvalidRejected(t *testing.T) {
	repo := newTestRepo(t)

	position := testPosition("pos-1", "user-1", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC))
	position.EmployerName = ""

	err := repo.SavePosition(context.Background(), position)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestPosition_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetPosition(context.Background(), "ghost")
	assert.ErrorIs(t, err, engine.ErrPositionNotFound)
}

// =============================================================================
// RECORDS AND CASCADE
// =============================================================================

func TestRecord_RoundTripPreservesDecimals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePosition(ctx,
		testPosition("pos-1", "user-1", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC))))

	rec := testExactRecord("rec-1", "pos-1", 123456.78)
	rec.Super = engine.SuperDetails{ContributionRate: decimal.NewFromFloat(11.5)}
	require.NoError(t, repo.SaveRecord(ctx, rec))

	records, err := repo.ListRecordsByPosition(ctx, "pos-1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	got, ok := records[0].(engine.ExactRecord)
	require.True(t, ok, "expected an ExactRecord back, got %T", records[0])
	assert.True(t, got.BaseRate.Equal(decimal.NewFromFloat(123456.78)),
		"decimal must survive the round trip losslessly")
	assert.True(t, got.Super.ContributionRate.Equal(decimal.NewFromFloat(11.5)))
}

func TestRecord_AllKindsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePosition(ctx,
		testPosition("pos-1", "user-1", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC))))

	records := []engine.CompensationRecord{
		testExactRecord("rec-exact", "pos-1", 100000),
		engine.FuzzyRecord{
			ID: "rec-fuzzy", PositionID: "pos-1", PayType: engine.PaySalary,
			BaseRate:            decimal.NewFromInt(95000),
			StandardWeeklyHours: decimal.NewFromInt(38),
			EffectiveDate:       time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		engine.YearlySummaryRecord{
			ID: "rec-yearly", PositionID: "pos-1",
			GrossIncome: decimal.NewFromInt(110000), TaxWithheld: decimal.NewFromInt(25000),
			FinancialYearLabel: "2023-2024", Source: engine.SourceATO,
		},
		engine.WeeklyRecord{
			ID: "rec-weekly", PositionID: "pos-1",
			WeekEnding: time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC),
			GrossPay:   decimal.NewFromInt(2100), NetPay: decimal.NewFromInt(1600),
			OrdinaryHours: decimal.NewFromInt(38), OvertimeHours: decimal.NewFromInt(4),
		},
	}
	for _, rec := range records {
		require.NoError(t, repo.SaveRecord(ctx, rec))
	}

	got, err := repo.ListRecordsByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 4)

	kinds := make(map[engine.RecordKind]int)
	for _, rec := range got {
		kinds[rec.Kind()]++
	}
	assert.Equal(t, 1, kinds[engine.KindExact])
	assert.Equal(t, 1, kinds[engine.KindFuzzy])
	assert.Equal(t, 1, kinds[engine.KindYearlySummary])
	assert.Equal(t, 1, kinds[engine.KindWeekly])
}

func TestRecord_OrphanRejected(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveRecord(context.Background(), testExactRecord("rec-1", "no-such-position", 100000))
	assert.ErrorIs(t, err, engine.ErrPositionNotFound)
}

func TestDeletePosition_CascadesRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePosition(ctx,
		testPosition("pos-1", "user-1", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.SaveRecord(ctx, testExactRecord("rec-1", "pos-1", 100000)))
	require.NoError(t, repo.SaveRecord(ctx, testExactRecord("rec-2", "pos-1", 105000)))

	require.NoError(t, repo.DeletePosition(ctx, "pos-1"))

	records, err := repo.ListRecordsByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, records, "records must not outlive their position")
}

func TestDeleteRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePosition(ctx,
		testPosition("pos-1", "user-1", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.SaveRecord(ctx, testExactRecord("rec-1", "pos-1", 100000)))

	require.NoError(t, repo.DeleteRecord(ctx, "rec-1"))
	assert.ErrorIs(t, repo.DeleteRecord(ctx, "rec-1"), engine.ErrRecordNotFound)
}

func TestDeletePosition_Missing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.DeletePosition(context.Background(), "ghost")
	assert.ErrorIs(t, err, engine.ErrPositionNotFound)
}

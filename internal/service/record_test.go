package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

func TestSaveOrUpdateCreatesWithTotal(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	rec, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:      "2024-03-01",
		Breakfast: dec("10.00"),
		Lunch:     dec("20.00"),
		CustomItems: map[string]decimal.Decimal{
			"零食": dec("12.50"),
			"夜宵": dec("8.00"),
		},
	})
	require.NoError(t, err)
	require.NotZero(t, rec.ID)
	assert.True(t, rec.Total.Equal(dec("50.50")), "got %s", rec.Total)

	// The stored custom items survive a load unchanged
	loaded, err := svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	items := domain.DecodeCustomItems(loaded.CustomItems)
	require.Len(t, items, 2)
	assert.True(t, items["零食"].Equal(dec("12.50")))
	assert.True(t, items["夜宵"].Equal(dec("8.00")))
	assert.True(t, loaded.Total.Equal(dec("50.50")))
}

func TestSaveOrUpdateIsFullReplace(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	first, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:      "2024-03-01",
		Breakfast: dec("10.00"),
		Dinner:    dec("30.00"),
		CustomItems: map[string]decimal.Decimal{
			"奶茶": dec("15.00"),
		},
	})
	require.NoError(t, err)

	// Second save omits dinner and the custom map entirely: both reset, not kept
	second, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:  "2024-03-01",
		Lunch: dec("22.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "upsert must reuse the existing row")
	assert.Equal(t, first.CreateTime.Unix(), second.CreateTime.Unix(), "creation time is preserved")
	assert.True(t, second.Breakfast.IsZero())
	assert.True(t, second.Dinner.IsZero())
	assert.Equal(t, "", second.CustomItems, "absent custom items replace the stored map")
	assert.True(t, second.Total.Equal(dec("22.00")), "got %s", second.Total)
}

func TestSaveOrUpdateRejectsNegativeAmounts(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	_, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:  "2024-03-01",
		Snack: dec("-1"),
	})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "零食", "the offending field must be named")

	_, err = svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:        "2024-03-01",
		CustomItems: map[string]decimal.Decimal{"奶茶": dec("-0.01")},
	})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "奶茶")

	// Nothing was written
	rec, err := svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSaveOrUpdateRejectsBadDate(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))

	_, err := svc.SaveOrUpdate(asUser(1, "小明"), service.SaveRecordInput{Date: "03/01/2024"})
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestOperationsRequireIdentity(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := context.Background() // No identity set

	_, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{Date: "2024-03-01"})
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.GetByDate(ctx, "2024-03-01")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.DeleteByDate(ctx, "2024-03-01")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.DeleteCustomItems(ctx, "2024-03-01", []string{"奶茶"})
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.GetUserStatistics(ctx)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestRowOwnershipIsolation(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))

	_, err := svc.SaveOrUpdate(asUser(1, "小明"), service.SaveRecordInput{
		Date:      "2024-03-01",
		Breakfast: dec("10.00"),
	})
	require.NoError(t, err)

	// Another user never sees the first user's row
	rec, err := svc.GetByDate(asUser(2, "小红"), "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, rec)

	deleted, err := svc.DeleteByDate(asUser(2, "小红"), "2024-03-01")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetAndDeleteAbsentRecord(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	rec, err := svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, rec, "absent record is nil, not an error")

	deleted, err := svc.DeleteByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.False(t, deleted)
}

// The full lifecycle from the product's point of view: save, prune, clear.
func TestRecordLifecycleScenario(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	rec, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:        "2024-03-01",
		Breakfast:   dec("10.00"),
		CustomItems: map[string]decimal.Decimal{"奶茶": dec("15.00")},
	})
	require.NoError(t, err)
	require.True(t, rec.Total.Equal(dec("25.00")), "got %s", rec.Total)

	deleted, err := svc.DeleteCustomItems(ctx, "2024-03-01", []string{"奶茶"})
	require.NoError(t, err)
	require.True(t, deleted)

	rec, err = svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "", rec.CustomItems, "last custom item leaves the canonical empty marker")
	assert.True(t, rec.Total.Equal(dec("10.00")), "got %s", rec.Total)

	cleared, err := svc.ClearAllData(ctx, "2024-03-01")
	require.NoError(t, err)
	require.True(t, cleared)

	rec, err = svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec, "clearing keeps the row")
	assert.True(t, rec.Breakfast.IsZero())
	assert.True(t, rec.Total.IsZero())
	assert.Equal(t, "", rec.CustomItems)
}

func TestDeleteCustomItemsValidation(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	_, err := svc.DeleteCustomItems(ctx, "2024-03-01", nil)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	// Absent record is false, not an error
	deleted, err := svc.DeleteCustomItems(ctx, "2024-03-01", []string{"奶茶"})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteCustomItemsUnknownNameStillWrites(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	saved, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{
		Date:        "2024-03-01",
		Breakfast:   dec("10.00"),
		CustomItems: map[string]decimal.Decimal{"奶茶": dec("15.00")},
	})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	deleted, err := svc.DeleteCustomItems(ctx, "2024-03-01", []string{"不存在的项目"})
	require.NoError(t, err)
	assert.True(t, deleted, "the write happens even when nothing matched")

	rec, err := svc.GetByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Total.Equal(dec("25.00")), "total unchanged, got %s", rec.Total)
	items := domain.DecodeCustomItems(rec.CustomItems)
	assert.True(t, items["奶茶"].Equal(dec("15.00")), "unrelated items untouched")
	assert.True(t, rec.UpdateTime.After(saved.UpdateTime), "the idempotent write refreshes the update time")
}

func TestClearAllDataAbsentRecord(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))

	cleared, err := svc.ClearAllData(asUser(1, "小明"), "2024-03-01")
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestRecordDates(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	for _, date := range []string{"2024-03-15", "2024-03-01", "2024-04-02", "2024-02-28"} {
		_, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{Date: date, Lunch: dec("10")})
		require.NoError(t, err)
	}
	// Another user's record in the same month must not appear
	_, err := svc.SaveOrUpdate(asUser(2, "小红"), service.SaveRecordInput{Date: "2024-03-10", Lunch: dec("5")})
	require.NoError(t, err)

	dates, err := svc.RecordDates(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-15"}, dates)

	_, err = svc.RecordDates(ctx, 2024, 13)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestGetUserStatistics(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	// No records yet
	stats, err := svc.GetUserStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.RecordedDays)
	assert.True(t, stats.TotalSpend.IsZero())
	assert.True(t, stats.AverageSpend.IsZero())

	_, err = svc.SaveOrUpdate(ctx, service.SaveRecordInput{Date: "2024-03-01", Lunch: dec("10.00")})
	require.NoError(t, err)
	_, err = svc.SaveOrUpdate(ctx, service.SaveRecordInput{Date: "2024-03-02", Dinner: dec("15.00")})
	require.NoError(t, err)

	stats, err = svc.GetUserStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RecordedDays)
	assert.True(t, stats.TotalSpend.Equal(dec("25.00")), "got %s", stats.TotalSpend)
	assert.True(t, stats.AverageSpend.Equal(dec("12.50")), "got %s", stats.AverageSpend)
}

func TestGetRecordsByDateRange(t *testing.T) {
	svc := service.NewRecordService(newTestDB(t))
	ctx := asUser(1, "小明")

	for _, date := range []string{"2024-03-05", "2024-03-01", "2024-03-10"} {
		_, err := svc.SaveOrUpdate(ctx, service.SaveRecordInput{Date: date, Lunch: dec("10")})
		require.NoError(t, err)
	}

	// Inclusive range, ascending order
	records, err := svc.GetRecordsByDateRange(ctx, "2024-03-01", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01", records[0].RecordDate)
	assert.Equal(t, "2024-03-05", records[1].RecordDate)

	_, err = svc.GetRecordsByDateRange(ctx, "2024-03-05", "2024-03-01")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.MealRecord{}, &domain.Diary{}, &domain.UserSetting{}))
	return db
}

// asUser builds a request context authenticated as the given user
func asUser(userID uint, username string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: userID, Username: username})
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

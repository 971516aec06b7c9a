// Package service holds the business logic, scoped per call to the identity
// carried on the request context.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal" // Exact decimal amounts
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
)

const dateLayout = "2006-01-02"

// parseDate validates an ISO calendar date
func parseDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: 日期格式无效: %s", errs.ErrInvalidArgument, s)
	}
	return nil
}

// identityFrom resolves the request identity or fails the operation
func identityFrom(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromCtx(ctx)
	if !ok {
		return auth.Identity{}, errs.ErrUnauthenticated
	}
	return id, nil
}

// upstream wraps a store failure into the stable error taxonomy
func upstream(err error) error {
	return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
}

// RecordService is the per-user-per-day expense record engine
type RecordService struct {
	db *gorm.DB // Shared persistent store
}

// NewRecordService creates a RecordService over the given store
func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// SaveRecordInput carries one day's amounts. Zero values stand in for missing
// fields; saving is a full replace, not a partial patch.
type SaveRecordInput struct {
	Date        string                     `json:"date"`
	Breakfast   decimal.Decimal            `json:"breakfast"`
	Lunch       decimal.Decimal            `json:"lunch"`
	Dinner      decimal.Decimal            `json:"dinner"`
	Snack       decimal.Decimal            `json:"snack"`
	Drink       decimal.Decimal            `json:"drink"`
	CustomItems map[string]decimal.Decimal `json:"customItems"`
}

// validate rejects negative amounts before any mutation is attempted
func (in *SaveRecordInput) validate() error {
	fixed := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"早饭", in.Breakfast},
		{"午饭", in.Lunch},
		{"晚饭", in.Dinner},
		{"零食", in.Snack},
		{"饮料", in.Drink},
	}
	for _, f := range fixed {
		if f.amount.IsNegative() {
			return fmt.Errorf("%w: %s金额不能为负数", errs.ErrInvalidArgument, f.name)
		}
	}
	for name, amount := range in.CustomItems {
		if amount.IsNegative() {
			return fmt.Errorf("%w: 动态项目 %q 的金额不能为负数", errs.ErrInvalidArgument, name)
		}
	}
	return nil
}

// findByDate loads the record for (userID, date); nil when absent
func (s *RecordService) findByDate(tx *gorm.DB, userID uint, date string) (*domain.MealRecord, error) {
	var rec domain.MealRecord
	err := tx.Where("user_id = ? AND record_date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstream(err)
	}
	return &rec, nil
}

// SaveOrUpdate creates or fully replaces the record for (current user, date):
// the five fixed fields are overwritten (missing input means zero), the custom
// item map replaces the stored one, and Total is recomputed before the single
// atomic write.
func (s *RecordService) SaveOrUpdate(ctx context.Context, in SaveRecordInput) (*domain.MealRecord, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := parseDate(in.Date); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var rec *domain.MealRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.findByDate(tx, id.UserID, in.Date)
		if err != nil {
			return err
		}
		isNew := existing == nil
		if isNew {
			// New record shell for this (user, date) key
			rec = &domain.MealRecord{
				UserID:     id.UserID,
				RecordDate: in.Date,
				CreateTime: time.Now(),
			}
		} else {
			rec = existing // Keep id and creation timestamp
		}

		rec.Breakfast = in.Breakfast
		rec.Lunch = in.Lunch
		rec.Dinner = in.Dinner
		rec.Snack = in.Snack
		rec.Drink = in.Drink

		serialized, err := domain.EncodeCustomItems(in.CustomItems)
		if err != nil {
			return fmt.Errorf("%w: 序列化动态项目失败", errs.ErrInvalidArgument)
		}
		rec.CustomItems = serialized
		rec.RecomputeTotal(in.CustomItems)
		rec.UpdateTime = time.Now()

		if isNew {
			if err := tx.Create(rec).Error; err != nil {
				return upstream(err)
			}
			return nil
		}
		if err := tx.Save(rec).Error; err != nil {
			return upstream(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": id.UserID,
		"date":    in.Date,
		"total":   rec.Total.String(),
	}).Info("Meal record saved")
	return rec, nil
}

// GetByDate returns the current user's record for the date, or nil when absent
func (s *RecordService) GetByDate(ctx context.Context, date string) (*domain.MealRecord, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := parseDate(date); err != nil {
		return nil, err
	}
	return s.findByDate(s.db.WithContext(ctx), id.UserID, date)
}

// DeleteByDate removes the whole record; true iff a row existed
func (s *RecordService) DeleteByDate(ctx context.Context, date string) (bool, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return false, err
	}
	if err := parseDate(date); err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", id.UserID, date).
		Delete(&domain.MealRecord{})
	if res.Error != nil {
		return false, upstream(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteCustomItems removes the named entries from the stored custom item map
// and recomputes Total. Names not present are ignored; the write happens even
// when nothing matched, refreshing timestamps and total (idempotent write).
// Returns false when no record exists for the date.
func (s *RecordService) DeleteCustomItems(ctx context.Context, date string, itemNames []string) (bool, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return false, err
	}
	if err := parseDate(date); err != nil {
		return false, err
	}
	if len(itemNames) == 0 {
		return false, fmt.Errorf("%w: 要删除的项目列表不能为空", errs.ErrInvalidArgument)
	}

	affected := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.findByDate(tx, id.UserID, date)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil // Absent record is a no-op, not an error
		}

		items := domain.DecodeCustomItems(rec.CustomItems)
		for _, name := range itemNames {
			delete(items, name)
		}

		serialized, err := domain.EncodeCustomItems(items)
		if err != nil {
			return upstream(err)
		}
		rec.CustomItems = serialized // "" when the map emptied out
		rec.RecomputeTotal(items)
		rec.UpdateTime = time.Now()

		res := tx.Save(rec)
		if res.Error != nil {
			return upstream(res.Error)
		}
		affected = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if affected {
		logrus.WithFields(logrus.Fields{
			"user_id": id.UserID,
			"date":    date,
			"items":   itemNames,
		}).Info("Custom items deleted")
	}
	return affected, nil
}

// ClearAllData zeroes the five fixed fields, clears custom items to the
// canonical empty marker and resets Total, keeping the row itself.
// Returns false when no record exists for the date.
func (s *RecordService) ClearAllData(ctx context.Context, date string) (bool, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return false, err
	}
	if err := parseDate(date); err != nil {
		return false, err
	}

	affected := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.findByDate(tx, id.UserID, date)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}

		rec.Breakfast = decimal.Zero
		rec.Lunch = decimal.Zero
		rec.Dinner = decimal.Zero
		rec.Snack = decimal.Zero
		rec.Drink = decimal.Zero
		rec.CustomItems = ""
		rec.Total = decimal.Zero
		rec.UpdateTime = time.Now()

		res := tx.Save(rec)
		if res.Error != nil {
			return upstream(res.Error)
		}
		affected = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if affected {
		logrus.WithFields(logrus.Fields{
			"user_id": id.UserID,
			"date":    date,
		}).Info("Meal record cleared")
	}
	return affected, nil
}

// RecordDates returns the dates within a month that have a record, ascending
func (s *RecordService) RecordDates(ctx context.Context, year, month int) ([]string, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if year < 1 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: 年月无效: %d-%d", errs.ErrInvalidArgument, year, month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var dates []string
	err = s.db.WithContext(ctx).Model(&domain.MealRecord{}).
		Where("user_id = ? AND record_date BETWEEN ? AND ?", id.UserID, first.Format(dateLayout), last.Format(dateLayout)).
		Order("record_date asc").
		Pluck("record_date", &dates).Error
	if err != nil {
		return nil, upstream(err)
	}
	return dates, nil
}

// UserStatistics is a lifetime summary over all of one user's records
type UserStatistics struct {
	RecordedDays int64           `json:"recordedDays"` // Days with a record
	TotalSpend   decimal.Decimal `json:"totalSpend"`   // Lifetime total
	AverageSpend decimal.Decimal `json:"averageSpend"` // Total / recorded days, 2 dp
}

// GetUserStatistics aggregates all of the current user's records
func (s *RecordService) GetUserStatistics(ctx context.Context) (*UserStatistics, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	var records []domain.MealRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", id.UserID).
		Find(&records).Error; err != nil {
		return nil, upstream(err)
	}

	stats := &UserStatistics{
		RecordedDays: int64(len(records)),
		TotalSpend:   decimal.Zero,
		AverageSpend: decimal.Zero,
	}
	for _, rec := range records {
		stats.TotalSpend = stats.TotalSpend.Add(rec.Total)
	}
	if stats.RecordedDays > 0 {
		stats.AverageSpend = stats.TotalSpend.DivRound(decimal.NewFromInt(stats.RecordedDays), 2)
	}
	return stats, nil
}

// GetRecordsByDateRange returns the user's records within [start, end], ascending by date
func (s *RecordService) GetRecordsByDateRange(ctx context.Context, start, end string) ([]domain.MealRecord, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := parseDate(start); err != nil {
		return nil, err
	}
	if err := parseDate(end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, fmt.Errorf("%w: 开始日期不能晚于结束日期", errs.ErrInvalidArgument)
	}

	var records []domain.MealRecord
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date BETWEEN ? AND ?", id.UserID, start, end).
		Order("record_date asc").
		Find(&records).Error
	if err != nil {
		return nil, upstream(err)
	}
	return records, nil
}

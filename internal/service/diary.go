package service

import (
	"context"
	"time"

	"gorm.io/gorm" // GORM ORM library

	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
)

// DiaryService stores free-text notes keyed by (user, date, item name)
type DiaryService struct {
	db *gorm.DB // Shared persistent store
}

// NewDiaryService creates a DiaryService over the given store
func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{db: db}
}

// SaveOrUpdate creates or overwrites the note at (current user, date, itemName)
func (s *DiaryService) SaveOrUpdate(ctx context.Context, itemName, content, date string) error {
	id, err := identityFrom(ctx)
	if err != nil {
		return err
	}
	if err := parseDate(date); err != nil {
		return err
	}

	var diary domain.Diary
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ? AND item_name = ?", id.UserID, date, itemName).
		First(&diary).Error
	switch {
	case err == nil:
		// Overwrite content and update time on the existing note
		diary.Content = content
		diary.UpdateTime = time.Now()
		if err := s.db.WithContext(ctx).Save(&diary).Error; err != nil {
			return upstream(err)
		}
	case err == gorm.ErrRecordNotFound:
		now := time.Now()
		diary = domain.Diary{
			UserID:     id.UserID,
			RecordDate: date,
			ItemName:   itemName,
			Content:    content,
			CreateTime: now,
			UpdateTime: now,
		}
		if err := s.db.WithContext(ctx).Create(&diary).Error; err != nil {
			return upstream(err)
		}
	default:
		return upstream(err)
	}
	return nil
}

// Content returns the note body, or "" when no note exists (not an error)
func (s *DiaryService) Content(ctx context.Context, itemName, date string) (string, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return "", err
	}
	if err := parseDate(date); err != nil {
		return "", err
	}

	var diary domain.Diary
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ? AND item_name = ?", id.UserID, date, itemName).
		First(&diary).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", upstream(err)
	}
	return diary.Content, nil
}

// ListByDate returns all of the user's notes for a date, ordered by item name
func (s *DiaryService) ListByDate(ctx context.Context, date string) ([]domain.Diary, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := parseDate(date); err != nil {
		return nil, err
	}

	var diaries []domain.Diary
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ?", id.UserID, date).
		Order("item_name asc").
		Find(&diaries).Error
	if err != nil {
		return nil, upstream(err)
	}
	return diaries, nil
}

// Delete removes the note at (current user, date, itemName); absent is a no-op
func (s *DiaryService) Delete(ctx context.Context, itemName, date string) error {
	id, err := identityFrom(ctx)
	if err != nil {
		return err
	}
	if err := parseDate(date); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date = ? AND item_name = ?", id.UserID, date, itemName).
		Delete(&domain.Diary{}).Error
	if err != nil {
		return upstream(err)
	}
	return nil
}

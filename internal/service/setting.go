package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library

	"github.com/wangruoshui6/meal-accounting-backend/internal/domain"
	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
	"github.com/wangruoshui6/meal-accounting-backend/internal/utils"
)

// DefaultMealItemsKey is the reserved setting key holding the ordered list of
// category labels shown by default
const DefaultMealItemsKey = "default_meal_items"

const settingCachePrefix = "user_setting:"

// defaultMealItems is the fallback label list when a user has no stored setting
var defaultMealItems = []string{"早饭", "午饭", "晚饭", "零食", "饮料"}

// SettingService stores per-user key/value settings with a Redis cache in
// front of the default meal item list (cache-aside, 24h)
type SettingService struct {
	db    *gorm.DB     // Shared persistent store
	cache *utils.Cache // Settings cache; nil disables caching
}

// NewSettingService creates a SettingService over the given store and cache
func NewSettingService(db *gorm.DB, cache *utils.Cache) *SettingService {
	return &SettingService{db: db, cache: cache}
}

func settingCacheKey(userID uint, key string) string {
	return settingCachePrefix + strconv.FormatUint(uint64(userID), 10) + ":" + key
}

// Get returns the stored value for (userID, key), or "" when absent
func (s *SettingService) Get(ctx context.Context, userID uint, key string) (string, error) {
	var setting domain.UserSetting
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND setting_key = ?", userID, key).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", upstream(err)
	}
	return setting.SettingValue, nil
}

// Save upserts the value for (userID, key)
func (s *SettingService) Save(ctx context.Context, userID uint, key, value string) error {
	var setting domain.UserSetting
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND setting_key = ?", userID, key).
		First(&setting).Error
	switch {
	case err == nil:
		setting.SettingValue = value
		if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
			return upstream(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = domain.UserSetting{UserID: userID, SettingKey: key, SettingValue: value}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return upstream(err)
		}
	default:
		return upstream(err)
	}
	return nil
}

// DefaultMealItems returns the user's default category labels, cache first,
// then store, then the built-in fallback list
func (s *SettingService) DefaultMealItems(ctx context.Context) ([]string, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	cacheKey := settingCacheKey(id.UserID, DefaultMealItemsKey)

	// 1. Cache first; a cache error degrades to a miss
	if s.cache != nil {
		var items []string
		found, err := s.cache.Get(ctx, cacheKey, &items)
		if err != nil {
			logrus.WithField("error", err.Error()).Warn("Settings cache read failed")
		} else if found {
			return items, nil
		}
	}

	// 2. Authoritative store
	raw, err := s.Get(ctx, id.UserID, DefaultMealItemsKey)
	if err != nil {
		return nil, err
	}
	items := defaultMealItems
	if raw != "" {
		var stored []string
		if err := json.Unmarshal([]byte(raw), &stored); err == nil {
			items = stored
		}
	}

	// 3. Populate the cache; a write failure never fails the read
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, items); err != nil {
			logrus.WithField("error", err.Error()).Warn("Settings cache write failed")
		}
	}
	return items, nil
}

// SaveDefaultMealItems stores the user's default category labels and refreshes
// the cache entry
func (s *SettingService) SaveDefaultMealItems(ctx context.Context, items []string) error {
	id, err := identityFrom(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: 默认项目列表不能为空", errs.ErrInvalidArgument)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: 序列化默认项目失败", errs.ErrInvalidArgument)
	}
	if err := s.Save(ctx, id.UserID, DefaultMealItemsKey, string(raw)); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settingCacheKey(id.UserID, DefaultMealItemsKey), items); err != nil {
			logrus.WithField("error", err.Error()).Warn("Settings cache update failed")
		}
	}
	return nil
}

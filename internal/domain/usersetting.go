package domain

import "time"

// UserSetting Model: generic per-user key/value pair.
// SettingValue is text and is often itself a serialized JSON list.
type UserSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                                        // Primary key
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_key" json:"userId"`             // Owning user
	SettingKey   string    `gorm:"size:64;not null;uniqueIndex:idx_user_key" json:"settingKey"` // Setting name
	SettingValue string    `gorm:"type:text" json:"settingValue"`                               // Setting payload
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`                             // Timestamp of creation
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`                             // Timestamp of last update
}

package domain

import "time"

// Diary Model: one free-text note per (user, date, item name)
type Diary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                          // Primary key
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_date_item" json:"userId"`         // Owning user
	RecordDate string    `gorm:"size:10;not null;uniqueIndex:idx_user_date_item" json:"date"`   // ISO date (YYYY-MM-DD)
	ItemName   string    `gorm:"size:64;not null;uniqueIndex:idx_user_date_item" json:"itemName"` // Category label the note belongs to
	Content    string    `gorm:"type:text" json:"content"`                                      // Free-text note body
	CreateTime time.Time `json:"createTime"`                                                    // Set once on first save
	UpdateTime time.Time `json:"updateTime"`                                                    // Refreshed on every write
}

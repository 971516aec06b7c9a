package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Username  string    `gorm:"unique;not null" json:"username"`        // Unique username
	Password  string    `gorm:"not null" json:"-"`                      // Hashed password, never serialized
	Nickname  string    `json:"nickname"`                               // Display name, defaults to username
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`        // Timestamp of creation
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`        // Timestamp of last update
}

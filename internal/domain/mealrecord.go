package domain

import (
	"encoding/json" // JSON codec for the custom items column
	"time"

	"github.com/shopspring/decimal" // Exact decimal amounts
)

// MealRecord Model: one aggregate row per user per day.
// CustomItems is a serialized label -> amount map; the canonical empty
// representation is the empty string, never an empty JSON object.
type MealRecord struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                                        // Primary key
	UserID      uint            `gorm:"not null;uniqueIndex:idx_user_date" json:"userId"`            // Owning user
	RecordDate  string          `gorm:"size:10;not null;uniqueIndex:idx_user_date" json:"date"`      // ISO date (YYYY-MM-DD)
	Breakfast   decimal.Decimal `gorm:"type:decimal(10,2)" json:"breakfast"`                         // Fixed category amount
	Lunch       decimal.Decimal `gorm:"type:decimal(10,2)" json:"lunch"`                             // Fixed category amount
	Dinner      decimal.Decimal `gorm:"type:decimal(10,2)" json:"dinner"`                            // Fixed category amount
	Snack       decimal.Decimal `gorm:"type:decimal(10,2)" json:"snack"`                             // Fixed category amount
	Drink       decimal.Decimal `gorm:"type:decimal(10,2)" json:"drink"`                             // Fixed category amount
	CustomItems string          `gorm:"type:text" json:"customItems"`                                // Serialized custom item map
	Total       decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`                             // Derived: fixed sum + custom sum
	CreateTime  time.Time       `json:"createTime"`                                                  // Set once on first save
	UpdateTime  time.Time       `json:"updateTime"`                                                  // Refreshed on every write
}

// EncodeCustomItems serializes a custom item map for storage.
// An empty or nil map encodes to the canonical empty marker "".
func EncodeCustomItems(items map[string]decimal.Decimal) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeCustomItems parses the stored custom items text.
// Empty or unparseable text yields an empty map, never an error;
// a stored blob must not be able to fail a read path.
func DecodeCustomItems(raw string) map[string]decimal.Decimal {
	items := map[string]decimal.Decimal{}
	if raw == "" {
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return map[string]decimal.Decimal{}
	}
	return items
}

// FixedSum returns the sum of the five fixed category amounts
func (r *MealRecord) FixedSum() decimal.Decimal {
	return r.Breakfast.Add(r.Lunch).Add(r.Dinner).Add(r.Snack).Add(r.Drink)
}

// RecomputeTotal recalculates Total from the fixed fields plus the given custom items.
// Total is derived state; it is never set directly.
func (r *MealRecord) RecomputeTotal(items map[string]decimal.Decimal) {
	total := r.FixedSum()
	for _, amount := range items {
		total = total.Add(amount)
	}
	r.Total = total
}

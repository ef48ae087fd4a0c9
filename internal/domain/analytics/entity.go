// internal/domain/analytics/entity.go
package analytics

import (
	"math"
	"strconv"
	"time"
)

// ProductViewEvent is one recorded product page view. The table is
// append-only; events are never updated or soft-deleted.
type ProductViewEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     string    `gorm:"not null;size:255;index" json:"product_id"`
	ProductHandle string    `gorm:"not null;size:255;index" json:"product_handle"`
	ProductTitle  string    `gorm:"size:255" json:"product_title"`
	VariantID     string    `gorm:"size:255" json:"variant_id"`
	VariantTitle  string    `gorm:"size:255" json:"variant_title"`
	PriceCents    int64     `json:"price_cents"`
	Currency      string    `gorm:"size:3" json:"currency"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	RequestID     string    `gorm:"size:64" json:"request_id"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// PriceCents converts a decimal amount string to cents for storage.
// Unparseable input reports 0.
func PriceCents(amount string) int64 {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(value * 100))
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing. Category is the free-text name the
// commission rate table is keyed on.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Description   *string          `gorm:"column:description"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(15,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(15,2)"`
	Images        pq.StringArray   `gorm:"column:images;type:text[]"`
	Category      string           `gorm:"column:category;not null"`
	Brand         *string          `gorm:"column:brand"`
	Stock         int              `gorm:"column:stock;not null;default:0"`
	Rating        float64          `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	NumReviews    int              `gorm:"column:num_reviews;not null;default:0"`
	SellerID      *uuid.UUID       `gorm:"column:seller_id;type:uuid"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// FirstImage returns the primary listing image, or empty when none exist.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

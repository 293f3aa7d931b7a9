package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	"github.com/hoangsoi/vinashop-backend/pkg/types"
)

// Order is one settled checkout. TotalPrice and CommissionAmount are computed
// once at creation and frozen; reconciliation reads them back verbatim.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	ShippingAddress  *types.Address      `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'wallet'"`
	TotalPrice       decimal.Decimal     `gorm:"column:total_price;type:numeric(15,2);not null"`
	CommissionAmount decimal.Decimal     `gorm:"column:commission_amount;type:numeric(15,2);not null;default:0"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaidAt           *time.Time          `gorm:"column:paid_at"`
	DeliveredAt      *time.Time          `gorm:"column:delivered_at"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

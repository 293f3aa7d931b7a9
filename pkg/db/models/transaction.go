package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/enums"
)

// Transaction is the audit trail row written for every balance mutation.
// Rows are never deleted; the only status change ever applied is
// pending -> completed.
type Transaction struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	Type        enums.TransactionType   `gorm:"column:type;type:text;not null"`
	Amount      decimal.Decimal         `gorm:"column:amount;type:numeric(15,2);not null"`
	Description *string                 `gorm:"column:description"`
	Status      enums.TransactionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

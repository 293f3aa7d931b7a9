package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/enums"
)

// User is the canonical identity entity. Balance is the spendable wallet;
// Commission accumulates lifetime earnings and is never decremented.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Phone        *string         `gorm:"column:phone"`
	Address      *string         `gorm:"column:address"`
	Role         enums.UserRole  `gorm:"column:role;type:text;not null;default:'user'"`
	Avatar       *string         `gorm:"column:avatar"`
	ReferralCode *string         `gorm:"column:referral_code"`
	Balance      decimal.Decimal `gorm:"column:balance;type:numeric(15,2);not null;default:0"`
	Commission   decimal.Decimal `gorm:"column:commission;type:numeric(15,2);not null;default:0"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
)

// ErrInsufficientFunds is returned when a debit would push a balance below zero.
var ErrInsufficientFunds = errors.New("insufficient balance")

// Repository applies balance mutations against the users table. Debits are
// single guarded statements so concurrent spenders can never overdraw.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	AccrueCommission(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Balances(ctx context.Context, userID uuid.UUID) (balance, commission decimal.Decimal, err error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.classifyMiss(ctx, userID)
	}
	return nil
}

func (r *repository) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AccrueCommission(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("commission", gorm.Expr("commission + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Balances(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("balance", "commission").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return user.Balance, user.Commission, nil
}

// classifyMiss distinguishes a missing user from a guard rejection after a
// guarded update touched zero rows.
func (r *repository) classifyMiss(ctx context.Context, userID uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrInsufficientFunds
}

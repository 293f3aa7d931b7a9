package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

// ListFilter narrows transaction queries.
type ListFilter struct {
	UserID uuid.UUID
	Type   enums.TransactionType
	Status enums.TransactionStatus
}

// Repository manages persistence for wallet transaction records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, txn *models.Transaction) error
	Record(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	MarkStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error)
	SumCompletedByType(ctx context.Context, txnType enums.TransactionType) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a transactions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// Record writes a transaction row inside an already-open database transaction.
func (r *repository) Record(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *repository) MarkStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	var list []models.Transaction
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return list, pagination.PageOf(total, params), nil
}

// SumCompletedByType totals completed transactions of one type.
func (r *repository) SumCompletedByType(ctx context.Context, txnType enums.TransactionType) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("type = ? AND status = ?", txnType, enums.TransactionStatusCompleted).
		Select("CAST(COALESCE(SUM(amount), 0) AS TEXT)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/internal/ledger"
	"github.com/hoangsoi/vinashop-backend/internal/products"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// transactionRecorder writes wallet audit rows inside an open transaction.
type transactionRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
}

// Service exposes order reads and the status reconciliation flow.
type Service interface {
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, pagination.Page, error)
	ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, pagination.Page, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

// SetStatusInput captures an admin status reconciliation request.
type SetStatusInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
}

type service struct {
	repo         Repository
	tx           txRunner
	ledger       ledger.Service
	transactions transactionRecorder
	products     products.Repository
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, ledgerSvc ledger.Service, transactions transactionRecorder, productsRepo products.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction recorder required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		ledger:       ledgerSvc,
		transactions: transactions,
		products:     productsRepo,
	}, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !isAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, pagination.Page, error) {
	params = pagination.Normalize(params)
	list, page, err := s.repo.List(ctx, ListFilter{UserID: userID}, params)
	if err != nil {
		return nil, pagination.Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, page, nil
}

func (s *service) ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, pagination.Page, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pagination.Page{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", filter.Status))
	}
	params = pagination.Normalize(params)
	list, page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pagination.Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, page, nil
}

// SetStatus reconciles an order into the requested status. Moving into
// delivered pays the buyer back principal plus commission; moving into
// cancelled refunds the principal and, for orders that never left pending,
// restocks the items. Re-applying the current status only touches
// updated_at, so reconciliation is idempotent.
func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Status))
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.applyStatus(ctx, tx, input.OrderID, input.Status, nil)
		if err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel lets a buyer withdraw their own order while it is still pending.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		guard := func(order *models.Order) error {
			if order.UserID != userID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
			}
			if order.Status != enums.OrderStatusPending {
				return pkgerrors.New(pkgerrors.CodeConflict, "only pending orders can be cancelled")
			}
			return nil
		}
		order, err := s.applyStatus(ctx, tx, orderID, enums.OrderStatusCancelled, guard)
		if err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) applyStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, status enums.OrderStatus, guard func(*models.Order) error) (*models.Order, error) {
	repo := s.repo.WithTx(tx)

	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if guard != nil {
		if err := guard(order); err != nil {
			return nil, err
		}
	}

	if order.Status == status {
		if err := repo.Touch(ctx, order.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch order")
		}
		return order, nil
	}

	now := time.Now().UTC()
	var deliveredAt *time.Time
	if status == enums.OrderStatusDelivered {
		deliveredAt = &now
	}

	swapped, err := repo.UpdateStatus(ctx, order.ID, order.Status, status, deliveredAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !swapped {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order was updated concurrently")
	}

	ledgerSvc := s.ledger.WithTx(tx)
	switch status {
	case enums.OrderStatusDelivered:
		payout := order.TotalPrice.Add(order.CommissionAmount)
		if err := ledgerSvc.Credit(ctx, order.UserID, payout); err != nil {
			return nil, err
		}
		if order.CommissionAmount.IsPositive() {
			if err := ledgerSvc.AccrueCommission(ctx, order.UserID, order.CommissionAmount); err != nil {
				return nil, err
			}
		}
		desc := fmt.Sprintf("Hoàn tiền và hoa hồng đơn hàng %s", order.ID)
		if err := s.recordDeposit(ctx, tx, order.UserID, payout, desc); err != nil {
			return nil, err
		}

	case enums.OrderStatusCancelled:
		if err := ledgerSvc.Credit(ctx, order.UserID, order.TotalPrice); err != nil {
			return nil, err
		}
		desc := fmt.Sprintf("Hoàn tiền đơn hàng %s", order.ID)
		if err := s.recordDeposit(ctx, tx, order.UserID, order.TotalPrice, desc); err != nil {
			return nil, err
		}
		// A pending order still holds its reserved units; return them to the
		// shelf. Later statuses mean the goods already shipped.
		if order.Status == enums.OrderStatusPending {
			productsRepo := s.products.WithTx(tx)
			for _, item := range order.Items {
				err := productsRepo.IncrementStock(ctx, item.ProductID, item.Quantity)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock product")
				}
			}
		}
	}

	updated, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return updated, nil
}

func (s *service) recordDeposit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal, desc string) error {
	txn := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        enums.TransactionTypeDeposit,
		Amount:      amount,
		Description: &desc,
		Status:      enums.TransactionStatusCompleted,
	}
	if err := s.transactions.Record(ctx, tx, txn); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record wallet transaction")
	}
	return nil
}

package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/internal/cart"
	"github.com/hoangsoi/vinashop-backend/internal/commission"
	"github.com/hoangsoi/vinashop-backend/internal/ledger"
	"github.com/hoangsoi/vinashop-backend/internal/orders"
	"github.com/hoangsoi/vinashop-backend/internal/products"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// transactionRecorder writes wallet audit rows inside an open transaction.
type transactionRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
}

// Service turns a cart into a settled order.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
}

// PlaceOrderInput captures a checkout request.
type PlaceOrderInput struct {
	UserID          uuid.UUID
	ShippingAddress *types.Address
	PaymentMethod   enums.PaymentMethod
}

type service struct {
	cart         cart.Service
	products     products.Repository
	orders       orders.Repository
	ledger       ledger.Service
	transactions transactionRecorder
	tx           txRunner
}

// NewService builds a checkout service with the required dependencies.
func NewService(
	cartSvc cart.Service,
	productsRepo products.Repository,
	ordersRepo orders.Repository,
	ledgerSvc ledger.Service,
	transactions transactionRecorder,
	tx txRunner,
) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction recorder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		cart:         cartSvc,
		products:     productsRepo,
		orders:       ordersRepo,
		ledger:       ledgerSvc,
		transactions: transactions,
		tx:           tx,
	}, nil
}

// PlaceOrder settles the caller's cart in one transaction: stock is
// decremented line by line, the wallet is debited for the total, the order
// and its snapshot items are written, and the cart is emptied. Any guard
// rejection rolls the whole settlement back. The payment method is stored on
// the order as a label; every order settles from the wallet, so the balance
// guard applies no matter which method the shopper picked.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodWallet
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", method))
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartSvc := s.cart.WithTx(tx)
		productsRepo := s.products.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)
		ledgerSvc := s.ledger.WithTx(tx)

		lines, err := cartSvc.Snapshot(ctx, input.UserID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		commissionTotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			product := line.Product
			if !product.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %q is no longer available", product.Name))
			}

			if err := productsRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				switch {
				case errors.Is(err, products.ErrOutOfStock):
					return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q is out of stock", product.Name))
				case errors.Is(err, gorm.ErrRecordNotFound):
					return pkgerrors.New(pkgerrors.CodeConflict, "cart references a missing product")
				default:
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
				}
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			commissionTotal = commissionTotal.Add(commission.ForLine(product.Price, line.Quantity, product.Category))

			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.FirstImage(),
				Price:     product.Price,
				Quantity:  line.Quantity,
			})
		}

		order := &models.Order{
			ID:               uuid.New(),
			UserID:           input.UserID,
			ShippingAddress:  input.ShippingAddress,
			PaymentMethod:    method,
			TotalPrice:       total,
			CommissionAmount: commissionTotal,
			Status:           enums.OrderStatusPending,
			Items:            items,
		}

		if err := ledgerSvc.Debit(ctx, input.UserID, total); err != nil {
			return err
		}
		now := time.Now().UTC()
		order.PaidAt = &now

		if err := ordersRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		desc := fmt.Sprintf("Thanh toán đơn hàng %s", order.ID)
		txn := &models.Transaction{
			ID:          uuid.New(),
			UserID:      input.UserID,
			Type:        enums.TransactionTypeWithdraw,
			Amount:      total,
			Description: &desc,
			Status:      enums.TransactionStatusCompleted,
		}
		if err := s.transactions.Record(ctx, tx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment transaction")
		}

		if err := cartSvc.Clear(ctx, input.UserID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
)

// Summary is the admin dashboard snapshot.
type Summary struct {
	Users            int64            `json:"users"`
	Products         int64            `json:"products"`
	Orders           int64            `json:"orders"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
	DeliveredRevenue decimal.Decimal  `json:"deliveredRevenue"`
	TotalDeposits    decimal.Decimal  `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal  `json:"totalWithdrawals"`
}

// Service aggregates storefront counters for the admin dashboard.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context) (int64, error)
}

type orderCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
	DeliveredRevenue(ctx context.Context) (decimal.Decimal, error)
}

type transactionSummer interface {
	SumCompletedByType(ctx context.Context, txnType enums.TransactionType) (decimal.Decimal, error)
}

type service struct {
	users        userCounter
	products     productCounter
	orders       orderCounter
	transactions transactionSummer
}

// NewService builds a stats service over the listed counters.
func NewService(users userCounter, products productCounter, orders orderCounter, transactions transactionSummer) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user counter is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product counter is required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order counter is required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction summer is required")
	}
	return &service{
		users:        users,
		products:     products,
		orders:       orders,
		transactions: transactions,
	}, nil
}

var summaryStatuses = []enums.OrderStatus{
	enums.OrderStatusPending,
	enums.OrderStatusProcessing,
	enums.OrderStatusShipped,
	enums.OrderStatusDelivered,
	enums.OrderStatusCancelled,
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	orderCount, err := s.orders.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	byStatus := make(map[string]int64, len(summaryStatuses))
	for _, status := range summaryStatuses {
		count, err := s.orders.CountByStatus(ctx, status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders by status")
		}
		byStatus[status.String()] = count
	}

	revenue, err := s.orders.DeliveredRevenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum delivered revenue")
	}
	deposits, err := s.transactions.SumCompletedByType(ctx, enums.TransactionTypeDeposit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum deposits")
	}
	withdrawals, err := s.transactions.SumCompletedByType(ctx, enums.TransactionTypeWithdraw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum withdrawals")
	}

	return &Summary{
		Users:            userCount,
		Products:         productCount,
		Orders:           orderCount,
		OrdersByStatus:   byStatus,
		DeliveredRevenue: revenue,
		TotalDeposits:    deposits,
		TotalWithdrawals: withdrawals,
	}, nil
}

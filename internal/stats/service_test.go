package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
)

type fakeCounter struct {
	count int64
	err   error
}

func (f *fakeCounter) Count(ctx context.Context) (int64, error) {
	return f.count, f.err
}

type fakeOrderCounter struct {
	total    int64
	byStatus map[enums.OrderStatus]int64
	revenue  decimal.Decimal
}

func (f *fakeOrderCounter) Count(ctx context.Context) (int64, error) {
	return f.total, nil
}

func (f *fakeOrderCounter) CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	return f.byStatus[status], nil
}

func (f *fakeOrderCounter) DeliveredRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.revenue, nil
}

type fakeTransactionSummer struct {
	byType map[enums.TransactionType]decimal.Decimal
}

func (f *fakeTransactionSummer) SumCompletedByType(ctx context.Context, txnType enums.TransactionType) (decimal.Decimal, error) {
	return f.byType[txnType], nil
}

func TestSummaryAggregatesCounters(t *testing.T) {
	orders := &fakeOrderCounter{
		total: 12,
		byStatus: map[enums.OrderStatus]int64{
			enums.OrderStatusPending:   3,
			enums.OrderStatusDelivered: 7,
			enums.OrderStatusCancelled: 2,
		},
		revenue: decimal.NewFromInt(1500000),
	}
	transactions := &fakeTransactionSummer{
		byType: map[enums.TransactionType]decimal.Decimal{
			enums.TransactionTypeDeposit:  decimal.NewFromInt(2000000),
			enums.TransactionTypeWithdraw: decimal.NewFromInt(900000),
		},
	}

	svc, err := NewService(&fakeCounter{count: 5}, &fakeCounter{count: 8}, orders, transactions)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Users != 5 || summary.Products != 8 || summary.Orders != 12 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.OrdersByStatus["delivered"] != 7 {
		t.Fatalf("expected 7 delivered, got %d", summary.OrdersByStatus["delivered"])
	}
	if summary.OrdersByStatus["processing"] != 0 {
		t.Fatalf("statuses without orders must report zero, got %d", summary.OrdersByStatus["processing"])
	}
	if !summary.DeliveredRevenue.Equal(decimal.NewFromInt(1500000)) {
		t.Fatalf("unexpected revenue %s", summary.DeliveredRevenue)
	}
	if !summary.TotalDeposits.Equal(decimal.NewFromInt(2000000)) {
		t.Fatalf("unexpected deposits %s", summary.TotalDeposits)
	}
	if !summary.TotalWithdrawals.Equal(decimal.NewFromInt(900000)) {
		t.Fatalf("unexpected withdrawals %s", summary.TotalWithdrawals)
	}
}

func TestSummaryWrapsCounterErrors(t *testing.T) {
	orders := &fakeOrderCounter{}
	transactions := &fakeTransactionSummer{}
	svc, err := NewService(&fakeCounter{err: errors.New("db down")}, &fakeCounter{}, orders, transactions)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Summary(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	if _, err := NewService(nil, &fakeCounter{}, &fakeOrderCounter{}, &fakeTransactionSummer{}); err == nil {
		t.Fatal("expected error for nil user counter")
	}
	if _, err := NewService(&fakeCounter{}, &fakeCounter{}, nil, &fakeTransactionSummer{}); err == nil {
		t.Fatal("expected error for nil order counter")
	}
}

package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
)

type fakeRepository struct {
	debitFn  func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	creditFn func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, userID, amount)
	}
	return nil
}

func (f *fakeRepository) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if f.creditFn != nil {
		return f.creditFn(ctx, userID, amount)
	}
	return nil
}

func (f *fakeRepository) AccrueCommission(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	return nil
}

func (f *fakeRepository) Balances(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

func TestServiceRejectsNonPositiveAmounts(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	ctx := context.Background()
	userID := uuid.New()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		if err := svc.Debit(ctx, userID, amount); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for debit of %s, got %v", amount, err)
		}
		if err := svc.Credit(ctx, userID, amount); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for credit of %s, got %v", amount, err)
		}
	}
}

func TestServiceRejectsNilUser(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if err := svc.Debit(context.Background(), uuid.Nil, decimal.NewFromInt(10)); err == nil {
		t.Fatal("expected error for nil user id")
	}
}

func TestServiceMapsInsufficientFunds(t *testing.T) {
	repo := &fakeRepository{
		debitFn: func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
			return ErrInsufficientFunds
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	err = svc.Debit(context.Background(), uuid.New(), decimal.NewFromInt(10))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation-coded error, got %v", err)
	}
}

func TestServiceMapsNotFound(t *testing.T) {
	repo := &fakeRepository{
		creditFn: func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	err = svc.Credit(context.Background(), uuid.New(), decimal.NewFromInt(10))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found-coded error, got %v", err)
	}
}

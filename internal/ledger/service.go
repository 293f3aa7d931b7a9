package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
)

// Service defines the wallet mutations the rest of the system is allowed to
// perform. Every amount must be strictly positive; direction is carried by
// the method, never by a signed amount.
type Service interface {
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	AccrueCommission(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Balances(ctx context.Context, userID uuid.UUID) (balance, commission decimal.Decimal, err error)
	WithTx(tx *gorm.DB) Service
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if err := validateMutation(userID, amount); err != nil {
		return err
	}
	if err := s.repo.Debit(ctx, userID, amount); err != nil {
		return mapLedgerError(err, "debit balance")
	}
	return nil
}

func (s *service) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if err := validateMutation(userID, amount); err != nil {
		return err
	}
	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		return mapLedgerError(err, "credit balance")
	}
	return nil
}

func (s *service) AccrueCommission(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if err := validateMutation(userID, amount); err != nil {
		return err
	}
	if err := s.repo.AccrueCommission(ctx, userID, amount); err != nil {
		return mapLedgerError(err, "accrue commission")
	}
	return nil
}

func (s *service) Balances(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	if userID == uuid.Nil {
		return decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	balance, commission, err := s.repo.Balances(ctx, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, mapLedgerError(err, "load balances")
	}
	return balance, commission, nil
}

func validateMutation(userID uuid.UUID, amount decimal.Decimal) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return nil
}

func mapLedgerError(err error, op string) error {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "insufficient balance")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
	}
}

package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/internal/ledger"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes wallet flows: self-service deposits and withdrawals plus
// the admin balance adjustment.
type Service interface {
	Deposit(ctx context.Context, input MovementInput) (*MovementResult, error)
	Withdraw(ctx context.Context, input MovementInput) (*MovementResult, error)
	Adjust(ctx context.Context, input AdjustInput) (*MovementResult, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Transaction, pagination.Page, error)
	ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error)
}

// MovementInput carries a deposit or withdrawal request.
type MovementInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description *string
}

// AdjustInput carries an admin-initiated balance correction.
type AdjustInput struct {
	UserID    uuid.UUID
	Amount    decimal.Decimal
	Direction enums.AdjustmentDirection
	Note      *string
}

// MovementResult returns the written audit row plus the post-movement balance.
type MovementResult struct {
	Transaction *models.Transaction `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger ledger.Service
}

// NewService builds a wallet service with the required dependencies.
func NewService(repo Repository, tx txRunner, ledgerSvc ledger.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &service{repo: repo, tx: tx, ledger: ledgerSvc}, nil
}

func (s *service) Deposit(ctx context.Context, input MovementInput) (*MovementResult, error) {
	return s.move(ctx, input, enums.TransactionTypeDeposit)
}

func (s *service) Withdraw(ctx context.Context, input MovementInput) (*MovementResult, error) {
	return s.move(ctx, input, enums.TransactionTypeWithdraw)
}

// move writes a pending audit row, applies the balance change, and completes
// the row inside a single database transaction. A guard rejection rolls the
// pending row back with everything else.
func (s *service) move(ctx context.Context, input MovementInput, txnType enums.TransactionType) (*MovementResult, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	var result *MovementResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ledgerSvc := s.ledger.WithTx(tx)

		txn := &models.Transaction{
			ID:          uuid.New(),
			UserID:      input.UserID,
			Type:        txnType,
			Amount:      input.Amount,
			Description: input.Description,
			Status:      enums.TransactionStatusPending,
		}
		if err := repo.Create(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wallet transaction")
		}

		var err error
		if txnType == enums.TransactionTypeDeposit {
			err = ledgerSvc.Credit(ctx, input.UserID, input.Amount)
		} else {
			err = ledgerSvc.Debit(ctx, input.UserID, input.Amount)
		}
		if err != nil {
			return err
		}

		if err := repo.MarkStatus(ctx, txn.ID, enums.TransactionStatusCompleted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete wallet transaction")
		}
		txn.Status = enums.TransactionStatusCompleted

		balance, _, err := ledgerSvc.Balances(ctx, input.UserID)
		if err != nil {
			return err
		}
		result = &MovementResult{Transaction: txn, NewBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Adjust(ctx context.Context, input AdjustInput) (*MovementResult, error) {
	if !input.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid adjustment direction %q", input.Direction))
	}

	note := input.Note
	if note == nil {
		generated := fmt.Sprintf("Điều chỉnh số dư (%s)", input.Direction)
		note = &generated
	}

	movement := MovementInput{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Description: note,
	}
	if input.Direction == enums.AdjustmentAdd {
		return s.move(ctx, movement, enums.TransactionTypeDeposit)
	}
	return s.move(ctx, movement, enums.TransactionTypeWithdraw)
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	if userID == uuid.Nil {
		return nil, pagination.Page{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.list(ctx, ListFilter{UserID: userID}, params)
}

func (s *service) ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, pagination.Page{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", filter.Type))
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pagination.Page{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", filter.Status))
	}
	return s.list(ctx, filter, params)
}

func (s *service) list(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	params = pagination.Normalize(params)
	list, page, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pagination.Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return list, page, nil
}

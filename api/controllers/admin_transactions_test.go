package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	walletsvc "github.com/hoangsoi/vinashop-backend/internal/wallet"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

type stubWalletService struct {
	err        error
	lastFilter walletsvc.ListFilter
	lastAdjust walletsvc.AdjustInput
}

func (s *stubWalletService) Deposit(ctx context.Context, input walletsvc.MovementInput) (*walletsvc.MovementResult, error) {
	return &walletsvc.MovementResult{NewBalance: decimal.Zero}, s.err
}

func (s *stubWalletService) Withdraw(ctx context.Context, input walletsvc.MovementInput) (*walletsvc.MovementResult, error) {
	return &walletsvc.MovementResult{NewBalance: decimal.Zero}, s.err
}

func (s *stubWalletService) Adjust(ctx context.Context, input walletsvc.AdjustInput) (*walletsvc.MovementResult, error) {
	s.lastAdjust = input
	result := &walletsvc.MovementResult{
		Transaction: &models.Transaction{ID: uuid.New(), UserID: input.UserID, Amount: input.Amount},
		NewBalance:  input.Amount,
	}
	return result, s.err
}

func (s *stubWalletService) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	return nil, pagination.Page{}, s.err
}

func (s *stubWalletService) ListAll(ctx context.Context, filter walletsvc.ListFilter, params pagination.Params) ([]models.Transaction, pagination.Page, error) {
	s.lastFilter = filter
	return []models.Transaction{}, pagination.Page{}, s.err
}

func TestAdminTransactionsListForwardsFilters(t *testing.T) {
	stub := &stubWalletService{}
	handler := AdminTransactionsList(stub, nil)

	userID := uuid.New()
	target := "/api/admin/v1/transactions?type=deposit&status=completed&user_id=" + userID.String()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.lastFilter.Type != enums.TransactionTypeDeposit {
		t.Fatalf("expected deposit filter, got %q", stub.lastFilter.Type)
	}
	if stub.lastFilter.Status != enums.TransactionStatusCompleted {
		t.Fatalf("expected completed filter, got %q", stub.lastFilter.Status)
	}
	if stub.lastFilter.UserID != userID {
		t.Fatalf("expected user filter forwarded, got %s", stub.lastFilter.UserID)
	}
}

func TestAdminTransactionsListRejectsUnknownStatus(t *testing.T) {
	handler := AdminTransactionsList(&stubWalletService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/transactions?status=teleported", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminAdjustBalanceForwardsTypeAndDescription(t *testing.T) {
	stub := &stubWalletService{}
	handler := AdminAdjustBalance(stub, nil)

	userID := uuid.New()
	body := []byte(`{"amount":"50000","type":"subtract","description":"Thu hồi khuyến mãi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users/"+userID.String()+"/balance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = routedRequest(req, "userId", userID.String())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.lastAdjust.Direction != enums.AdjustmentSubtract {
		t.Fatalf("expected subtract, got %q", stub.lastAdjust.Direction)
	}
	if stub.lastAdjust.Note == nil || *stub.lastAdjust.Note != "Thu hồi khuyến mãi" {
		t.Fatalf("expected description forwarded, got %v", stub.lastAdjust.Note)
	}

	var envelope struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message != "Trừ tiền thành công" {
		t.Fatalf("expected message in response, got %q", envelope.Data.Message)
	}
}

func TestAdminAdjustBalanceRejectsUnknownType(t *testing.T) {
	handler := AdminAdjustBalance(&stubWalletService{}, nil)

	userID := uuid.New()
	body := []byte(`{"amount":"50000","type":"multiply"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users/"+userID.String()+"/balance", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = routedRequest(req, "userId", userID.String())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

type ledgerServiceStub struct {
	balancesFn      func(ctx context.Context, groupID string) (*usecase.BalanceSheet, error)
	memberBalanceFn func(ctx context.Context, groupID, memberID string) (decimal.Decimal, error)
	settlementFn    func(ctx context.Context, groupID string) ([]domain.SettlementTransaction, error)
}

func (s *ledgerServiceStub) GetBalances(ctx context.Context, groupID string) (*usecase.BalanceSheet, error) {
	return s.balancesFn(ctx, groupID)
}

func (s *ledgerServiceStub) GetMemberBalance(ctx context.Context, groupID, memberID string) (decimal.Decimal, error) {
	return s.memberBalanceFn(ctx, groupID, memberID)
}

func (s *ledgerServiceStub) GetSettlementPlan(ctx context.Context, groupID string) ([]domain.SettlementTransaction, error) {
	return s.settlementFn(ctx, groupID)
}

func TestLedgerHandler_Balances(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		balancesFn: func(ctx context.Context, groupID string) (*usecase.BalanceSheet, error) {
			if groupID != "grp-1" {
				t.Fatalf("expected group grp-1, got %s", groupID)
			}
			return &usecase.BalanceSheet{
				GroupID: "grp-1",
				Version: 3,
				Balances: map[string]decimal.Decimal{
					"alice": decimal.RequireFromString("60"),
					"bob":   decimal.RequireFromString("-60"),
				},
				Drift: decimal.Zero,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/balances", nil)
	req = setChiURLParam(req, "id", "grp-1")
	rec := httptest.NewRecorder()

	handler.Balances(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BalancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Version != 3 {
		t.Fatalf("expected version 3, got %d", resp.Version)
	}
	if !resp.Balances["alice"].Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected alice balance 60, got %s", resp.Balances["alice"])
	}
}

func TestLedgerHandler_Balances_GroupNotFound(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		balancesFn: func(ctx context.Context, groupID string) (*usecase.BalanceSheet, error) {
			return nil, domain.ErrGroupNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-404/balances", nil)
	req = setChiURLParam(req, "id", "grp-404")
	rec := httptest.NewRecorder()

	handler.Balances(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLedgerHandler_MemberBalance(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		memberBalanceFn: func(ctx context.Context, groupID, memberID string) (decimal.Decimal, error) {
			if groupID != "grp-1" || memberID != "bob" {
				t.Fatalf("unexpected args: %s %s", groupID, memberID)
			}
			return decimal.RequireFromString("-30"), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/balances/bob", nil)
	req = setChiURLParam(req, "id", "grp-1")
	req = setChiURLParam(req, "memberID", "bob")
	rec := httptest.NewRecorder()

	handler.MemberBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if string(resp["balance"]) != `"-30"` {
		t.Fatalf("expected balance -30, got %s", resp["balance"])
	}
}

func TestLedgerHandler_MemberBalance_NotOnRoster(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		memberBalanceFn: func(ctx context.Context, groupID, memberID string) (decimal.Decimal, error) {
			return decimal.Zero, domain.ErrMemberNotInGroup
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/balances/stranger", nil)
	req = setChiURLParam(req, "id", "grp-1")
	req = setChiURLParam(req, "memberID", "stranger")
	rec := httptest.NewRecorder()

	handler.MemberBalance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Settlement(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		settlementFn: func(ctx context.Context, groupID string) ([]domain.SettlementTransaction, error) {
			return []domain.SettlementTransaction{
				{FromMemberID: "bob", ToMemberID: "alice", Amount: decimal.RequireFromString("30")},
				{FromMemberID: "carol", ToMemberID: "alice", Amount: decimal.RequireFromString("30")},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/settlement", nil)
	req = setChiURLParam(req, "id", "grp-1")
	rec := httptest.NewRecorder()

	handler.Settlement(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SettlementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.GroupID != "grp-1" || len(resp.Transactions) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Transactions[0].FromMemberID != "bob" {
		t.Fatalf("expected first transfer from bob, got %s", resp.Transactions[0].FromMemberID)
	}
}

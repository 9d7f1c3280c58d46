package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetBalances(ctx context.Context, groupID string) (*usecase.BalanceSheet, error)
	GetMemberBalance(ctx context.Context, groupID, memberID string) (decimal.Decimal, error)
	GetSettlementPlan(ctx context.Context, groupID string) ([]domain.SettlementTransaction, error)
}

// LedgerHandler answers balance and settlement queries.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Balances returns the net balance per member.
func (h *LedgerHandler) Balances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	sheet, err := h.ledgerUC.GetBalances(r.Context(), groupID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balances", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromSheet(sheet))
}

// MemberBalance returns one member's net balance.
func (h *LedgerHandler) MemberBalance(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	memberID := chi.URLParam(r, "memberID")

	if groupID == "" || memberID == "" {
		writeError(w, http.StatusBadRequest, "missing group or member ID", "")
		return
	}

	balance, err := h.ledgerUC.GetMemberBalance(r.Context(), groupID, memberID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"group_id":  groupID,
		"member_id": memberID,
		"balance":   balance,
	})
}

// Settlement returns the transfers that would settle the group.
func (h *LedgerHandler) Settlement(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	plan, err := h.ledgerUC.GetSettlementPlan(r.Context(), groupID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute settlement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(groupID, plan))
}

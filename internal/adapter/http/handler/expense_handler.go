package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, groupID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, groupID string) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, groupID, expenseID, actorID string) error
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create adds an expense to a group.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}

	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.AddExpense(r.Context(), req.ToUseCaseInput(groupID, actorID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves one expense.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	expenseID := chi.URLParam(r, "expenseID")

	if groupID == "" || expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing group or expense ID", "")
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), groupID, expenseID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get expense", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List lists a group's expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), groupID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list expenses", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}

// Delete removes an expense from a group.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}

	groupID := chi.URLParam(r, "id")
	expenseID := chi.URLParam(r, "expenseID")

	if groupID == "" || expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing group or expense ID", "")
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), groupID, expenseID, actorID); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete expense", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

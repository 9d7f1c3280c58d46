package handler

import (
	"bytes"
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

type expenseServiceStub struct {
	addFn    func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error)
	getFn    func(ctx context.Context, groupID, expenseID string) (*domain.Expense, error)
	listFn   func(ctx context.Context, groupID string) ([]domain.Expense, error)
	deleteFn func(ctx context.Context, groupID, expenseID, actorID string) error
}

func (s *expenseServiceStub) AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
	return s.addFn(ctx, input)
}

func (s *expenseServiceStub) GetExpense(ctx context.Context, groupID, expenseID string) (*domain.Expense, error) {
	return s.getFn(ctx, groupID, expenseID)
}

func (s *expenseServiceStub) ListExpenses(ctx context.Context, groupID string) ([]domain.Expense, error) {
	return s.listFn(ctx, groupID)
}

func (s *expenseServiceStub) DeleteExpense(ctx context.Context, groupID, expenseID, actorID string) error {
	return s.deleteFn(ctx, groupID, expenseID, actorID)
}

func TestExpenseHandler_Create_Success(t *testing.T) {
	expense := &domain.Expense{
		ID:      "exp-1",
		GroupID: "grp-1",
		PayerID: "alice",
		Amount:  decimal.RequireFromString("90"),
		Method:  domain.SplitEqual,
	}

	var captured usecase.AddExpenseInput
	handler := NewExpenseHandler(&expenseServiceStub{
		addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
			captured = input
			return expense, nil
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{
		Description: "dinner",
		PayerID:     "alice",
		Amount:      decimal.RequireFromString("90"),
		Method:      "equal",
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/expenses", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Create, req, "alice")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.GroupID != "grp-1" || captured.ActorID != "alice" || captured.PayerID != "alice" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if captured.Method != domain.SplitEqual || !captured.Amount.Equal(decimal.RequireFromString("90")) {
		t.Fatalf("expected equal split of 90, got %+v", captured)
	}

	var resp dto.ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "exp-1" {
		t.Fatalf("expected expense ID exp-1, got %s", resp.ID)
	}
}

func TestExpenseHandler_Create_PercentagePayload(t *testing.T) {
	var captured usecase.AddExpenseInput
	handler := NewExpenseHandler(&expenseServiceStub{
		addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
			captured = input
			return &domain.Expense{ID: "exp-1"}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{
		Description: "hotel",
		PayerID:     "alice",
		Amount:      decimal.RequireFromString("200"),
		Method:      "percentage",
		Percentages: []dto.PercentageShareItem{
			{MemberID: "alice", Percentage: decimal.RequireFromString("60")},
			{MemberID: "bob", Percentage: decimal.RequireFromString("40")},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/expenses", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Create, req, "alice")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(captured.Split.Percentages) != 2 {
		t.Fatalf("expected 2 percentage entries, got %+v", captured.Split)
	}
	if captured.Split.Percentages[1].MemberID != "bob" || !captured.Split.Percentages[1].Percentage.Equal(decimal.RequireFromString("40")) {
		t.Fatalf("unexpected percentage entry: %+v", captured.Split.Percentages[1])
	}
}

func TestExpenseHandler_Create_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		serviceErr error
		expected   int
	}{
		{name: "bad split input", serviceErr: domain.ErrInvalidSplitInput, expected: http.StatusBadRequest},
		{name: "participant off roster", serviceErr: domain.ErrMemberNotInGroup, expected: http.StatusBadRequest},
		{name: "amount too large", serviceErr: domain.ErrAmountTooLarge, expected: http.StatusBadRequest},
		{name: "group missing", serviceErr: domain.ErrGroupNotFound, expected: http.StatusNotFound},
		{name: "concurrent update", serviceErr: domain.ErrVersionConflict, expected: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewExpenseHandler(&expenseServiceStub{
				addFn: func(ctx context.Context, input usecase.AddExpenseInput) (*domain.Expense, error) {
					return nil, tc.serviceErr
				},
			})

			body, _ := json.Marshal(dto.CreateExpenseRequest{
				Description: "dinner",
				PayerID:     "alice",
				Amount:      decimal.RequireFromString("90"),
				Method:      "equal",
			})

			req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/expenses", bytes.NewReader(body))
			req = setChiURLParam(req, "id", "grp-1")

			rec := serveAsActor(handler.Create, req, "alice")

			if rec.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, rec.Code)
			}
		})
	}
}

func TestExpenseHandler_Get_NotFound(t *testing.T) {
	handler := NewExpenseHandler(&expenseServiceStub{
		getFn: func(ctx context.Context, groupID, expenseID string) (*domain.Expense, error) {
			return nil, domain.ErrExpenseNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/expenses/exp-404", nil)
	req = setChiURLParam(req, "id", "grp-1")
	req = setChiURLParam(req, "expenseID", "exp-404")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenseHandler_List(t *testing.T) {
	handler := NewExpenseHandler(&expenseServiceStub{
		listFn: func(ctx context.Context, groupID string) ([]domain.Expense, error) {
			if groupID != "grp-1" {
				t.Fatalf("expected group grp-1, got %s", groupID)
			}
			return []domain.Expense{{ID: "exp-1"}, {ID: "exp-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/grp-1/expenses", nil)
	req = setChiURLParam(req, "id", "grp-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(resp))
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	deleted := false
	handler := NewExpenseHandler(&expenseServiceStub{
		deleteFn: func(ctx context.Context, groupID, expenseID, actorID string) error {
			if groupID != "grp-1" || expenseID != "exp-1" || actorID != "alice" {
				t.Fatalf("unexpected delete args: %s %s %s", groupID, expenseID, actorID)
			}
			deleted = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/groups/grp-1/expenses/exp-1", nil)
	req = setChiURLParam(req, "id", "grp-1")
	req = setChiURLParam(req, "expenseID", "exp-1")

	rec := serveAsActor(handler.Delete, req, "alice")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !deleted {
		t.Fatal("expected DeleteExpense to be called")
	}
}

func TestExpenseHandler_Delete_Forbidden(t *testing.T) {
	handler := NewExpenseHandler(&expenseServiceStub{
		deleteFn: func(ctx context.Context, groupID, expenseID, actorID string) error {
			return domain.ErrUnauthorized
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/groups/grp-1/expenses/exp-1", nil)
	req = setChiURLParam(req, "id", "grp-1")
	req = setChiURLParam(req, "expenseID", "exp-1")

	rec := serveAsActor(handler.Delete, req, "mallory")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

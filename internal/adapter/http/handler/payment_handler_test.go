package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

type paymentServiceStub struct {
	initiateFn func(ctx context.Context, input usecase.PaymentInput) error
	confirmFn  func(ctx context.Context, input usecase.PaymentInput) error
	disputeFn  func(ctx context.Context, input usecase.PaymentInput) error
}

func (s *paymentServiceStub) InitiatePayment(ctx context.Context, input usecase.PaymentInput) error {
	return s.initiateFn(ctx, input)
}

func (s *paymentServiceStub) ConfirmPayment(ctx context.Context, input usecase.PaymentInput) error {
	return s.confirmFn(ctx, input)
}

func (s *paymentServiceStub) DisputePayment(ctx context.Context, input usecase.PaymentInput) error {
	return s.disputeFn(ctx, input)
}

func paymentBody(t *testing.T) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(dto.PaymentRequest{DebtorID: "bob", CreditorID: "alice"})
	if err != nil {
		t.Fatalf("failed to marshal payment request: %v", err)
	}

	return bytes.NewReader(body)
}

func TestPaymentHandler_Initiate(t *testing.T) {
	var captured usecase.PaymentInput
	handler := NewPaymentHandler(&paymentServiceStub{
		initiateFn: func(ctx context.Context, input usecase.PaymentInput) error {
			captured = input
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/payments/initiate", paymentBody(t))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Initiate, req, "bob")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.GroupID != "grp-1" || captured.ActorID != "bob" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if captured.DebtorID != "bob" || captured.CreditorID != "alice" {
		t.Fatalf("expected bob paying alice, got %+v", captured)
	}
}

func TestPaymentHandler_Initiate_MissingActor(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		initiateFn: func(ctx context.Context, input usecase.PaymentInput) error {
			t.Fatal("InitiatePayment should not be called without an actor")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/payments/initiate", paymentBody(t))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Initiate, req, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPaymentHandler_Initiate_InvalidJSON(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		initiateFn: func(ctx context.Context, input usecase.PaymentInput) error {
			t.Fatal("InitiatePayment should not be called for invalid payload")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/payments/initiate", bytes.NewBufferString("{invalid"))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Initiate, req, "bob")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_Confirm_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		serviceErr error
		expected   int
	}{
		{name: "nothing pending", serviceErr: domain.ErrNoPendingPayment, expected: http.StatusConflict},
		{name: "wrong actor", serviceErr: domain.ErrUnauthorized, expected: http.StatusForbidden},
		{name: "stale version", serviceErr: domain.ErrVersionConflict, expected: http.StatusConflict},
		{name: "group missing", serviceErr: domain.ErrGroupNotFound, expected: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPaymentHandler(&paymentServiceStub{
				confirmFn: func(ctx context.Context, input usecase.PaymentInput) error {
					return tc.serviceErr
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/payments/confirm", paymentBody(t))
			req = setChiURLParam(req, "id", "grp-1")

			rec := serveAsActor(handler.Confirm, req, "alice")

			if rec.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, rec.Code)
			}
		})
	}
}

func TestPaymentHandler_Dispute(t *testing.T) {
	called := false
	handler := NewPaymentHandler(&paymentServiceStub{
		disputeFn: func(ctx context.Context, input usecase.PaymentInput) error {
			called = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/groups/grp-1/payments/dispute", paymentBody(t))
	req = setChiURLParam(req, "id", "grp-1")

	rec := serveAsActor(handler.Dispute, req, "alice")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("expected DisputePayment to be called")
	}
}

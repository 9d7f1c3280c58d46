package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	InitiatePayment(ctx context.Context, input usecase.PaymentInput) error
	ConfirmPayment(ctx context.Context, input usecase.PaymentInput) error
	DisputePayment(ctx context.Context, input usecase.PaymentInput) error
}

// PaymentHandler drives the payment confirmation flow over HTTP.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Initiate marks everything the debtor owes the creditor as pending.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.paymentUC.InitiatePayment, "failed to initiate payment")
}

// Confirm settles the pending shares between the pair.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.paymentUC.ConfirmPayment, "failed to confirm payment")
}

// Dispute rejects the pending shares, resetting them to unpaid.
func (h *PaymentHandler) Dispute(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.paymentUC.DisputePayment, "failed to dispute payment")
}

func (h *PaymentHandler) handle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, input usecase.PaymentInput) error,
	message string,
) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}

	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		writeError(w, http.StatusBadRequest, "missing group ID", "")
		return
	}

	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := op(r.Context(), req.ToUseCaseInput(groupID, actorID)); err != nil {
		status := mapDomainError(err)
		writeError(w, status, message, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

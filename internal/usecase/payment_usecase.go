package usecase

import (
	"context"
	"time"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
)

// PaymentUseCase drives the share payment state machine: the debtor
// initiates, the creditor confirms or disputes.
type PaymentUseCase struct {
	txManager  TransactionManager
	groupRepo  GroupRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	groupRepo GroupRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:  txManager,
		groupRepo:  groupRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		retrier:    retrier,
		metrics:    metrics,
	}
}

// PaymentInput identifies one debtor-creditor pair inside a group. ActorID
// is the member performing the operation; the transition itself decides
// whether the actor is allowed.
type PaymentInput struct {
	GroupID    string
	ActorID    string
	DebtorID   string
	CreditorID string
}

// InitiatePayment marks everything the debtor owes the creditor as pending
// confirmation.
func (uc *PaymentUseCase) InitiatePayment(ctx context.Context, input PaymentInput) error {
	err := uc.transition(ctx, input, domain.EventTypePaymentInitiated,
		func(g *domain.Group, now time.Time) ([]domain.ShareRef, error) {
			return g.InitiatePayment(input.ActorID, input.DebtorID, input.CreditorID, now)
		})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsInitiated.Inc()
	}

	return nil
}

// ConfirmPayment settles the pending shares between the pair.
func (uc *PaymentUseCase) ConfirmPayment(ctx context.Context, input PaymentInput) error {
	err := uc.transition(ctx, input, domain.EventTypePaymentConfirmed,
		func(g *domain.Group, _ time.Time) ([]domain.ShareRef, error) {
			return g.ConfirmPayment(input.ActorID, input.CreditorID, input.DebtorID)
		})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsConfirmed.Inc()
	}

	return nil
}

// DisputePayment rejects the pending shares, resetting them to unpaid.
func (uc *PaymentUseCase) DisputePayment(ctx context.Context, input PaymentInput) error {
	err := uc.transition(ctx, input, domain.EventTypePaymentDisputed,
		func(g *domain.Group, _ time.Time) ([]domain.ShareRef, error) {
			return g.DisputePayment(input.ActorID, input.CreditorID, input.DebtorID)
		})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsDisputed.Inc()
	}

	return nil
}

// transition runs one payment state change in a locked transaction. The
// whole attempt is wrapped in the retrier so serialization failures and
// deadlocks replay against fresh state.
func (uc *PaymentUseCase) transition(
	ctx context.Context,
	input PaymentInput,
	eventType string,
	apply func(g *domain.Group, now time.Time) ([]domain.ShareRef, error),
) error {
	start := time.Now()

	op := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		group, err := uc.groupRepo.GetByIDForUpdate(txCtx, tx, input.GroupID)
		if err != nil {
			return err
		}

		if !group.HasMember(input.DebtorID) || !group.HasMember(input.CreditorID) {
			return domain.ErrMemberNotInGroup
		}

		now := time.Now().UTC()

		refs, err := apply(group, now)
		if err != nil {
			return err
		}

		if err := uc.groupRepo.UpdateShares(txCtx, tx, group, refs); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   group.ID,
			AggregateType: domain.AggregateTypeGroup,
			EventType:     eventType,
			Payload: map[string]any{
				"group_id":    group.ID,
				"debtor_id":   input.DebtorID,
				"creditor_id": input.CreditorID,
				"shares":      len(refs),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := uc.groupRepo.BumpVersion(txCtx, tx, group.ID, group.Version, now); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	}

	return nil
}

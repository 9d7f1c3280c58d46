package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
)

// ExpenseUseCase handles expense creation and deletion inside a group.
type ExpenseUseCase struct {
	txManager  TransactionManager
	groupRepo  GroupRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	groupRepo GroupRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:  txManager,
		groupRepo:  groupRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// AddExpenseInput represents input for adding an expense.
type AddExpenseInput struct {
	GroupID     string
	ActorID     string
	Description string
	Category    string
	PayerID     string
	Amount      decimal.Decimal
	Method      domain.SplitMethod
	Split       domain.SplitParams
}

// AddExpense computes the shares for the chosen split method and appends the
// expense to the group history. Every participant, including the payer, must
// be on the roster.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	start := time.Now()

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	group, err := uc.groupRepo.GetByIDForUpdate(txCtx, tx, input.GroupID)
	if err != nil {
		return nil, err
	}

	if !group.HasMember(input.ActorID) {
		return nil, domain.ErrUnauthorized
	}

	if !group.HasMember(input.PayerID) {
		return nil, fmt.Errorf("%w: payer %s", domain.ErrMemberNotInGroup, input.PayerID)
	}

	// Equal split over the whole roster when no explicit participants given.
	if input.Method == domain.SplitEqual && len(input.Split.MemberIDs) == 0 {
		for _, m := range group.Members {
			input.Split.MemberIDs = append(input.Split.MemberIDs, m.ID)
		}
	}

	for _, id := range splitParticipants(input.Split) {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: participant %s", domain.ErrMemberNotInGroup, id)
		}
	}

	shares, err := domain.ComputeShares(input.Amount, input.Method, input.Split)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:          uc.idGen.Generate(),
		GroupID:     group.ID,
		Description: input.Description,
		Category:    input.Category,
		PayerID:     input.PayerID,
		Amount:      input.Amount,
		Method:      input.Method,
		Shares:      shares,
		Items:       input.Split.Items,
		CreatedAt:   now,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.groupRepo.InsertExpense(txCtx, tx, expense); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   group.ID,
		AggregateType: domain.AggregateTypeGroup,
		EventType:     domain.EventTypeExpenseCreated,
		Payload: map[string]any{
			"group_id":   group.ID,
			"expense_id": expense.ID,
			"payer_id":   expense.PayerID,
			"amount":     expense.Amount.String(),
			"method":     string(expense.Method),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := uc.groupRepo.BumpVersion(txCtx, tx, group.ID, group.Version, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.WithLabelValues(string(input.Method)).Inc()
		amount, _ := input.Amount.Float64()
		uc.metrics.ExpenseAmount.Observe(amount)
		uc.metrics.ExpenseDuration.Observe(time.Since(start).Seconds())
	}

	return expense, nil
}

// DeleteExpense removes an expense from the group history. Only the payer or
// a group admin may delete.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, groupID, expenseID, actorID string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	group, err := uc.groupRepo.GetByIDForUpdate(txCtx, tx, groupID)
	if err != nil {
		return err
	}

	expense, ok := group.Expense(expenseID)
	if !ok {
		return domain.ErrExpenseNotFound
	}

	actor, ok := group.Member(actorID)
	if !ok {
		return domain.ErrUnauthorized
	}

	if expense.PayerID != actorID && actor.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only the payer or an admin can delete an expense", domain.ErrUnauthorized)
	}

	if err := uc.groupRepo.DeleteExpense(txCtx, tx, groupID, expenseID); err != nil {
		return err
	}

	now := time.Now().UTC()
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   group.ID,
		AggregateType: domain.AggregateTypeGroup,
		EventType:     domain.EventTypeExpenseDeleted,
		Payload: map[string]any{
			"group_id":   group.ID,
			"expense_id": expenseID,
			"deleted_by": actorID,
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

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesDeleted.Inc()
	}

	return nil
}

// GetExpense retrieves one expense from a group.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, groupID, expenseID string) (*domain.Expense, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expense, ok := group.Expense(expenseID)
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}

	return expense, nil
}

// ListExpenses lists a group's expenses.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, groupID string) ([]domain.Expense, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return group.Expenses, nil
}

func splitParticipants(params domain.SplitParams) []string {
	seen := make(map[string]bool)

	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, id := range params.MemberIDs {
		add(id)
	}

	for _, p := range params.Percentages {
		add(p.MemberID)
	}

	for _, a := range params.Amounts {
		add(a.MemberID)
	}

	for _, item := range params.Items {
		for _, id := range item.AssignedTo {
			add(id)
		}
	}

	return ids
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/infrastructure/postgres/generated"
	"github.com/iho/splitledger/internal/usecase"
)

// GroupRepository implements usecase.GroupRepository. A group is loaded as a
// whole aggregate: roster, expenses, shares and items in one consistent view.
type GroupRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts the group and its initial roster.
func (r *GroupRepository) Create(ctx context.Context, tx usecase.Transaction, group *domain.Group) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateGroup(ctx, generated.CreateGroupParams{
		ID:        group.ID,
		Name:      group.Name,
		Version:   group.Version,
		CreatedAt: timeToPgTimestamptz(group.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(group.UpdatedAt),
	})
	if err != nil {
		return err
	}

	for _, m := range group.Members {
		if err := queries.CreateGroupMember(ctx, memberParams(group.ID, m)); err != nil {
			return err
		}
	}

	return nil
}

// GetByID loads the full aggregate without locking.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row, err := r.queries.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}

		return nil, err
	}

	return r.loadAggregate(ctx, r.queries, row)
}

// GetByIDForUpdate loads the full aggregate with a FOR UPDATE lock on the
// group row. The lock serializes writers; readers go through GetByID.
func (r *GroupRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Group, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetGroupByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}

		return nil, err
	}

	return r.loadAggregate(ctx, queries, row)
}

// List lists groups with pagination. Rosters are loaded; expense histories
// are not, listing is a summary view.
func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	rows, err := r.queries.ListGroups(ctx, generated.ListGroupsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	groups := make([]*domain.Group, 0, len(rows))
	for _, row := range rows {
		group := rowToGroup(row)

		memberRows, err := r.queries.ListGroupMembers(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range memberRows {
			group.Members = append(group.Members, rowToMember(m))
		}

		groups = append(groups, group)
	}

	return groups, nil
}

// AddMember appends one roster row.
func (r *GroupRepository) AddMember(ctx context.Context, tx usecase.Transaction, groupID string, member domain.Member) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateGroupMember(ctx, memberParams(groupID, member))
}

// InsertExpense inserts the expense with its shares and items.
func (r *GroupRepository) InsertExpense(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateExpense(ctx, generated.CreateExpenseParams{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		Description: expense.Description,
		Category:    pgtype.Text{String: expense.Category, Valid: expense.Category != ""},
		PayerID:     expense.PayerID,
		Amount:      decimalToNumeric(expense.Amount),
		Method:      string(expense.Method),
		CreatedAt:   timeToPgTimestamptz(expense.CreatedAt),
	})
	if err != nil {
		return err
	}

	for i, share := range expense.Shares {
		var requestedAt pgtype.Timestamptz
		if share.PaymentRequestedAt != nil {
			requestedAt = timeToPgTimestamptz(*share.PaymentRequestedAt)
		}

		err := queries.CreateShare(ctx, generated.CreateShareParams{
			ExpenseID:          expense.ID,
			Position:           int32(i),
			MemberID:           share.MemberID,
			Amount:             decimalToNumeric(share.Amount),
			Percentage:         decimalToNumeric(share.Percentage),
			Status:             pgtype.Text{String: string(share.Status), Valid: true},
			IsPaid:             share.IsPaid(),
			PaymentRequestedAt: requestedAt,
		})
		if err != nil {
			return err
		}
	}

	for i, item := range expense.Items {
		err := queries.CreateExpenseItem(ctx, generated.CreateExpenseItemParams{
			ExpenseID:   expense.ID,
			Position:    int32(i),
			Description: item.Description,
			Price:       decimalToNumeric(item.Price),
			AssignedTo:  item.AssignedTo,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteExpense removes the expense; shares and items cascade.
func (r *GroupRepository) DeleteExpense(ctx context.Context, tx usecase.Transaction, groupID, expenseID string) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	affected, err := queries.DeleteExpense(ctx, generated.DeleteExpenseParams{
		ID:      expenseID,
		GroupID: groupID,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// UpdateShares persists the payment state of the referenced shares. The refs
// index into the aggregate the caller mutated in memory.
func (r *GroupRepository) UpdateShares(ctx context.Context, tx usecase.Transaction, group *domain.Group, refs []domain.ShareRef) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	for _, ref := range refs {
		if ref.ExpenseIndex < 0 || ref.ExpenseIndex >= len(group.Expenses) {
			return fmt.Errorf("share ref expense index %d out of range", ref.ExpenseIndex)
		}
		expense := &group.Expenses[ref.ExpenseIndex]

		if ref.ShareIndex < 0 || ref.ShareIndex >= len(expense.Shares) {
			return fmt.Errorf("share ref share index %d out of range", ref.ShareIndex)
		}
		share := &expense.Shares[ref.ShareIndex]

		var requestedAt pgtype.Timestamptz
		if share.PaymentRequestedAt != nil {
			requestedAt = timeToPgTimestamptz(*share.PaymentRequestedAt)
		}

		err := queries.UpdateShareStatus(ctx, generated.UpdateShareStatusParams{
			ExpenseID:          expense.ID,
			MemberID:           share.MemberID,
			Status:             pgtype.Text{String: string(share.Status), Valid: true},
			IsPaid:             share.IsPaid(),
			PaymentRequestedAt: requestedAt,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// BumpVersion applies the optimistic-concurrency check. Zero rows affected
// means another writer got there first.
func (r *GroupRepository) BumpVersion(ctx context.Context, tx usecase.Transaction, groupID string, fromVersion int64, updatedAt time.Time) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	affected, err := queries.BumpGroupVersion(ctx, generated.BumpGroupVersionParams{
		ID:        groupID,
		Version:   fromVersion,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

func (r *GroupRepository) loadAggregate(ctx context.Context, queries *generated.Queries, row generated.Group) (*domain.Group, error) {
	group := rowToGroup(row)

	memberRows, err := queries.ListGroupMembers(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberRows {
		group.Members = append(group.Members, rowToMember(m))
	}

	expenseRows, err := queries.ListExpensesByGroup(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	shareRows, err := queries.ListSharesByGroup(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	itemRows, err := queries.ListExpenseItemsByGroup(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	sharesByExpense := make(map[string][]domain.Share, len(expenseRows))
	for _, s := range shareRows {
		sharesByExpense[s.ExpenseID] = append(sharesByExpense[s.ExpenseID], rowToShare(s))
	}

	itemsByExpense := make(map[string][]domain.ExpenseItem)
	for _, i := range itemRows {
		itemsByExpense[i.ExpenseID] = append(itemsByExpense[i.ExpenseID], domain.ExpenseItem{
			Description: i.Description,
			Price:       numericToDecimal(i.Price),
			AssignedTo:  i.AssignedTo,
		})
	}

	group.Expenses = make([]domain.Expense, 0, len(expenseRows))
	for _, e := range expenseRows {
		group.Expenses = append(group.Expenses, domain.Expense{
			ID:          e.ID,
			GroupID:     e.GroupID,
			Description: e.Description,
			Category:    e.Category.String,
			PayerID:     e.PayerID,
			Amount:      numericToDecimal(e.Amount),
			Method:      domain.SplitMethod(e.Method),
			Shares:      sharesByExpense[e.ID],
			Items:       itemsByExpense[e.ID],
			CreatedAt:   e.CreatedAt.Time,
		})
	}

	return group, nil
}

func rowToGroup(row generated.Group) *domain.Group {
	return &domain.Group{
		ID:        row.ID,
		Name:      row.Name,
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func rowToMember(row generated.GroupMember) domain.Member {
	return domain.Member{
		ID:       row.MemberID,
		Name:     row.Name,
		Email:    row.Email,
		Role:     domain.Role(row.Role),
		JoinedAt: row.JoinedAt.Time,
	}
}

func rowToShare(row generated.Share) domain.Share {
	var requestedAt *time.Time
	if row.PaymentRequestedAt.Valid {
		t := row.PaymentRequestedAt.Time
		requestedAt = &t
	}

	return domain.Share{
		MemberID:           row.MemberID,
		Amount:             numericToDecimal(row.Amount),
		Percentage:         numericToDecimal(row.Percentage),
		Status:             shareStatus(row),
		PaymentRequestedAt: requestedAt,
	}
}

// shareStatus normalizes rows written before the status column existed: those
// carry only the is_paid flag.
func shareStatus(row generated.Share) domain.PaymentStatus {
	if row.Status.Valid && row.Status.String != "" {
		return domain.PaymentStatus(row.Status.String)
	}
	if row.IsPaid {
		return domain.PaymentStatusPaid
	}

	return domain.PaymentStatusUnpaid
}

func memberParams(groupID string, m domain.Member) generated.CreateGroupMemberParams {
	return generated.CreateGroupMemberParams{
		GroupID:  groupID,
		MemberID: m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Role:     string(m.Role),
		JoinedAt: timeToPgTimestamptz(m.JoinedAt),
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

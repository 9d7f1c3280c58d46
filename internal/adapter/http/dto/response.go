package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// MemberResponse represents a roster member in API responses.
type MemberResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m domain.Member) MemberResponse {
	return MemberResponse{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Members   []MemberResponse `json:"members"`
	Version   int64            `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.Group) *GroupResponse {
	members := make([]MemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = MemberFromDomain(m)
	}

	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		Version:   g.Version,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GroupsFromDomain converts domain groups to responses.
func GroupsFromDomain(groups []*domain.Group) []*GroupResponse {
	result := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = GroupFromDomain(g)
	}
	return result
}

// ShareResponse represents one member's share of an expense.
type ShareResponse struct {
	MemberID           string          `json:"member_id"`
	Amount             decimal.Decimal `json:"amount"`
	Percentage         decimal.Decimal `json:"percentage"`
	Status             string          `json:"status"`
	PaymentRequestedAt *time.Time      `json:"payment_requested_at,omitempty"`
}

// ExpenseItemResponse represents one line of an item-based expense.
type ExpenseItemResponse struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	AssignedTo  []string        `json:"assigned_to"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string                `json:"id"`
	GroupID     string                `json:"group_id"`
	Description string                `json:"description"`
	Category    string                `json:"category,omitempty"`
	PayerID     string                `json:"payer_id"`
	Amount      decimal.Decimal       `json:"amount"`
	Method      string                `json:"method"`
	Shares      []ShareResponse       `json:"shares"`
	Items       []ExpenseItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	shares := make([]ShareResponse, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = ShareResponse{
			MemberID:           s.MemberID,
			Amount:             s.Amount,
			Percentage:         s.Percentage,
			Status:             string(s.Status),
			PaymentRequestedAt: s.PaymentRequestedAt,
		}
	}

	var items []ExpenseItemResponse
	for _, item := range e.Items {
		items = append(items, ExpenseItemResponse{
			Description: item.Description,
			Price:       item.Price,
			AssignedTo:  item.AssignedTo,
		})
	}

	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Category:    e.Category,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Method:      string(e.Method),
		Shares:      shares,
		Items:       items,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i := range expenses {
		result[i] = ExpenseFromDomain(&expenses[i])
	}
	return result
}

// BalancesResponse represents a group's net balances.
type BalancesResponse struct {
	GroupID  string                     `json:"group_id"`
	Version  int64                      `json:"version"`
	Balances map[string]decimal.Decimal `json:"balances"`
	Drift    decimal.Decimal            `json:"drift"`
}

// BalancesFromSheet converts a balance sheet to a response.
func BalancesFromSheet(sheet *usecase.BalanceSheet) *BalancesResponse {
	return &BalancesResponse{
		GroupID:  sheet.GroupID,
		Version:  sheet.Version,
		Balances: sheet.Balances,
		Drift:    sheet.Drift,
	}
}

// SettlementTransactionResponse represents one proposed transfer.
type SettlementTransactionResponse struct {
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// SettlementResponse represents a settlement plan.
type SettlementResponse struct {
	GroupID      string                          `json:"group_id"`
	Transactions []SettlementTransactionResponse `json:"transactions"`
}

// SettlementFromDomain converts a settlement plan to a response.
func SettlementFromDomain(groupID string, plan []domain.SettlementTransaction) *SettlementResponse {
	transactions := make([]SettlementTransactionResponse, len(plan))
	for i, tx := range plan {
		transactions[i] = SettlementTransactionResponse{
			FromMemberID: tx.FromMemberID,
			ToMemberID:   tx.ToMemberID,
			Amount:       tx.Amount,
		}
	}

	return &SettlementResponse{
		GroupID:      groupID,
		Transactions: transactions,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

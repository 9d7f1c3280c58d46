package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// CreateGroupRequest represents a request to create a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGroupRequest) ToUseCaseInput(actorID string) usecase.CreateGroupInput {
	return usecase.CreateGroupInput{
		Name:      r.Name,
		CreatorID: actorID,
	}
}

// AddMemberRequest represents a request to add a member to a group.
type AddMemberRequest struct {
	MemberID string `json:"member_id"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddMemberRequest) ToUseCaseInput(groupID, actorID string) usecase.AddMemberInput {
	return usecase.AddMemberInput{
		GroupID:  groupID,
		ActorID:  actorID,
		MemberID: r.MemberID,
		Role:     domain.Role(r.Role),
	}
}

// PercentageShareItem assigns a percentage of the expense to one member.
type PercentageShareItem struct {
	MemberID   string          `json:"member_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CustomShareItem assigns a fixed amount of the expense to one member.
type CustomShareItem struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseItemRequest is one line of an item-based expense.
type ExpenseItemRequest struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	AssignedTo  []string        `json:"assigned_to"`
}

// CreateExpenseRequest represents a request to add an expense to a group.
// Exactly one split section is consulted, selected by Method; equal splits
// with no participants listed cover the whole roster.
type CreateExpenseRequest struct {
	Description  string                `json:"description"`
	Category     string                `json:"category,omitempty"`
	PayerID      string                `json:"payer_id"`
	Amount       decimal.Decimal       `json:"amount"`
	Method       string                `json:"method"`
	Participants []string              `json:"participants,omitempty"`
	Percentages  []PercentageShareItem `json:"percentages,omitempty"`
	Amounts      []CustomShareItem     `json:"amounts,omitempty"`
	Items        []ExpenseItemRequest  `json:"items,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(groupID, actorID string) usecase.AddExpenseInput {
	split := domain.SplitParams{
		MemberIDs: r.Participants,
	}

	for _, p := range r.Percentages {
		split.Percentages = append(split.Percentages, domain.MemberPercentage{
			MemberID:   p.MemberID,
			Percentage: p.Percentage,
		})
	}

	for _, a := range r.Amounts {
		split.Amounts = append(split.Amounts, domain.MemberAmount{
			MemberID: a.MemberID,
			Amount:   a.Amount,
		})
	}

	for _, item := range r.Items {
		split.Items = append(split.Items, domain.ExpenseItem{
			Description: item.Description,
			Price:       item.Price,
			AssignedTo:  item.AssignedTo,
		})
	}

	return usecase.AddExpenseInput{
		GroupID:     groupID,
		ActorID:     actorID,
		Description: r.Description,
		Category:    r.Category,
		PayerID:     r.PayerID,
		Amount:      r.Amount,
		Method:      domain.SplitMethod(r.Method),
		Split:       split,
	}
}

// PaymentRequest represents a payment state change between two members.
type PaymentRequest struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
}

// ToUseCaseInput converts to use case input.
func (r *PaymentRequest) ToUseCaseInput(groupID, actorID string) usecase.PaymentInput {
	return usecase.PaymentInput{
		GroupID:    groupID,
		ActorID:    actorID,
		DebtorID:   r.DebtorID,
		CreditorID: r.CreditorID,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

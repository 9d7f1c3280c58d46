package domain

import "time"

// Event types
const (
	EventTypeExpenseCreated   = "expense.created"
	EventTypeExpenseDeleted   = "expense.deleted"
	EventTypePaymentInitiated = "payment.initiated"
	EventTypePaymentConfirmed = "payment.confirmed"
	EventTypePaymentDisputed  = "payment.disputed"
	EventTypeMemberAdded      = "member.added"
)

// Aggregate types
const (
	AggregateTypeGroup = "group"
)

// OutboxEvent represents an event to be published after the owning
// transaction commits.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

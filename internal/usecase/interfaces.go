package usecase

import (
	"context"
	"time"

	"github.com/iho/splitledger/internal/domain"
)

// GroupRepository defines data access for group aggregates.
type GroupRepository interface {
	Create(ctx context.Context, tx Transaction, group *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Group, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Group, error)
	AddMember(ctx context.Context, tx Transaction, groupID string, member domain.Member) error
	InsertExpense(ctx context.Context, tx Transaction, expense *domain.Expense) error
	DeleteExpense(ctx context.Context, tx Transaction, groupID, expenseID string) error
	UpdateShares(ctx context.Context, tx Transaction, group *domain.Group, refs []domain.ShareRef) error
	// BumpVersion performs the optimistic-concurrency check: the update only
	// applies when the stored version still matches fromVersion. Returns
	// domain.ErrVersionConflict otherwise.
	BumpVersion(ctx context.Context, tx Transaction, groupID string, fromVersion int64, updatedAt time.Time) error
}

// MemberDirectory resolves member identities registered outside any group.
type MemberDirectory interface {
	Resolve(ctx context.Context, id string) (*domain.DirectoryEntry, error)
	ResolveMany(ctx context.Context, ids []string) ([]*domain.DirectoryEntry, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient failures such as serialization
// errors and deadlocks.
type Retrier interface {
	Retry(ctx context.Context, op func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

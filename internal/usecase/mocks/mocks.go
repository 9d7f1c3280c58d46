package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// MockGroupRepository is a mock implementation of GroupRepository.
type MockGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*domain.Group

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, group *domain.Group) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Group, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Group, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Group, error)
	AddMemberFunc        func(ctx context.Context, tx usecase.Transaction, groupID string, member domain.Member) error
	InsertExpenseFunc    func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	DeleteExpenseFunc    func(ctx context.Context, tx usecase.Transaction, groupID, expenseID string) error
	UpdateSharesFunc     func(ctx context.Context, tx usecase.Transaction, group *domain.Group, refs []domain.ShareRef) error
	BumpVersionFunc      func(ctx context.Context, tx usecase.Transaction, groupID string, fromVersion int64, updatedAt time.Time) error
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		groups: make(map[string]*domain.Group),
	}
}

// Seed stores a group directly, bypassing the Create hook.
func (m *MockGroupRepository) Seed(group *domain.Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[group.ID] = group
}

func (m *MockGroupRepository) Create(ctx context.Context, tx usecase.Transaction, group *domain.Group) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, group)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[group.ID] = group
	return nil
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.groups[id]; ok {
		// Shallow copy, like a repo rehydrating from rows. Share slices stay
		// shared so UpdateShares is a no-op here.
		copied := *g
		return &copied, nil
	}
	return nil, domain.ErrGroupNotFound
}

func (m *MockGroupRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Group, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockGroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.Group, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var groups []*domain.Group
	for _, g := range m.groups {
		groups = append(groups, g)
	}
	return groups, nil
}

func (m *MockGroupRepository) AddMember(ctx context.Context, tx usecase.Transaction, groupID string, member domain.Member) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, tx, groupID, member)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.groups[groupID]; ok {
		g.Members = append(g.Members, member)
	}
	return nil
}

func (m *MockGroupRepository) InsertExpense(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.InsertExpenseFunc != nil {
		return m.InsertExpenseFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.groups[expense.GroupID]; ok {
		g.Expenses = append(g.Expenses, *expense)
	}
	return nil
}

func (m *MockGroupRepository) DeleteExpense(ctx context.Context, tx usecase.Transaction, groupID, expenseID string) error {
	if m.DeleteExpenseFunc != nil {
		return m.DeleteExpenseFunc(ctx, tx, groupID, expenseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.groups[groupID]; ok {
		for i := range g.Expenses {
			if g.Expenses[i].ID == expenseID {
				g.Expenses = append(g.Expenses[:i], g.Expenses[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (m *MockGroupRepository) UpdateShares(ctx context.Context, tx usecase.Transaction, group *domain.Group, refs []domain.ShareRef) error {
	if m.UpdateSharesFunc != nil {
		return m.UpdateSharesFunc(ctx, tx, group, refs)
	}
	return nil
}

func (m *MockGroupRepository) BumpVersion(ctx context.Context, tx usecase.Transaction, groupID string, fromVersion int64, updatedAt time.Time) error {
	if m.BumpVersionFunc != nil {
		return m.BumpVersionFunc(ctx, tx, groupID, fromVersion, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	if g.Version != fromVersion {
		return domain.ErrVersionConflict
	}
	g.Version++
	g.UpdatedAt = updatedAt
	return nil
}

// MockMemberDirectory is a mock implementation of MemberDirectory.
type MockMemberDirectory struct {
	mu      sync.RWMutex
	entries map[string]*domain.DirectoryEntry

	ResolveFunc     func(ctx context.Context, id string) (*domain.DirectoryEntry, error)
	ResolveManyFunc func(ctx context.Context, ids []string) ([]*domain.DirectoryEntry, error)
}

func NewMockMemberDirectory() *MockMemberDirectory {
	return &MockMemberDirectory{
		entries: make(map[string]*domain.DirectoryEntry),
	}
}

func (m *MockMemberDirectory) Register(entry *domain.DirectoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
}

func (m *MockMemberDirectory) Resolve(ctx context.Context, id string) (*domain.DirectoryEntry, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockMemberDirectory) ResolveMany(ctx context.Context, ids []string) ([]*domain.DirectoryEntry, error) {
	if m.ResolveManyFunc != nil {
		return m.ResolveManyFunc(ctx, ids)
	}
	var entries []*domain.DirectoryEntry
	for _, id := range ids {
		e, err := m.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregateFunc  func(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns everything recorded so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	if m.GetByAggregateFunc != nil {
		return m.GetByAggregateFunc(ctx, aggregateType, aggregateID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once with no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, op func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, op func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, op)
	}
	return op()
}

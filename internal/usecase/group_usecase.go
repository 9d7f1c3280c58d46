package usecase

import (
	"context"
	"time"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
)

// GroupUseCase handles group lifecycle and roster management.
type GroupUseCase struct {
	txManager  TransactionManager
	groupRepo  GroupRepository
	directory  MemberDirectory
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewGroupUseCase creates a new GroupUseCase.
func NewGroupUseCase(
	txManager TransactionManager,
	groupRepo GroupRepository,
	directory MemberDirectory,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *GroupUseCase {
	return &GroupUseCase{
		txManager:  txManager,
		groupRepo:  groupRepo,
		directory:  directory,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// CreateGroupInput represents input for creating a group.
type CreateGroupInput struct {
	Name      string
	CreatorID string
}

// CreateGroup creates a group with the creator as its first member and admin.
func (uc *GroupUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	if err := domain.ValidateGroupName(input.Name); err != nil {
		return nil, err
	}

	creator, err := uc.directory.Resolve(ctx, input.CreatorID)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	group := &domain.Group{
		ID:   uc.idGen.Generate(),
		Name: input.Name,
		Members: []domain.Member{{
			ID:       creator.ID,
			Name:     creator.Name,
			Email:    creator.Email,
			Role:     domain.RoleAdmin,
			JoinedAt: now,
		}},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.groupRepo.Create(txCtx, tx, group); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GroupsCreated.Inc()
	}

	return group, nil
}

// GetGroup retrieves a group by ID.
func (uc *GroupUseCase) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	return uc.groupRepo.GetByID(ctx, id)
}

// ListGroupsInput represents input for listing groups.
type ListGroupsInput struct {
	Limit  int
	Offset int
}

// ListGroups lists groups with pagination.
func (uc *GroupUseCase) ListGroups(ctx context.Context, input ListGroupsInput) ([]*domain.Group, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.groupRepo.List(ctx, limit, offset)
}

// AddMemberInput represents input for adding a member to a group.
type AddMemberInput struct {
	GroupID  string
	ActorID  string
	MemberID string
	Role     domain.Role
}

// AddMember adds a registered member to the group roster. The actor must
// already be on the roster.
func (uc *GroupUseCase) AddMember(ctx context.Context, input AddMemberInput) (*domain.Group, error) {
	if input.Role == "" {
		input.Role = domain.RoleMember
	}

	if err := domain.ValidateRole(input.Role); err != nil {
		return nil, err
	}

	entry, err := uc.directory.Resolve(ctx, input.MemberID)
	if err != nil {
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

	now := time.Now().UTC()
	member := domain.Member{
		ID:       entry.ID,
		Name:     entry.Name,
		Email:    entry.Email,
		Role:     input.Role,
		JoinedAt: now,
	}

	if err := group.AddMember(member); err != nil {
		return nil, err
	}

	if err := uc.groupRepo.AddMember(txCtx, tx, group.ID, member); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   group.ID,
		AggregateType: domain.AggregateTypeGroup,
		EventType:     domain.EventTypeMemberAdded,
		Payload: map[string]any{
			"group_id":  group.ID,
			"member_id": member.ID,
			"role":      string(member.Role),
			"added_by":  input.ActorID,
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

	group.Version++
	group.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.MembersAdded.Inc()
	}

	return group, nil
}

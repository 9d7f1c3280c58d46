package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/splitledger/internal/domain"
)

// MemberDirectory implements usecase.MemberDirectory against the users table.
// Accounts are provisioned by the upstream identity service; this side only
// reads display metadata.
type MemberDirectory struct {
	pool *pgxpool.Pool
}

// NewMemberDirectory creates a new MemberDirectory.
func NewMemberDirectory(pool *pgxpool.Pool) *MemberDirectory {
	return &MemberDirectory{pool: pool}
}

// Resolve looks up one active identity.
func (d *MemberDirectory) Resolve(ctx context.Context, id string) (*domain.DirectoryEntry, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE id = $1 AND active
	`

	var entry domain.DirectoryEntry
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Name,
		&entry.Email,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ResolveMany looks up a batch of identities. Every requested ID must resolve
// to an active account.
func (d *MemberDirectory) ResolveMany(ctx context.Context, ids []string) ([]*domain.DirectoryEntry, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE id = ANY($1) AND active
	`

	rows, err := d.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]*domain.DirectoryEntry, len(ids))
	for rows.Next() {
		var entry domain.DirectoryEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email); err != nil {
			return nil, err
		}
		found[entry.ID] = &entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]*domain.DirectoryEntry, 0, len(ids))
	for _, id := range ids {
		entry, ok := found[id]
		if !ok {
			return nil, domain.ErrMemberNotFound
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

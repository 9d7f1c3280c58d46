package domain

import "time"

// Group is the aggregate the engine operates on: the member roster plus the
// full expense history. Version backs the optimistic-concurrency check at
// the persistence boundary; the engine itself never enforces ordering across
// concurrent invocations.
type Group struct {
	ID        string
	Name      string
	Members   []Member
	Expenses  []Expense
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member returns the roster entry with the given ID.
func (g *Group) Member(id string) (*Member, bool) {
	for i := range g.Members {
		if g.Members[i].ID == id {
			return &g.Members[i], true
		}
	}

	return nil, false
}

// HasMember reports whether the ID is on the roster.
func (g *Group) HasMember(id string) bool {
	_, ok := g.Member(id)
	return ok
}

// Expense returns the expense with the given ID.
func (g *Group) Expense(id string) (*Expense, bool) {
	for i := range g.Expenses {
		if g.Expenses[i].ID == id {
			return &g.Expenses[i], true
		}
	}

	return nil, false
}

// AddMember appends a member to the roster.
func (g *Group) AddMember(m Member) error {
	if g.HasMember(m.ID) {
		return ErrMemberAlreadyInGroup
	}

	g.Members = append(g.Members, m)

	return nil
}

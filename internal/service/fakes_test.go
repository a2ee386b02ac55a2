package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
)

// memoryRepo pages a fixed slice and records every query it serves.
type memoryRepo[T any] struct {
	mu        sync.Mutex
	rows      []T
	key       func(T) string
	protected func(T) bool
	queries   []listing.Query
	deleted   [][]string
}

func (m *memoryRepo[T]) List(_ context.Context, q listing.Query) (listing.Page[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q = q.Normalize()
	m.queries = append(m.queries, q)

	total := len(m.rows)
	from := q.Offset()
	if from >= total {
		return listing.Page[T]{Items: []T{}, Total: total}, nil
	}
	to := min(from+q.Limit(), total)
	return listing.Page[T]{Items: slices.Clone(m.rows[from:to]), Total: total}, nil
}

func (m *memoryRepo[T]) DeleteMany(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, slices.Clone(ids))
	var n int64
	m.rows = slices.DeleteFunc(m.rows, func(row T) bool {
		if m.protected != nil && m.protected(row) {
			return false
		}
		if slices.Contains(ids, m.key(row)) {
			n++
			return true
		}
		return false
	})
	return n, nil
}

func (m *memoryRepo[T]) lastQuery() listing.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[len(m.queries)-1]
}

func (m *memoryRepo[T]) queryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

type fakeAgents struct {
	*memoryRepo[domain.Agent]
	touched []string
}

func newFakeAgents(agents ...domain.Agent) *fakeAgents {
	return &fakeAgents{memoryRepo: &memoryRepo[domain.Agent]{
		rows:      agents,
		key:       func(a domain.Agent) string { return a.ID },
		protected: domain.Agent.Protected,
	}}
}

func (f *fakeAgents) Create(_ context.Context, agent *domain.Agent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	agent.ID = fmt.Sprintf("agent-%d", len(f.rows)+1)
	f.rows = append(f.rows, *agent)
	return nil
}

func (f *fakeAgents) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgents) GetByEmail(_ context.Context, email string) (*domain.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgents) TouchLogin(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	if id == "" {
		return errors.New("no id")
	}
	return nil
}

func tickets(n int) *memoryRepo[domain.Ticket] {
	rows := make([]domain.Ticket, n)
	for i := range rows {
		rows[i] = domain.Ticket{
			ID:          fmt.Sprintf("t-%02d", i+1),
			ExternalKey: fmt.Sprintf("HD-%d", 100+i),
			Title:       fmt.Sprintf("Ticket %d", i+1),
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityMedium,
		}
	}
	return &memoryRepo[domain.Ticket]{rows: rows, key: func(t domain.Ticket) string { return t.ID }}
}

// agents returns n agents; the first one is an administrator.
func agents(n int) []domain.Agent {
	rows := make([]domain.Agent, n)
	for i := range rows {
		role := domain.AgentRoleAgent
		if i == 0 {
			role = domain.AgentRoleAdmin
		}
		rows[i] = domain.Agent{
			ID:     fmt.Sprintf("a-%02d", i+1),
			Name:   fmt.Sprintf("Agent %02d", i+1),
			Email:  fmt.Sprintf("agent%02d@example.com", i+1),
			Role:   role,
			Active: true,
		}
	}
	return rows
}

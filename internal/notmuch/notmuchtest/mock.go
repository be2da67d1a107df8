// Package notmuchtest provides a mock Index implementation for UI tests.
package notmuchtest

import (
	"context"
	"fmt"

	"github.com/notmuch-tui/nmtui/internal/notmuch"
)

// MockIndex implements notmuch.Index with canned data. Field values are
// returned directly; the optional Func hooks override per-call behavior.
type MockIndex struct {
	SearchRows []notmuch.SearchRow
	Message    *notmuch.Message
	Parts      map[int][]byte

	SearchFunc      func(ctx context.Context, query string, limit int) ([]notmuch.SearchRow, error)
	ShowFunc        func(ctx context.Context, idTerm string) (*notmuch.Message, error)
	PartContentFunc func(ctx context.Context, idTerm string, partID int) ([]byte, error)

	// Call records, for asserting on issued queries and limits.
	SearchCalls []SearchCall
}

// SearchCall records one Search invocation.
type SearchCall struct {
	Query string
	Limit int
}

var _ notmuch.Index = (*MockIndex)(nil)

// Search implements notmuch.Index. Canned rows are truncated to limit so
// infinite-scroll tests can model a partially loaded result set.
func (m *MockIndex) Search(ctx context.Context, query string, limit int) ([]notmuch.SearchRow, error) {
	m.SearchCalls = append(m.SearchCalls, SearchCall{Query: query, Limit: limit})
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	rows := m.SearchRows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Show implements notmuch.Index.
func (m *MockIndex) Show(ctx context.Context, idTerm string) (*notmuch.Message, error) {
	if m.ShowFunc != nil {
		return m.ShowFunc(ctx, idTerm)
	}
	if m.Message == nil {
		return nil, fmt.Errorf("no message for %s", idTerm)
	}
	return m.Message, nil
}

// PartContent implements notmuch.Index.
func (m *MockIndex) PartContent(ctx context.Context, idTerm string, partID int) ([]byte, error) {
	if m.PartContentFunc != nil {
		return m.PartContentFunc(ctx, idTerm, partID)
	}
	content, ok := m.Parts[partID]
	if !ok {
		return nil, fmt.Errorf("no content for part %d", partID)
	}
	return content, nil
}

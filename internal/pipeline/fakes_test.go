package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// fakeModel scripts the language-model backend. Validation replies come from
// validateResp/validateErr; structured replies are consumed in order.
type fakeModel struct {
	mu sync.Mutex

	validateResp string
	validateErr  error

	structured []structuredReply

	validateCalls   int
	structuredCalls int
	systemPrompts   []string
}

type structuredReply struct {
	resp string
	err  error
}

func (m *fakeModel) GenerateWithSystem(_ context.Context, system, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validateCalls++
	m.systemPrompts = append(m.systemPrompts, system)
	return m.validateResp, m.validateErr
}

func (m *fakeModel) GenerateStructured(_ context.Context, system, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemPrompts = append(m.systemPrompts, system)
	if m.structuredCalls >= len(m.structured) {
		m.structuredCalls++
		return `{}`, nil
	}
	reply := m.structured[m.structuredCalls]
	m.structuredCalls++
	return reply.resp, reply.err
}

// fakeSearcher dispatches each query through fn.
type fakeSearcher struct {
	fn func(ctx context.Context, query string) ([]models.RawResult, error)
}

func (s *fakeSearcher) Search(ctx context.Context, query string) ([]models.RawResult, error) {
	return s.fn(ctx, query)
}

// oneResultPerQuery returns a single raw result named after the query.
func oneResultPerQuery(_ context.Context, query string) ([]models.RawResult, error) {
	return []models.RawResult{{
		Title:   "result for " + query,
		URL:     "https://example.com/" + query,
		Content: "snippet",
		Score:   0.9,
	}}, nil
}

// fakeStore records inserted run records.
type fakeStore struct {
	mu       sync.Mutex
	inserted []models.SearchRecord
	err      error
}

func (s *fakeStore) InsertSearch(_ context.Context, rec models.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *fakeStore) records() []models.SearchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SearchRecord(nil), s.inserted...)
}

func newTestPipeline(t *testing.T, model *fakeModel, searcher *fakeSearcher, store *fakeStore, opts Options) *Pipeline {
	t.Helper()
	if searcher == nil {
		searcher = &fakeSearcher{fn: oneResultPerQuery}
	}
	if store == nil {
		store = &fakeStore{}
	}
	logger := slog.New(slog.DiscardHandler)
	p, err := New(model, searcher, store, opts, logger, nil)
	require.NoError(t, err)
	return p
}

const twoQueriesJSON = `{"queries": ["comedy shows chicago 2026-09-05", "chicago stand-up weekend"]}`

const oneEventJSON = `{"events": [{"title": "Laugh Factory Showcase", "date": "2026-09-05",
	"location": "Laugh Factory, Chicago", "description": "Stand-up showcase",
	"url": "https://example.com/laugh", "score": 8.5}]}`

const emptyEventsJSON = `{"events": []}`

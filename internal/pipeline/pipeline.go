// Package pipeline implements the event-finding workflow: validate the
// query, generate search queries, fetch results concurrently, extract
// structured events, and persist the outcome. A bounded retry loop broadens
// the search when extraction comes back empty.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// LanguageModel is the language-model capability the stages delegate to.
type LanguageModel interface {
	// GenerateWithSystem produces free text from a system and user prompt.
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateStructured produces output meant to be parsed as JSON.
	GenerateStructured(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Searcher is the web-search capability, invoked once per generated query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.RawResult, error)
}

// RecordStore is the persistence capability for run outcomes.
type RecordStore interface {
	InsertSearch(ctx context.Context, rec models.SearchRecord) error
}

// Options configures pipeline behavior.
type Options struct {
	// MaxRetries bounds how many extra rewrite/search/extract passes run
	// after an empty first extraction.
	MaxRetries int

	// NumQueries is how many search queries the rewriter asks for.
	NumQueries int
}

// Result is the caller-visible outcome of one run.
type Result struct {
	SearchID    string         `json:"search_id,omitempty"`
	QueryStatus QueryStatus    `json:"query_status"`
	Events      []models.Event `json:"events"`
	Retries     int            `json:"-"`
}

// Pipeline wires the five stages together. Safe for concurrent runs: each
// Run owns its own state, while the backend clients are shared.
type Pipeline struct {
	model      LanguageModel
	searcher   Searcher
	store      RecordStore
	maxRetries int
	numQueries int
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// New constructs a pipeline. Missing backend clients are a construction
// failure, the one error class that is never recovered locally.
func New(model LanguageModel, searcher Searcher, store RecordStore, opts Options, logger *slog.Logger, collector *metrics.Collector) (*Pipeline, error) {
	if model == nil {
		return nil, fmt.Errorf("language model client required")
	}
	if searcher == nil {
		return nil, fmt.Errorf("search client required")
	}
	if store == nil {
		return nil, fmt.Errorf("record store required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.NumQueries <= 0 {
		opts.NumQueries = 3
	}

	return &Pipeline{
		model:      model,
		searcher:   searcher,
		store:      store,
		maxRetries: opts.MaxRetries,
		numQueries: opts.NumQueries,
		logger:     logger,
		metrics:    collector,
	}, nil
}

// Metrics returns the collector fed by this pipeline.
func (p *Pipeline) Metrics() *metrics.Collector {
	return p.metrics
}

// Run executes one full pipeline pass for a user query, synchronously:
// validation through persistence. An invalid query terminates immediately
// with no persistence; once extraction has run, the outcome is always
// persisted, whether or not events were found.
func (p *Pipeline) Run(ctx context.Context, userQuery, currentDate string) (Result, error) {
	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpRun, time.Since(start)) }()

	state := State{
		UserQuery:   userQuery,
		CurrentDate: currentDate,
	}

	state.QueryStatus = p.validate(ctx, state)
	if state.QueryStatus != StatusValid {
		return Result{
			QueryStatus: state.QueryStatus,
			Events:      []models.Event{},
		}, nil
	}

	for {
		state.SearchQueries, state.RetryCount = p.rewrite(ctx, state)

		raw, err := p.fetch(ctx, state.SearchQueries)
		if err != nil {
			return Result{}, err
		}
		state.RawResults = raw

		state.Events = p.extract(ctx, state)

		decision := checkResults(state.Events, state.RetryCount, p.maxRetries)
		if decision != DecisionRetry {
			p.logger.Info("run decided", "decision", string(decision),
				"events", len(state.Events), "attempts", state.RetryCount)
			break
		}
		p.logger.Info("no events found, retrying with broader queries",
			"attempt", state.RetryCount)
	}

	state.SearchID = p.persist(ctx, state)

	events := state.Events
	if events == nil {
		events = []models.Event{}
	}
	return Result{
		SearchID:    state.SearchID,
		QueryStatus: state.QueryStatus,
		Events:      events,
		Retries:     state.RetryCount,
	}, nil
}

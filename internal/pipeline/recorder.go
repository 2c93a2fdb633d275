package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// persist writes the run outcome to the document store under a freshly
// generated identifier. The identifier is always returned; a failed write is
// logged and swallowed, since losing the audit record must not fail a
// request that already has its answer.
func (p *Pipeline) persist(ctx context.Context, state State) string {
	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpPersist, time.Since(start)) }()

	searchID := uuid.NewString()

	events := state.Events
	if events == nil {
		events = []models.Event{}
	}

	rec := models.SearchRecord{
		ID:              searchID,
		UserQuery:       state.UserQuery,
		Timestamp:       time.Now().UTC(),
		DateContext:     state.CurrentDate,
		Events:          events,
		RawResultsCount: len(state.RawResults),
		RawResults:      state.RawResults,
		Status:          models.RecordStatusSuccess,
	}

	if err := p.store.InsertSearch(ctx, rec); err != nil {
		p.logger.Error("failed to persist search record", "search_id", searchID, "error", err)
	} else {
		p.logger.Info("saved search record", "search_id", searchID, "events", len(events))
	}

	return searchID
}

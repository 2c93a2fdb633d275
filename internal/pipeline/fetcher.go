package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// fetch runs every generated query against the search backend concurrently
// and merges the results in query order. A failed query is logged and
// skipped; it never affects its siblings. When every query fails
// individually the merged slice is empty, not an error, and the retry
// decision handles it. Only run cancellation propagates as an error.
func (p *Pipeline) fetch(ctx context.Context, queries []string) ([]models.RawResult, error) {
	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpSearch, time.Since(start)) }()

	p.logger.Info("searching", "queries", len(queries))

	// Fan-out: one goroutine per query, results land in indexed slots so the
	// merge preserves query order.
	perQuery := make([][]models.RawResult, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			var results []models.RawResult
			var err error
			// OpSearch covers the whole fan-out; OpQuery times each query
			p.metrics.Observe(metrics.OpQuery, func() {
				results, err = p.searcher.Search(ctx, q)
			})
			if err != nil {
				p.logger.Warn("search query failed", "query", q, "error", err)
				return
			}
			for j := range results {
				results[j].QueryContext = q
			}
			perQuery[i] = results
		}(i, q)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search fan-out aborted: %w", err)
	}

	merged := make([]models.RawResult, 0)
	for _, results := range perQuery {
		merged = append(merged, results...)
	}

	p.logger.Info("search complete", "raw_results", len(merged))
	return merged, nil
}

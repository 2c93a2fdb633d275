package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/llm"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
)

const rewriterBroadenPrompt = `
IMPORTANT: Your previous queries returned ZERO results.
Generate NEW queries that are BROADER and less specific.
- Remove specific venue names.
- Widen date ranges.
- Prefer general terms like "events near me" or "city calendar".
- Search for generic events in the specified location and date range.
Ensure the new queries still relate to the user's original intent.`

type queryList struct {
	Queries []string `json:"queries"`
}

// rewrite turns the user query into concrete search queries and increments
// the retry count by exactly one. On retries the instructions are broadened,
// since the controller only routes back here after an empty extraction.
// Backend failure falls back to the raw user query so the run can proceed.
func (p *Pipeline) rewrite(ctx context.Context, state State) ([]string, int) {
	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpRewrite, time.Since(start)) }()

	p.logger.Info("rewriting query", "attempt", state.RetryCount+1)

	system := fmt.Sprintf(`You are an expert event researcher. Current Date: %s.
Generate %d targeted search queries for the user's request.
Resolve relative dates (e.g., "this weekend") to specific YYYY-MM-DD dates.
Respond with JSON: {"queries": ["...", "..."]}`,
		state.CurrentDate, p.numQueries)

	if state.RetryCount > 0 {
		system += rewriterBroadenPrompt
	}

	resp, err := p.model.GenerateStructured(ctx, system, state.UserQuery)
	if err != nil {
		p.logger.Warn("query generation failed, falling back to raw query", "error", err)
		return []string{state.UserQuery}, state.RetryCount + 1
	}

	var out queryList
	if err := json.Unmarshal([]byte(llm.ExtractJSONBlock(resp)), &out); err != nil || len(out.Queries) == 0 {
		p.logger.Warn("malformed query list, falling back to raw query", "error", err)
		return []string{state.UserQuery}, state.RetryCount + 1
	}

	p.logger.Info("generated search queries", "count", len(out.Queries))
	return out.Queries, state.RetryCount + 1
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/llm"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

type eventList struct {
	Events []models.Event `json:"events"`
}

// extract condenses the raw search snippets into deduplicated structured
// events. An empty input short-circuits without invoking the backend; any
// backend error yields an empty list and the run continues to the retry
// decision.
func (p *Pipeline) extract(ctx context.Context, state State) []models.Event {
	if len(state.RawResults) == 0 {
		p.logger.Info("no raw results, skipping extraction")
		return []models.Event{}
	}

	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpExtract, time.Since(start)) }()

	p.logger.Info("extracting events", "snippets", len(state.RawResults))

	var sb strings.Builder
	for i, r := range state.RawResults {
		fmt.Fprintf(&sb, "Source %d (%s):\nTitle: %s\nContent: %s\n\n",
			i+1, r.URL, r.Title, r.Content)
	}

	system := fmt.Sprintf(`You are an expert data extraction assistant.

Context:
- Current Date: %s
- User Query: %s

Your Goal:
Extract a list of unique events from the provided search results.

Guidelines:
1. FOCUS on events that match the user's specific query (location, topic, date).
2. DEDUPLICATE: If multiple sources mention the same event, combine the info into one entry.
3. RESOLVE DATES: Convert "tonight" or "this Friday" to actual dates (YYYY-MM-DD) based on Current Date.
4. IGNORE: General articles, "top 10" lists without specific dates, or events far in the past.
5. If no relevant events are found, return an empty list.

Respond with JSON: {"events": [{"title": "...", "date": "...", "location": "...", "description": "...", "url": "...", "score": 8.5}]}`,
		state.CurrentDate, state.UserQuery)

	resp, err := p.model.GenerateStructured(ctx, system, "Here are the search results:\n\n"+sb.String())
	if err != nil {
		p.logger.Warn("event extraction failed", "error", err)
		return []models.Event{}
	}

	var out eventList
	if err := json.Unmarshal([]byte(llm.ExtractJSONBlock(resp)), &out); err != nil {
		p.logger.Warn("malformed event list", "error", err)
		return []models.Event{}
	}
	if out.Events == nil {
		out.Events = []models.Event{}
	}

	p.logger.Info("extraction complete", "events", len(out.Events))
	return out.Events
}

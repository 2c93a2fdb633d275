package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/whatstheplan/whatstheplan-go/internal/llm"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
)

const validatorSystemPrompt = `You are a strict query validator. Your task is to determine if a user query ` +
	`is a request for finding a real-world event (like a concert, festival, show, ` +
	`or conference) and includes a relevant location (like a city or country). ` +
	`Respond with 'valid' if the query is about finding events somewhere, else respond with 'invalid'.`

// validate classifies the user query before any expensive work happens.
// Validation is a cost-saving gate, not a correctness one: if the backend
// call itself fails, the run proceeds as valid.
func (p *Pipeline) validate(ctx context.Context, state State) QueryStatus {
	start := time.Now()
	defer func() { p.metrics.Record(metrics.OpValidate, time.Since(start)) }()

	p.logger.Info("validating query", "query", truncate(state.UserQuery, 50))

	resp, err := p.model.GenerateWithSystem(ctx, validatorSystemPrompt, "Query: "+state.UserQuery)
	if err != nil {
		if errors.Is(err, llm.ErrFatalAPI) {
			p.logger.Error("query validation backend unavailable, failing open", "error", err)
		} else {
			p.logger.Warn("query validation failed, failing open", "error", err)
		}
		return StatusValid
	}

	if strings.Contains(strings.ToLower(resp), "invalid") {
		p.logger.Info("query rejected as invalid", "response", truncate(resp, 80))
		return StatusInvalid
	}
	return StatusValid
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

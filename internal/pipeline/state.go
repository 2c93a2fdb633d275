package pipeline

import "github.com/whatstheplan/whatstheplan-go/internal/models"

// QueryStatus is the validator's verdict on the user query.
type QueryStatus string

const (
	StatusUnset   QueryStatus = ""
	StatusValid   QueryStatus = "valid"
	StatusInvalid QueryStatus = "invalid"
)

// State is the shared run record threaded through the pipeline stages. It is
// owned exclusively by the controller for the duration of one run; stages
// read from it and return partial updates which the controller merges.
//
// SearchQueries, RawResults and Events are fully overwritten on every pass;
// retries replace prior lists, they never accumulate.
type State struct {
	// Inputs, immutable once set
	UserQuery   string
	CurrentDate string

	// Internal routing
	QueryStatus   QueryStatus
	RetryCount    int
	SearchQueries []string

	// Outputs
	RawResults []models.RawResult
	Events     []models.Event
	SearchID   string
}

// Decision is the routing outcome after the extraction stage.
type Decision string

const (
	DecisionSuccess Decision = "success"
	DecisionRetry   Decision = "retry"
	DecisionGiveUp  Decision = "give_up"
)

// checkResults routes the run after extraction: success when any events were
// found, retry while attempts remain, give up otherwise. Each rewrite pass
// increments the retry count, so the loop terminates within maxRetries+1
// extraction passes.
func checkResults(events []models.Event, retryCount, maxRetries int) Decision {
	switch {
	case len(events) > 0:
		return DecisionSuccess
	case retryCount <= maxRetries:
		return DecisionRetry
	default:
		return DecisionGiveUp
	}
}

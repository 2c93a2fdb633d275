package llm

import (
	"errors"
	"strings"
)

// ErrFatalAPI marks backend errors that retrying will not fix: exhausted
// credits, quota limits, or rejected credentials. Callers can distinguish
// these from transient transport failures with errors.Is.
var ErrFatalAPI = errors.New("fatal API error")

// fatalPatterns are lowercase substrings that identify non-retryable
// provider errors.
var fatalPatterns = []string{
	"credit balance",
	"rate limit",
	"quota",
	"billing",
	"invalid api key",
	"authentication",
	"unauthorized",
	"401",
	"403",
}

func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range fatalPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// wrapFatalError wraps fatal API errors with ErrFatalAPI so they match
// errors.Is; other errors pass through unchanged.
func wrapFatalError(err error) error {
	if isFatalAPIError(err) {
		return errors.Join(ErrFatalAPI, err)
	}
	return err
}

// Package models defines the data types shared across the pipeline,
// the document store, and the HTTP API.
package models

import "time"

// Event is a single real-world event extracted from search results.
// Produced only by the extraction stage and immutable thereafter; serialized
// verbatim into the persisted record and the API response.
type Event struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Score       *float64 `json:"score,omitempty"`
}

// RawResult is one raw search snippet returned by the search backend.
// QueryContext records the generated query that produced it.
type RawResult struct {
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	QueryContext string  `json:"query_context,omitempty"`
}

// SearchRecord is the persisted outcome of one pipeline run.
type SearchRecord struct {
	ID              string      `json:"id"`
	UserQuery       string      `json:"user_query"`
	Timestamp       time.Time   `json:"timestamp"`
	DateContext     string      `json:"date_context"`
	Events          []Event     `json:"events"`
	RawResultsCount int         `json:"raw_results_count"`
	RawResults      []RawResult `json:"raw_results"`
	Status          string      `json:"status"`
}

// RecordStatusSuccess is the fixed status marker written with every
// persisted run, whether or not events were found.
const RecordStatusSuccess = "SUCCESS"

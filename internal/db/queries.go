package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
)

// SchemaSQL defines the search table. Records are schemaless; the timestamp
// index serves the history listing.
const SchemaSQL = `
DEFINE TABLE IF NOT EXISTS search SCHEMALESS;
DEFINE INDEX IF NOT EXISTS search_timestamp ON search FIELDS timestamp;
`

// InsertSearch persists one pipeline run record under its generated id.
func (c *Client) InsertSearch(ctx context.Context, rec models.SearchRecord) error {
	content := map[string]any{
		"user_query":        rec.UserQuery,
		"timestamp":         rec.Timestamp,
		"date_context":      rec.DateContext,
		"events":            rec.Events,
		"raw_results_count": rec.RawResultsCount,
		"raw_results":       rec.RawResults,
		"status":            rec.Status,
	}

	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE type::record("search", $id) CONTENT $content
	`, map[string]any{"id": rec.ID, "content": content})
	if err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	return nil
}

// GetSearch retrieves a persisted run record by id.
// Returns nil if not found.
func (c *Client) GetSearch(ctx context.Context, id string) (*models.SearchRecord, error) {
	results, err := surrealdb.Query[[]models.SearchRecord](ctx, c.db, `
		SELECT *, record::id(id) AS id FROM type::record("search", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get search: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// ListSearches returns the most recent run records, newest first.
func (c *Client) ListSearches(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	results, err := surrealdb.Query[[]models.SearchRecord](ctx, c.db, `
		SELECT *, record::id(id) AS id FROM search
		ORDER BY timestamp DESC
		LIMIT $limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.SearchRecord{}, nil
}

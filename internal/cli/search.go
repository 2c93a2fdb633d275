package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/whatstheplan/whatstheplan-go/internal/llm"
	"github.com/whatstheplan/whatstheplan-go/internal/pipeline"
	"github.com/whatstheplan/whatstheplan-go/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find events matching a natural-language query",
	Long: `Run the full event-finding pipeline for a query and print the results.

The query should describe an event type and a location, for example:
  whatstheplan search "comedy shows in Chicago this weekend"
  whatstheplan search "jazz concerts in Berlin next Friday"

Requires OPENAI_API_KEY (or another configured LLM provider) and
TAVILY_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	model, err := llm.NewModel(cfg)
	if err != nil {
		return fmt.Errorf("init LLM model: %w", err)
	}

	searcher, err := search.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyEndpoint, search.Params{
		MaxResults:    cfg.TavilyMaxResults,
		SearchDepth:   cfg.TavilySearchDepth,
		IncludeAnswer: cfg.TavilyIncludeAnswer,
	})
	if err != nil {
		return fmt.Errorf("init search client: %w", err)
	}

	p, err := pipeline.New(model, searcher, dbClient, pipeline.Options{
		MaxRetries: cfg.MaxRetries,
		NumQueries: cfg.RewriterNumQueries,
	}, nil, nil)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	result, err := p.Run(ctx, query, time.Now().Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	if result.QueryStatus == pipeline.StatusInvalid {
		fmt.Println("That doesn't look like an event search. Name an event type and a location.")
		return nil
	}

	if len(result.Events) == 0 {
		fmt.Printf("No events found (search %s).\n", result.SearchID)
		return nil
	}

	fmt.Printf("Found %d event(s) (search %s):\n\n", len(result.Events), result.SearchID)
	for _, e := range result.Events {
		fmt.Printf("  %s\n", e.Title)
		fmt.Printf("    %s · %s\n", e.Date, e.Location)
		if e.Description != "" {
			fmt.Printf("    %s\n", e.Description)
		}
		if e.URL != "" {
			fmt.Printf("    %s\n", e.URL)
		}
		fmt.Println()
	}

	return nil
}

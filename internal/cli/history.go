package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max records")
}

func runHistory(cmd *cobra.Command, args []string) error {
	records, err := dbClient.ListSearches(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list searches: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  events=%d  %q\n",
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.ID, len(rec.Events), rec.UserQuery)
	}
	return nil
}

var getCmd = &cobra.Command{
	Use:   "get <search-id>",
	Short: "Print one recorded search as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	rec, err := dbClient.GetSearch(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get search: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("search %s not found", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

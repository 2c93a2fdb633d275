package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
)

var statsServerURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print runtime statistics from a running server",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsServerURL, "server", "http://localhost:8000", "server base URL")
}

func runStats(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	return printStats(cmd.Context(), client, statsServerURL, os.Stdout)
}

// printStats fetches the server's stats snapshot and renders it as a
// per-operation table, sorted by operation name.
func printStats(ctx context.Context, client *http.Client, baseURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/stats", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch stats: unexpected status %d", resp.StatusCode)
	}

	var snap metrics.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return fmt.Errorf("parse stats: %w", err)
	}

	fmt.Fprintf(w, "Uptime: %.0fs\n\n", snap.UptimeSeconds)
	if len(snap.Operations) == 0 {
		fmt.Fprintln(w, "No operations recorded yet.")
		return nil
	}

	ops := make([]string, 0, len(snap.Operations))
	for op := range snap.Operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	fmt.Fprintf(w, "%-16s %8s %12s %10s %10s\n", "operation", "count", "avg_ms", "min_ms", "max_ms")
	for _, op := range ops {
		s := snap.Operations[op]
		fmt.Fprintf(w, "%-16s %8d %12.1f %10d %10d\n",
			op, s.Count, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/trustguard/internal/config"
	"github.com/nao1215/trustguard/internal/database"
)

// dateLayout is the timestamp layout of history listings.
const dateLayout = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url-or-fingerprint]",
		Short: "List or show saved analyses",
		Long: `History lists analyses saved with 'trustguard analyze --save'.

Without arguments the most recent analyses are listed. With a posting URL or
posting fingerprint only the analyses of that posting are listed. Use --id to
print a saved analysis as a full report.

Examples:
  # List the 20 most recent analyses
  trustguard history

  # List every analysis of one posting
  trustguard history https://careers.example.com/apply

  # Show a saved analysis as Markdown
  trustguard history --id 0b7c2a4e-5f1d-4a59-9c1e-3f2d8c7b6a51 --markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of analyses to list (0 for all)")
	cmd.Flags().String("id", "", "Show the saved analysis with this ID")
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadReportConfig(cmd)
	if err != nil {
		return err
	}

	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	db, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if id != "" {
		analysis, err := db.GetAnalysis(ctx, id)
		if err != nil {
			return err
		}
		_, err = newReportWriter(cfg, out, true).Write(analysis)
		return err
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	}
	return listHistory(ctx, out, db, key, limit)
}

// loadReportConfig loads the configuration and the report format flags.
func loadReportConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return nil, fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	return cfg, nil
}

// openHistory opens an existing history database.
func openHistory(cfg *config.Config) (*database.HistoryDB, error) {
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return nil, errors.New("no saved analyses yet (use 'trustguard analyze --save' to keep results)")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// listHistory prints a table of saved analyses.
func listHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, key string, limit int) error {
	var (
		summaries []database.AnalysisSummary
		err       error
	)
	if key != "" {
		summaries, err = db.GetHistory(ctx, key)
		if limit > 0 && len(summaries) > limit {
			summaries = summaries[:limit]
		}
	} else {
		summaries, err = db.ListAnalyses(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(summaries) == 0 {
		if key != "" {
			fmt.Fprintf(out, "No saved analyses found for %s\n", key)
		} else {
			fmt.Fprintln(out, "No saved analyses found.")
		}
		return nil
	}

	fmt.Fprintf(out, "Saved analyses (%d):\n\n", len(summaries))
	fmt.Fprintf(out, "  %-36s  %-19s  %-5s  %-8s  %-22s  %s\n", "ID", "Date", "Trust", "Combined", "Label", "URL")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 110))
	for _, s := range summaries {
		combined := "-"
		if s.CombinedTrustScore != nil {
			combined = strconv.Itoa(*s.CombinedTrustScore)
		}
		url := s.URL
		if url == "" {
			url = "(text " + shortHash(s.PostingHash) + ")"
		}
		fmt.Fprintf(out, "  %-36s  %-19s  %5d  %8s  %-22s  %s\n",
			s.ID, s.Timestamp.Local().Format(dateLayout), s.TrustScore, combined, s.Label, url)
	}

	fmt.Fprintln(out, "\nUse 'trustguard history --id <id>' to show a saved analysis.")
	fmt.Fprintln(out, "Use 'trustguard compare <id>' to compare it with the previous analysis of the same posting.")
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

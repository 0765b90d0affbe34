package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/trustguard/internal/database"
	"github.com/nao1215/trustguard/internal/model"
)

// NewCompareCmd creates the compare command.
// It compares a saved analysis with the previous analysis of the same posting.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [analysis-id]",
		Short: "Compare an analysis with the previous one of the same posting",
		Long: `Compare shows how the verdict on a posting changed between two analyses.

Analyses of the same posting are matched by URL, or by the posting fingerprint
when no URL was given. The comparison shows:
- The change in trust score
- Whether the label changed
- Reasons that appeared or disappeared

Examples:
  # Compare a saved analysis with the one before it
  trustguard compare 0b7c2a4e-5f1d-4a59-9c1e-3f2d8c7b6a51

  # Compare the latest two analyses of a posting URL
  trustguard compare --url https://careers.example.com/apply

  # Output the comparison as JSON
  trustguard compare --url https://careers.example.com/apply --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("url", "u", "", "Compare the latest two analyses of this posting URL or fingerprint")
	cmd.Flags().String("with", "", "Compare against this analysis ID instead of the previous one")
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	key, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}
	withID, err := cmd.Flags().GetString("with")
	if err != nil {
		return err
	}
	if (len(args) == 0) == (key == "") {
		return errors.New("specify either an analysis ID or --url")
	}

	cfg, err := loadReportConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	id := ""
	if len(args) == 1 {
		id = args[0]
	} else {
		history, err := db.GetHistory(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}
		if len(history) == 0 {
			return fmt.Errorf("no saved analyses found for %s", key)
		}
		id = history[0].ID
	}

	current, err := db.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}

	var previous *model.Analysis
	if withID != "" {
		previous, err = db.GetAnalysis(ctx, withID)
	} else {
		previous, err = db.GetPrevious(ctx, current)
	}
	if errors.Is(err, database.ErrAnalysisNotFound) && withID == "" {
		return errors.New("only one analysis of this posting is saved; analyze it again with --save to compare")
	}
	if err != nil {
		return err
	}

	_, err = newReportWriter(cfg, cmd.OutOrStdout(), true).WriteComparison(model.NewComparison(previous, current))
	return err
}

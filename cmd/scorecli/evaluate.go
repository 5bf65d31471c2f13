package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

var (
	evalMetrics []string
	evalJudges  []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file.csv>",
	Short: "Score a grouped-header CSV",
	Long: `Reads a CSV whose first line is a group label and whose second line
holds the field names, then prints one judgement per data row.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringSliceVarP(&evalMetrics, "metric", "m", nil, "Metric name (repeatable)")
	evaluateCmd.Flags().StringSliceVarP(&evalJudges, "judge", "j", nil, "Judge model id (repeatable)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	lines, err := sheet.DecodeLines(raw)
	if err != nil {
		return err
	}
	cols, rows, err := sheet.ParseGrouped(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	out := qa.ScoreRows(rows, cols, evalMetrics, evalJudges)
	return render(cmd.OutOrStdout(), format, map[string]any{"judgements": out})
}

package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/spf13/cobra"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/app"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/config"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/summarize"
)

var (
	sumColumns []string
	sumModels  []string
	sumStart   int
	sumEnd     int

	// newGenerator is replaced in tests.
	newGenerator = func(ctx context.Context) (generate.Generator, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		awsCfg, err := cfg.AWS(ctx)
		if err != nil {
			return nil, err
		}
		return app.Registry(ctx, cfg, bedrockruntime.NewFromConfig(awsCfg))
	}
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.csv>",
	Short: "Summarise rows of a flat CSV with one or more models",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringSliceVarP(&sumColumns, "column", "c", nil, "Target column (repeatable)")
	summarizeCmd.Flags().StringSliceVarP(&sumModels, "model", "m", nil, "Model id (repeatable)")
	summarizeCmd.Flags().IntVar(&sumStart, "start", 1, "First row, 1-based")
	summarizeCmd.Flags().IntVar(&sumEnd, "end", 0, "Last row, inclusive (0 means the end of the file)")
	_ = summarizeCmd.MarkFlagRequired("column")
	_ = summarizeCmd.MarkFlagRequired("model")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	t, err := sheet.ParseTable(raw)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	out, err := summarize.SummarizeRows(ctx, t, sumColumns, sumStart, sumEnd, sumModels, gen)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, map[string]any{"summaries": out})
}

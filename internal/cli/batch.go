package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmishin/deckforge/internal/pipeline"
	"github.com/nmishin/deckforge/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Generate teasers for every dossier in a directory",
	Long: `Batch runs the full pipeline over every markdown one-pager in a
directory, processing companies in parallel with a configurable worker
count. Each company gets its own artifact directory.

Example:
  deckforge batch ./dossiers
  deckforge batch ./dossiers --concurrency 8 --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./deckforge-output", "output directory for artifacts")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noScrape, "no-scrape", false, "skip website scraping")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable the teaser footer")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for polish and classification (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildRunConfig()
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.Workers
	}
	log := newLogger(cfg)

	fmt.Fprintf(os.Stderr, "Batch: %s (%d workers, output %s)\n\n", dir, concurrency, cfg.Output.Dir)

	p := pipeline.New(cfg, log)
	processor := worker.NewBatchProcessor(p, cfg.Output.Dir, concurrency)

	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	var assembled, halted, failed int
	for _, r := range results {
		name := filepath.Base(r.Path)
		switch {
		case r.Error != nil:
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", name, r.Error)
		case r.Result.Halted():
			halted++
			fmt.Fprintf(os.Stderr, "  ✗ %s: halted at the structured-data gate\n", name)
		default:
			assembled++
			flag := ""
			if r.Result.NeedsManualReview || r.Result.NeedsDomainReview {
				flag = " (needs review)"
			}
			fmt.Fprintf(os.Stderr, "  ✓ %s: %.1f%% verified%s\n",
				name, r.Result.Summary.VerificationRate*100, flag)
		}
	}

	fmt.Fprintf(os.Stderr, "\n%d assembled, %d halted, %d failed of %d\n",
		assembled, halted, failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(results))
	}
	return nil
}

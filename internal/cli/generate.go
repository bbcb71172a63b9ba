package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmishin/deckforge/internal/model"
	"github.com/nmishin/deckforge/internal/pipeline"
)

var (
	outputDir   string
	runTimeout  time.Duration
	userAgent   string
	noScrape    bool
	noCache     bool
	noFooter    bool
	llmProvider string
	llmModel    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <dossier.md>",
	Short: "Generate a verified teaser from a company one-pager",
	Long: `Generate runs the full pipeline on a single one-pager:
- Classify the company's industry domain
- Extract financials, shareholders and prose sections
- Scrape the company website for supporting evidence
- Write the three teaser slides and chart data
- Verify every numeric claim against its sources

Example:
  deckforge generate dossiers/acme.md
  deckforge generate dossiers/acme.md --output-dir ./out --no-scrape
  deckforge generate dossiers/acme.md --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&outputDir, "output-dir", "./deckforge-output", "output directory for artifacts")
	generateCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")
	generateCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	generateCmd.Flags().BoolVar(&noScrape, "no-scrape", false, "skip website scraping")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache")
	generateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable the teaser footer")
	generateCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for polish and classification (openai, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildRunConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dossier: %w", err)
	}

	p := pipeline.New(cfg, log)
	result, err := p.Run(ctx, string(data), cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printResult(result)
	if result.Halted() {
		return fmt.Errorf("run halted at the structured-data gate")
	}
	return nil
}

// buildRunConfig layers generate's flags over the loaded config.
func buildRunConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Output.Dir = outputDir
	cfg.Output.IncludeFooter = !noFooter
	cfg.Scrape.Enabled = cfg.Scrape.Enabled && !noScrape
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	if cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return cfg, nil
}

func printResult(result *model.RunResult) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Company:      %s\n", result.Company)
	fmt.Fprintf(os.Stderr, "  State:        %s\n", result.State)
	fmt.Fprintf(os.Stderr, "  Domain:       %s (%.2f)\n", result.Classification.Domain, result.Classification.Confidence)
	if result.Halted() {
		for _, d := range result.Decisions {
			if d.Outcome == model.GateHalt {
				fmt.Fprintf(os.Stderr, "  Halted:       %s\n", d.Reason)
			}
		}
		return
	}
	fmt.Fprintf(os.Stderr, "  Verification: %.1f%% (%d claims)\n",
		result.Summary.VerificationRate*100, len(result.Summary.Claims))
	if result.NeedsManualReview {
		fmt.Fprintf(os.Stderr, "  ⚠ Needs manual review: verification below threshold\n")
	}
	if result.NeedsDomainReview {
		fmt.Fprintf(os.Stderr, "  ⚠ Needs domain review: low classification confidence\n")
	}
	if verbose {
		for _, d := range result.Decisions {
			fmt.Fprintf(os.Stderr, "  Gate %-27s %s", d.Gate, d.Outcome)
			if d.Reason != "" {
				fmt.Fprintf(os.Stderr, " (%s)", d.Reason)
			}
			fmt.Fprintln(os.Stderr)
		}
	}
	for _, a := range result.Artifacts {
		fmt.Fprintf(os.Stderr, "  Wrote:        %s\n", a)
	}
	fmt.Fprintf(os.Stderr, "\n")
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmishin/deckforge/internal/model"
	"github.com/nmishin/deckforge/internal/pipeline"
	"github.com/nmishin/deckforge/internal/verify"
)

var auditJSON bool

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <Summary.json>",
	Short: "Re-render the citation report of a past run",
	Long: `Audit loads the claim summary persisted by a run and re-renders the
full citation report from it. Because the report carries no wall-clock
state, auditing the same summary always yields the same bytes.

Example:
  deckforge audit ./deckforge-output/Acme-20260314-100000/Summary.json
  deckforge audit Summary.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "emit the report as JSON instead of markdown")
}

func runAudit(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}

	var summary model.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("parse summary: %w", err)
	}

	ledger := verify.LedgerFromSummary(summary)
	report := ledger.Finalize()

	renderer := pipeline.NewRenderer(false)
	if auditJSON {
		out, err := renderer.RenderAuditJSON(report)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Print(renderer.RenderAuditMarkdown(report))
	return nil
}

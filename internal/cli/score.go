package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
)

// scoreCommand creates the score command: re-grade a stored layout file.
func (c *CLI) scoreCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score [layout.json]",
		Short: "Score a packed layout",
		Long: `Score a packed layout.

Layout files embed the grid config that produced them, so a stored layout can
be re-scored without the original sections. Reports space utilization, gap
count, and column balance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quality report as JSON")
	return cmd
}

func runScore(input string, asJSON bool) error {
	result, err := grid.ReadResultFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	quality := score.Score(result, result.Config)

	if asJSON {
		data, err := json.MarshalIndent(quality, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printSuccess("Scored %d positions", len(result.Positions))
	printKeyValue("utilization", fmt.Sprintf("%.1f%%", quality.UtilizationPercent))
	printKeyValue("gaps", fmt.Sprintf("%d", quality.GapCount))
	printKeyValue("balance", fmt.Sprintf("%.1f", quality.BalanceScore))
	printKeyValue("height", fmt.Sprintf("%.0fpx", result.TotalHeight))
	printKeyValue("columns", fmt.Sprintf("%d", result.Config.TotalColumns))
	if result.Strategy != "" {
		printKeyValue("strategy", result.Strategy)
	}
	for _, note := range result.Conflicts {
		printWarning("section %s: %s", note.SectionID, note.Message)
	}
	return nil
}

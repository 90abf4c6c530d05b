package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/render"
)

// packCommand creates the pack command: estimate, pack, and score a sections
// file.
func (c *CLI) packCommand() *cobra.Command {
	var (
		output  string
		svgPath string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "pack [sections.json]",
		Short: "Pack card sections into a grid layout",
		Long: `Pack card sections into a grid layout.

The pack command reads a sections file (content signals plus optional layout
overrides), estimates each section's height, packs everything into a
responsive column grid with the selected strategy, and scores the result.

The layout is written next to the input as <input>.layout.json unless -o is
given. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd.Context(), args[0], opts, output, svgPath, noCache)
		},
	}

	addGeometryFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output layout file (default <input>.layout.json)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write a diagnostic SVG to this path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and repack")
	cmd.Flags().BoolVar(&opts.NoScore, "no-score", false, "skip the quality score")

	return cmd
}

// runPack loads the sections, runs the pipeline, and writes the outputs.
func (c *CLI) runPack(ctx context.Context, input string, opts pipeline.Options, output, svgPath string, noCache bool) error {
	inputs, err := pipeline.ReadSectionsFile(input)
	if err != nil {
		return fmt.Errorf("load sections %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %d sections...", len(inputs)))
	spinner.Start()

	result, err := runner.Execute(ctx, inputs, opts)
	if err != nil {
		spinner.StopWithError("Packing failed")
		return fmt.Errorf("pack: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = layoutPathFor(input)
	}
	if err := grid.WriteResultFile(result.Layout, output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	printSuccess("Packed %d sections with %s", result.Stats.SectionCount, result.Layout.Strategy)
	printStats(result.Stats.SectionCount, result.Stats.Columns, result.CacheInfo.PackHit)
	if !opts.NoScore {
		printDetail("utilization %.1f%% · gaps %d · balance %.1f",
			result.Quality.UtilizationPercent, result.Quality.GapCount, result.Quality.BalanceScore)
	}
	for _, note := range result.Layout.Conflicts {
		printWarning("section %s: %s", note.SectionID, note.Message)
	}
	printFile(output)

	if svgPath != "" {
		svg := render.RenderSVG(result.Layout, render.WithColumnGuides())
		if err := os.WriteFile(svgPath, svg, 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		printFile(svgPath)
	}

	printNextStep("Re-score later", fmt.Sprintf("osicards score %s", output))
	return nil
}

// layoutPathFor derives the default output path from the input path:
// sections.json becomes sections.layout.json.
func layoutPathFor(input string) string {
	base := strings.TrimSuffix(input, ".json")
	return base + ".layout.json"
}

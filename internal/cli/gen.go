package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/stream"
)

// genCommand creates the gen command: write a plausible random sections file
// for demos and testing.
func (c *CLI) genCommand() *cobra.Command {
	var (
		sections int
		seed     uint64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random sections fixture",
		Long: `Generate a random sections fixture.

Writes a sections.json with a plausible mix of card kinds, content volumes,
and priorities. The same seed produces the same mix (IDs are fresh UUIDs on
every run).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(sections, seed, output)
		},
	}

	cmd.Flags().IntVarP(&sections, "sections", "n", 8, "number of sections to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for the kind mix")
	cmd.Flags().StringVarP(&output, "output", "o", "sections.json", "output file")

	return cmd
}

func runGen(sections int, seed uint64, output string) error {
	if sections < 1 {
		return fmt.Errorf("need at least one section, got %d", sections)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	specs := stream.RandomSpecs(rng, sections)

	inputs := make([]pipeline.SectionInput, len(specs))
	for i, spec := range specs {
		inputs[i] = pipeline.SectionInput{
			ID:       spec.ID,
			Kind:     spec.Kind,
			Fields:   spec.Fields,
			Items:    spec.Items,
			HasChart: spec.HasChart,
			Priority: spec.Priority,
		}
	}

	if err := pipeline.WriteSectionsFile(inputs, output); err != nil {
		return fmt.Errorf("write sections: %w", err)
	}

	printSuccess("Generated %d sections", len(inputs))
	printFile(output)
	printNextStep("Pack them", fmt.Sprintf("osicards pack %s", output))
	return nil
}

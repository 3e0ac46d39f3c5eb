package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shikhar5647/sfiles/pkg/flowsheet"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
)

// demoSheet is a built-in example flowsheet.
type demoSheet struct {
	Name        string
	Description string
	Units       []flowsheet.Unit
	Streams     []flowsheet.Stream
}

// demoSheets are the bundled examples, mirroring typical PFD shapes: a
// linear train, a branched separation and a recycle loop.
var demoSheets = []demoSheet{
	{
		Name:        "reactor-train",
		Description: "Linear feed → reactor → separator → product train",
		Units: []flowsheet.Unit{
			{ID: "F-101", Kind: flowsheet.KindFeed},
			{ID: "R-101", Kind: flowsheet.KindReactor},
			{ID: "S-101", Kind: flowsheet.KindSeparator},
			{ID: "P-101", Kind: flowsheet.KindProduct},
		},
		Streams: []flowsheet.Stream{
			{Source: "F-101", Target: "R-101", Name: "S1"},
			{Source: "R-101", Target: "S-101", Name: "S2"},
			{Source: "S-101", Target: "P-101", Name: "S3"},
		},
	},
	{
		Name:        "splitter-branch",
		Description: "Splitter feeding two product trains",
		Units: []flowsheet.Unit{
			{ID: "F-201", Kind: flowsheet.KindFeed},
			{ID: "E-201", Kind: flowsheet.KindHeatExchanger},
			{ID: "SP-201", Kind: flowsheet.KindSplitter},
			{ID: "R-201", Kind: flowsheet.KindReactor},
			{ID: "P-201", Kind: flowsheet.KindProduct},
			{ID: "PU-201", Kind: flowsheet.KindPump},
			{ID: "P-202", Kind: flowsheet.KindProduct},
		},
		Streams: []flowsheet.Stream{
			{Source: "F-201", Target: "E-201", Name: "S1"},
			{Source: "E-201", Target: "SP-201", Name: "S2"},
			{Source: "SP-201", Target: "R-201", Name: "S3"},
			{Source: "SP-201", Target: "PU-201", Name: "S4"},
			{Source: "R-201", Target: "P-201", Name: "S5"},
			{Source: "PU-201", Target: "P-202", Name: "S6"},
		},
	},
	{
		Name:        "recycle-loop",
		Description: "Separator overhead recycled to the mixer",
		Units: []flowsheet.Unit{
			{ID: "F-301", Kind: flowsheet.KindFeed},
			{ID: "M-301", Kind: flowsheet.KindMixer},
			{ID: "R-301", Kind: flowsheet.KindReactor},
			{ID: "S-301", Kind: flowsheet.KindSeparator},
			{ID: "P-301", Kind: flowsheet.KindProduct},
			{ID: "C-301", Kind: flowsheet.KindCompressor},
		},
		Streams: []flowsheet.Stream{
			{Source: "F-301", Target: "M-301", Name: "S1"},
			{Source: "M-301", Target: "R-301", Name: "S2"},
			{Source: "R-301", Target: "S-301", Name: "S3"},
			{Source: "S-301", Target: "P-301", Name: "S4"},
			{Source: "S-301", Target: "C-301", Name: "S5"},
			{Source: "C-301", Target: "M-301", Name: "S6"},
		},
	},
}

// findDemo returns the demo with the given name.
func findDemo(name string) (demoSheet, bool) {
	for _, d := range demoSheets {
		if d.Name == name {
			return d, true
		}
	}
	return demoSheet{}, false
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		all        bool
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Encode bundled example flowsheets",
		Long: `Encode bundled example flowsheets.

Without arguments an interactive picker is shown. Pass a name to encode a
single example, or --all to process every example.

Available examples:
  reactor-train     linear feed → reactor → separator → product train
  splitter-branch   splitter feeding two product trains
  recycle-loop      separator overhead recycled to the mixer`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}

			switch {
			case all:
				return c.runAllDemos(cmd.Context(), formats)
			case len(args) == 1:
				d, ok := findDemo(args[0])
				if !ok {
					return fmt.Errorf("unknown example: %q (run 'sfiles demo' to pick one)", args[0])
				}
				return c.runDemo(cmd.Context(), d, formats)
			default:
				return c.runInteractiveDemo(cmd.Context(), formats)
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "process every example")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "also render: dot, svg, png (comma-separated)")

	return cmd
}

// runDemo encodes one example and prints its notation.
func (c *CLI) runDemo(ctx context.Context, d demoSheet, formats []string) error {
	fs, err := flowsheet.Build(d.Units, d.Streams)
	if err != nil {
		return fmt.Errorf("build example %s: %w", d.Name, err)
	}

	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, fs, pipeline.Options{
		Name:    d.Name,
		Formats: formats,
		Rankdir: c.Config.Rankdir,
		Logger:  c.Logger,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.Name, err)
	}

	fmt.Println(StyleTitle.Render(d.Name) + " " + StyleDim.Render(d.Description))
	printNotation(result.Notation)
	printStats(result.Stats.UnitCount, result.Stats.StreamCount, result.CacheInfo.EncodeHit)

	return writeArtifacts(result.Artifacts, formats, d.Name+".json", "")
}

// runAllDemos processes every example in order.
func (c *CLI) runAllDemos(ctx context.Context, formats []string) error {
	for _, d := range demoSheets {
		if err := c.runDemo(ctx, d, formats); err != nil {
			return err
		}
	}
	return nil
}

// runInteractiveDemo shows the bubbletea picker and encodes the selection.
func (c *CLI) runInteractiveDemo(ctx context.Context, formats []string) error {
	model := newDemoListModel(demoSheets)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("interactive picker: %w", err)
	}

	m, ok := final.(demoListModel)
	if !ok || m.Selected == nil {
		return nil // quit without selecting
	}
	return c.runDemo(ctx, *m.Selected, formats)
}

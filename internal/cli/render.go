package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sfilesio "github.com/shikhar5647/sfiles/pkg/io"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
)

// renderCommand creates the render command for drawing flowsheet diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		detailed   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render <flowsheet.json>",
		Short: "Render a flowsheet as a node-link diagram",
		Long: `Render a flowsheet as a node-link diagram.

Takes the same JSON input as 'encode' and produces DOT, SVG or PNG via
Graphviz. Rendering is purely diagnostic; it does not affect the notation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if formats == nil {
				formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			opts := pipeline.Options{
				Name:     baseName(args[0]),
				Formats:  formats,
				Detailed: detailed,
				Rankdir:  c.Config.Rankdir,
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (extension is added per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include kind and token info in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	fs, err := sfilesio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load flowsheet %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering flowsheet...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, fs, pipeline.SheetHash(fs), opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %s", opts.Name)
	printStats(fs.UnitCount(), fs.StreamCount(), cacheHit)
	return writeArtifacts(artifacts, opts.Formats, input, output)
}

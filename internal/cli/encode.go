package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	sfilesio "github.com/shikhar5647/sfiles/pkg/io"
	"github.com/shikhar5647/sfiles/pkg/pipeline"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		listing    bool
		detailed   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "encode <flowsheet.json>",
		Short: "Encode a flowsheet file as SFILES notation",
		Long: `Encode a flowsheet file as SFILES notation.

The input is a JSON file with "units" and "streams" arrays. Declaration
order matters: unit order decides traversal roots, stream order decides
which outgoing stream continues the main chain.

Examples:
  sfiles encode plant.json                    # print notation
  sfiles encode plant.json -o plant_sfiles.txt --listing
  sfiles encode plant.json -f svg,png         # also render diagrams`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if formats == nil {
				formats = c.Config.Formats
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			opts := pipeline.Options{
				Name:     baseName(args[0]),
				Formats:  formats,
				Detailed: detailed,
				Rankdir:  c.Config.Rankdir,
				Refresh:  refresh,
			}
			return c.runEncode(cmd.Context(), args[0], opts, output, listing, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write notation to file (stdout if empty)")
	cmd.Flags().BoolVar(&listing, "listing", false, "also write a unit/stream listing next to the output")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "render format(s): dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include kind and token info in render labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache reads")

	return cmd
}

// runEncode loads the flowsheet, runs the pipeline and writes the outputs.
func (c *CLI) runEncode(ctx context.Context, input string, opts pipeline.Options, output string, listing, noCache bool) error {
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

	spinner := newSpinner(ctx, "Encoding flowsheet...")
	spinner.Start()
	result, err := runner.Execute(ctx, fs, opts)
	if err != nil {
		spinner.StopWithError("Encoding failed")
		return fmt.Errorf("encode: %w", err)
	}
	spinner.Stop()

	if output == "" {
		printNotation(result.Notation)
	} else {
		if err := sfilesio.ExportNotation(output, opts.Name, result.Notation); err != nil {
			return err
		}
		printSuccess("Encoded %s", opts.Name)
		printFile(output)
	}
	printStats(result.Stats.UnitCount, result.Stats.StreamCount, result.CacheInfo.EncodeHit)

	if listing {
		path := listingPath(output, input)
		if err := sfilesio.ExportListing(path, opts.Name, fs); err != nil {
			return err
		}
		printFile(path)
	}

	return writeArtifacts(result.Artifacts, opts.Formats, input, output)
}

// listingPath derives the listing file path from the output (or input) path.
func listingPath(output, input string) string {
	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".txt"), ".json")
	return base + "_flowsheet.txt"
}

// writeArtifacts writes rendered artifacts next to the output (or input)
// path, one file per format.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 0 {
		return nil
	}
	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".txt"), ".json")

	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

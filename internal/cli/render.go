package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/assets"
	"github.com/matzehuels/moverboard/pkg/config"
	mvio "github.com/matzehuels/moverboard/pkg/io"
	"github.com/matzehuels/moverboard/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Zero values and unchanged flags fall back to the loaded config.
type renderOpts struct {
	output      string // directory, or a .zip path for a single archive
	formats     string // comma-separated: svg, png, pdf, json
	capacity    int
	background  string
	backend     string
	scale       float64
	concurrency int
	noCache     bool
	input       inputOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <input.json|input.xlsx>",
		Short: "Render a movers file into chart pages",
		Long: `Render validates the input, splits it into pages of at most seven records,
and writes one file per page and format, named movers_<title>_p<n>.<ext>.

With -o ending in .zip all pages are written into one archive with a folder
per format instead.`,
		Example: `  moverboard render movers.json -f svg,png -o out/
  moverboard render movers.xlsx --title-main "Sep 15" -o movers.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("optional-logo") {
				opts.input.optionalLogo = cfg.Assets.OptionalLogo
			}
			return c.runRender(cmd.Context(), args[0], cfg, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory or .zip file (default current directory)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.capacity, "capacity", 0, "records per page (default 7)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background image (URL, data URI or file)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "raster backend for png/pdf: native (default), rsvg")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "png pixel density (default 2)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "pages rendered in parallel (default 4)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the asset and artifact cache")
	opts.input.register(cmd)
	registerInputCompletion(cmd)

	return cmd
}

// pipelineOptions overlays changed flags on the config.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	popts := cfg.PipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("format") {
		formats, err := pipeline.ParseFormats(o.formats)
		if err != nil {
			return popts, err
		}
		popts.Formats = formats
	}
	if flags.Changed("capacity") {
		popts.Capacity = o.capacity
	}
	if flags.Changed("background") {
		popts.Background = o.background
	}
	if flags.Changed("backend") {
		popts.Backend = o.backend
	}
	if flags.Changed("scale") {
		popts.Scale = o.scale
	}
	if flags.Changed("concurrency") {
		popts.Concurrency = o.concurrency
	}
	return popts, nil
}

// runRender loads input, runs the pipeline and writes the pages.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, popts pipeline.Options, opts *renderOpts) error {
	req, err := loadRequest(ctx, input, opts.input)
	if err != nil {
		if reportInputError(err) {
			return fmt.Errorf("%s is not a valid movers file", input)
		}
		return err
	}
	c.Logger.Debug("loaded input", "path", input, "records", len(req.Records))

	cfg.Render.Scale = popts.Scale
	runner, err := c.newRunner(ctx, cfg, assets.Config{BaseDir: filepath.Dir(input)}, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d records", len(req.Records)))
	spinner.Start()
	result, err := runner.Execute(ctx, req, popts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d page(s) of %q", result.PageCount(), req.TitleSub))
	printStats(result.Stats, len(result.Formats))

	prog := newProgress(c.Logger)
	paths, err := writeOutputs(opts.output, req.TitleMain, result)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	prog.done("wrote output", "files", len(paths))

	if result.PageCount() > 1 {
		printNextStep("Inspect the pagination", "moverboard preview "+input)
	}
	return nil
}

// writeOutputs writes a zip when output ends in .zip, loose files otherwise.
func writeOutputs(output, titleMain string, result *pipeline.Result) ([]string, error) {
	if strings.EqualFold(filepath.Ext(output), ".zip") {
		if err := mvio.ExportArchive(output, titleMain, result.Formats, result); err != nil {
			return nil, fmt.Errorf("write archive: %w", err)
		}
		return []string{output}, nil
	}
	if output == "" {
		output = "."
	}
	return mvio.ExportPages(output, titleMain, result.Formats, result)
}

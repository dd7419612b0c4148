package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/chart/sink"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

// renderCommand creates the render command for generating chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "render [items.json|layout.json]",
		Short: "Render a chart to SVG or JSON",
		Long: `Render a chart to SVG or JSON.

The input is either an items.json file (labeled values, rendered through the
full layout pipeline) or a layout.json file produced by 'layout' (rendered
directly). Diverging bar charts (--chart diverging) require items input.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.ChartType, "chart", pipeline.ChartRadial, "chart type: radial (default), diverging")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed hover and click behavior in SVG output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached artifacts exist")
	addGeometryFlags(cmd, &opts)

	return cmd
}

// runRender loads the input, renders the requested formats, and writes the
// artifact files.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	artifacts, cacheHit, segments, err := c.renderInput(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(0, segments, cacheHit)

	return nil
}

// renderInput renders a layout file directly, or runs the full pipeline when
// the input holds items.
func (c *CLI) renderInput(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (map[string][]byte, bool, int, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, false, 0, fmt.Errorf("load input %s: %w", input, err)
	}

	if layout, err := sink.UnmarshalLayout(data); err == nil && len(layout.Segments) > 0 {
		if opts.ChartType != pipeline.ChartRadial {
			return nil, false, 0, fmt.Errorf("%s charts cannot be rendered from a layout file; pass items instead", opts.ChartType)
		}
		artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			return nil, false, 0, fmt.Errorf("render layout: %w", err)
		}
		return artifacts, cacheHit, len(layout.Segments), nil
	}

	items, err := chart.UnmarshalItems(data)
	if err != nil {
		return nil, false, 0, fmt.Errorf("parse input %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s chart...", opts.ChartType))
	spinner.Start()

	result, err := runner.Execute(ctx, items, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, 0, fmt.Errorf("render items: %w", err)
	}
	spinner.Stop()

	return result.Artifacts, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit, result.Stats.SegmentCount, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == pipeline.FormatSVG || ext == pipeline.FormatJSON {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

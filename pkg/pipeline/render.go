package pipeline

import (
	"github.com/wealthmap/wealthmap/pkg/chart/diverging"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/chart/sink"
)

// svgOptions converts render options to sink options.
func svgOptions(opts Options) []sink.SVGOption {
	var so []sink.SVGOption
	if opts.Title != "" {
		so = append(so, sink.WithTitle(opts.Title))
	}
	if opts.Interactive {
		so = append(so, sink.WithInteraction())
	}
	return so
}

// renderRadial renders a radial layout in every requested format.
func renderRadial(l radial.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(l, svgOptions(opts)...)
		case FormatJSON:
			data, err := sink.RenderJSON(l)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			if err := ValidateFormat(format); err != nil {
				return nil, err
			}
		}
	}
	return artifacts, nil
}

// renderDiverging renders a diverging bar layout in every requested format.
// JSON output is the layout's plain encoding since diverging layouts are not
// part of the interchange format.
func renderDiverging(l diverging.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderDivergingSVG(l, svgOptions(opts)...)
		case FormatJSON:
			data, err := marshalDiverging(l)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			if err := ValidateFormat(format); err != nil {
				return nil, err
			}
		}
	}
	return artifacts, nil
}

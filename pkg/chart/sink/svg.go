package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/wealthmap/wealthmap/pkg/chart/diverging"
	"github.com/wealthmap/wealthmap/pkg/chart/interaction"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
)

const (
	framePadding = 20.0
	titleHeight  = 36.0
	labelFont    = `'Helvetica Neue', Arial, sans-serif`

	dimmedOpacity = "0.35"
)

const segmentInteractionCSS = `
    .segment { transition: opacity 0.15s ease, stroke-width 0.15s ease; }
    .segment.highlight { stroke-width: 3; }
    .segment.dimmed { opacity: 0.35; }
    .segment-label { font-weight: normal; }
    .segment-label.highlight { font-weight: bold; }`

const segmentInteractionJS = `
    function emphasize(id) {
      document.querySelectorAll('.segment').forEach(s => {
        s.classList.toggle('highlight', s.dataset.segment === id);
        s.classList.toggle('dimmed', id !== null && s.dataset.segment !== id);
      });
      document.querySelectorAll('.segment-label').forEach(l => l.classList.toggle('highlight', l.dataset.segment === id));
    }
    document.querySelectorAll('.segment').forEach(el => {
      el.addEventListener('mouseenter', () => emphasize(el.dataset.segment));
      el.addEventListener('mouseleave', () => emphasize(null));
    });`

// SVGOption configures SVG rendering via [RenderSVG] and
// [RenderDivergingSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	state       interaction.State
	hasState    bool
	interactive bool
}

// WithTitle adds a title above the chart.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithState applies an interaction state: the emphasized segment is
// highlighted and the rest are dimmed.
func WithState(s interaction.State) SVGOption {
	return func(r *svgRenderer) { r.state = s; r.hasState = true }
}

// WithInteraction embeds hover highlighting CSS and script in the SVG for
// standalone viewing in a browser.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG renders a radial layout as an SVG document.
func RenderSVG(l radial.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	if l.IsEmpty() {
		return renderEmptySVG(r.title)
	}

	minX, minY, maxX, maxY := radialBounds(l)
	offsetY := 0.0
	if r.title != "" {
		offsetY = titleHeight
	}
	width := maxX - minX
	height := maxY - minY + offsetY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY-offsetY, width, height, width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family=%q font-size="18" font-weight="bold">%s</text>`+"\n",
			l.Config.CenterX, minY-offsetY+24, labelFont, html.EscapeString(r.title))
	}

	for _, s := range l.Segments {
		renderSegment(&buf, &r, s)
	}
	for _, s := range l.Segments {
		renderLeader(&buf, &r, s)
		renderLabel(&buf, &r, s)
	}

	if r.interactive {
		renderSegmentInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// emphasisAttrs returns the opacity and stroke width for a segment under
// the renderer's interaction state.
func (r *svgRenderer) emphasisAttrs(id string) (opacity string, strokeWidth string) {
	if !r.hasState {
		return "1", "1"
	}
	switch r.state.EmphasisFor(id) {
	case interaction.Dimmed:
		return dimmedOpacity, "1"
	case interaction.Emphasized:
		return "1", "3"
	default:
		return "1", "1"
	}
}

func renderSegment(buf *bytes.Buffer, r *svgRenderer, s radial.Segment) {
	opacity, strokeWidth := r.emphasisAttrs(s.ID)
	a := s.Arc

	if a.FullCircle {
		fmt.Fprintf(buf, `  <circle class="segment" data-segment=%q cx="%.2f" cy="%.2f" r="%.2f" fill=%q stroke="#ffffff" stroke-width=%q opacity=%q/>`+"\n",
			s.ID, a.CenterX, a.CenterY, a.Radius, s.Color, strokeWidth, opacity)
		return
	}

	largeArc := 0
	if a.LargeArc {
		largeArc = 1
	}
	path := fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		a.CenterX, a.CenterY, a.Start.X, a.Start.Y, a.Radius, a.Radius, largeArc, a.End.X, a.End.Y)
	fmt.Fprintf(buf, `  <path class="segment" data-segment=%q d=%q fill=%q stroke="#ffffff" stroke-width=%q opacity=%q/>`+"\n",
		s.ID, path, s.Color, strokeWidth, opacity)
}

func renderLeader(buf *bytes.Buffer, r *svgRenderer, s radial.Segment) {
	if len(s.Leader) == 0 {
		return
	}
	opacity, _ := r.emphasisAttrs(s.ID)
	var pts bytes.Buffer
	for i, p := range s.Leader {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <polyline points=%q fill="none" stroke="#999999" stroke-width="1" opacity=%q/>`+"\n",
		pts.String(), opacity)
}

func renderLabel(buf *bytes.Buffer, r *svgRenderer, s radial.Segment) {
	opacity, _ := r.emphasisAttrs(s.ID)
	anchor := "start"
	dx := 4.0
	if s.Side == radial.SideLeft {
		anchor = "end"
		dx = -4.0
	}
	text := fmt.Sprintf("%s %.1f%%", s.Label, s.Percentage)
	fmt.Fprintf(buf, `  <text class="segment-label" data-segment=%q x="%.2f" y="%.2f" dy="0.35em" text-anchor=%q font-family=%q font-size="12" fill="#333333" opacity=%q>%s</text>`+"\n",
		s.ID, s.LabelX+dx, s.AdjustedY, anchor, labelFont, opacity, html.EscapeString(text))
}

func renderSegmentInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", segmentInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", segmentInteractionJS)
}

// radialBounds computes the drawing extents of a radial layout: the circle
// itself plus every label and leader point, padded on all sides.
func radialBounds(l radial.Layout) (minX, minY, maxX, maxY float64) {
	cfg := l.Config
	minX = cfg.CenterX - cfg.Radius
	maxX = cfg.CenterX + cfg.Radius
	minY = cfg.CenterY - cfg.Radius
	maxY = cfg.CenterY + cfg.Radius

	include := func(x, y float64) {
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	for _, s := range l.Segments {
		include(s.Anchor.X, s.Anchor.Y)
		include(s.LabelX, s.AdjustedY)
		for _, p := range s.Leader {
			include(p.X, p.Y)
		}
		// Leave room for the label text beside its anchor point.
		if s.Side == radial.SideLeft {
			include(s.LabelX-120, s.AdjustedY)
		} else {
			include(s.LabelX+120, s.AdjustedY)
		}
	}
	return minX - framePadding, minY - framePadding, maxX + framePadding, maxY + framePadding
}

func renderEmptySVG(title string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 300" width="400" height="300">` + "\n")
	if title != "" {
		fmt.Fprintf(&buf, `  <text x="200" y="36" text-anchor="middle" font-family=%q font-size="18" font-weight="bold">%s</text>`+"\n",
			labelFont, html.EscapeString(title))
	}
	fmt.Fprintf(&buf, `  <text x="200" y="150" text-anchor="middle" font-family=%q font-size="14" fill="#999999">No data</text>`+"\n", labelFont)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderDivergingSVG renders a diverging bar layout as an SVG document.
func RenderDivergingSVG(l diverging.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	if l.IsEmpty() {
		return renderEmptySVG(r.title)
	}

	offsetY := 0.0
	if r.title != "" {
		offsetY = titleHeight
	}
	height := l.Height + offsetY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-offsetY, l.Width, height, l.Width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family=%q font-size="18" font-weight="bold">%s</text>`+"\n",
			l.Width/2, -offsetY+24, labelFont, html.EscapeString(r.title))
	}

	// Axis at the zero line.
	fmt.Fprintf(&buf, `  <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="#cccccc" stroke-width="1"/>`+"\n",
		l.AxisX, l.AxisX, l.Height)

	for _, b := range l.Bars {
		opacity, strokeWidth := r.emphasisAttrs(b.ID)
		fmt.Fprintf(&buf, `  <rect class="segment" data-segment=%q x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill=%q stroke="#ffffff" stroke-width=%q opacity=%q/>`+"\n",
			b.ID, b.X, b.Y, b.Width, b.Height, b.Color, strokeWidth, opacity)
	}
	for _, b := range l.Bars {
		opacity, _ := r.emphasisAttrs(b.ID)
		anchor := "start"
		if b.Side == diverging.SideLeft {
			anchor = "end"
		}
		text := fmt.Sprintf("%s %+.0f", b.Label, b.Value)
		fmt.Fprintf(&buf, `  <text class="segment-label" data-segment=%q x="%.2f" y="%.2f" dy="0.35em" text-anchor=%q font-family=%q font-size="12" fill="#333333" opacity=%q>%s</text>`+"\n",
			b.ID, b.LabelX, b.AdjustedY, anchor, labelFont, opacity, html.EscapeString(text))
	}

	if r.interactive {
		renderSegmentInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

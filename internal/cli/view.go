package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/chart/interaction"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/chart/sink"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

// viewCommand creates the view command for browsing a chart interactively.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		output string
		title  string
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "view [items.json|layout.json]",
		Short: "Browse chart segments interactively",
		Long: `Browse chart segments interactively.

The view command opens a terminal browser over the chart's segments. Moving
the cursor hovers a segment and selecting one emphasizes it, mirroring the
hover and click behavior of interactive SVG output. An SVG snapshot of the
current selection can be saved with 's'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Title = title
			return c.runView(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "chart.svg", "path for SVG snapshots saved from the browser")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	addGeometryFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, output string) error {
	layout, err := c.loadViewLayout(ctx, input, opts)
	if err != nil {
		return err
	}
	if len(layout.Segments) == 0 {
		printInfo("Nothing to view: the chart has no segments")
		return nil
	}

	model := newViewModel(layout, opts.Title, output)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	if m, ok := final.(viewModel); ok && m.saved {
		printSuccess("Snapshot saved")
		printFile(output)
	}
	return nil
}

// loadViewLayout reads a layout file directly, or computes the layout when
// the input holds items.
func (c *CLI) loadViewLayout(ctx context.Context, input string, opts pipeline.Options) (radial.Layout, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return radial.Layout{}, fmt.Errorf("load input %s: %w", input, err)
	}

	if layout, err := sink.UnmarshalLayout(data); err == nil && len(layout.Segments) > 0 {
		return layout, nil
	}

	items, err := chart.UnmarshalItems(data)
	if err != nil {
		return radial.Layout{}, fmt.Errorf("parse input %s: %w", input, err)
	}

	runner, err := c.newRunner(false)
	if err != nil {
		return radial.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	return runner.ComputeLayout(ctx, items, opts)
}

// =============================================================================
// viewModel - Interactive segment browser
// =============================================================================

var (
	viewTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewEmphasizedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewHoveredStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	viewNormalStyle     = lipgloss.NewStyle().Foreground(colorGray)
	viewDimmedStyle     = lipgloss.NewStyle().Foreground(colorDim)
	viewHelpStyle       = lipgloss.NewStyle().Foreground(colorDim)
)

// viewModel is the bubbletea model for the segment browser. The cursor
// drives hover events and enter drives click events through the interaction
// reducer, so the browser behaves exactly like the SVG surface.
type viewModel struct {
	layout radial.Layout
	title  string
	output string

	state  interaction.State
	cursor int
	saved  bool
	err    error
}

func newViewModel(l radial.Layout, title, output string) viewModel {
	m := viewModel{layout: l, title: title, output: output}
	if len(l.Segments) > 0 {
		m.state = interaction.Reduce(m.state, interaction.HoverEnter{SegmentID: l.Segments[0].ID})
	}
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.state = interaction.Reduce(m.state, interaction.HoverLeave{})
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.state = interaction.Reduce(m.state, interaction.HoverEnter{SegmentID: m.layout.Segments[m.cursor].ID})

	case "down", "j":
		if m.cursor < len(m.layout.Segments)-1 {
			m.cursor++
		}
		m.state = interaction.Reduce(m.state, interaction.HoverEnter{SegmentID: m.layout.Segments[m.cursor].ID})

	case "enter", " ":
		m.state = interaction.Reduce(m.state, interaction.Click{SegmentID: m.layout.Segments[m.cursor].ID})

	case "esc":
		if m.state.ActiveID != "" {
			m.state = interaction.Reduce(m.state, interaction.Click{SegmentID: m.state.ActiveID})
		}

	case "s":
		m.saved, m.err = m.snapshot()
	}

	return m, nil
}

// snapshot writes the chart as SVG with the current selection applied.
func (m viewModel) snapshot() (bool, error) {
	svgOpts := []sink.SVGOption{sink.WithState(m.state)}
	if m.title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(m.title))
	}
	if err := os.WriteFile(m.output, sink.RenderSVG(m.layout, svgOpts...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "Chart segments"
	}
	b.WriteString(viewTitleStyle.Render(title) + "\n\n")

	for i, s := range m.layout.Segments {
		line := fmt.Sprintf("%-20s %12.2f  %5.1f%%  %s", s.Label, s.Value, s.Percentage, s.Side)

		style := viewNormalStyle
		switch m.state.EmphasisFor(s.ID) {
		case interaction.Emphasized:
			style = viewEmphasizedStyle
		case interaction.Dimmed:
			style = viewDimmedStyle
		}
		if m.state.Hovered(s.ID) && m.state.EmphasisFor(s.ID) == interaction.Normal {
			style = viewHoveredStyle
		}

		cursor := "  "
		if i == m.cursor {
			cursor = StyleHighlight.Render("> ")
		}
		b.WriteString(cursor + style.Render(line) + "\n")
	}

	b.WriteString("\n" + viewHelpStyle.Render("j/k move · enter select · esc clear · s save svg · q quit") + "\n")
	if m.err != nil {
		b.WriteString(viewHelpStyle.Render(fmt.Sprintf("save failed: %v", m.err)) + "\n")
	}
	return b.String()
}

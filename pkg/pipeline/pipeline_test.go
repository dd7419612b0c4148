package pipeline

import (
	"testing"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.ChartType != ChartRadial {
		t.Errorf("ChartType = %q, want radial", opts.ChartType)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("frame = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if opts.Radius != DefaultRadius {
		t.Errorf("Radius = %v, want %v", opts.Radius, DefaultRadius)
	}
	if opts.LabelDistance != DefaultRadius*1.25 {
		t.Errorf("LabelDistance = %v, want radius*1.25", opts.LabelDistance)
	}
	if opts.MinSpacing != DefaultMinSpacing || opts.LabelOffset != DefaultLabelOffset {
		t.Error("spacing defaults not applied")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Radius: 50}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	distance := opts.LabelDistance
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if opts.LabelDistance != distance {
		t.Error("second call should not change defaults")
	}
}

func TestOptionsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad format", Options{Formats: []string{"png"}}},
		{"bad chart type", Options{ChartType: "sunburst"}},
		{"negative radius", Options{Radius: -10}},
		{"radius exceeds frame", Options{Width: 100, Height: 100, Radius: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat(FormatSVG); err != nil {
		t.Errorf("svg should be valid: %v", err)
	}
	if err := ValidateFormat(FormatJSON); err != nil {
		t.Errorf("json should be valid: %v", err)
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("pdf should be rejected")
	}
	if err := ValidateFormats([]string{FormatSVG, "bogus"}); err == nil {
		t.Error("bogus format should be rejected")
	}
}

func TestRadialConfigCentersFrame(t *testing.T) {
	opts := Options{Width: 800, Height: 600, Radius: 200}
	opts.SetLayoutDefaults()
	cfg := opts.RadialConfig()
	if cfg.CenterX != 400 || cfg.CenterY != 300 {
		t.Errorf("center = (%v,%v), want (400,300)", cfg.CenterX, cfg.CenterY)
	}
	if cfg.Radius != 200 {
		t.Errorf("Radius = %v, want 200", cfg.Radius)
	}
}

func TestLayoutKeyOptsDistinguishChartTypes(t *testing.T) {
	radialOpts := Options{ChartType: ChartRadial}
	radialOpts.SetLayoutDefaults()
	divergingOpts := Options{ChartType: ChartDiverging}
	divergingOpts.SetLayoutDefaults()

	if radialOpts.LayoutKeyOpts() == divergingOpts.LayoutKeyOpts() {
		t.Error("chart types must produce distinct layout key options")
	}
}

package diverging

import (
	"math"
	"reflect"
	"testing"

	"github.com/wealthmap/wealthmap/pkg/chart"
)

func gainsAndLosses() []chart.Item {
	return []chart.Item{
		{ID: "stock", Label: "Stocks", Value: 4200},
		{ID: "etf", Label: "ETFs", Value: 1100},
		{ID: "crypto", Label: "Crypto", Value: -1800},
		{ID: "bond", Label: "Bonds", Value: 300},
		{ID: "fx", Label: "FX", Value: -250},
	}
}

func TestComputeEmpty(t *testing.T) {
	tests := []struct {
		name  string
		items []chart.Item
	}{
		{name: "no items", items: nil},
		{name: "all zero", items: []chart.Item{{ID: "a", Value: 0}, {ID: "b", Value: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if l := Compute(tt.items, DefaultConfig()); !l.IsEmpty() {
				t.Errorf("got %d bars, want empty layout", len(l.Bars))
			}
		})
	}
}

func TestComputeSides(t *testing.T) {
	l := Compute(gainsAndLosses(), DefaultConfig())
	for _, b := range l.Bars {
		switch {
		case b.Value < 0 && b.Side != SideLeft:
			t.Errorf("bar %s has negative value but side %s", b.ID, b.Side)
		case b.Value > 0 && b.Side != SideRight:
			t.Errorf("bar %s has positive value but side %s", b.ID, b.Side)
		}
	}
}

func TestComputeBarsMeetAxis(t *testing.T) {
	l := Compute(gainsAndLosses(), DefaultConfig())
	for _, b := range l.Bars {
		switch b.Side {
		case SideRight:
			if math.Abs(b.X-l.AxisX) > 1e-9 {
				t.Errorf("bar %s should start at the axis, starts at %v", b.ID, b.X)
			}
		case SideLeft:
			if math.Abs(b.X+b.Width-l.AxisX) > 1e-9 {
				t.Errorf("bar %s should end at the axis, ends at %v", b.ID, b.X+b.Width)
			}
		}
	}
}

func TestComputeWidthsProportional(t *testing.T) {
	l := Compute(gainsAndLosses(), DefaultConfig())

	byID := make(map[string]Bar)
	for _, b := range l.Bars {
		byID[b.ID] = b
	}
	// Stocks gained 4200, crypto lost 1800: widths must scale by |value|.
	ratio := byID["stock"].Width / byID["crypto"].Width
	want := 4200.0 / 1800.0
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("width ratio = %v, want %v", ratio, want)
	}
}

func TestComputeLabelsOutsideBars(t *testing.T) {
	cfg := DefaultConfig()
	l := Compute(gainsAndLosses(), cfg)
	for _, b := range l.Bars {
		switch b.Side {
		case SideRight:
			if b.LabelX <= b.X+b.Width {
				t.Errorf("bar %s label at %v not beyond bar end %v", b.ID, b.LabelX, b.X+b.Width)
			}
		case SideLeft:
			if b.LabelX >= b.X {
				t.Errorf("bar %s label at %v not before bar start %v", b.ID, b.LabelX, b.X)
			}
		}
	}
}

func TestComputeLabelSpacing(t *testing.T) {
	cfg := DefaultConfig()
	// Rows packed tighter than the label spacing forces pushes.
	cfg.BarHeight = 6
	cfg.RowGap = 0
	cfg.MinSpacing = 14

	l := Compute(gainsAndLosses(), cfg)
	for _, side := range []Side{SideLeft, SideRight} {
		var prev *Bar
		for i := range l.Bars {
			b := &l.Bars[i]
			if b.Side != side {
				continue
			}
			if b.AdjustedY < b.RawLabelY {
				t.Errorf("bar %s label moved up", b.ID)
			}
			if prev != nil {
				if gap := b.AdjustedY - prev.AdjustedY; gap < cfg.MinSpacing-1e-9 {
					t.Errorf("gap %v between %s and %s below %v", gap, prev.ID, b.ID, cfg.MinSpacing)
				}
			}
			prev = b
		}
	}
}

func TestComputeIsPure(t *testing.T) {
	a := Compute(gainsAndLosses(), DefaultConfig())
	b := Compute(gainsAndLosses(), DefaultConfig())
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated calls with identical arguments must yield identical layouts")
	}
}

func TestComputeDropsZeroValues(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Value: 10},
		{ID: "b", Value: 0},
		{ID: "c", Value: -5},
	}
	l := Compute(items, DefaultConfig())
	if len(l.Bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(l.Bars))
	}
	for _, b := range l.Bars {
		if b.ID == "b" {
			t.Error("zero-value item must be dropped")
		}
	}
}

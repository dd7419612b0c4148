package sink

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/errors"
)

func sampleLayout(t *testing.T) radial.Layout {
	t.Helper()
	items := []chart.Item{
		{ID: "stock", Label: "Stocks", Value: 60},
		{ID: "bond", Label: "Bonds", Value: 25},
		{ID: "cash", Label: "Cash", Value: 15},
	}
	return radial.Compute(items, radial.DefaultConfig())
}

func TestRenderJSONRoundTrip(t *testing.T) {
	l := sampleLayout(t)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	parsed, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout error: %v", err)
	}
	if len(parsed.Segments) != len(l.Segments) {
		t.Fatalf("got %d segments, want %d", len(parsed.Segments), len(l.Segments))
	}
	for i := range l.Segments {
		if parsed.Segments[i].ID != l.Segments[i].ID {
			t.Errorf("segment %d id = %q, want %q", i, parsed.Segments[i].ID, l.Segments[i].ID)
		}
		if parsed.Segments[i].StartAngle != l.Segments[i].StartAngle {
			t.Errorf("segment %d start angle changed in round trip", i)
		}
	}
	if parsed.Config.Radius != l.Config.Radius {
		t.Error("config should survive the round trip")
	}
}

func TestUnmarshalLayoutRejectsBadInput(t *testing.T) {
	if _, err := UnmarshalLayout([]byte("{not json")); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}

	// Segment without an id
	if _, err := UnmarshalLayout([]byte(`{"segments":[{"label":"x"}]}`)); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT for missing id, got %v", err)
	}

	// Ids feed cache keys and DOM element ids, so the full id grammar
	// applies: no traversal sequences, no oversized ids.
	if _, err := UnmarshalLayout([]byte(`{"segments":[{"id":"../etc"}]}`)); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT for traversal id, got %v", err)
	}
	long := strings.Repeat("a", 200)
	if _, err := UnmarshalLayout([]byte(`{"segments":[{"id":"` + long + `"}]}`)); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT for overlong id, got %v", err)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := sampleLayout(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(path, l); err != nil {
		t.Fatalf("WriteLayoutFile error: %v", err)
	}
	parsed, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile error: %v", err)
	}
	if len(parsed.Segments) != len(l.Segments) {
		t.Errorf("got %d segments, want %d", len(parsed.Segments), len(l.Segments))
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

package sink

import (
	"encoding/json"
	"os"

	"github.com/wealthmap/wealthmap/pkg/chart/radial"
	"github.com/wealthmap/wealthmap/pkg/errors"
)

// RenderJSON exports the layout as a pretty-printed JSON document. This is
// the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
func RenderJSON(l radial.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// UnmarshalLayout parses a JSON layout document and validates its segments.
func UnmarshalLayout(data []byte) (radial.Layout, error) {
	var l radial.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return radial.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout")
	}
	for i, s := range l.Segments {
		if err := errors.ValidateItemID(s.ID); err != nil {
			return radial.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "segment %d", i)
		}
	}
	return l, nil
}

// WriteLayoutFile renders the layout to JSON and writes it to path.
func WriteLayoutFile(path string, l radial.Layout) error {
	data, err := RenderJSON(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write layout file %s", path)
	}
	return nil
}

// ReadLayoutFile reads and parses a JSON layout document from path.
func ReadLayoutFile(path string) (radial.Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return radial.Layout{}, errors.New(errors.ErrCodeFileNotFound, "layout file not found: %s", path)
	}
	if err != nil {
		return radial.Layout{}, errors.Wrap(errors.ErrCodeStorage, err, "read layout file %s", path)
	}
	return UnmarshalLayout(data)
}

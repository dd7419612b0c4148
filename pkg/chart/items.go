package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wealthmap/wealthmap/pkg/errors"
)

// MarshalItems serializes items to pretty-printed JSON bytes.
func MarshalItems(items []Item) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}

// UnmarshalItems deserializes JSON bytes into an item slice.
// Items must carry an ID; labels default to the ID when omitted.
func UnmarshalItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	for i := range items {
		if err := errors.ValidateItemID(items[i].ID); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if items[i].Label == "" {
			items[i].Label = items[i].ID
		}
	}
	return items, nil
}

// WriteItemsFile writes items to a JSON file.
func WriteItemsFile(items []Item, path string) error {
	data, err := MarshalItems(items)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadItemsFile reads items from a JSON file.
func ReadItemsFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalItems(data)
}

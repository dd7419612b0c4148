package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// symbolRegex matches ticker symbols: letters and digits with optional
// dot or dash separators (BRK.B, BTC-USD).
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9]+([.-][A-Za-z0-9]+)*$`)

// ValidateSymbol validates a ticker symbol.
//
// The validation rules are intentionally conservative:
//   - No empty symbols
//   - Maximum length of 12 characters
//   - Letters and digits, with single dot or dash separators
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidSymbol, "symbol cannot be empty")
	}
	if len(symbol) > 12 {
		return New(ErrCodeInvalidSymbol, "symbol too long (max 12 characters): %q", symbol)
	}
	if !symbolRegex.MatchString(symbol) {
		return New(ErrCodeInvalidSymbol, "invalid symbol: %q", symbol)
	}
	return nil
}

// ValidateItemID validates a chart item identifier used in cache keys,
// DOM-style element ids, and API paths. It rejects ids that could be used
// for path traversal or injection.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidItem, "item id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidItem, "item id contains invalid sequence: %q", pattern)
		}
	}
	return nil
}

// ValidateName validates a display name (holding name, chart title).
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "name contains invalid characters")
		}
	}
	return nil
}

package errors

import "testing"

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr bool
	}{
		{name: "plain ticker", symbol: "AAPL", wantErr: false},
		{name: "class share", symbol: "BRK.B", wantErr: false},
		{name: "crypto pair", symbol: "BTC-USD", wantErr: false},
		{name: "digits", symbol: "7203", wantErr: false},
		{name: "empty", symbol: "", wantErr: true},
		{name: "too long", symbol: "ABCDEFGHIJKLM", wantErr: true},
		{name: "whitespace", symbol: "FOO BAR", wantErr: true},
		{name: "trailing dot", symbol: "BRK.", wantErr: true},
		{name: "slash", symbol: "A/B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.symbol)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSymbol) {
				t.Errorf("expected %s code, got %s", ErrCodeInvalidSymbol, GetCode(err))
			}
		})
	}
}

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "simple", id: "stock", wantErr: false},
		{name: "uuid style", id: "2c9a4f6e-1b7d-4f2a-9c3e-8d5b6a7f0e1d", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "traversal", id: "../etc/passwd", wantErr: true},
		{name: "double slash", id: "a//b", wantErr: true},
		{name: "backslash", id: "a\\b", wantErr: true},
		{name: "control char", id: "a\x01b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Vanguard Total Market"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateName(""); err == nil {
		t.Error("empty name accepted")
	}
	if err := ValidateName("bad\x00name"); err == nil {
		t.Error("name with null byte accepted")
	}
}

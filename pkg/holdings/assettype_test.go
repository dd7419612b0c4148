package holdings

import "testing"

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		input string
		want  AssetType
	}{
		// Canonical types pass through
		{"stock", TypeStock},
		{"crypto", TypeCrypto},
		{"401k", Type401k},
		{"hysa", TypeHYSA},

		// Case and whitespace
		{"  Stock  ", TypeStock},
		{"CRYPTO", TypeCrypto},

		// Aliases
		{"stocks", TypeStock},
		{"equities", TypeStock},
		{"cryptocurrency", TypeCrypto},
		{"roth ira", TypeRothIRA},
		{"ira", TypeRothIRA},
		{"checking account", TypeBank},
		{"real estate", TypeHomeEquity},
		{"401(k)", Type401k},
		{"college savings", Type529},
		{"child's roth ira", TypeChildRoth},
		{"health savings account", TypeHSA},
		{"traditional ira", TypeTraditionalIRA},
		{"simplified employee pension", TypeSEPIRA},

		// Substring patterns
		{"vanguard etf", TypeETF},
		{"municipal bond", TypeBond},
		{"employer 401k plan", Type401k},
		{"bitcoin wallet", TypeCrypto},
		{"cash reserve", TypeCash},

		// Fallback
		{"", TypeOther},
		{"collectibles", TypeOther},
	}

	for _, tt := range tests {
		if got := NormalizeType(tt.input); got != tt.want {
			t.Errorf("NormalizeType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTypeAlwaysValid(t *testing.T) {
	inputs := []string{"", "stock", "weird input", "my roth", "BTC crypto", "???"}
	for _, in := range inputs {
		if got := NormalizeType(in); !got.IsValid() {
			t.Errorf("NormalizeType(%q) = %q is not a valid type", in, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := TypeRothIRA.DisplayName(); got != "Roth IRA" {
		t.Errorf("DisplayName = %q, want Roth IRA", got)
	}
	if got := Type401k.DisplayName(); got != "401(k)" {
		t.Errorf("DisplayName = %q, want 401(k)", got)
	}
	// Unknown types fall back to the raw value
	if got := AssetType("mystery").DisplayName(); got != "mystery" {
		t.Errorf("DisplayName fallback = %q, want mystery", got)
	}
}

func TestTradable(t *testing.T) {
	for _, tr := range []AssetType{TypeStock, TypeCrypto, TypeETF} {
		if !tr.Tradable() {
			t.Errorf("%s should be tradable", tr)
		}
	}
	for _, nt := range []AssetType{TypeCash, TypeHomeEquity, TypeRothIRA, Type401k} {
		if nt.Tradable() {
			t.Errorf("%s should not be tradable", nt)
		}
	}
}

func TestValidTypesSorted(t *testing.T) {
	types := ValidTypes()
	if len(types) != 16 {
		t.Fatalf("ValidTypes returned %d types, want 16", len(types))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Errorf("ValidTypes not sorted at %d: %s >= %s", i, types[i-1], types[i])
		}
	}
}

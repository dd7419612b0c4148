package holdings

import (
	"sort"
	"strings"
)

// AssetType classifies a holding for allocation reporting.
type AssetType string

// All valid asset types.
const (
	TypeStock          AssetType = "stock"
	TypeCrypto         AssetType = "crypto"
	TypeRothIRA        AssetType = "roth_ira"
	TypeCash           AssetType = "cash"
	TypeHYSA           AssetType = "hysa"
	TypeBank           AssetType = "bank"
	TypeHomeEquity     AssetType = "home_equity"
	TypeOther          AssetType = "other"
	TypeETF            AssetType = "etf"
	TypeBond           AssetType = "bond"
	Type401k           AssetType = "401k"
	Type529            AssetType = "529"
	TypeChildRoth      AssetType = "child_roth"
	TypeHSA            AssetType = "hsa"
	TypeTraditionalIRA AssetType = "traditional_ira"
	TypeSEPIRA         AssetType = "sep_ira"
)

// validTypes is the set of recognized asset types.
var validTypes = map[AssetType]bool{
	TypeStock: true, TypeCrypto: true, TypeRothIRA: true, TypeCash: true,
	TypeHYSA: true, TypeBank: true, TypeHomeEquity: true, TypeOther: true,
	TypeETF: true, TypeBond: true, Type401k: true, Type529: true,
	TypeChildRoth: true, TypeHSA: true, TypeTraditionalIRA: true, TypeSEPIRA: true,
}

// typeAliases maps common variations to their canonical type.
var typeAliases = map[string]AssetType{
	"stocks":                      TypeStock,
	"equity":                      TypeStock,
	"equities":                    TypeStock,
	"cryptocurrency":              TypeCrypto,
	"cryptocurrencies":            TypeCrypto,
	"roth":                        TypeRothIRA,
	"roth ira":                    TypeRothIRA,
	"ira":                         TypeRothIRA,
	"savings":                     TypeHYSA,
	"high yield savings":          TypeHYSA,
	"checking":                    TypeBank,
	"checking account":            TypeBank,
	"savings account":             TypeBank,
	"bank account":                TypeBank,
	"real estate":                 TypeHomeEquity,
	"property":                    TypeHomeEquity,
	"home":                        TypeHomeEquity,
	"401(k)":                      Type401k,
	"401(k) plan":                 Type401k,
	"529 plan":                    Type529,
	"college savings":             Type529,
	"child's roth":                TypeChildRoth,
	"child's roth ira":            TypeChildRoth,
	"child roth":                  TypeChildRoth,
	"health savings account":      TypeHSA,
	"traditional":                 TypeTraditionalIRA,
	"traditional ira":             TypeTraditionalIRA,
	"sep":                         TypeSEPIRA,
	"sep ira":                     TypeSEPIRA,
	"simplified employee pension": TypeSEPIRA,
}

// sortedAliases holds alias keys in fixed order so partial matching is
// deterministic regardless of map iteration order.
var sortedAliases = func() []string {
	keys := make([]string, 0, len(typeAliases))
	for k := range typeAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// displayNames maps canonical types to chart-facing labels.
var displayNames = map[AssetType]string{
	TypeStock:          "Stocks",
	TypeCrypto:         "Crypto",
	TypeRothIRA:        "Roth IRA",
	TypeCash:           "Cash",
	TypeHYSA:           "High-Yield Savings",
	TypeBank:           "Bank",
	TypeHomeEquity:     "Home Equity",
	TypeOther:          "Other",
	TypeETF:            "ETFs",
	TypeBond:           "Bonds",
	Type401k:           "401(k)",
	Type529:            "529 Plan",
	TypeChildRoth:      "Child's Roth IRA",
	TypeHSA:            "HSA",
	TypeTraditionalIRA: "Traditional IRA",
	TypeSEPIRA:         "SEP IRA",
}

// ValidTypes returns all recognized asset types in sorted order.
func ValidTypes() []AssetType {
	types := make([]AssetType, 0, len(validTypes))
	for t := range validTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// IsValid reports whether t is a recognized asset type.
func (t AssetType) IsValid() bool {
	return validTypes[t]
}

// DisplayName returns the chart-facing label for the type.
func (t AssetType) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Tradable reports whether holdings of this type carry a market price.
// Non-tradable holdings value at cost.
func (t AssetType) Tradable() bool {
	return t == TypeStock || t == TypeCrypto || t == TypeETF
}

// NormalizeType maps free-form user input to a canonical asset type.
// Unknown input maps to TypeOther, never an error: imports from broker
// CSVs carry arbitrary labels and a single bad row must not block them.
func NormalizeType(input string) AssetType {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return TypeOther
	}

	if validTypes[AssetType(normalized)] {
		return AssetType(normalized)
	}
	if t, ok := typeAliases[normalized]; ok {
		return t
	}

	// Partial alias match in either direction.
	for _, alias := range sortedAliases {
		if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
			return typeAliases[alias]
		}
	}

	// Common substring patterns, most specific first.
	switch {
	case strings.Contains(normalized, "etf"):
		return TypeETF
	case strings.Contains(normalized, "bond"):
		return TypeBond
	case strings.Contains(normalized, "401"):
		return Type401k
	case strings.Contains(normalized, "529"):
		return Type529
	case strings.Contains(normalized, "hsa"):
		return TypeHSA
	case strings.Contains(normalized, "sep"):
		return TypeSEPIRA
	case strings.Contains(normalized, "traditional") && strings.Contains(normalized, "ira"):
		return TypeTraditionalIRA
	case strings.Contains(normalized, "child") && (strings.Contains(normalized, "roth") || strings.Contains(normalized, "ira")):
		return TypeChildRoth
	case strings.Contains(normalized, "roth"),
		strings.Contains(normalized, "ira") && !strings.Contains(normalized, "traditional"):
		return TypeRothIRA
	case strings.Contains(normalized, "crypto"),
		strings.Contains(normalized, "bitcoin"),
		strings.Contains(normalized, "ethereum"):
		return TypeCrypto
	case strings.Contains(normalized, "cash"):
		return TypeCash
	case strings.Contains(normalized, "savings") && strings.Contains(normalized, "high"):
		return TypeHYSA
	case strings.Contains(normalized, "bank"), strings.Contains(normalized, "checking"):
		return TypeBank
	case strings.Contains(normalized, "home"),
		strings.Contains(normalized, "property"),
		strings.Contains(normalized, "real estate"):
		return TypeHomeEquity
	}

	return TypeOther
}

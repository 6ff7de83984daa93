package units

import (
	"github.com/shopspring/decimal"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
)

// DefaultDecimals is assumed when an asset carries no precision metadata.
const DefaultDecimals = 9

// LPDecimals is the fixed precision of pool-share (LP) tokens,
// regardless of the underlying assets' own precision.
const LPDecimals = 9

// DecimalsOf returns the asset's declared decimal precision, or
// DefaultDecimals when the asset is absent or carries none.
func DecimalsOf(asset *catalog.Asset) int {
	if asset == nil || asset.Decimals == nil {
		return DefaultDecimals
	}
	return *asset.Decimals
}

// ToBaseUnits converts a human-entered decimal amount to the asset's
// integer base-unit string, truncating toward zero.
// e.g. 6 decimals: "1.5" -> "1500000".
//
// Absent asset, empty or unparseable input all yield "0". Callers feed
// this during incremental form entry, so a half-typed amount is not an
// error.
func ToBaseUnits(asset *catalog.Asset, amount string) string {
	if asset == nil || amount == "" {
		return "0"
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "0"
	}
	return d.Shift(int32(DecimalsOf(asset))).Truncate(0).BigInt().String()
}

// FromBaseUnits converts an integer base-unit string back to a
// human-readable amount with two fractional digits.
// e.g. 9 decimals: "1500000000" -> "1.50".
func FromBaseUnits(asset *catalog.Asset, baseUnits string) string {
	if asset == nil {
		return "0"
	}
	return fromUnits(baseUnits, DecimalsOf(asset))
}

// FromLPBaseUnits formats pool-share base units, always at LPDecimals.
func FromLPBaseUnits(baseUnits string) string {
	return fromUnits(baseUnits, LPDecimals)
}

func fromUnits(baseUnits string, decimals int) string {
	if baseUnits == "" {
		return "0"
	}
	d, err := decimal.NewFromString(baseUnits)
	if err != nil {
		return "0"
	}
	return d.Shift(int32(-decimals)).StringFixed(2)
}

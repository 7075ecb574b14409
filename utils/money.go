package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

var threeDecimalCurrencies = map[string]bool{
	"bhd": true, "jod": true, "kwd": true, "omr": true, "tnd": true,
}

// currencyExponent is the number of minor-unit digits the processor expects.
func currencyExponent(currency string) int32 {
	c := strings.ToLower(currency)
	switch {
	case zeroDecimalCurrencies[c]:
		return 0
	case threeDecimalCurrencies[c]:
		return 3
	default:
		return 2
	}
}

// ToMinorUnits converts a major-unit amount to integer minor units. Three
// decimal currencies are rounded to two decimals first so the last digit is
// always zero.
func ToMinorUnits(amount float64, currency string) int64 {
	exp := currencyExponent(currency)
	d := decimal.NewFromFloat(amount)
	if exp == 3 {
		d = d.Round(2)
	}
	return d.Shift(exp).Round(0).IntPart()
}

func FromMinorUnits(amount int64, currency string) float64 {
	return decimal.New(amount, -currencyExponent(currency)).InexactFloat64()
}

// Round2 rounds half away from zero to two decimals.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

package units

import (
	"fmt"
	"math/big"
	"strings"
)

// Package units converts between smallest-unit integers and whole-coin
// decimal strings using exact integer arithmetic. Float formatting is never
// acceptable here: balances can exceed the 53-bit mantissa of a float64.

// Pow10 returns 10^digits as a big.Int.
func Pow10(digits int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
}

// FormatCoins renders a smallest-unit value as a whole-coin decimal string,
// with the fractional part zero-padded to the scale's digit count.
func FormatCoins(value *big.Int, scaleDigits int) string {
	if value == nil {
		value = new(big.Int)
	}
	sign := ""
	abs := new(big.Int).Abs(value)
	if value.Sign() < 0 {
		sign = "-"
	}
	quo, rem := new(big.Int).QuoRem(abs, Pow10(scaleDigits), new(big.Int))
	return fmt.Sprintf("%s%s.%0*s", sign, quo.String(), scaleDigits, rem.String())
}

// ParseUnits parses a non-negative smallest-unit integer from its decimal
// string form. Fractional, signed, hex or empty inputs are rejected.
func ParseUnits(raw string) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty balance")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("balance %q is not a non-negative integer", raw)
		}
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("balance %q is not a non-negative integer", raw)
	}
	return value, nil
}

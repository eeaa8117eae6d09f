package units

import (
	"math/big"
	"testing"
)

func TestFormatCoins(t *testing.T) {
	cases := []struct {
		units string
		want  string
	}{
		{"0", "0.00000000"},
		{"1", "0.00000001"},
		{"150000000", "1.50000000"},
		{"500000000", "5.00000000"},
		// Beyond float64's exact integer range; must not lose digits.
		{"123456789012345678901234567890", "1234567890123456789012.34567890"},
	}
	for _, tc := range cases {
		value, ok := new(big.Int).SetString(tc.units, 10)
		if !ok {
			t.Fatalf("bad test input %q", tc.units)
		}
		if got := FormatCoins(value, 8); got != tc.want {
			t.Fatalf("FormatCoins(%s) = %q, want %q", tc.units, got, tc.want)
		}
	}
}

func TestParseUnits(t *testing.T) {
	if _, err := ParseUnits("500000000"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	for _, bad := range []string{"", "-1", "1.5", "0x10", "1e9", "ten"} {
		if _, err := ParseUnits(bad); err == nil {
			t.Fatalf("ParseUnits(%q) should fail", bad)
		}
	}
}

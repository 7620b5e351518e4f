package redemption_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ferreirogomes/resgate/redemption"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"10", "2", "5"},
		{"1", "4", "0.25"},
		{"5", "0", "0"},
		{"0", "0", "0"},
		{"-3", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			got := redemption.SafeDiv(d(tt.a), d(tt.b))
			assert.True(t, got.Equal(d(tt.want)), "SafeDiv(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		})
	}
}

func TestDisplayRounding(t *testing.T) {
	assert.Equal(t, int32(0), redemption.DisplayRounding(0))
	assert.Equal(t, int32(2), redemption.DisplayRounding(2))
	assert.Equal(t, int32(6), redemption.DisplayRounding(6))
	assert.Equal(t, int32(6), redemption.DisplayRounding(18))
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		display  string
		decimals int
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"0.5", 18, "500000000000000000"},
		{"0.000001", 6, "1"},
		{"100", 6, "100000000"},
		{"1.5", 8, "150000000"},
		{"0", 18, "0"},
		{"0.1234565", 6, "123457"}, // arredonda para longe do zero
		{"0.5", 0, "1"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.display, tt.decimals), func(t *testing.T) {
			got := redemption.ToBaseUnits(d(tt.display), tt.decimals)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFromBaseUnits(t *testing.T) {
	tests := []struct {
		base     string
		decimals int
		want     string
	}{
		{"1000000000000000000", 18, "1"},
		{"500000000000000000", 18, "0.5"},
		{"1", 6, "0.000001"},
		{"150000000", 8, "1.5"},
		{"0", 18, "0"},
		{"42", 0, "42"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.base, tt.decimals), func(t *testing.T) {
			got := redemption.FromBaseUnits(d(tt.base), tt.decimals)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBaseUnitsRoundTrip(t *testing.T) {
	for _, v := range []string{"0", "1", "0.5", "123.456789"} {
		for _, decimals := range []int{0, 2, 6, 18} {
			tolerance := decimal.New(1, -int32(decimals))
			got := redemption.FromBaseUnits(redemption.ToBaseUnits(d(v), decimals), decimals)
			diff := got.Sub(d(v)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "v=%s decimals=%d got=%s", v, decimals, got)
		}
	}

	for _, x := range []string{"0", "1", "999", "123456789012345678901234567890"} {
		for _, decimals := range []int{0, 2, 6, 18} {
			got := redemption.ToBaseUnits(redemption.FromBaseUnits(d(x), decimals), decimals)
			assert.True(t, got.Equal(d(x)), "x=%s decimals=%d got=%s", x, decimals, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234568", redemption.FormatAmount(d("1234567890"), 9).String())
	assert.Equal(t, "2.5", redemption.FormatAmount(d("2500000"), 6).String())
	assert.Equal(t, "12.34", redemption.FormatAmount(d("1234"), 2).String())
	assert.Equal(t, "0", redemption.FormatAmount(d("0"), 18).String())
}

func TestMinTokenStep(t *testing.T) {
	assert.Equal(t, "1", redemption.MinTokenStep(0).String())
	assert.Equal(t, "0.01", redemption.MinTokenStep(2).String())
	assert.Equal(t, "0.000001", redemption.MinTokenStep(18).String())
}

package redemption_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/resgate/models"
	"github.com/ferreirogomes/resgate/redemption"
)

func TestComputeProportionalPayouts(t *testing.T) {
	tokens := []models.Token{
		{ID: "A", Symbol: "AAA", Amount: d("100")},
		{ID: "B", Symbol: "BBB", Amount: d("300")},
	}

	payouts := redemption.ComputeProportionalPayouts(d("40"), tokens, d("400"))

	require.Len(t, payouts, 2)
	assert.Equal(t, "A", payouts[0].TokenID)
	assert.Equal(t, "AAA", payouts[0].Symbol)
	assert.Equal(t, "10", payouts[0].Amount.String())
	assert.Equal(t, "B", payouts[1].TokenID)
	assert.Equal(t, "30", payouts[1].Amount.String())
}

func TestComputeProportionalPayoutsEmpty(t *testing.T) {
	for _, supply := range []string{"0", "1", "1000"} {
		payouts := redemption.ComputeProportionalPayouts(d("5"), nil, d(supply))
		assert.NotNil(t, payouts)
		assert.Empty(t, payouts)
	}
}

func TestComputeProportionalPayoutsZeroSupply(t *testing.T) {
	tokens := []models.Token{
		{ID: "A", Amount: d("100")},
		{ID: "B", Amount: d("0")},
		{ID: "C", Amount: d("7.5")},
	}

	for _, amount := range []string{"0", "1", "-3", "1000000"} {
		payouts := redemption.ComputeProportionalPayouts(d(amount), tokens, decimal.Zero)
		require.Len(t, payouts, len(tokens))
		for _, p := range payouts {
			assert.True(t, p.Amount.IsZero(), "redeem=%s token=%s payout=%s", amount, p.TokenID, p.Amount)
		}
	}
}

func TestComputeProportionalPayoutsSumToRedeemed(t *testing.T) {
	tokens := []models.Token{
		{ID: "A", Amount: d("1")},
		{ID: "B", Amount: d("2")},
		{ID: "C", Amount: d("3")},
	}
	supply := d("6")
	tolerance := d("0.000000000001")

	for _, amount := range []string{"7", "0.333", "6", "1234.56789"} {
		sum := decimal.Zero
		for _, p := range redemption.ComputeProportionalPayouts(d(amount), tokens, supply) {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, sum.Sub(d(amount)).Abs().LessThanOrEqual(tolerance), "redeem=%s sum=%s", amount, sum)
	}
}

func TestAmountFromSliderProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress string
		balance  string
		rounding int32
		want     string
	}{
		{"zero", "0", "12.5", 6, "0"},
		{"full", "1", "12.5", 6, "12.5"},
		{"full rounds balance", "1", "1.23456789", 6, "1.234568"},
		{"half", "0.5", "1.234567", 6, "0.617284"},
		{"no decimals", "0.5", "3", 0, "2"},
		{"above one clamps", "1.5", "10", 2, "10"},
		{"negative clamps", "-0.2", "10", 2, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redemption.AmountFromSliderProgress(d(tt.progress), d(tt.balance), tt.rounding)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestAmountFromInputValue(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		balance      string
		wantAmount   string
		wantProgress string
	}{
		{"within balance", "5", "10", "5", "0.5"},
		{"above balance", "20", "10", "10", "1"},
		{"negative", "-1", "10", "0", "0"},
		{"zero balance", "3", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, progress := redemption.AmountFromInputValue(d(tt.raw), d(tt.balance))
			assert.True(t, amount.Equal(d(tt.wantAmount)), "amount %s, want %s", amount, tt.wantAmount)
			assert.True(t, progress.Equal(d(tt.wantProgress)), "progress %s, want %s", progress, tt.wantProgress)
		})
	}
}

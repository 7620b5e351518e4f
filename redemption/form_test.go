package redemption_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/resgate/models"
	"github.com/ferreirogomes/resgate/redemption"
)

func TestNewFormStartsAtFullBalance(t *testing.T) {
	form := redemption.NewForm(d("2500000"), 6, d("10000000"), nil)

	assert.Equal(t, "2.5", form.Value().String())
	assert.Equal(t, "1", form.Progress().String())
}

func TestFormSliderAndBalanceChange(t *testing.T) {
	tokens := []models.Token{{ID: "A", Amount: d("1000")}}
	form := redemption.NewForm(d("2500000"), 6, d("10000000"), tokens)

	form.HandleSliderChange(d("0.5"))
	assert.Equal(t, "1.25", form.Value().String())

	// O novo saldo reaplica a mesma posição do slider.
	form.SetBalance(d("5000000"))
	assert.Equal(t, "2.5", form.Value().String())
	assert.Equal(t, "0.5", form.Progress().String())
}

func TestFormAmountChangeClampsToBalance(t *testing.T) {
	form := redemption.NewForm(d("5000000"), 6, d("10000000"), nil)

	form.HandleAmountChange(d("10"))
	assert.Equal(t, "5", form.Value().String())
	assert.Equal(t, "1", form.Progress().String())

	form.HandleAmountChange(d("1"))
	assert.Equal(t, "1", form.Value().String())
	assert.Equal(t, "0.2", form.Progress().String())
}

func TestFormQuote(t *testing.T) {
	tokens := []models.Token{
		{ID: "A", Amount: d("100")},
		{ID: "B", Amount: d("300")},
	}
	form := redemption.NewForm(d("40"), 0, d("400"), tokens)

	quote := form.Quote()

	assert.Equal(t, "40", quote.Amount.String())
	assert.Equal(t, "40", quote.BaseAmount.String())
	assert.Equal(t, "40", quote.Max.String())
	assert.Equal(t, "400", quote.TotalSupply.String())
	assert.Equal(t, "1", quote.MinStep.String())
	require.Len(t, quote.Payouts, 2)
	assert.Equal(t, "10", quote.Payouts[0].Amount.String())
	assert.Equal(t, "30", quote.Payouts[1].Amount.String())
	assert.False(t, quote.NoTokens)
	assert.True(t, quote.CanSubmit)
}

func TestFormWithoutTokens(t *testing.T) {
	form := redemption.NewForm(d("40"), 0, d("400"), nil)

	quote := form.Quote()
	assert.True(t, quote.NoTokens)
	assert.False(t, quote.CanSubmit)
	assert.Empty(t, quote.Payouts)

	called := false
	err := form.Submit(func(decimal.Decimal) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, redemption.ErrNothingToRedeem)
	assert.False(t, called)
}

func TestFormSubmitZeroAmount(t *testing.T) {
	form := redemption.NewForm(d("40"), 0, d("400"), []models.Token{{ID: "A", Amount: d("1")}})
	form.HandleSliderChange(decimal.Zero)

	err := form.Submit(func(decimal.Decimal) error { return nil })
	assert.ErrorIs(t, err, redemption.ErrNothingToRedeem)
}

func TestFormSubmitSendsBaseUnits(t *testing.T) {
	form := redemption.NewForm(d("2500000"), 6, d("10000000"), []models.Token{{ID: "A", Amount: d("1")}})
	form.HandleSliderChange(d("0.5"))

	var got decimal.Decimal
	err := form.Submit(func(base decimal.Decimal) error {
		got = base
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "1250000", got.String())
}

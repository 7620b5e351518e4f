package redemption

import (
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/resgate/models"
)

var one = decimal.NewFromInt(1)

// ComputeProportionalPayouts calcula, para cada token de reserva e na mesma
// ordem, redeemAmount * token.Amount / totalSupply. redeemAmount e
// totalSupply devem estar na mesma unidade; o resultado fica na unidade base
// de cada token. Com totalSupply zero todos os pagamentos são zero.
func ComputeProportionalPayouts(redeemAmount decimal.Decimal, tokens []models.Token, totalSupply decimal.Decimal) []models.Payout {
	payouts := make([]models.Payout, 0, len(tokens))
	for _, t := range tokens {
		payouts = append(payouts, models.Payout{
			TokenID:  t.ID,
			Symbol:   t.Symbol,
			Decimals: t.Decimals,
			Amount:   SafeDiv(redeemAmount.Mul(t.Amount), totalSupply),
		})
	}
	return payouts
}

// AmountFromSliderProgress retorna progress * balance arredondado para
// rounding casas. progress é limitado a [0, 1].
func AmountFromSliderProgress(progress, balance decimal.Decimal, rounding int32) decimal.Decimal {
	progress = clampProgress(progress)
	return progress.Mul(balance).Round(rounding)
}

// AmountFromInputValue limita o valor digitado a [0, formattedBalance] e
// deriva a posição do slider correspondente.
func AmountFromInputValue(raw, formattedBalance decimal.Decimal) (amount, progress decimal.Decimal) {
	amount = decimal.Min(raw, formattedBalance)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount, SafeDiv(amount, formattedBalance)
}

func clampProgress(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(one) {
		return one
	}
	return p
}

// Package redemption calcula resgates proporcionais de tokens de reserva e
// mantém o estado do formulário de resgate (posição do slider e valor digitado).
//
// Todas as contas usam decimal.Decimal. Arredondamentos são sempre "half away
// from zero" (decimal.Round).
package redemption

import "github.com/shopspring/decimal"

// MaxInputDecimalBase limita as casas decimais exibidas e digitáveis,
// independente da precisão real do token.
const MaxInputDecimalBase = 6

// SafeDiv retorna a/b, ou zero quando b é zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// DisplayRounding retorna min(MaxInputDecimalBase, decimals).
func DisplayRounding(decimals int) int32 {
	if decimals < 0 {
		return 0
	}
	if decimals > MaxInputDecimalBase {
		return MaxInputDecimalBase
	}
	return int32(decimals)
}

// ToBaseUnits converte um valor de exibição para unidades base,
// arredondando para inteiro.
func ToBaseUnits(display decimal.Decimal, decimals int) decimal.Decimal {
	return display.Shift(int32(decimals)).Round(0)
}

// FromBaseUnits converte unidades base para valor de exibição. É exato.
func FromBaseUnits(base decimal.Decimal, decimals int) decimal.Decimal {
	return base.Shift(-int32(decimals))
}

// FormatAmount converte unidades base para exibição com no máximo
// DisplayRounding(decimals) casas.
func FormatAmount(base decimal.Decimal, decimals int) decimal.Decimal {
	return FromBaseUnits(base, decimals).Round(DisplayRounding(decimals))
}

// MinTokenStep é o menor incremento aceito no campo de valor.
func MinTokenStep(decimals int) decimal.Decimal {
	return decimal.New(1, -DisplayRounding(decimals))
}

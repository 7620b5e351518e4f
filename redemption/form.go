package redemption

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/resgate/models"
)

// ErrNothingToRedeem indica que o formulário não pode ser enviado: valor
// zero ou nenhum token de reserva.
var ErrNothingToRedeem = errors.New("nada para resgatar")

// Form guarda o estado do formulário de resgate de um detentor.
// Não é seguro para uso concorrente; crie um por requisição.
type Form struct {
	balance     decimal.Decimal // unidades base
	decimals    int
	totalSupply decimal.Decimal // unidades base
	tokens      []models.Token

	value    decimal.Decimal // exibição
	progress decimal.Decimal
}

// NewForm inicia o formulário com o slider no máximo e o saldo inteiro
// como valor.
func NewForm(balance decimal.Decimal, decimals int, totalSupply decimal.Decimal, tokens []models.Token) *Form {
	return &Form{
		balance:     balance,
		decimals:    decimals,
		totalSupply: totalSupply,
		tokens:      tokens,
		value:       FormatAmount(balance, decimals),
		progress:    one,
	}
}

func (f *Form) formattedBalance() decimal.Decimal {
	return FormatAmount(f.balance, f.decimals)
}

// HandleSliderChange recalcula o valor a partir da nova posição do slider.
func (f *Form) HandleSliderChange(progress decimal.Decimal) {
	progress = clampProgress(progress)
	f.value = AmountFromSliderProgress(progress, f.formattedBalance(), DisplayRounding(f.decimals))
	f.progress = progress
}

// HandleAmountChange aplica um valor digitado pelo usuário.
func (f *Form) HandleAmountChange(raw decimal.Decimal) {
	f.value, f.progress = AmountFromInputValue(raw, f.formattedBalance())
}

// SetBalance troca o saldo e reaplica a última posição do slider ao novo saldo.
func (f *Form) SetBalance(balance decimal.Decimal) {
	f.balance = balance
	f.HandleSliderChange(f.progress)
}

// Value retorna o valor atual em unidades de exibição.
func (f *Form) Value() decimal.Decimal { return f.value }

// Progress retorna a posição atual do slider.
func (f *Form) Progress() decimal.Decimal { return f.progress }

// CanSubmit replica a regra do botão de resgate.
func (f *Form) CanSubmit() bool {
	return f.value.IsPositive() && len(f.tokens) > 0
}

// Quote devolve o estado atual com os pagamentos proporcionais.
func (f *Form) Quote() models.RedemptionQuote {
	displaySupply := FromBaseUnits(f.totalSupply, f.decimals)
	return models.RedemptionQuote{
		Amount:      f.value,
		BaseAmount:  ToBaseUnits(f.value, f.decimals),
		Progress:    f.progress,
		Max:         f.formattedBalance(),
		MinStep:     MinTokenStep(f.decimals),
		Balance:     f.formattedBalance(),
		TotalSupply: FormatAmount(f.totalSupply, f.decimals),
		Payouts:     ComputeProportionalPayouts(f.value, f.tokens, displaySupply),
		NoTokens:    len(f.tokens) == 0,
		CanSubmit:   f.CanSubmit(),
	}
}

// Submit entrega o valor atual, em unidades base, para onRedeem.
func (f *Form) Submit(onRedeem func(baseAmount decimal.Decimal) error) error {
	if !f.CanSubmit() {
		return ErrNothingToRedeem
	}
	return onRedeem(ToBaseUnits(f.value, f.decimals))
}

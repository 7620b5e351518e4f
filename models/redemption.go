package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RedemptionStatus acompanha a confirmação on-chain de um resgate.
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionConfirmed RedemptionStatus = "confirmed"
	RedemptionFailed    RedemptionStatus = "failed"
)

// RedemptionQuote é o estado do formulário de resgate num dado instante.
// Amount, Max, MinStep, Balance e TotalSupply são valores de exibição;
// BaseAmount está em unidades base do token resgatável.
type RedemptionQuote struct {
	Amount      decimal.Decimal `json:"amount"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Progress    decimal.Decimal `json:"progress"`
	Max         decimal.Decimal `json:"max"`
	MinStep     decimal.Decimal `json:"min_step"`
	Balance     decimal.Decimal `json:"balance"`
	TotalSupply decimal.Decimal `json:"total_supply"`
	Payouts     []Payout        `json:"payouts"`
	NoTokens    bool            `json:"no_tokens"`  // Nenhum token de reserva para resgatar
	CanSubmit   bool            `json:"can_submit"` // amount > 0 e existe ao menos um token
}

// Redemption registra um resgate enviado para a rede.
type Redemption struct {
	ID            string           `json:"id" db:"id"`
	PoolID        string           `json:"pool_id" db:"pool_id"`
	HolderPubKey  string           `json:"holder_pub_key" db:"holder_pub_key"`
	Amount        decimal.Decimal  `json:"amount" db:"amount"` // Unidades base queimadas
	Decimals      int              `json:"decimals" db:"decimals"`
	Status        RedemptionStatus `json:"status" db:"status"`
	TransactionID string           `json:"transaction_id" db:"transaction_id"`
	Payouts       []Payout         `json:"payouts" db:"-"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

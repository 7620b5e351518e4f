package models

import "github.com/shopspring/decimal"

// Token representa um token de reserva mantido pelo pool.
// Amount é o saldo em unidades base (antes do deslocamento decimal).
type Token struct {
	ID           string          `json:"id" db:"id"`
	PoolID       string          `json:"pool_id" db:"pool_id"`
	Symbol       string          `json:"symbol" db:"symbol"`
	MintAddress  string          `json:"mint_address" db:"mint_address"`
	VaultAddress string          `json:"vault_address" db:"vault_address"` // Conta de token que guarda a reserva
	Decimals     int             `json:"decimals" db:"decimals"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
}

// Payout é a parte proporcional de um token de reserva recebida num resgate,
// em unidades base do token de reserva. Nunca é persistido fora de um resgate.
type Payout struct {
	TokenID  string          `json:"token_id" db:"token_id"`
	Symbol   string          `json:"symbol" db:"symbol"`
	Decimals int             `json:"decimals" db:"decimals"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
}

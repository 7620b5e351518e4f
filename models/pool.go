package models

import "time"

// Pool representa o token resgatável (mint SPL) cujos detentores podem
// queimar saldo em troca de uma fração das reservas.
type Pool struct {
	ID          string    `json:"id" db:"id"`
	Symbol      string    `json:"symbol" db:"symbol"`             // Ex: "ORG"
	Name        string    `json:"name" db:"name"`                 // Ex: "Organization Token"
	MintAddress string    `json:"mint_address" db:"mint_address"` // Endereço do mint na Solana
	Decimals    int       `json:"decimals" db:"decimals"`         // Precisão on-chain do token
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

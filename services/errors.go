package services

import "errors"

var (
	// ErrNotFound indica pool ou resgate inexistente.
	ErrNotFound = errors.New("não encontrado")
	// ErrInvalidRequest indica dados de entrada inválidos (chaves, decimais...).
	ErrInvalidRequest = errors.New("requisição inválida")
	// ErrInsufficientBalance indica que o detentor não tem saldo on-chain.
	ErrInsufficientBalance = errors.New("saldo insuficiente para resgate na Solana")
	// ErrAccountNotFound indica conta de token inexistente na Solana.
	ErrAccountNotFound = errors.New("conta de token não encontrada")
)

package services_test

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/resgate/models"
)

// MockDB é uma implementação mock do storage.DB para testes de unidade
type MockDB struct {
	mock.Mock
}

func (m *MockDB) SavePool(pool models.Pool) error {
	args := m.Called(pool)
	return args.Error(0)
}
func (m *MockDB) GetPool(id string) (models.Pool, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Pool), args.Bool(1), args.Error(2)
}
func (m *MockDB) SaveToken(token models.Token) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *MockDB) GetTokensByPoolID(poolID string) ([]models.Token, error) {
	args := m.Called(poolID)
	return args.Get(0).([]models.Token), args.Error(1)
}
func (m *MockDB) SaveRedemption(r models.Redemption) error {
	args := m.Called(r)
	return args.Error(0)
}
func (m *MockDB) GetRedemption(id string) (models.Redemption, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Redemption), args.Bool(1), args.Error(2)
}

// MockSolanaIntegrationService é uma implementação mock do services.SolanaIntegrationService
type MockSolanaIntegrationService struct {
	mock.Mock
}

func (m *MockSolanaIntegrationService) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockSolanaIntegrationService) GetTokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, mint)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockSolanaIntegrationService) PrepareBurnTransaction(ctx context.Context, mint, sourceATA, owner solana.PublicKey, amount uint64, decimals uint8) (string, error) {
	args := m.Called(ctx, mint, sourceATA, owner, amount, decimals)
	return args.String(0), args.Error(1)
}
func (m *MockSolanaIntegrationService) SendSignedTransaction(ctx context.Context, signedTxBase64 string) (solana.Signature, error) {
	args := m.Called(ctx, signedTxBase64)
	return args.Get(0).(solana.Signature), args.Error(1)
}

package services

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/resgate/models"
	"github.com/ferreirogomes/resgate/redemption"
)

// Store é a persistência usada pelo serviço (implementada por storage.DB).
type Store interface {
	SavePool(pool models.Pool) error
	GetPool(id string) (models.Pool, bool, error)
	SaveToken(token models.Token) error
	GetTokensByPoolID(poolID string) ([]models.Token, error)
	SaveRedemption(r models.Redemption) error
	GetRedemption(id string) (models.Redemption, bool, error)
}

// Ledger é a fonte de saldos on-chain e o destino dos resgates
// (implementado por SolanaIntegrationService).
type Ledger interface {
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
	GetTokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error)
	PrepareBurnTransaction(ctx context.Context, mint, sourceATA, owner solana.PublicKey, amount uint64, decimals uint8) (string, error)
	SendSignedTransaction(ctx context.Context, signedTxBase64 string) (solana.Signature, error)
}

// RedemptionService orquestra cotações e resgates de tokens de reserva.
type RedemptionService struct {
	DB      Store
	SolanaS Ledger
}

// NewRedemptionService cria uma nova instância do serviço de resgate.
func NewRedemptionService(db Store, solanaS Ledger) *RedemptionService {
	return &RedemptionService{DB: db, SolanaS: solanaS}
}

// QuoteRequest descreve o estado do formulário enviado pelo cliente.
// Amount (valor digitado) tem precedência sobre Progress (slider).
// Sem nenhum dos dois, a cotação usa o saldo inteiro.
type QuoteRequest struct {
	PoolID       string           `json:"pool_id"`
	HolderPubKey string           `json:"holder_pub_key"`
	Progress     *decimal.Decimal `json:"progress,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
}

// PreparedRedemption é a transação de queima pronta para assinatura.
type PreparedRedemption struct {
	SerializedTransaction string                 `json:"serialized_transaction"`
	Quote                 models.RedemptionQuote `json:"quote"`
}

// CompleteRequest carrega a transação assinada pelo detentor.
// Amount está em unidades base do token resgatável.
type CompleteRequest struct {
	PoolID            string          `json:"pool_id"`
	HolderPubKey      string          `json:"holder_pub_key"`
	Amount            decimal.Decimal `json:"amount"`
	SignedTransaction string          `json:"signed_transaction"`
}

// CreatePool cadastra um token resgatável.
func (s *RedemptionService) CreatePool(symbol, name, mintAddress string, decimals int) (models.Pool, error) {
	if symbol == "" {
		return models.Pool{}, fmt.Errorf("%w: símbolo é obrigatório", ErrInvalidRequest)
	}
	if decimals < 0 || decimals > 255 {
		return models.Pool{}, fmt.Errorf("%w: decimais fora do intervalo: %d", ErrInvalidRequest, decimals)
	}
	if _, err := solana.PublicKeyFromBase58(mintAddress); err != nil {
		return models.Pool{}, fmt.Errorf("%w: endereço de mint inválido: %v", ErrInvalidRequest, err)
	}

	pool := models.Pool{
		ID:          uuid.New().String(),
		Symbol:      symbol,
		Name:        name,
		MintAddress: mintAddress,
		Decimals:    decimals,
		CreatedAt:   time.Now(),
	}
	if err := s.DB.SavePool(pool); err != nil {
		return models.Pool{}, err
	}
	return pool, nil
}

// GetPool obtém um pool pelo ID.
func (s *RedemptionService) GetPool(id string) (models.Pool, error) {
	pool, found, err := s.DB.GetPool(id)
	if err != nil {
		return models.Pool{}, fmt.Errorf("erro ao buscar pool: %w", err)
	}
	if !found {
		return models.Pool{}, fmt.Errorf("pool %s: %w", id, ErrNotFound)
	}
	return pool, nil
}

// AddReserveToken cadastra um token de reserva no pool. O saldo inicial é
// lido da conta vault na Solana.
func (s *RedemptionService) AddReserveToken(ctx context.Context, poolID, symbol, mintAddress, vaultAddress string, decimals int) (models.Token, error) {
	if _, err := s.GetPool(poolID); err != nil {
		return models.Token{}, err
	}
	if decimals < 0 || decimals > 255 {
		return models.Token{}, fmt.Errorf("%w: decimais fora do intervalo: %d", ErrInvalidRequest, decimals)
	}
	if _, err := solana.PublicKeyFromBase58(mintAddress); err != nil {
		return models.Token{}, fmt.Errorf("%w: endereço de mint inválido: %v", ErrInvalidRequest, err)
	}
	vault, err := solana.PublicKeyFromBase58(vaultAddress)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: endereço de vault inválido: %v", ErrInvalidRequest, err)
	}

	amount := decimal.Zero
	if balance, err := s.SolanaS.GetTokenAccountBalance(ctx, vault); err != nil {
		log.Printf("Saldo do vault %s indisponível, registrando zero: %v", vaultAddress, err)
	} else {
		amount = uint64ToDecimal(balance)
	}

	t := models.Token{
		ID:           uuid.New().String(),
		PoolID:       poolID,
		Symbol:       symbol,
		MintAddress:  mintAddress,
		VaultAddress: vaultAddress,
		Decimals:     decimals,
		Amount:       amount,
	}
	if err := s.DB.SaveToken(t); err != nil {
		return models.Token{}, err
	}
	return t, nil
}

// GetReserveTokens lista os tokens de reserva do pool com o último saldo gravado.
func (s *RedemptionService) GetReserveTokens(poolID string) ([]models.Token, error) {
	if _, err := s.GetPool(poolID); err != nil {
		return nil, err
	}
	return s.DB.GetTokensByPoolID(poolID)
}

// formState agrupa o formulário e os dados on-chain usados para montá-lo.
type formState struct {
	form    *redemption.Form
	pool    models.Pool
	mint    solana.PublicKey
	holder  solana.PublicKey
	ata     solana.PublicKey
	balance uint64
}

// loadForm monta o formulário com saldo, supply e reservas atuais.
func (s *RedemptionService) loadForm(ctx context.Context, poolID, holderPubKey string) (*formState, error) {
	pool, err := s.GetPool(poolID)
	if err != nil {
		return nil, err
	}
	mint, err := solana.PublicKeyFromBase58(pool.MintAddress)
	if err != nil {
		return nil, fmt.Errorf("endereço de Mint inválido: %w", err)
	}
	holder, err := solana.PublicKeyFromBase58(holderPubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: chave pública do detentor inválida: %v", ErrInvalidRequest, err)
	}
	ata, _, err := solana.FindAssociatedTokenAddress(holder, mint)
	if err != nil {
		return nil, fmt.Errorf("falha ao encontrar ATA do detentor: %w", err)
	}

	balance, err := s.SolanaS.GetTokenAccountBalance(ctx, ata)
	if isAccountNotFound(err) {
		// Detentor sem conta de token para o mint: saldo zero.
		balance, err = 0, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao verificar saldo do detentor na Solana: %w", err)
	}
	supply, err := s.SolanaS.GetTokenSupply(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("falha ao verificar supply na Solana: %w", err)
	}

	tokens, err := s.DB.GetTokensByPoolID(pool.ID)
	if err != nil {
		return nil, err
	}
	s.refreshReserves(ctx, tokens)

	form := redemption.NewForm(uint64ToDecimal(balance), pool.Decimals, uint64ToDecimal(supply), tokens)
	return &formState{form: form, pool: pool, mint: mint, holder: holder, ata: ata, balance: balance}, nil
}

// refreshReserves atualiza o saldo de cada reserva a partir do vault. Em caso
// de falha, mantém o último saldo gravado.
func (s *RedemptionService) refreshReserves(ctx context.Context, tokens []models.Token) {
	for i := range tokens {
		vault, err := solana.PublicKeyFromBase58(tokens[i].VaultAddress)
		if err != nil {
			log.Printf("Vault inválido para token %s: %v", tokens[i].ID, err)
			continue
		}
		balance, err := s.SolanaS.GetTokenAccountBalance(ctx, vault)
		if err != nil {
			log.Printf("Falha ao atualizar reserva %s, usando saldo gravado: %v", tokens[i].Symbol, err)
			continue
		}
		tokens[i].Amount = uint64ToDecimal(balance)
	}
}

func applyRequest(form *redemption.Form, req QuoteRequest) {
	switch {
	case req.Amount != nil:
		form.HandleAmountChange(*req.Amount)
	case req.Progress != nil:
		form.HandleSliderChange(*req.Progress)
	}
}

// Quote calcula quanto de cada reserva o detentor recebe pelo valor pedido.
func (s *RedemptionService) Quote(ctx context.Context, req QuoteRequest) (models.RedemptionQuote, error) {
	st, err := s.loadForm(ctx, req.PoolID, req.HolderPubKey)
	if err != nil {
		return models.RedemptionQuote{}, err
	}
	applyRequest(st.form, req)
	return st.form.Quote(), nil
}

// PrepareRedemption monta a transação de queima para o valor pedido.
// O valor em unidades base é limitado ao saldo on-chain, pois o
// arredondamento de exibição pode ultrapassá-lo.
func (s *RedemptionService) PrepareRedemption(ctx context.Context, req QuoteRequest) (PreparedRedemption, error) {
	st, err := s.loadForm(ctx, req.PoolID, req.HolderPubKey)
	if err != nil {
		return PreparedRedemption{}, err
	}
	applyRequest(st.form, req)
	quote := st.form.Quote()

	var serializedTx string
	err = st.form.Submit(func(baseAmount decimal.Decimal) error {
		if st.balance == 0 {
			return ErrInsufficientBalance
		}
		amount := st.balance
		if baseAmount.LessThan(uint64ToDecimal(st.balance)) {
			amount = baseAmount.BigInt().Uint64()
		} else {
			// Cotação refeita sobre o saldo exato que será queimado.
			st.form.HandleAmountChange(redemption.FromBaseUnits(uint64ToDecimal(amount), st.pool.Decimals))
			quote = st.form.Quote()
		}
		if amount == 0 {
			return redemption.ErrNothingToRedeem
		}
		quote.BaseAmount = uint64ToDecimal(amount)

		tx, err := s.SolanaS.PrepareBurnTransaction(ctx, st.mint, st.ata, st.holder, amount, uint8(st.pool.Decimals))
		if err != nil {
			return fmt.Errorf("falha ao preparar transação de queima: %w", err)
		}
		serializedTx = tx
		return nil
	})
	if err != nil {
		return PreparedRedemption{}, err
	}

	return PreparedRedemption{SerializedTransaction: serializedTx, Quote: quote}, nil
}

// CompleteRedemption confere a queima contida na transação assinada, envia a
// transação e registra o resgate como pendente.
// O listener confirma o resgate quando a transação for finalizada.
func (s *RedemptionService) CompleteRedemption(ctx context.Context, req CompleteRequest) (models.Redemption, error) {
	if req.SignedTransaction == "" {
		return models.Redemption{}, fmt.Errorf("%w: transação assinada é obrigatória", ErrInvalidRequest)
	}
	if !req.Amount.IsPositive() || !req.Amount.IsInteger() {
		return models.Redemption{}, fmt.Errorf("%w: quantidade deve ser um inteiro positivo em unidades base", ErrInvalidRequest)
	}

	st, err := s.loadForm(ctx, req.PoolID, req.HolderPubKey)
	if err != nil {
		return models.Redemption{}, err
	}
	if req.Amount.GreaterThan(uint64ToDecimal(st.balance)) {
		return models.Redemption{}, ErrInsufficientBalance
	}
	if err := checkBurn(req.SignedTransaction, st, req.Amount); err != nil {
		return models.Redemption{}, err
	}
	// Os pagamentos são calculados antes do envio, com o supply anterior à queima.
	st.form.HandleAmountChange(redemption.FromBaseUnits(req.Amount, st.pool.Decimals))
	quote := st.form.Quote()

	txID, err := s.SolanaS.SendSignedTransaction(ctx, req.SignedTransaction)
	if err != nil {
		return models.Redemption{}, fmt.Errorf("falha ao enviar transação assinada para a Solana: %w", err)
	}

	now := time.Now()
	r := models.Redemption{
		ID:            uuid.New().String(),
		PoolID:        st.pool.ID,
		HolderPubKey:  st.holder.String(),
		Amount:        req.Amount,
		Decimals:      st.pool.Decimals,
		Status:        models.RedemptionPending,
		TransactionID: txID.String(),
		Payouts:       quote.Payouts,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.DB.SaveRedemption(r); err != nil {
		// A transação já foi para a blockchain; o registro interno falhou.
		log.Printf("ERRO: Transação Solana %s enviada, mas falha ao salvar resgate: %v", txID, err)
		return models.Redemption{}, fmt.Errorf("transação enviada, mas falha ao registrar internamente: %w", err)
	}
	return r, nil
}

// GetRedemption obtém um resgate pelo ID.
func (s *RedemptionService) GetRedemption(id string) (models.Redemption, error) {
	r, found, err := s.DB.GetRedemption(id)
	if err != nil {
		return models.Redemption{}, fmt.Errorf("erro ao buscar resgate: %w", err)
	}
	if !found {
		return models.Redemption{}, fmt.Errorf("resgate %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// checkBurn garante que a transação assinada queima exatamente amount do
// mint do pool, a partir da ATA do detentor.
func checkBurn(signedTxBase64 string, st *formState, amount decimal.Decimal) error {
	burn, err := DecodeBurnTransaction(signedTxBase64)
	if err != nil {
		return err
	}
	switch {
	case !burn.Mint.Equals(st.mint):
		return fmt.Errorf("%w: queima de mint %s, esperado %s", ErrInvalidRequest, burn.Mint, st.mint)
	case !burn.Source.Equals(st.ata):
		return fmt.Errorf("%w: queima da conta %s, esperada ATA %s", ErrInvalidRequest, burn.Source, st.ata)
	case !burn.Owner.Equals(st.holder):
		return fmt.Errorf("%w: owner da queima %s difere do detentor", ErrInvalidRequest, burn.Owner)
	case int(burn.Decimals) != st.pool.Decimals:
		return fmt.Errorf("%w: decimais da queima %d, esperado %d", ErrInvalidRequest, burn.Decimals, st.pool.Decimals)
	case !uint64ToDecimal(burn.Amount).Equal(amount):
		return fmt.Errorf("%w: transação queima %d, informado %s", ErrInvalidRequest, burn.Amount, amount)
	}
	return nil
}

func uint64ToDecimal(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

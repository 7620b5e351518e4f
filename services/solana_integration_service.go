package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/ferreirogomes/resgate/models"
)

// SolanaIntegrationService lê saldos e supply da Solana e monta as
// transações de queima dos resgates. O FeePayer paga as taxas de rede.
type SolanaIntegrationService struct {
	RPCClient *rpc.Client
	FeePayer  solana.PrivateKey
}

// NewSolanaIntegrationService cria o serviço a partir do endpoint RPC e da
// chave privada (base58) do fee payer.
func NewSolanaIntegrationService(rpcEndpoint, feePayerKeyBase58 string) (*SolanaIntegrationService, error) {
	feePayer, err := solana.PrivateKeyFromBase58(feePayerKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar chave privada do fee payer: %w", err)
	}
	return &SolanaIntegrationService{
		RPCClient: rpc.New(rpcEndpoint),
		FeePayer:  feePayer,
	}, nil
}

// GetTokenAccountBalance retorna o saldo de uma conta de token em unidades base.
func (s *SolanaIntegrationService) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := s.RPCClient.GetTokenAccountBalance(ctx, account, rpc.CommitmentFinalized)
	if isAccountNotFound(err) {
		return 0, fmt.Errorf("conta %s: %w", account, ErrAccountNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("falha ao obter saldo da conta %s: %w", account, err)
	}
	if out == nil || out.Value == nil {
		return 0, fmt.Errorf("resposta vazia para saldo da conta %s", account)
	}
	return parseTokenAmount(out.Value.Amount)
}

// GetTokenSupply retorna o supply total de um mint em unidades base.
func (s *SolanaIntegrationService) GetTokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	out, err := s.RPCClient.GetTokenSupply(ctx, mint, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("falha ao obter supply do mint %s: %w", mint, err)
	}
	if out == nil || out.Value == nil {
		return 0, fmt.Errorf("resposta vazia para supply do mint %s", mint)
	}
	return parseTokenAmount(out.Value.Amount)
}

// PrepareBurnTransaction serializa uma transação de queima (BurnChecked) para
// assinatura pelo detentor. A transação é assinada apenas pelo FeePayer;
// a assinatura do owner fica em branco.
func (s *SolanaIntegrationService) PrepareBurnTransaction(
	ctx context.Context,
	mint, sourceATA, owner solana.PublicKey,
	amount uint64,
	decimals uint8,
) (string, error) {
	resp, err := s.RPCClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("falha ao obter blockhash: %w", err)
	}

	burnInstruction := token.NewBurnCheckedInstruction(
		amount,
		decimals,
		sourceATA,
		mint,
		owner,
		nil,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{burnInstruction},
		resp.Value.Blockhash,
		solana.TransactionPayer(s.FeePayer.PublicKey()),
	)
	if err != nil {
		return "", fmt.Errorf("falha ao criar transação de queima: %w", err)
	}

	if err := s.signAsFeePayer(tx); err != nil {
		return "", err
	}

	serializedTx, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("falha ao serializar transação: %w", err)
	}
	return base64.StdEncoding.EncodeToString(serializedTx), nil
}

// signAsFeePayer preenche somente a assinatura do FeePayer. As demais
// posições ficam zeradas até o detentor assinar no cliente.
func (s *SolanaIntegrationService) signAsFeePayer(tx *solana.Transaction) error {
	payload, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("falha ao serializar mensagem: %w", err)
	}
	signature, err := s.FeePayer.Sign(payload)
	if err != nil {
		return fmt.Errorf("falha ao assinar transação pelo FeePayer: %w", err)
	}

	numSigners := int(tx.Message.Header.NumRequiredSignatures)
	tx.Signatures = make([]solana.Signature, numSigners)
	for i := 0; i < numSigners && i < len(tx.Message.AccountKeys); i++ {
		if tx.Message.AccountKeys[i].Equals(s.FeePayer.PublicKey()) {
			tx.Signatures[i] = signature
			return nil
		}
	}
	return fmt.Errorf("fee payer %s não está entre os signatários", s.FeePayer.PublicKey())
}

// SendSignedTransaction recebe uma transação já assinada (base64) e a envia para a rede.
func (s *SolanaIntegrationService) SendSignedTransaction(ctx context.Context, signedTxBase64 string) (solana.Signature, error) {
	tx, err := decodeTransaction(signedTxBase64)
	if err != nil {
		return solana.Signature{}, err
	}

	txID, err := s.RPCClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("falha ao enviar transação assinada: %w", err)
	}
	log.Printf("Transação de resgate enviada: %s", txID)
	return txID, nil
}

// GetSignatureStatus traduz o status de uma assinatura para o status do resgate.
// Assinaturas ainda desconhecidas pelo cluster continuam pendentes.
func (s *SolanaIntegrationService) GetSignatureStatus(ctx context.Context, signature solana.Signature) (models.RedemptionStatus, error) {
	out, err := s.RPCClient.GetSignatureStatuses(ctx, true, signature)
	if err != nil {
		return models.RedemptionPending, fmt.Errorf("falha ao verificar status da transação %s: %w", signature, err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return models.RedemptionPending, nil
	}

	status := out.Value[0]
	switch {
	case status.Err != nil:
		return models.RedemptionFailed, nil
	case status.ConfirmationStatus == rpc.ConfirmationStatusFinalized:
		return models.RedemptionConfirmed, nil
	default:
		return models.RedemptionPending, nil
	}
}

// BurnDetails descreve a queima contida numa transação de resgate.
type BurnDetails struct {
	Source   solana.PublicKey
	Mint     solana.PublicKey
	Owner    solana.PublicKey
	Amount   uint64
	Decimals uint8
}

// DecodeBurnTransaction extrai a instrução BurnChecked de uma transação
// serializada em base64. A transação deve ter exatamente uma instrução do
// token program, e ela deve ser BurnChecked.
func DecodeBurnTransaction(signedTxBase64 string) (BurnDetails, error) {
	tx, err := decodeTransaction(signedTxBase64)
	if err != nil {
		return BurnDetails{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var burns []BurnDetails
	keys := tx.Message.AccountKeys
	for _, ci := range tx.Message.Instructions {
		if int(ci.ProgramIDIndex) >= len(keys) {
			return BurnDetails{}, fmt.Errorf("%w: programa fora da lista de contas", ErrInvalidRequest)
		}
		if !keys[ci.ProgramIDIndex].Equals(token.ProgramID) {
			continue
		}
		if len(ci.Data) == 0 || ci.Data[0] != token.Instruction_BurnChecked {
			return BurnDetails{}, fmt.Errorf("%w: instrução de token diferente de BurnChecked", ErrInvalidRequest)
		}

		accounts := make([]*solana.AccountMeta, 0, len(ci.Accounts))
		for _, idx := range ci.Accounts {
			if int(idx) >= len(keys) {
				return BurnDetails{}, fmt.Errorf("%w: conta fora da lista de contas", ErrInvalidRequest)
			}
			accounts = append(accounts, solana.Meta(keys[idx]))
		}
		if len(accounts) < 3 {
			return BurnDetails{}, fmt.Errorf("%w: BurnChecked sem as contas obrigatórias", ErrInvalidRequest)
		}

		inst, err := token.DecodeInstruction(accounts, ci.Data)
		if err != nil {
			return BurnDetails{}, fmt.Errorf("%w: falha ao decodificar BurnChecked: %v", ErrInvalidRequest, err)
		}
		burn, ok := inst.Impl.(*token.BurnChecked)
		if !ok || burn.Amount == nil || burn.Decimals == nil {
			return BurnDetails{}, fmt.Errorf("%w: BurnChecked incompleto", ErrInvalidRequest)
		}
		burns = append(burns, BurnDetails{
			Source:   burn.GetSourceAccount().PublicKey,
			Mint:     burn.GetMintAccount().PublicKey,
			Owner:    burn.GetOwnerAccount().PublicKey,
			Amount:   *burn.Amount,
			Decimals: *burn.Decimals,
		})
	}

	if len(burns) != 1 {
		return BurnDetails{}, fmt.Errorf("%w: esperada uma instrução BurnChecked, encontradas %d", ErrInvalidRequest, len(burns))
	}
	return burns[0], nil
}

func decodeTransaction(signedTxBase64 string) (*solana.Transaction, error) {
	signedTxBytes, err := base64.StdEncoding.DecodeString(signedTxBase64)
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar transação assinada: %w", err)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(signedTxBytes))
	if err != nil {
		return nil, fmt.Errorf("falha ao deserializar transação: %w", err)
	}
	return tx, nil
}

// isAccountNotFound reconhece o erro do RPC para conta de token inexistente.
func isAccountNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAccountNotFound) || strings.Contains(err.Error(), "could not find account")
}

func parseTokenAmount(amount string) (uint64, error) {
	v, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantidade de token inválida %q: %w", amount, err)
	}
	return v, nil
}

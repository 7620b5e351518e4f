package blockchain_listener

import (
	"context"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/ferreirogomes/resgate/models"
)

// RedemptionStore é o subconjunto do storage.DB usado pelo listener.
type RedemptionStore interface {
	GetRedemptionsByStatus(status models.RedemptionStatus) ([]models.Redemption, error)
	UpdateRedemptionStatus(id string, status models.RedemptionStatus) error
}

// SignatureChecker consulta o status de uma transação na Solana.
type SignatureChecker interface {
	GetSignatureStatus(ctx context.Context, signature solana.Signature) (models.RedemptionStatus, error)
}

// BlockchainListener acompanha os resgates pendentes e atualiza o DB
// quando a transação de queima é finalizada ou falha.
type BlockchainListener struct {
	DB       RedemptionStore
	Ledger   SignatureChecker
	Interval time.Duration
}

// NewBlockchainListener cria uma nova instância do listener.
func NewBlockchainListener(db RedemptionStore, ledger SignatureChecker, interval time.Duration) *BlockchainListener {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &BlockchainListener{DB: db, Ledger: ledger, Interval: interval}
}

// StartListening verifica os resgates pendentes a cada intervalo até o
// contexto ser cancelado.
func (l *BlockchainListener) StartListening(ctx context.Context) {
	log.Printf("Iniciando listener da blockchain (intervalo %s)...", l.Interval)
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		l.Reconcile(ctx)
		select {
		case <-ctx.Done():
			log.Println("Listener da blockchain encerrado.")
			return
		case <-ticker.C:
		}
	}
}

// Reconcile consulta cada resgate pendente e retorna quantos mudaram de status.
func (l *BlockchainListener) Reconcile(ctx context.Context) int {
	pending, err := l.DB.GetRedemptionsByStatus(models.RedemptionPending)
	if err != nil {
		log.Printf("Falha ao listar resgates pendentes: %v", err)
		return 0
	}

	updated := 0
	for _, r := range pending {
		if ctx.Err() != nil {
			break
		}

		signature, err := solana.SignatureFromBase58(r.TransactionID)
		if err != nil {
			log.Printf("Resgate %s com assinatura inválida %q: %v", r.ID, r.TransactionID, err)
			continue
		}

		status, err := l.Ledger.GetSignatureStatus(ctx, signature)
		if err != nil {
			log.Printf("Erro ao verificar transação %s: %v", r.TransactionID, err)
			continue
		}
		if status == models.RedemptionPending {
			continue
		}

		if err := l.DB.UpdateRedemptionStatus(r.ID, status); err != nil {
			log.Printf("Falha ao atualizar resgate %s para %s: %v", r.ID, status, err)
			continue
		}
		log.Printf("Resgate %s %s (TxID %s)", r.ID, status, r.TransactionID)
		updated++
	}
	return updated
}

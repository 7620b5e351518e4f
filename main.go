package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferreirogomes/resgate/blockchain_listener"
	"github.com/ferreirogomes/resgate/config"
	"github.com/ferreirogomes/resgate/handlers"
	"github.com/ferreirogomes/resgate/services"
	"github.com/ferreirogomes/resgate/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Falha fatal ao conectar ao banco de dados e aplicar migrações: %v", err)
	}
	defer db.Close()

	solanaIntegrationService, err := services.NewSolanaIntegrationService(cfg.SolanaRPCURL, cfg.SolanaFeePayerPrivateKey)
	if err != nil {
		log.Fatalf("Falha ao inicializar serviço Solana: %v", err)
	}

	redemptionService := services.NewRedemptionService(db, solanaIntegrationService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// O listener roda em uma goroutine separada até o encerramento.
	listener := blockchain_listener.NewBlockchainListener(db, solanaIntegrationService, cfg.ListenerPollInterval)
	go listener.StartListening(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(redemptionService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Erro ao encerrar servidor: %v", err)
		}
	}()

	fmt.Printf("Servidor de resgate rodando na porta %s...\n", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/ferreirogomes/resgate/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB representa a conexão com o banco de dados PostgreSQL.
type DB struct {
	*sqlx.DB
}

// NewDB conecta-se ao PostgreSQL e executa as migrações.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}
	log.Println("Conexão com PostgreSQL estabelecida com sucesso.")

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return &DB{db}, nil
}

// runMigrations aplica as migrações embutidas no binário.
func runMigrations(db *sql.DB) error {
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	if n > 0 {
		log.Printf("Aplicadas %d migrações ao banco de dados.", n)
	} else {
		log.Println("Nenhuma migração nova para aplicar.")
	}
	return nil
}

// SavePool insere ou atualiza um pool.
func (d *DB) SavePool(pool models.Pool) error {
	query := `
		INSERT INTO pools (id, symbol, name, mint_address, decimals, created_at)
		VALUES (:id, :symbol, :name, :mint_address, :decimals, :created_at)
		ON CONFLICT (id) DO UPDATE
		SET symbol = EXCLUDED.symbol, name = EXCLUDED.name`
	if _, err := d.NamedExec(query, pool); err != nil {
		return fmt.Errorf("falha ao salvar pool: %w", err)
	}
	return nil
}

// GetPool busca um pool pelo ID.
func (d *DB) GetPool(id string) (models.Pool, bool, error) {
	var pool models.Pool
	err := d.Get(&pool, `SELECT id, symbol, name, mint_address, decimals, created_at FROM pools WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pool{}, false, nil
	}
	if err != nil {
		return models.Pool{}, false, fmt.Errorf("falha ao buscar pool: %w", err)
	}
	return pool, true, nil
}

// SaveToken insere ou atualiza um token de reserva.
func (d *DB) SaveToken(token models.Token) error {
	query := `
		INSERT INTO reserve_tokens (id, pool_id, symbol, mint_address, vault_address, decimals, amount)
		VALUES (:id, :pool_id, :symbol, :mint_address, :vault_address, :decimals, :amount)
		ON CONFLICT (id) DO UPDATE
		SET symbol = EXCLUDED.symbol, vault_address = EXCLUDED.vault_address, amount = EXCLUDED.amount`
	if _, err := d.NamedExec(query, token); err != nil {
		return fmt.Errorf("falha ao salvar token de reserva: %w", err)
	}
	return nil
}

// GetTokensByPoolID retorna os tokens de reserva na ordem em que foram cadastrados.
func (d *DB) GetTokensByPoolID(poolID string) ([]models.Token, error) {
	tokens := []models.Token{}
	err := d.Select(&tokens, `
		SELECT id, pool_id, symbol, mint_address, vault_address, decimals, amount
		FROM reserve_tokens WHERE pool_id = $1
		ORDER BY created_at, id`, poolID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar tokens de reserva: %w", err)
	}
	return tokens, nil
}

// SaveRedemption grava o resgate e seus pagamentos numa única transação.
func (d *DB) SaveRedemption(r models.Redemption) error {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`
		INSERT INTO redemptions (id, pool_id, holder_pub_key, amount, decimals, status, transaction_id, created_at, updated_at)
		VALUES (:id, :pool_id, :holder_pub_key, :amount, :decimals, :status, :transaction_id, :created_at, :updated_at)`, r)
	if err != nil {
		return fmt.Errorf("falha ao salvar resgate: %w", err)
	}

	for i, p := range r.Payouts {
		_, err = tx.Exec(`
			INSERT INTO redemption_payouts (redemption_id, position, token_id, symbol, decimals, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`, r.ID, i, p.TokenID, p.Symbol, p.Decimals, p.Amount)
		if err != nil {
			return fmt.Errorf("falha ao salvar pagamento do resgate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}
	return nil
}

const redemptionColumns = `id, pool_id, holder_pub_key, amount, decimals, status, transaction_id, created_at, updated_at`

// GetRedemption busca um resgate e seus pagamentos.
func (d *DB) GetRedemption(id string) (models.Redemption, bool, error) {
	var r models.Redemption
	err := d.Get(&r, `SELECT `+redemptionColumns+` FROM redemptions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Redemption{}, false, nil
	}
	if err != nil {
		return models.Redemption{}, false, fmt.Errorf("falha ao buscar resgate: %w", err)
	}

	r.Payouts = []models.Payout{}
	err = d.Select(&r.Payouts, `
		SELECT token_id, symbol, decimals, amount
		FROM redemption_payouts WHERE redemption_id = $1
		ORDER BY position`, id)
	if err != nil {
		return models.Redemption{}, false, fmt.Errorf("falha ao buscar pagamentos do resgate: %w", err)
	}
	return r, true, nil
}

// GetRedemptionsByStatus lista resgates num status, mais antigos primeiro.
// Os pagamentos não são carregados.
func (d *DB) GetRedemptionsByStatus(status models.RedemptionStatus) ([]models.Redemption, error) {
	redemptions := []models.Redemption{}
	err := d.Select(&redemptions, `SELECT `+redemptionColumns+` FROM redemptions WHERE status = $1 ORDER BY created_at`, status)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar resgates: %w", err)
	}
	return redemptions, nil
}

// UpdateRedemptionStatus atualiza o status de um resgate, útil para o listener.
func (d *DB) UpdateRedemptionStatus(id string, status models.RedemptionStatus) error {
	res, err := d.Exec(`UPDATE redemptions SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar resgate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao verificar atualização do resgate: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resgate %s não encontrado", id)
	}
	return nil
}

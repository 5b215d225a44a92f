package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the necessary database tables if they don't exist
func InitSchema(db *sql.DB) error {
	log.Info("Initializing vistoria service database schema...")

	rotasTableSQL := `
	CREATE TABLE IF NOT EXISTS rotas(
		id CHAR(36) NOT NULL,
		condominio VARCHAR(255) NOT NULL,
		endereco VARCHAR(255) NOT NULL,
		bairro VARCHAR(255) NOT NULL,
		administradora VARCHAR(255) NOT NULL,
		cnpj VARCHAR(32) NOT NULL DEFAULT '',
		vistoriador_id CHAR(36) NOT NULL,
		vistoriador_nome VARCHAR(255) NOT NULL,
		data DATE NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pendente',
		observacao_condominio TEXT,
		cancelamento JSON NULL,
		PRIMARY KEY (id),
		INDEX rotas_vistoriador (vistoriador_id),
		INDEX rotas_status (status)
	)`

	if _, err := db.Exec(rotasTableSQL); err != nil {
		return fmt.Errorf("failed to create rotas table: %w", err)
	}
	log.Info("rotas table created/verified")

	// Snapshots are insert-only; there is intentionally no UPDATE path for
	// this table anywhere in the service.
	vistoriasTableSQL := `
	CREATE TABLE IF NOT EXISTS vistorias(
		id CHAR(36) NOT NULL,
		rota_id CHAR(36) NOT NULL,
		data DATE NOT NULL,
		horario CHAR(5) NOT NULL,
		status VARCHAR(32) NOT NULL,
		vistoriador_id CHAR(36) NOT NULL,
		vistoriador_nome VARCHAR(255) NOT NULL,
		condominio VARCHAR(255) NOT NULL,
		endereco VARCHAR(255) NOT NULL,
		bairro VARCHAR(255) NOT NULL,
		administradora VARCHAR(255) NOT NULL,
		cnpj VARCHAR(32) NOT NULL DEFAULT '',
		responsavel_local VARCHAR(255) NOT NULL DEFAULT '',
		setor VARCHAR(255) NOT NULL DEFAULT '',
		atividades JSON NOT NULL,
		peric_classificacao JSON NOT NULL,
		checklist JSON NOT NULL,
		fotos JSON NOT NULL,
		assinatura_tecnico JSON NULL,
		assinatura_responsavel JSON NULL,
		cancelamento JSON NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX vistorias_rota (rota_id, status, data, horario)
	)`

	if _, err := db.Exec(vistoriasTableSQL); err != nil {
		return fmt.Errorf("failed to create vistorias table: %w", err)
	}
	log.Info("vistorias table created/verified")

	log.Info("Database schema initialization completed")
	return nil
}

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"vistoria-service/models"
	"vistoria-service/workflow"
)

const rotaColumns = `id, condominio, endereco, bairro, administradora, cnpj,
		vistoriador_id, vistoriador_nome, data, status,
		COALESCE(observacao_condominio, ''), cancelamento`

// GetRouteByID returns a single route or ErrRouteNotFound.
func (d *Database) GetRouteByID(ctx context.Context, id string) (*models.Rota, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+rotaColumns+` FROM rotas WHERE id = ?`, id)
	return scanRota(row)
}

// StartRoute moves a route from Pendente to Em Andamento. The update is
// guarded on the current status so two concurrent starts cannot both
// succeed; the loser gets ErrStateConflict.
func (d *Database) StartRoute(ctx context.Context, id string) (*models.Rota, error) {
	res, err := d.db.ExecContext(ctx,
		`UPDATE rotas SET status = ? WHERE id = ? AND status = ?`,
		models.StatusEmAndamento, id, models.StatusPendente)
	if err != nil {
		return nil, fmt.Errorf("failed to start route %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing route from one that is past Pendente.
		rota, err := d.GetRouteByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrStateConflict,
			(&workflow.TransitionError{From: rota.Status, To: models.StatusEmAndamento}).Error())
	}

	return d.GetRouteByID(ctx, id)
}

// FinalizeRoute commits a finalize as one unit: the status-guarded route
// update and the snapshot insert happen in the same transaction, so either
// both persist or neither does. The status guard doubles as the
// compare-and-swap that serializes concurrent finalize attempts.
func (d *Database) FinalizeRoute(ctx context.Context, rotaID string, v *models.Vistoria, note string, cancel *models.Cancelamento) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin finalize transaction: %w", err)
	}
	defer tx.Rollback()

	cancelJSON, err := marshalNullable(cancel)
	if err != nil {
		return fmt.Errorf("failed to encode cancelamento: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rotas SET status = ?, observacao_condominio = ?, cancelamento = ?
		 WHERE id = ? AND status IN (?, ?)`,
		v.Status, note, cancelJSON,
		rotaID, models.StatusPendente, models.StatusEmAndamento)
	if err != nil {
		return fmt.Errorf("failed to update route %s: %w", rotaID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rota %s não está mais em status finalizável", ErrStateConflict, rotaID)
	}

	if err := insertInspection(ctx, tx, v); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finalize transaction: %w", err)
	}
	return nil
}

func scanRota(row *sql.Row) (*models.Rota, error) {
	var rota models.Rota
	var cancelJSON sql.NullString
	err := row.Scan(
		&rota.ID,
		&rota.Condominio,
		&rota.Endereco,
		&rota.Bairro,
		&rota.Administradora,
		&rota.CNPJ,
		&rota.VistoriadorID,
		&rota.VistoriadorNome,
		&rota.Data,
		&rota.Status,
		&rota.ObservacaoCondominio,
		&cancelJSON,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan route: %w", err)
	}

	if cancelJSON.Valid && cancelJSON.String != "" {
		var cancel models.Cancelamento
		if err := json.Unmarshal([]byte(cancelJSON.String), &cancel); err != nil {
			return nil, fmt.Errorf("failed to decode cancelamento: %w", err)
		}
		rota.Cancelamento = &cancel
	}

	return &rota, nil
}

// marshalNullable encodes v as JSON, mapping a nil pointer to SQL NULL.
func marshalNullable(v *models.Cancelamento) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"vistoria-service/models"
)

// insertInspection persists the snapshot inside the finalize transaction.
func insertInspection(ctx context.Context, tx *sql.Tx, v *models.Vistoria) error {
	atividades, err := json.Marshal(v.Atividades)
	if err != nil {
		return fmt.Errorf("failed to encode atividades: %w", err)
	}
	peric, err := json.Marshal(v.PericClassificacao)
	if err != nil {
		return fmt.Errorf("failed to encode pericClassificacao: %w", err)
	}
	checklist, err := json.Marshal(v.Checklist)
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}
	fotos, err := json.Marshal(v.Fotos)
	if err != nil {
		return fmt.Errorf("failed to encode fotos: %w", err)
	}
	sigTech, err := marshalImage(v.Assinaturas.Tecnico)
	if err != nil {
		return fmt.Errorf("failed to encode assinatura do técnico: %w", err)
	}
	sigLocal, err := marshalImage(v.Assinaturas.Responsavel)
	if err != nil {
		return fmt.Errorf("failed to encode assinatura do responsável: %w", err)
	}
	cancel, err := marshalNullable(v.Cancelamento)
	if err != nil {
		return fmt.Errorf("failed to encode cancelamento: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO vistorias (
			id, rota_id, data, horario, status,
			vistoriador_id, vistoriador_nome,
			condominio, endereco, bairro, administradora, cnpj,
			responsavel_local, setor,
			atividades, peric_classificacao, checklist, fotos,
			assinatura_tecnico, assinatura_responsavel, cancelamento
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.RotaID, v.Data, v.Horario, v.Status,
		v.VistoriadorID, v.VistoriadorNome,
		v.Condominio, v.Endereco, v.Bairro, v.Administradora, v.CNPJ,
		v.ResponsavelLocal, v.Setor,
		string(atividades), string(peric), string(checklist), string(fotos),
		sigTech, sigLocal, cancel)
	if err != nil {
		return fmt.Errorf("failed to insert inspection snapshot: %w", err)
	}
	return nil
}

// GetLatestFinalizedInspection selects the inspection the report is built
// from: the most recent finalized snapshot for the route, by visit date then
// visit time, or ErrInspectionNotFound.
func (d *Database) GetLatestFinalizedInspection(ctx context.Context, rotaID string) (*models.Vistoria, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, rota_id, data, horario, status,
			vistoriador_id, vistoriador_nome,
			condominio, endereco, bairro, administradora, cnpj,
			responsavel_local, setor,
			atividades, peric_classificacao, checklist, fotos,
			assinatura_tecnico, assinatura_responsavel, cancelamento,
			created_at
		FROM vistorias
		WHERE rota_id = ? AND status IN (?, ?)
		ORDER BY data DESC, horario DESC
		LIMIT 1`,
		rotaID, models.StatusConcluido, models.StatusCancelado)

	var v models.Vistoria
	var atividades, peric, checklist, fotos []byte
	var sigTech, sigLocal, cancel sql.NullString

	err := row.Scan(
		&v.ID, &v.RotaID, &v.Data, &v.Horario, &v.Status,
		&v.VistoriadorID, &v.VistoriadorNome,
		&v.Condominio, &v.Endereco, &v.Bairro, &v.Administradora, &v.CNPJ,
		&v.ResponsavelLocal, &v.Setor,
		&atividades, &peric, &checklist, &fotos,
		&sigTech, &sigLocal, &cancel,
		&v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInspectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inspection snapshot: %w", err)
	}

	if err := json.Unmarshal(atividades, &v.Atividades); err != nil {
		return nil, fmt.Errorf("failed to decode atividades: %w", err)
	}
	if err := json.Unmarshal(peric, &v.PericClassificacao); err != nil {
		return nil, fmt.Errorf("failed to decode pericClassificacao: %w", err)
	}
	if err := json.Unmarshal(checklist, &v.Checklist); err != nil {
		return nil, fmt.Errorf("failed to decode checklist: %w", err)
	}
	if err := json.Unmarshal(fotos, &v.Fotos); err != nil {
		return nil, fmt.Errorf("failed to decode fotos: %w", err)
	}

	v.Assinaturas.Tecnico, err = unmarshalImage(sigTech)
	if err != nil {
		return nil, fmt.Errorf("failed to decode assinatura do técnico: %w", err)
	}
	v.Assinaturas.Responsavel, err = unmarshalImage(sigLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to decode assinatura do responsável: %w", err)
	}

	if cancel.Valid && cancel.String != "" {
		var c models.Cancelamento
		if err := json.Unmarshal([]byte(cancel.String), &c); err != nil {
			return nil, fmt.Errorf("failed to decode cancelamento: %w", err)
		}
		v.Cancelamento = &c
	}

	return &v, nil
}

func marshalImage(img *models.EmbeddedImage) (any, error) {
	if img == nil {
		return nil, nil
	}
	b, err := json.Marshal(img)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalImage(ns sql.NullString) (*models.EmbeddedImage, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var img models.EmbeddedImage
	if err := json.Unmarshal([]byte(ns.String), &img); err != nil {
		return nil, err
	}
	return &img, nil
}

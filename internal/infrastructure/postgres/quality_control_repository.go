package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ repository.QualityControlRepository = (*QualityControlRepo)(nil)

// QualityControlRepo controles de calidad sobre PostgreSQL.
type QualityControlRepo struct {
	q Querier
}

// NewQualityControlRepository construye el adaptador.
func NewQualityControlRepository(q Querier) *QualityControlRepo {
	return &QualityControlRepo{q: q}
}

const selectQualityControl = `
	SELECT id, code, number, verified_on, result, approved, inspector_id,
	       COALESCE(material_id::text, ''), material_kind, COALESCE(signature_id::text, ''),
	       created_at, updated_at
	FROM quality_controls`

// Create inserta el control.
func (r *QualityControlRepo) Create(ctx context.Context, qc *entity.QualityControl) error {
	query := `
		INSERT INTO quality_controls (id, code, number, verified_on, result, approved, inspector_id,
		                              material_id, material_kind, signature_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		qc.ID, qc.Code, qc.Number, qc.VerifiedOn, qc.Result, qc.Approved, qc.InspectorID,
		nullIfEmpty(qc.MaterialID), qc.MaterialKind, nullIfEmpty(qc.SignatureID), qc.CreatedAt, qc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewFieldError(domain.ErrConflict, "code", "código duplicado")
		}
		return fmt.Errorf("insert quality control: %w", err)
	}
	return nil
}

// GetByID obtiene un control.
func (r *QualityControlRepo) GetByID(ctx context.Context, id string) (*entity.QualityControl, error) {
	return r.findOne(ctx, selectQualityControl+` WHERE id = $1`, id)
}

// GetForUpdate obtiene el control y bloquea la fila.
func (r *QualityControlRepo) GetForUpdate(ctx context.Context, id string) (*entity.QualityControl, error) {
	return r.findOne(ctx, selectQualityControl+` WHERE id = $1 FOR UPDATE`, id)
}

// LatestApprovedForMaterial control aprobado más reciente del material.
func (r *QualityControlRepo) LatestApprovedForMaterial(ctx context.Context, materialID string) (*entity.QualityControl, error) {
	query := selectQualityControl + `
		WHERE material_id = $1 AND approved
		ORDER BY verified_on DESC, number DESC
		LIMIT 1`
	return r.findOne(ctx, query, materialID)
}

func (r *QualityControlRepo) findOne(ctx context.Context, query, arg string) (*entity.QualityControl, error) {
	qc, err := scanQualityControl(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality control: %w", err)
	}
	return qc, nil
}

// Update persiste aprobación y firma.
func (r *QualityControlRepo) Update(ctx context.Context, qc *entity.QualityControl) error {
	query := `
		UPDATE quality_controls SET verified_on = $2, result = $3, approved = $4, signature_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		qc.ID, qc.VerifiedOn, qc.Result, qc.Approved, nullIfEmpty(qc.SignatureID), qc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quality control: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List controles más recientes primero.
func (r *QualityControlRepo) List(ctx context.Context, limit, offset int) ([]*entity.QualityControl, error) {
	rows, err := r.q.Query(ctx, selectQualityControl+` ORDER BY number DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quality controls: %w", err)
	}
	defer rows.Close()
	var list []*entity.QualityControl
	for rows.Next() {
		qc, err := scanQualityControl(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quality control: %w", err)
		}
		list = append(list, qc)
	}
	return list, rows.Err()
}

func scanQualityControl(row pgx.Row) (*entity.QualityControl, error) {
	var qc entity.QualityControl
	err := row.Scan(
		&qc.ID, &qc.Code, &qc.Number, &qc.VerifiedOn, &qc.Result, &qc.Approved, &qc.InspectorID,
		&qc.MaterialID, &qc.MaterialKind, &qc.SignatureID,
		&qc.CreatedAt, &qc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &qc, nil
}

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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo materiales sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const selectMaterial = `
	SELECT id, kind, name, code, COALESCE(quality_code, ''), batch, packaging_type, quantity,
	       approval_status, COALESCE(signature_id::text, ''), created_at, updated_at
	FROM materials`

// Create inserta el material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, kind, name, code, quality_code, batch, packaging_type, quantity,
		                       approval_status, signature_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Kind, m.Name, m.Code, nullIfEmpty(m.QualityCode), m.Batch, m.PackagingType, m.Quantity,
		m.ApprovalStatus, nullIfEmpty(m.SignatureID), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "uq_materials_kind_code" {
				return domain.NewFieldError(domain.ErrConflict, "code", "ya existe un material con ese código")
			}
			return domain.NewFieldError(domain.ErrConflict, "quality_code", "código de calidad duplicado")
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.findOne(ctx, selectMaterial+` WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.findOne(ctx, selectMaterial+` WHERE id = $1 FOR UPDATE`, id)
}

// GetByCodeForUpdate material de ese tipo y código, con la fila bloqueada.
func (r *MaterialRepo) GetByCodeForUpdate(ctx context.Context, kind, code string) (*entity.Material, error) {
	return r.findOne(ctx, selectMaterial+` WHERE kind = $1 AND code = $2 FOR UPDATE`, kind, code)
}

func (r *MaterialRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.Kind, &m.Name, &m.Code, &m.QualityCode, &m.Batch, &m.PackagingType, &m.Quantity,
		&m.ApprovalStatus, &m.SignatureID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update persiste estado, firma ligada y datos del material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, code = $3, batch = $4, packaging_type = $5, quantity = $6,
		       approval_status = $7, signature_id = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Code, m.Batch, m.PackagingType, m.Quantity,
		m.ApprovalStatus, nullIfEmpty(m.SignatureID), m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

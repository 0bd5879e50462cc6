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

var _ repository.SheetRepository = (*SheetRepo)(nil)

// SheetRepo planillas sobre PostgreSQL; los slots viven en sheet_slots.
type SheetRepo struct {
	q Querier
}

// NewSheetRepository construye el adaptador.
func NewSheetRepository(q Querier) *SheetRepo {
	return &SheetRepo{q: q}
}

const selectSheet = `
	SELECT id, variant, product_name, batch, issue_date, expiry_date, movement_kind,
	       COALESCE(material_id::text, ''), COALESCE(quality_control_id::text, ''),
	       delivered_quantity, observations, approval_status, stock_debited,
	       created_at, first_modified_at, last_modified_at, created_by, last_modified_by
	FROM sheets`

// Create inserta la planilla y sus slots.
func (r *SheetRepo) Create(ctx context.Context, s *entity.Sheet) error {
	query := `
		INSERT INTO sheets (id, variant, product_name, batch, issue_date, expiry_date, movement_kind,
		                    material_id, quality_control_id, delivered_quantity, observations,
		                    approval_status, stock_debited, created_at, first_modified_at, last_modified_at,
		                    created_by, last_modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Variant, s.ProductName, s.Batch, s.IssueDate, s.ExpiryDate, s.MovementKind,
		nullIfEmpty(s.MaterialID), nullIfEmpty(s.QualityControlID), s.DeliveredQuantity, s.Observations,
		s.ApprovalStatus, s.StockDebited, s.CreatedAt, s.FirstModifiedAt, s.LastModifiedAt,
		s.CreatedBy, s.LastModifiedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isCheckViolation(err) {
			return domain.Invalid("expiry_date", "fechas o cantidades fuera de rango")
		}
		return fmt.Errorf("insert sheet: %w", err)
	}
	return r.writeSlots(ctx, s)
}

// GetByID obtiene la planilla con sus slots.
func (r *SheetRepo) GetByID(ctx context.Context, id string) (*entity.Sheet, error) {
	return r.findOne(ctx, selectSheet+` WHERE id = $1`, id)
}

// GetForUpdate obtiene la planilla y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *SheetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sheet, error) {
	return r.findOne(ctx, selectSheet+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *SheetRepo) findOne(ctx context.Context, query, id string) (*entity.Sheet, error) {
	var s entity.Sheet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Variant, &s.ProductName, &s.Batch, &s.IssueDate, &s.ExpiryDate, &s.MovementKind,
		&s.MaterialID, &s.QualityControlID,
		&s.DeliveredQuantity, &s.Observations, &s.ApprovalStatus, &s.StockDebited,
		&s.CreatedAt, &s.FirstModifiedAt, &s.LastModifiedAt, &s.CreatedBy, &s.LastModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sheet: %w", err)
	}
	if s.Slots, err = r.loadSlots(ctx, s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SheetRepo) loadSlots(ctx context.Context, sheetID string) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT slot, signature_id FROM sheet_slots WHERE sheet_id = $1`, sheetID)
	if err != nil {
		return nil, fmt.Errorf("list sheet slots: %w", err)
	}
	defer rows.Close()
	slots := map[string]string{}
	for rows.Next() {
		var slot, sig string
		if err := rows.Scan(&slot, &sig); err != nil {
			return nil, fmt.Errorf("scan sheet slot: %w", err)
		}
		slots[slot] = sig
	}
	return slots, rows.Err()
}

// Update persiste campos, estado y reemplaza los slots.
func (r *SheetRepo) Update(ctx context.Context, s *entity.Sheet) error {
	query := `
		UPDATE sheets SET product_name = $2, batch = $3, issue_date = $4, expiry_date = $5,
		       delivered_quantity = $6, observations = $7, approval_status = $8, stock_debited = $9,
		       first_modified_at = $10, last_modified_at = $11, last_modified_by = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ProductName, s.Batch, s.IssueDate, s.ExpiryDate,
		s.DeliveredQuantity, s.Observations, s.ApprovalStatus, s.StockDebited,
		s.FirstModifiedAt, s.LastModifiedAt, s.LastModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sheet_slots WHERE sheet_id = $1`, s.ID); err != nil {
		return fmt.Errorf("clear sheet slots: %w", err)
	}
	return r.writeSlots(ctx, s)
}

func (r *SheetRepo) writeSlots(ctx context.Context, s *entity.Sheet) error {
	for slot, sig := range s.Slots {
		if sig == "" {
			continue
		}
		_, err := r.q.Exec(ctx,
			`INSERT INTO sheet_slots (sheet_id, slot, signature_id) VALUES ($1, $2, $3)`,
			s.ID, slot, sig,
		)
		if err != nil {
			return fmt.Errorf("insert sheet slot: %w", err)
		}
	}
	return nil
}

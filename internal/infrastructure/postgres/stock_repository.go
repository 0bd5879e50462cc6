package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un material en una bodega; cero si no hay fila.
func (r *StockRepo) Get(ctx context.Context, warehouseID, materialID string) (*entity.StockLevel, error) {
	query := `
		SELECT warehouse_id, material_id, available, updated_at
		FROM stock_levels WHERE warehouse_id = $1 AND material_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, warehouseID, materialID).Scan(
		&l.WarehouseID, &l.MaterialID, &l.Available, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{WarehouseID: warehouseID, MaterialID: materialID, Available: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &l, nil
}

// LockForUpdate asegura que exista la fila y la bloquea (SELECT FOR UPDATE).
// Crear la fila antes de bloquear evita que dos transacciones lean "sin fila" a la vez.
func (r *StockRepo) LockForUpdate(ctx context.Context, warehouseID, materialID string) (*entity.StockLevel, error) {
	ensure := `
		INSERT INTO stock_levels (warehouse_id, material_id, available, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, material_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, warehouseID, materialID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT warehouse_id, material_id, available, updated_at
		FROM stock_levels WHERE warehouse_id = $1 AND material_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, warehouseID, materialID).Scan(
		&l.WarehouseID, &l.MaterialID, &l.Available, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock stock: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad disponible (por bodega y material).
func (r *StockRepo) Upsert(ctx context.Context, l *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (warehouse_id, material_id, available, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (warehouse_id, material_id)
		DO UPDATE SET available = EXCLUDED.available, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, l.WarehouseID, l.MaterialID, l.Available, l.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewFieldError(domain.ErrInsufficientStock, "available", "el stock no puede quedar negativo")
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

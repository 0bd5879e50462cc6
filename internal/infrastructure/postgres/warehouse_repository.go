package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const selectWarehouse = `SELECT id, name, kind, location, principal, created_at FROM warehouses`

// EnsurePrincipal crea la bodega principal del tipo si no existe (índice único parcial) y la devuelve.
func (r *WarehouseRepo) EnsurePrincipal(ctx context.Context, kind, name string) (*entity.Warehouse, error) {
	insert := `
		INSERT INTO warehouses (id, name, kind, principal, created_at)
		VALUES ($1, $2, $3, TRUE, now())
		ON CONFLICT (kind) WHERE principal DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), name, kind); err != nil {
		return nil, fmt.Errorf("ensure principal warehouse: %w", err)
	}
	w, err := r.findOne(ctx, selectWarehouse+` WHERE kind = $1 AND principal`, kind)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("bodega principal %s no encontrada tras crearla", kind)
	}
	return w, nil
}

// GetByID obtiene una bodega.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.findOne(ctx, selectWarehouse+` WHERE id = $1`, id)
}

func (r *WarehouseRepo) findOne(ctx context.Context, query, arg string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, arg).Scan(&w.ID, &w.Name, &w.Kind, &w.Location, &w.Principal, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

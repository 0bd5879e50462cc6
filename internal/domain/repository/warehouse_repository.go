package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	// EnsurePrincipal obtiene la bodega principal del tipo, creándola con el nombre dado si no existe.
	EnsurePrincipal(ctx context.Context, kind, name string) (*entity.Warehouse, error)
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
}

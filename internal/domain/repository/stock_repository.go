package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+material.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nivel cero si no existe la fila.
	Get(ctx context.Context, warehouseID, materialID string) (*entity.StockLevel, error)
	// LockForUpdate asegura la fila y la bloquea (SELECT FOR UPDATE).
	LockForUpdate(ctx context.Context, warehouseID, materialID string) (*entity.StockLevel, error)
	Upsert(ctx context.Context, level *entity.StockLevel) error
}

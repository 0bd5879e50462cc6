package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// SetStockRequest body para PUT /api/stock: fija el disponible en la bodega principal del tipo.
type SetStockRequest struct {
	Kind       string   `json:"kind" validate:"required,oneof=MP EP ES"`
	MaterialID string   `json:"material_id" validate:"required"`
	Quantity   Quantity `json:"quantity"`
}

// StockQuery query para GET /api/stock.
type StockQuery struct {
	Kind       string `query:"kind" validate:"required,oneof=MP EP ES"`
	MaterialID string `query:"material_id" validate:"required"`
}

// StockLevelResponse salida de un nivel de stock.
type StockLevelResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	MaterialID  string          `json:"material_id"`
	Available   decimal.Decimal `json:"available"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewStockLevelResponse mapea la entidad a la respuesta.
func NewStockLevelResponse(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		WarehouseID: l.WarehouseID,
		MaterialID:  l.MaterialID,
		Available:   l.Available,
		UpdatedAt:   l.UpdatedAt,
	}
}

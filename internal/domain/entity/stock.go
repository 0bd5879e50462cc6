package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel cantidad disponible de un material en una bodega. Único por (bodega, material).
type StockLevel struct {
	WarehouseID string
	MaterialID  string
	Available   decimal.Decimal
	UpdatedAt   time.Time
}

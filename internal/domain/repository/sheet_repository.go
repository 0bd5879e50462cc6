package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// SheetRepository persistencia de planillas con sus slots de firma.
type SheetRepository interface {
	Create(ctx context.Context, sheet *entity.Sheet) error
	GetByID(ctx context.Context, id string) (*entity.Sheet, error)
	// GetForUpdate bloquea la planilla hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sheet, error)
	// Update persiste campos, slots y estado.
	Update(ctx context.Context, sheet *entity.Sheet) error
}

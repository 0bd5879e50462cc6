package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// MaterialRepository persistencia de materias primas y materiales de envase.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	// GetByCodeForUpdate busca por (tipo, código) y bloquea la fila. (nil, nil) si no existe.
	GetByCodeForUpdate(ctx context.Context, kind, code string) (*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
}

package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// QualityControlRepository persistencia de controles de calidad.
type QualityControlRepository interface {
	Create(ctx context.Context, qc *entity.QualityControl) error
	GetByID(ctx context.Context, id string) (*entity.QualityControl, error)
	GetForUpdate(ctx context.Context, id string) (*entity.QualityControl, error)
	Update(ctx context.Context, qc *entity.QualityControl) error
	// LatestApprovedForMaterial control aprobado más reciente (fecha de verificación desc, correlativo desc).
	LatestApprovedForMaterial(ctx context.Context, materialID string) (*entity.QualityControl, error)
	List(ctx context.Context, limit, offset int) ([]*entity.QualityControl, error)
}

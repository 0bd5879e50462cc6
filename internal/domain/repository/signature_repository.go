package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// SignatureRepository libro de firmas. Solo inserta: no hay Update ni Delete.
type SignatureRepository interface {
	Create(ctx context.Context, sig *entity.Signature) error
	GetByID(ctx context.Context, id string) (*entity.Signature, error)
	ListByTarget(ctx context.Context, target entity.SignatureTarget) ([]*entity.Signature, error)
}

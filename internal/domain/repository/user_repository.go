package repository

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID carga el usuario con su perfil (Profile nil si no tiene).
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByRUT(ctx context.Context, rut string) (*entity.User, error)
	UpsertProfile(ctx context.Context, profile *entity.Profile) error
	TouchLastAccess(ctx context.Context, id string) error
}

package auth

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// UserUseCase consulta de usuarios con su perfil de firma.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID. Inexistente o inactivo -> ErrNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrNotFound
	}
	tag, _ := role.Resolve(user)
	out := dto.NewUserResponse(user, tag)
	return &out, nil
}

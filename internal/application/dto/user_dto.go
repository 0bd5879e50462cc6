package dto

import (
	"time"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// LoginRequest credencial de firma: RUT + contraseña.
type LoginRequest struct {
	RUT      string `json:"rut" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string     `json:"id"`
	RUT          string     `json:"rut"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role,omitempty"`
	Department   string     `json:"department,omitempty"`
	Active       bool       `json:"active"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// NewUserResponse mapea la entidad a la respuesta.
func NewUserResponse(u *entity.User, role string) UserResponse {
	out := UserResponse{
		ID:           u.ID,
		RUT:          u.RUT,
		Username:     u.Username,
		FullName:     u.FullName(),
		Role:         role,
		Active:       u.Active,
		LastAccessAt: u.LastAccessAt,
	}
	if u.Profile != nil {
		out.Department = u.Profile.Department
	}
	return out
}

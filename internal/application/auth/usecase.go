package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
	"github.com/DanySando/Proyecto-GPQ/pkg/jwt"
	"github.com/DanySando/Proyecto-GPQ/pkg/rut"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase verificación de credenciales (firma y login) y emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// NormalizeRUT quita espacios y puntos y deja el dígito verificador en mayúscula (12.345.678-k -> 12345678-K).
func NormalizeRUT(s string) string {
	return rut.Normalize(s)
}

// HashPassword hashea una contraseña con bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify valida RUT + contraseña. Usuario inexistente, inactivo o contraseña errónea -> ErrUnauthorized.
func (uc *AuthUseCase) Verify(ctx context.Context, rawRUT, password string) (*entity.User, error) {
	id := NormalizeRUT(rawRUT)
	if id == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByRUT(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Login verifica la credencial, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Verify(ctx, in.RUT, in.Password)
	if err != nil {
		return nil, err
	}
	tag, _ := role.Resolve(user)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tag, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.TouchLastAccess(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar el último acceso")
	} else {
		now := time.Now().UTC()
		user.LastAccessAt = &now
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      dto.NewUserResponse(user, tag),
	}, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const selectUser = `
	SELECT u.id, u.rut, u.username, u.first_name, u.last_name, u.password_hash, u.active,
	       u.created_at, u.last_access_at,
	       p.role, p.department, p.license_number
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id`

// Create persiste un nuevo usuario y su perfil si viene informado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, rut, username, first_name, last_name, password_hash, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.RUT, user.Username, user.FirstName, user.LastName, user.PasswordHash, user.Active, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewFieldError(domain.ErrConflict, "rut", "ya existe un usuario con ese RUT o username")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if user.Profile != nil {
		p := *user.Profile
		p.UserID = user.ID
		return r.UpsertProfile(ctx, &p)
	}
	return nil
}

// GetByID obtiene un usuario por ID con su perfil.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.id = $1`, id)
}

// GetByRUT obtiene un usuario por RUT con su perfil.
func (r *UserRepo) GetByRUT(ctx context.Context, rut string) (*entity.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.rut = $1`, rut)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var (
		u                         entity.User
		role, department, license *string
	)
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.RUT, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Active,
		&u.CreatedAt, &u.LastAccessAt,
		&role, &department, &license,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if role != nil {
		u.Profile = &entity.Profile{UserID: u.ID, Role: *role}
		if department != nil {
			u.Profile.Department = *department
		}
		if license != nil {
			u.Profile.LicenseNumber = *license
		}
	}
	return &u, nil
}

// UpsertProfile crea o reemplaza el perfil (rol de firma) del usuario.
func (r *UserRepo) UpsertProfile(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, role, department, license_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET role = EXCLUDED.role, department = EXCLUDED.department, license_number = EXCLUDED.license_number`
	if _, err := r.q.Exec(ctx, query, p.UserID, p.Role, p.Department, p.LicenseNumber); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// TouchLastAccess registra el último acceso.
func (r *UserRepo) TouchLastAccess(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET last_access_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

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

var _ repository.SignatureRepository = (*SignatureRepo)(nil)

// SignatureRepo libro de firmas sobre PostgreSQL. Solo INSERT y SELECT.
type SignatureRepo struct {
	q Querier
}

// NewSignatureRepository construye el adaptador.
func NewSignatureRepository(q Querier) *SignatureRepo {
	return &SignatureRepo{q: q}
}

const selectSignature = `
	SELECT id, user_id, target_kind, COALESCE(target_id::text, ''), kind, hash, verification_code,
	       ip_address, user_agent, created_at
	FROM signatures`

// Create inserta la firma.
func (r *SignatureRepo) Create(ctx context.Context, s *entity.Signature) error {
	query := `
		INSERT INTO signatures (id, user_id, target_kind, target_id, kind, hash, verification_code, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.Target.Kind, nullIfEmpty(s.Target.ID), s.Kind, s.Hash, s.VerificationCode,
		s.IPAddress, s.UserAgent, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert signature: %w", err)
	}
	return nil
}

// GetByID obtiene una firma por ID.
func (r *SignatureRepo) GetByID(ctx context.Context, id string) (*entity.Signature, error) {
	s, err := scanSignature(r.q.QueryRow(ctx, selectSignature+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get signature: %w", err)
	}
	return s, nil
}

// ListByTarget firmas sobre un documento en orden de creación.
func (r *SignatureRepo) ListByTarget(ctx context.Context, target entity.SignatureTarget) ([]*entity.Signature, error) {
	query := selectSignature + ` WHERE target_kind = $1 AND target_id = $2 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, target.Kind, target.ID)
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Signature
	for rows.Next() {
		s, err := scanSignature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSignature(row pgx.Row) (*entity.Signature, error) {
	var s entity.Signature
	err := row.Scan(
		&s.ID, &s.UserID, &s.Target.Kind, &s.Target.ID, &s.Kind, &s.Hash, &s.VerificationCode,
		&s.IPAddress, &s.UserAgent, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

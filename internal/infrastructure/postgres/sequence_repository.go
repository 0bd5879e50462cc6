package postgres

import (
	"context"
	"fmt"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores con incremento atómico (una fila por nombre).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador. La fila queda bloqueada hasta el fin de la tx,
// así que dos altas concurrentes nunca obtienen el mismo número.
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(ctx, query, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return n, nil
}

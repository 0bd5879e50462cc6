package ports

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito (firma incluida).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

package ports

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; los repos recibidos comparten la tx.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

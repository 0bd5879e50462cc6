package signing

import (
	"context"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// SignatureQueryUseCase lectura del libro de firmas.
type SignatureQueryUseCase struct {
	signatures repository.SignatureRepository
}

// NewSignatureQueryUseCase construye el caso de uso.
func NewSignatureQueryUseCase(signatures repository.SignatureRepository) *SignatureQueryUseCase {
	return &SignatureQueryUseCase{signatures: signatures}
}

// GetByID devuelve una firma por id.
func (uc *SignatureQueryUseCase) GetByID(ctx context.Context, id string) (*dto.SignatureResponse, error) {
	sig, err := uc.signatures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewSignatureResponse(sig)
	return &out, nil
}

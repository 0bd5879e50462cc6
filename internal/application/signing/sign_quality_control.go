package signing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// SignQualityControlInput entrada para aprobar un control con la credencial del inspector.
type SignQualityControlInput struct {
	QualityControlID string
	RUT              string
	Password         string
	Meta             Meta
}

// QualityControlSigningUseCase expone la cascada de control de calidad hacia la capa HTTP.
type QualityControlSigningUseCase struct {
	tx      ports.TxRunner
	auth    Authenticator
	users   repository.UserRepository
	cascade *QualityCascade
	log     zerolog.Logger
}

// NewQualityControlSigningUseCase construye el caso de uso.
func NewQualityControlSigningUseCase(tx ports.TxRunner, auth Authenticator, users repository.UserRepository, cascade *QualityCascade, log zerolog.Logger) *QualityControlSigningUseCase {
	return &QualityControlSigningUseCase{tx: tx, auth: auth, users: users, cascade: cascade, log: log}
}

// Sign autentica al inspector y aprueba el control.
func (uc *QualityControlSigningUseCase) Sign(ctx context.Context, in SignQualityControlInput) (*dto.SignQualityControlResponse, error) {
	if in.QualityControlID == "" {
		return nil, domain.Invalid("quality_control_id", "requerido")
	}
	signer, err := uc.auth.Verify(ctx, in.RUT, in.Password)
	if err != nil {
		return nil, err
	}
	if _, ok := role.Resolve(signer); !ok {
		return nil, domain.NewFieldError(domain.ErrForbidden, "role", "el usuario no tiene perfil de firma")
	}
	var res *CascadeResult
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		res, err = uc.cascade.Approve(ctx, repos, in.QualityControlID, signer, in.Meta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCascadeResponse(res), nil
}

// Revoke quita la firma del control. El actor viene del token y debe ser el inspector asignado.
func (uc *QualityControlSigningUseCase) Revoke(ctx context.Context, qcID, actorID string) (*dto.SignQualityControlResponse, error) {
	actor, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	var res *CascadeResult
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		res, err = uc.cascade.Revoke(ctx, repos, qcID, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCascadeResponse(res), nil
}

func toCascadeResponse(res *CascadeResult) *dto.SignQualityControlResponse {
	out := &dto.SignQualityControlResponse{QualityControl: dto.NewQualityControlResponse(res.QualityControl)}
	if res.Signature != nil {
		s := dto.NewSignatureResponse(res.Signature)
		out.Signature = &s
	}
	if res.Material != nil {
		m := dto.NewMaterialResponse(res.Material, nil)
		out.Material = &m
	}
	return out
}

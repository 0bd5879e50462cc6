// Package quality registro y consulta de controles de calidad.
package quality

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// QualityControlUseCase alta, consulta y listado de controles de calidad.
type QualityControlUseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
	log   zerolog.Logger
}

// NewQualityControlUseCase construye el caso de uso.
func NewQualityControlUseCase(tx ports.TxRunner, repos repository.Repos, log zerolog.Logger) *QualityControlUseCase {
	return &QualityControlUseCase{tx: tx, repos: repos, log: log}
}

// Create registra un control con código correlativo CC-NNNN. El inspector asignado debe tener rol de inspector.
func (uc *QualityControlUseCase) Create(ctx context.Context, in dto.CreateQualityControlRequest) (*dto.QualityControlResponse, error) {
	verified, err := time.Parse(dto.DateLayout, in.VerifiedOn)
	if err != nil {
		return nil, domain.Invalid("verified_on", "formato esperado AAAA-MM-DD")
	}
	inspector, err := uc.repos.Users.GetByID(ctx, in.InspectorID)
	if err != nil {
		return nil, err
	}
	if inspector == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "inspector_id", "inspector no encontrado")
	}
	if tag, _ := role.Resolve(inspector); tag != entity.RoleQualityInspector {
		return nil, domain.Invalid("inspector_id", "el usuario asignado no es inspector de calidad")
	}

	now := time.Now().UTC()
	qc := &entity.QualityControl{
		ID:          uuid.New().String(),
		VerifiedOn:  verified,
		Result:      strings.TrimSpace(in.Result),
		InspectorID: inspector.ID,
		MaterialID:  strings.TrimSpace(in.MaterialID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		if qc.MaterialID != "" {
			m, err := repos.Materials.GetByID(ctx, qc.MaterialID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.NewFieldError(domain.ErrNotFound, "material_id", "material no encontrado")
			}
			qc.MaterialKind = m.Kind
		}
		n, err := repos.Sequences.Next(ctx, entity.PrefixQualityControl)
		if err != nil {
			return err
		}
		qc.Number = n
		qc.Code = entity.FormatCode(entity.PrefixQualityControl, n)
		return repos.QualityControls.Create(ctx, qc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quality_control_id", qc.ID).Str("code", qc.Code).Str("material_id", qc.MaterialID).Msg("control de calidad creado")
	out := dto.NewQualityControlResponse(qc)
	return &out, nil
}

// Get devuelve un control por id.
func (uc *QualityControlUseCase) Get(ctx context.Context, id string) (*dto.QualityControlResponse, error) {
	qc, err := uc.repos.QualityControls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewQualityControlResponse(qc)
	return &out, nil
}

// List solo los inspectores de calidad ven los controles; el resto recibe una lista vacía.
func (uc *QualityControlUseCase) List(ctx context.Context, actorRole string, page dto.PageRequest) (*dto.QualityControlListResponse, error) {
	page = page.WithDefaults()
	out := &dto.QualityControlListResponse{
		Items: []dto.QualityControlResponse{},
		Page:  page.Response(),
	}
	if role.Normalize(actorRole) != entity.RoleQualityInspector {
		return out, nil
	}
	list, err := uc.repos.QualityControls.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, qc := range list {
		out.Items = append(out.Items, dto.NewQualityControlResponse(qc))
	}
	return out, nil
}

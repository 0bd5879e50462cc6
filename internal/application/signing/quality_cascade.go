package signing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/approval"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// CascadeResult estado final del control y del material que certifica.
type CascadeResult struct {
	QualityControl *entity.QualityControl
	Signature      *entity.Signature // nil al revocar
	Material       *entity.Material  // nil si el control no referencia material
}

// QualityCascade aprobación de controles de calidad y su propagación a los materiales.
// Todo ocurre con los repositorios de la transacción del caller.
type QualityCascade struct {
	ledger *Ledger
	log    zerolog.Logger
}

// NewQualityCascade construye la cascada sobre el ledger de firmas.
func NewQualityCascade(ledger *Ledger, log zerolog.Logger) *QualityCascade {
	return &QualityCascade{ledger: ledger, log: log.With().Str("component", "quality_cascade").Logger()}
}

// Approve firma y aprueba el control. Solo el inspector asignado puede hacerlo.
func (c *QualityCascade) Approve(ctx context.Context, repos repository.Repos, qcID string, inspector *entity.User, meta Meta) (*CascadeResult, error) {
	qc, err := repos.QualityControls.GetForUpdate(ctx, qcID)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "quality_control_id", "control de calidad no encontrado")
	}
	if inspector == nil || qc.InspectorID != inspector.ID {
		return nil, domain.NewFieldError(domain.ErrForbidden, "inspector_id", "solo el inspector asignado puede aprobar este control")
	}
	if qc.Approved && qc.SignatureID != "" {
		return nil, domain.NewFieldError(domain.ErrAlreadyApproved, "quality_control_id", "el control "+qc.Code+" ya está aprobado")
	}

	res, err := c.ledger.Create(ctx, repos, SignInput{
		Signer: inspector,
		Target: entity.SignatureTarget{Kind: entity.TargetQualityControl, ID: qc.ID},
		Meta:   meta,
	})
	if err != nil {
		return nil, err
	}
	qc.SignatureID = res.Signature.ID
	qc.Approved = true
	qc.UpdatedAt = time.Now().UTC()
	if err := repos.QualityControls.Update(ctx, qc); err != nil {
		return nil, err
	}

	m, err := c.propagate(ctx, repos, qc, res.Signature.ID)
	if err != nil {
		return nil, err
	}
	evt := c.log.Info().Str("quality_control_id", qc.ID).Str("signature_id", res.Signature.ID)
	if m != nil {
		evt = evt.Str("material_id", m.ID).Str("status", m.ApprovalStatus)
	}
	evt.Msg("control de calidad aprobado")
	return &CascadeResult{QualityControl: qc, Signature: res.Signature, Material: m}, nil
}

// Revoke quita la firma del control y recalcula el material para que nunca diverjan.
// La firma permanece en el ledger.
func (c *QualityCascade) Revoke(ctx context.Context, repos repository.Repos, qcID string, actor *entity.User) (*CascadeResult, error) {
	qc, err := repos.QualityControls.GetForUpdate(ctx, qcID)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "quality_control_id", "control de calidad no encontrado")
	}
	if actor == nil || qc.InspectorID != actor.ID {
		return nil, domain.NewFieldError(domain.ErrForbidden, "inspector_id", "solo el inspector asignado puede revocar la firma")
	}
	if qc.SignatureID == "" && !qc.Approved {
		return nil, domain.NewFieldError(domain.ErrConflict, "signature_id", "el control no tiene firma")
	}
	revoked := qc.SignatureID
	qc.SignatureID = ""
	qc.Approved = false
	qc.UpdatedAt = time.Now().UTC()
	if err := repos.QualityControls.Update(ctx, qc); err != nil {
		return nil, err
	}
	m, err := c.propagate(ctx, repos, qc, "")
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("quality_control_id", qc.ID).Str("signature_id", revoked).Msg("firma de control de calidad revocada")
	return &CascadeResult{QualityControl: qc, Material: m}, nil
}

// propagate recalcula el material certificado por el control.
// Materia prima: se liga la firma recién creada; al revocar, la del control aprobado vigente (si queda alguno).
// Envase: APROBADO sii el control aprobado más reciente tiene firma.
func (c *QualityCascade) propagate(ctx context.Context, repos repository.Repos, qc *entity.QualityControl, signatureID string) (*entity.Material, error) {
	if qc.MaterialID == "" {
		return nil, nil
	}
	m, err := repos.Materials.GetForUpdate(ctx, qc.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "material_id", "material no encontrado")
	}

	var governing *entity.QualityControl
	if signatureID == "" || m.IsPackaging() {
		if governing, err = repos.QualityControls.LatestApprovedForMaterial(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	switch {
	case m.Kind == entity.MaterialRaw:
		if signatureID == "" && governing != nil {
			signatureID = governing.SignatureID
		}
		m.SignatureID = signatureID
		m.ApprovalStatus = approval.RawMaterialStatus(m)
	case m.IsPackaging():
		m.ApprovalStatus = approval.PackagingMaterialStatus(governing)
	}
	m.UpdatedAt = time.Now().UTC()
	if err := repos.Materials.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

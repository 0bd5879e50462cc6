package dto

import (
	"time"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// CreateQualityControlRequest body para POST /api/quality-controls.
type CreateQualityControlRequest struct {
	VerifiedOn  string `json:"verified_on" validate:"required"`
	Result      string `json:"result" validate:"omitempty,max=500"`
	InspectorID string `json:"inspector_id" validate:"required"`
	MaterialID  string `json:"material_id"`
}

// QualityControlResponse salida de un control de calidad.
type QualityControlResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	VerifiedOn   string    `json:"verified_on"`
	Result       string    `json:"result,omitempty"`
	Approved     bool      `json:"approved"`
	InspectorID  string    `json:"inspector_id"`
	MaterialID   string    `json:"material_id,omitempty"`
	MaterialKind string    `json:"material_kind,omitempty"`
	SignatureID  string    `json:"signature_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewQualityControlResponse mapea la entidad a la respuesta.
func NewQualityControlResponse(qc *entity.QualityControl) QualityControlResponse {
	return QualityControlResponse{
		ID:           qc.ID,
		Code:         qc.Code,
		VerifiedOn:   qc.VerifiedOn.Format(DateLayout),
		Result:       qc.Result,
		Approved:     qc.Approved,
		InspectorID:  qc.InspectorID,
		MaterialID:   qc.MaterialID,
		MaterialKind: qc.MaterialKind,
		SignatureID:  qc.SignatureID,
		CreatedAt:    qc.CreatedAt,
		UpdatedAt:    qc.UpdatedAt,
	}
}

// QualityControlListResponse lista paginada.
type QualityControlListResponse struct {
	Items []QualityControlResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// SignQualityControlResponse resultado de aprobar (o revocar) un control de calidad.
type SignQualityControlResponse struct {
	Signature      *SignatureResponse     `json:"signature,omitempty"`
	QualityControl QualityControlResponse `json:"quality_control"`
	Material       *MaterialResponse      `json:"material,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// DateLayout formato de fechas de calendario en la API.
const DateLayout = "2006-01-02"

// CreateSheetRequest body para POST /api/sheets.
type CreateSheetRequest struct {
	Variant           string   `json:"variant" validate:"required,oneof=FABRICACION ENVASE_PRIMARIO ENVASE_SECUNDARIO ENVASE"`
	ProductName       string   `json:"product_name" validate:"required,max=255"`
	Batch             string   `json:"batch" validate:"omitempty,max=50"`
	IssueDate         string   `json:"issue_date" validate:"required"`
	ExpiryDate        string   `json:"expiry_date" validate:"required"`
	MovementKind      string   `json:"movement_kind" validate:"required,oneof=PRODUCCION PEDIDO_BODEGA"`
	MaterialID        string   `json:"material_id"`
	DeliveredQuantity Quantity `json:"delivered_quantity"`
	Observations      string   `json:"observations"`
}

// SheetResponse salida de una planilla.
type SheetResponse struct {
	ID                string            `json:"id"`
	Variant           string            `json:"variant"`
	ProductName       string            `json:"product_name"`
	Batch             string            `json:"batch,omitempty"`
	IssueDate         string            `json:"issue_date"`
	ExpiryDate        string            `json:"expiry_date"`
	MovementKind      string            `json:"movement_kind"`
	MaterialID        string            `json:"material_id,omitempty"`
	QualityControlID  string            `json:"quality_control_id,omitempty"`
	DeliveredQuantity decimal.Decimal   `json:"delivered_quantity"`
	Observations      string            `json:"observations,omitempty"`
	Slots             map[string]string `json:"slots"`
	ApprovalStatus    string            `json:"approval_status"`
	StockDebited      bool              `json:"stock_debited"`
	CreatedAt         time.Time         `json:"created_at"`
	FirstModifiedAt   *time.Time        `json:"first_modified_at,omitempty"`
	LastModifiedAt    time.Time         `json:"last_modified_at"`
	CreatedBy         string            `json:"created_by,omitempty"`
	LastModifiedBy    string            `json:"last_modified_by,omitempty"`
}

// NewSheetResponse mapea la entidad a la respuesta.
func NewSheetResponse(s *entity.Sheet) SheetResponse {
	slots := make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		slots[k] = v
	}
	return SheetResponse{
		ID:                s.ID,
		Variant:           s.Variant,
		ProductName:       s.ProductName,
		Batch:             s.Batch,
		IssueDate:         s.IssueDate.Format(DateLayout),
		ExpiryDate:        s.ExpiryDate.Format(DateLayout),
		MovementKind:      s.MovementKind,
		MaterialID:        s.MaterialID,
		QualityControlID:  s.QualityControlID,
		DeliveredQuantity: s.DeliveredQuantity,
		Observations:      s.Observations,
		Slots:             slots,
		ApprovalStatus:    s.ApprovalStatus,
		StockDebited:      s.StockDebited,
		CreatedAt:         s.CreatedAt,
		FirstModifiedAt:   s.FirstModifiedAt,
		LastModifiedAt:    s.LastModifiedAt,
		CreatedBy:         s.CreatedBy,
		LastModifiedBy:    s.LastModifiedBy,
	}
}

// SignRequest credencial del firmante para firmar una planilla o un control de calidad.
type SignRequest struct {
	RUT              string `json:"rut" validate:"required"`
	Password         string `json:"password" validate:"required"`
	SignatureKind    string `json:"signature_kind" validate:"omitempty,max=40"`
	VerificationCode string `json:"verification_code" validate:"omitempty,len=6,numeric"`
}

// SignSheetResponse firma creada y estado resultante de la planilla.
type SignSheetResponse struct {
	Signature SignatureResponse `json:"signature"`
	Slot      string            `json:"slot,omitempty"`
	Sheet     SheetResponse     `json:"sheet"`
}

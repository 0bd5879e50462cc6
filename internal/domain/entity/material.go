package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de material (también usados como tipo de bodega).
const (
	MaterialRaw                = "MP"
	MaterialPrimaryPackaging   = "EP"
	MaterialSecondaryPackaging = "ES"
	MaterialFinishedGood       = "PT"
)

// Estados de aprobación de un material.
const (
	MaterialPending  = "PENDIENTE"
	MaterialApproved = "APROBADO"
)

// Material materia prima o material de envase registrado en bodega.
type Material struct {
	ID             string
	Kind           string
	Name           string
	Code           string
	QualityCode    string // MEP-0001 / MES-0001 para materiales de envase
	Batch          string
	PackagingType  string
	Quantity       decimal.Decimal
	ApprovalStatus string
	SignatureID    string // firma del inspector ligada (solo materia prima)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPackaging indica si es material de envase.
func (m *Material) IsPackaging() bool {
	return m.Kind == MaterialPrimaryPackaging || m.Kind == MaterialSecondaryPackaging
}

// IsValidMaterialKind valida el tipo recibido desde la API.
func IsValidMaterialKind(kind string) bool {
	switch kind {
	case MaterialRaw, MaterialPrimaryPackaging, MaterialSecondaryPackaging:
		return true
	}
	return false
}

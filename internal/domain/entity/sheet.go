package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variantes de planilla. Cada una define su propio conjunto de slots de firma.
const (
	VariantManufacturing      = "FABRICACION"
	VariantPrimaryPackaging   = "ENVASE_PRIMARIO"
	VariantSecondaryPackaging = "ENVASE_SECUNDARIO"
	VariantEnvase             = "ENVASE"
)

// Tipos de movimiento.
const (
	MovementProduction     = "PRODUCCION"
	MovementWarehouseOrder = "PEDIDO_BODEGA"
)

// Estados de aprobación de una planilla (derivados, nunca asignados por el cliente).
const (
	SheetInProgress = "EN_PROCESO"
	SheetApproved   = "APROBADO"
)

// Slots de firma.
const (
	SlotSectionChief    = "jefe_seccion"
	SlotProductionChief = "jefe_produccion"
	SlotChemist         = "quimico_farmaceutico"
	SlotInspector       = "inspector_calidad"
)

// Sheet planilla de producción (fabricación, envase primario, envase secundario o envase simple).
type Sheet struct {
	ID                string
	Variant           string
	ProductName       string
	Batch             string
	IssueDate         time.Time
	ExpiryDate        time.Time
	MovementKind      string
	MaterialID        string
	QualityControlID  string
	DeliveredQuantity decimal.Decimal
	Observations      string
	Slots             map[string]string // slot -> id de firma; ausente = abierto
	ApprovalStatus    string
	StockDebited      bool
	CreatedAt         time.Time
	FirstModifiedAt   *time.Time
	LastModifiedAt    time.Time
	CreatedBy         string
	LastModifiedBy    string
}

// SignatureTargetKind tipo de destino de firma correspondiente a la variante.
func SignatureTargetKind(variant string) string {
	switch variant {
	case VariantManufacturing:
		return TargetManufacturingSheet
	case VariantPrimaryPackaging:
		return TargetPrimaryPackagingSheet
	case VariantSecondaryPackaging:
		return TargetSecondaryPackagingSheet
	case VariantEnvase:
		return TargetEnvaseSheet
	}
	return TargetNone
}

// VariantForTarget inversa de SignatureTargetKind.
func VariantForTarget(kind string) string {
	switch kind {
	case TargetManufacturingSheet:
		return VariantManufacturing
	case TargetPrimaryPackagingSheet:
		return VariantPrimaryPackaging
	case TargetSecondaryPackagingSheet:
		return VariantSecondaryPackaging
	case TargetEnvaseSheet:
		return VariantEnvase
	}
	return ""
}

// MaterialKindForVariant tipo de material que consume la variante. Envase simple no consume material.
func MaterialKindForVariant(variant string) string {
	switch variant {
	case VariantManufacturing:
		return MaterialRaw
	case VariantPrimaryPackaging:
		return MaterialPrimaryPackaging
	case VariantSecondaryPackaging:
		return MaterialSecondaryPackaging
	}
	return ""
}

// IsValidVariant indica si la variante es conocida.
func IsValidVariant(variant string) bool {
	return SignatureTargetKind(variant) != TargetNone
}

// Touch actualiza la metadata de auditoría en cada escritura.
func (s *Sheet) Touch(by string, at time.Time) {
	if s.FirstModifiedAt == nil {
		t := at
		s.FirstModifiedAt = &t
	}
	s.LastModifiedAt = at
	if by != "" {
		s.LastModifiedBy = by
	}
}

// Clone copia profunda (el mapa de slots no se comparte).
func (s *Sheet) Clone() *Sheet {
	c := *s
	c.Slots = make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		c.Slots[k] = v
	}
	if s.FirstModifiedAt != nil {
		t := *s.FirstModifiedAt
		c.FirstModifiedAt = &t
	}
	return &c
}

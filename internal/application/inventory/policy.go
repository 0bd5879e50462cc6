package inventory

import (
	"fmt"
	"strings"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// DebitPolicy define cuándo y con qué rigor se descuenta stock por un pedido a bodega.
type DebitPolicy string

const (
	// PolicyPerVariant fabricación y envase primario descuentan al crear (recortando a cero);
	// envase secundario descuenta al aprobarse y omite el descuento si no alcanza.
	PolicyPerVariant DebitPolicy = "per_variant"
	// PolicyOnApproval todas las variantes descuentan al aprobarse y rechazan si no alcanza.
	PolicyOnApproval DebitPolicy = "on_approval"
)

// Shortfall comportamiento cuando lo entregado supera lo disponible.
type Shortfall int

const (
	ShortfallClamp Shortfall = iota
	ShortfallSkip
	ShortfallReject
)

// ParseDebitPolicy valida el valor de configuración. Vacío = per_variant.
func ParseDebitPolicy(s string) (DebitPolicy, error) {
	switch DebitPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPerVariant:
		return PolicyPerVariant, nil
	case PolicyOnApproval:
		return PolicyOnApproval, nil
	}
	return "", fmt.Errorf("política de descuento desconocida: %q", s)
}

// DebitsAtCreation indica si la variante descuenta stock al crear la planilla.
func (p DebitPolicy) DebitsAtCreation(variant string) bool {
	if p != PolicyPerVariant {
		return false
	}
	return variant == entity.VariantManufacturing || variant == entity.VariantPrimaryPackaging
}

// ShortfallFor comportamiento ante stock insuficiente en el momento del descuento.
func (p DebitPolicy) ShortfallFor(variant string) Shortfall {
	if p == PolicyOnApproval {
		return ShortfallReject
	}
	if variant == entity.VariantSecondaryPackaging {
		return ShortfallSkip
	}
	return ShortfallClamp
}

// MovesStock indica si la planilla mueve inventario: solo pedidos a bodega sobre variantes con material.
func MovesStock(s *entity.Sheet) bool {
	return s.MovementKind == entity.MovementWarehouseOrder && entity.MaterialKindForVariant(s.Variant) != ""
}

// Package approval contiene la máquina de estados de aprobación de planillas y materiales.
// Funciones puras: no persisten nada.
package approval

import "github.com/DanySando/Proyecto-GPQ/internal/domain/entity"

var (
	threeSlots = []string{entity.SlotSectionChief, entity.SlotProductionChief, entity.SlotChemist}
	twoSlots   = []string{entity.SlotSectionChief, entity.SlotProductionChief}
)

// SlotsFor conjunto de slots requeridos por la variante. nil si la variante no existe.
func SlotsFor(variant string) []string {
	switch variant {
	case entity.VariantManufacturing, entity.VariantPrimaryPackaging, entity.VariantSecondaryPackaging:
		return append([]string(nil), threeSlots...)
	case entity.VariantEnvase:
		return append([]string(nil), twoSlots...)
	}
	return nil
}

// HasSlot indica si la variante define el slot.
func HasSlot(variant, slot string) bool {
	for _, s := range SlotsFor(variant) {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotForKind slot que ocupa una firma del tipo dado en la variante.
// ok=false para tipos desconocidos o sin slot en esa variante (firma solo de auditoría).
func SlotForKind(variant, kind string) (string, bool) {
	var slot string
	switch kind {
	case entity.RoleSectionChief:
		slot = entity.SlotSectionChief
	case entity.RoleProductionChief:
		slot = entity.SlotProductionChief
	case entity.RolePharmaceuticChemist:
		slot = entity.SlotChemist
	default:
		return "", false
	}
	if !HasSlot(variant, slot) {
		return "", false
	}
	return slot, true
}

// Transition cambio de estado producido por un recálculo.
type Transition struct {
	From string
	To   string
}

// Changed indica si hubo cambio de estado.
func (t Transition) Changed() bool { return t.From != t.To }

// BecameApproved indica la transición hacia APROBADO.
func (t Transition) BecameApproved() bool {
	return t.Changed() && t.To == entity.SheetApproved
}

// Status estado derivado: APROBADO sii todos los slots de la variante están ocupados.
func Status(s *entity.Sheet) string {
	slots := SlotsFor(s.Variant)
	if len(slots) == 0 {
		return entity.SheetInProgress
	}
	for _, slot := range slots {
		if s.Slots[slot] == "" {
			return entity.SheetInProgress
		}
	}
	return entity.SheetApproved
}

// Recompute vuelve a derivar el estado de la planilla. Idempotente.
func Recompute(s *entity.Sheet) Transition {
	from := s.ApprovalStatus
	s.ApprovalStatus = Status(s)
	return Transition{From: from, To: s.ApprovalStatus}
}

// Bind ocupa el slot con la firma si la variante lo define y está abierto.
// Un slot ya ocupado no se sobrescribe.
func Bind(s *entity.Sheet, slot, signatureID string) bool {
	if signatureID == "" || !HasSlot(s.Variant, slot) {
		return false
	}
	if s.Slots == nil {
		s.Slots = map[string]string{}
	}
	if s.Slots[slot] != "" {
		return false
	}
	s.Slots[slot] = signatureID
	return true
}

// Clear libera un slot. Devuelve false si ya estaba abierto.
func Clear(s *entity.Sheet, slot string) bool {
	if s.Slots[slot] == "" {
		return false
	}
	delete(s.Slots, slot)
	return true
}

// RawMaterialStatus materia prima: APROBADO sii tiene firma ligada.
func RawMaterialStatus(m *entity.Material) string {
	if m.SignatureID != "" {
		return entity.MaterialApproved
	}
	return entity.MaterialPending
}

// PackagingMaterialStatus material de envase: APROBADO sii el control que lo gobierna
// está aprobado y tiene firma.
func PackagingMaterialStatus(qc *entity.QualityControl) string {
	if qc != nil && qc.Approved && qc.SignatureID != "" {
		return entity.MaterialApproved
	}
	return entity.MaterialPending
}

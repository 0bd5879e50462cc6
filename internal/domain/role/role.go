// Package role normaliza roles de usuario y tipos de firma a las etiquetas canónicas.
package role

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// synonyms variantes conocidas (ya sin acentos, en mayúsculas y con "_") -> rol canónico.
// Incluye errores de tipeo presentes en datos históricos.
var synonyms = map[string]string{
	"JEFE_SECCION":    entity.RoleSectionChief,
	"JEFE_DE_SECCION": entity.RoleSectionChief,

	"JEFE_PRODUCCION":    entity.RoleProductionChief,
	"JEFE_DE_PRODUCCION": entity.RoleProductionChief,

	"INSPECTOR_CALIDAD":    entity.RoleQualityInspector,
	"INSPECTOR_DE_CALIDAD": entity.RoleQualityInspector,
	"INPESCTOR_CALIDAD":    entity.RoleQualityInspector,
	"CONTROL_CALIDAD":      entity.RoleQualityInspector,
	"CONTROL_DE_CALIDAD":   entity.RoleQualityInspector,

	"QUIMICO_FARMACEUTICO": entity.RolePharmaceuticChemist,
	"QUIMICO":              entity.RolePharmaceuticChemist,
}

// Normalize mapea un texto libre a un rol canónico. Nunca falla: lo desconocido se devuelve
// en mayúsculas y con los espacios normalizados.
func Normalize(raw string) string {
	collapsed := strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
	if collapsed == "" {
		return ""
	}
	if tag, ok := lookup(collapsed); ok {
		return tag
	}
	return collapsed
}

// IsCanonical indica si el valor es uno de los cuatro roles canónicos.
func IsCanonical(tag string) bool {
	switch tag {
	case entity.RoleSectionChief, entity.RoleProductionChief,
		entity.RoleQualityInspector, entity.RolePharmaceuticChemist:
		return true
	}
	return false
}

// Resolve rol normalizado del usuario según su perfil. ok=false si no tiene perfil o rol.
func Resolve(u *entity.User) (string, bool) {
	if u == nil || u.Profile == nil {
		return "", false
	}
	tag := Normalize(u.Profile.Role)
	if tag == "" {
		return "", false
	}
	return tag, true
}

// Classification tipo de firma derivado al crearla.
type Classification struct {
	Kind string
	// Derived true si Kind sale del rol vigente del firmante y es canónico.
	// Solo las firmas derivadas pueden ocupar un slot.
	Derived bool
}

// Classify deriva el tipo de firma: rol del perfil si es reconocible, si no el texto libre
// informado por el cliente y, en último caso, el rol crudo.
func Classify(u *entity.User, supplied string) Classification {
	raw := ""
	if u != nil && u.Profile != nil {
		raw = u.Profile.Role
	}
	if tag := Normalize(raw); IsCanonical(tag) {
		return Classification{Kind: tag, Derived: true}
	}
	if s := strings.Join(strings.Fields(strings.ToUpper(supplied)), " "); s != "" {
		return Classification{Kind: s}
	}
	return Classification{Kind: Normalize(raw)}
}

func lookup(collapsed string) (string, bool) {
	key := strings.ReplaceAll(stripAccents(collapsed), " ", "_")
	if tag, ok := synonyms[key]; ok {
		return tag, true
	}
	return "", false
}

// stripAccents quita marcas diacríticas (Á -> A, Ñ -> N).
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

package entity

import (
	"fmt"
	"time"
)

// Prefijos de códigos correlativos.
const (
	PrefixQualityControl     = "CC"
	PrefixPrimaryPackaging   = "MEP"
	PrefixSecondaryPackaging = "MES"
)

// QualityControl registro de control de calidad sobre un material.
type QualityControl struct {
	ID           string
	Code         string
	Number       int64 // correlativo del código, desempata por orden de creación
	VerifiedOn   time.Time
	Result       string
	Approved     bool
	InspectorID  string
	MaterialID   string
	MaterialKind string
	SignatureID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FormatCode formatea un código correlativo: prefijo + entero de 4 dígitos.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

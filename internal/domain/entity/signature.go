package entity

import "time"

// Tipos de documento sobre los que puede recaer una firma.
const (
	TargetNone                    = ""
	TargetManufacturingSheet      = "PLANILLA_FABRICACION"
	TargetEnvaseSheet             = "PLANILLA_ENVASE"
	TargetPrimaryPackagingSheet   = "PLANILLA_ENVASE_PRIMARIO"
	TargetSecondaryPackagingSheet = "PLANILLA_ENVASE_SECUNDARIO"
	TargetQualityControl          = "CONTROL_CALIDAD"
)

// SignatureTarget referencia al documento firmado. Kind vacío = firma libre (sin documento).
type SignatureTarget struct {
	Kind string
	ID   string
}

// IsSheet indica si el destino es una planilla con slots de firma.
func (t SignatureTarget) IsSheet() bool {
	switch t.Kind {
	case TargetManufacturingSheet, TargetEnvaseSheet, TargetPrimaryPackagingSheet, TargetSecondaryPackagingSheet:
		return true
	}
	return false
}

// Signature registro de firma electrónica. Inmutable: solo se inserta, nunca se actualiza ni elimina.
type Signature struct {
	ID               string
	UserID           string
	Target           SignatureTarget
	Kind             string // derivado del rol del firmante al momento de crear
	Hash             string // sha256 hex
	VerificationCode string // 6 dígitos
	IPAddress        string
	UserAgent        string
	CreatedAt        time.Time
}

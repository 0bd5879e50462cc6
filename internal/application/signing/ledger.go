// Package signing crea firmas electrónicas, las liga a los slots de las planillas y
// propaga la aprobación de controles de calidad a los materiales.
package signing

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/approval"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// Meta datos del cliente que acompañan a la firma (auditoría).
type Meta struct {
	SuppliedKind     string // texto libre; solo se usa si el rol del firmante no es reconocible
	VerificationCode string
	IPAddress        string
	UserAgent        string
}

// SignInput entrada del ledger. La autorización ya fue resuelta por el caller.
type SignInput struct {
	Signer *entity.User
	Target entity.SignatureTarget
	Meta   Meta
}

// Result firma creada y, si el destino es planilla, el efecto sobre ella.
type Result struct {
	Signature  *entity.Signature
	Sheet      *entity.Sheet // nil si el destino no es planilla
	Slot       string        // vacío si la firma quedó solo como auditoría
	Transition approval.Transition
}

// Ledger libro de firmas. No valida permisos: solo registra y liga.
type Ledger struct {
	log zerolog.Logger
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger(log zerolog.Logger) *Ledger {
	return &Ledger{
		log: log.With().Str("component", "signature_ledger").Logger(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create persiste la firma y, solo para planillas, la liga al slot correspondiente a su tipo
// y recalcula el estado. Debe ejecutarse dentro de la transacción del caller.
func (l *Ledger) Create(ctx context.Context, repos repository.Repos, in SignInput) (*Result, error) {
	if in.Signer == nil {
		return nil, domain.Invalid("signer", "firmante requerido")
	}
	code := in.Meta.VerificationCode
	if code == "" {
		var err error
		if code, err = NewVerificationCode(); err != nil {
			return nil, err
		}
	} else if !isVerificationCode(code) {
		return nil, domain.Invalid("verification_code", "debe tener 6 dígitos")
	}

	var sheet *entity.Sheet
	switch {
	case in.Target.IsSheet():
		s, err := repos.Sheets.GetForUpdate(ctx, in.Target.ID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.NewFieldError(domain.ErrNotFound, "sheet_id", "planilla no encontrada")
		}
		if entity.SignatureTargetKind(s.Variant) != in.Target.Kind {
			return nil, domain.Invalid("target", "el tipo de planilla no coincide con el destino")
		}
		sheet = s
	case in.Target.Kind == entity.TargetQualityControl:
		qc, err := repos.QualityControls.GetByID(ctx, in.Target.ID)
		if err != nil {
			return nil, err
		}
		if qc == nil {
			return nil, domain.NewFieldError(domain.ErrNotFound, "quality_control_id", "control de calidad no encontrado")
		}
	case in.Target.Kind == entity.TargetNone:
		in.Target.ID = ""
	default:
		return nil, domain.Invalid("target", fmt.Sprintf("destino desconocido: %s", in.Target.Kind))
	}

	cls := role.Classify(in.Signer, in.Meta.SuppliedKind)
	now := l.now()
	sig := &entity.Signature{
		ID:               uuid.New().String(),
		UserID:           in.Signer.ID,
		Target:           in.Target,
		Kind:             cls.Kind,
		Hash:             Hash(in.Signer.RUT, in.Target.ID, now),
		VerificationCode: code,
		IPAddress:        in.Meta.IPAddress,
		UserAgent:        in.Meta.UserAgent,
		CreatedAt:        now,
	}
	if err := repos.Signatures.Create(ctx, sig); err != nil {
		return nil, err
	}
	res := &Result{Signature: sig}
	if sheet == nil {
		return res, nil
	}

	res.Sheet = sheet
	res.Transition = approval.Transition{From: sheet.ApprovalStatus, To: sheet.ApprovalStatus}
	evt := l.log.Info().Str("signature_id", sig.ID).Str("sheet_id", sheet.ID).Str("kind", sig.Kind)
	if !cls.Derived {
		evt.Msg("firma solo de auditoría: tipo no derivado del rol")
		return res, nil
	}
	slot, ok := approval.SlotForKind(sheet.Variant, cls.Kind)
	if !ok {
		evt.Msg("firma solo de auditoría: la variante no tiene slot para el tipo")
		return res, nil
	}
	if !approval.Bind(sheet, slot, sig.ID) {
		evt.Str("slot", slot).Msg("firma solo de auditoría: slot ocupado")
		return res, nil
	}
	sheet.Touch(in.Signer.FullName(), now)
	res.Slot = slot
	res.Transition = approval.Recompute(sheet)
	if err := repos.Sheets.Update(ctx, sheet); err != nil {
		return nil, err
	}
	evt.Str("slot", slot).Str("status", sheet.ApprovalStatus).Msg("firma ligada")
	return res, nil
}

// Hash sha256 hex sobre rut + id del destino + timestamp.
func Hash(rut, targetID string, at time.Time) string {
	sum := sha256.Sum256([]byte(rut + targetID + at.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}

// NewVerificationCode código numérico de 6 dígitos.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generar código de verificación: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func isVerificationCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

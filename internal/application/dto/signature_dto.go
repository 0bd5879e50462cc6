package dto

import (
	"time"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// SignatureResponse salida de un registro de firma.
type SignatureResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	TargetKind       string    `json:"target_kind,omitempty"`
	TargetID         string    `json:"target_id,omitempty"`
	Kind             string    `json:"kind"`
	Hash             string    `json:"hash"`
	VerificationCode string    `json:"verification_code"`
	IPAddress        string    `json:"ip_address,omitempty"`
	UserAgent        string    `json:"user_agent,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewSignatureResponse mapea la entidad a la respuesta.
func NewSignatureResponse(s *entity.Signature) SignatureResponse {
	return SignatureResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		TargetKind:       s.Target.Kind,
		TargetID:         s.Target.ID,
		Kind:             s.Kind,
		Hash:             s.Hash,
		VerificationCode: s.VerificationCode,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		CreatedAt:        s.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// RegisterMaterialRequest body para POST /api/materials. MaterialID, o Code de un material
// ya registrado del mismo tipo, suma la partida a ese material.
type RegisterMaterialRequest struct {
	MaterialID    string   `json:"material_id" validate:"omitempty,uuid"`
	Kind          string   `json:"kind" validate:"required,oneof=MP EP ES"`
	Name          string   `json:"name" validate:"required_without=MaterialID,max=200"`
	Code          string   `json:"code" validate:"omitempty,max=50"`
	Batch         string   `json:"batch" validate:"omitempty,max=50"`
	PackagingType string   `json:"packaging_type" validate:"omitempty,max=100"`
	Quantity      Quantity `json:"quantity"`
}

// MaterialResponse salida de un material con su stock en la bodega principal.
type MaterialResponse struct {
	ID             string              `json:"id"`
	Kind           string              `json:"kind"`
	Name           string              `json:"name"`
	Code           string              `json:"code,omitempty"`
	QualityCode    string              `json:"quality_code,omitempty"`
	Batch          string              `json:"batch,omitempty"`
	PackagingType  string              `json:"packaging_type,omitempty"`
	Quantity       decimal.Decimal     `json:"quantity"`
	ApprovalStatus string              `json:"approval_status"`
	SignatureID    string              `json:"signature_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Stock          *StockLevelResponse `json:"stock,omitempty"`
}

// NewMaterialResponse mapea la entidad a la respuesta.
func NewMaterialResponse(m *entity.Material, stock *entity.StockLevel) MaterialResponse {
	out := MaterialResponse{
		ID:             m.ID,
		Kind:           m.Kind,
		Name:           m.Name,
		Code:           m.Code,
		QualityCode:    m.QualityCode,
		Batch:          m.Batch,
		PackagingType:  m.PackagingType,
		Quantity:       m.Quantity,
		ApprovalStatus: m.ApprovalStatus,
		SignatureID:    m.SignatureID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if stock != nil {
		s := NewStockLevelResponse(stock)
		out.Stock = &s
	}
	return out
}

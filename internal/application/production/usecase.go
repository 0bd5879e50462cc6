// Package production casos de uso de planillas: creación con sus validaciones de entrada,
// consulta y revocación de slots.
package production

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/approval"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// SheetUseCase creación, consulta y revocación de slots de planillas.
type SheetUseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
	stock *inventory.StockLedger
	log   zerolog.Logger
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(tx ports.TxRunner, repos repository.Repos, stock *inventory.StockLedger, log zerolog.Logger) *SheetUseCase {
	return &SheetUseCase{tx: tx, repos: repos, stock: stock, log: log}
}

// Create valida y crea la planilla. Las variantes con material exigen un control de calidad
// aprobado para ese material; un pedido a bodega exige stock suficiente en la bodega principal.
func (uc *SheetUseCase) Create(ctx context.Context, actorID string, in dto.CreateSheetRequest) (*dto.SheetResponse, error) {
	actor, err := uc.repos.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	sheet, err := buildSheet(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sheet.ID = uuid.New().String()
	sheet.CreatedAt = now
	sheet.CreatedBy = actor.FullName()
	sheet.Touch(actor.FullName(), now)
	approval.Recompute(sheet)

	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		if sheet.MaterialID != "" {
			if err := uc.checkMaterial(ctx, repos, sheet); err != nil {
				return err
			}
		}
		if inventory.MovesStock(sheet) {
			lock := uc.stock.Policy().DebitsAtCreation(sheet.Variant)
			if _, err := uc.stock.CheckSufficient(ctx, repos, sheet, lock); err != nil {
				return err
			}
			if _, err := uc.stock.DebitAtCreation(ctx, repos, sheet); err != nil {
				return err
			}
		}
		return repos.Sheets.Create(ctx, sheet)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sheet_id", sheet.ID).
		Str("variant", sheet.Variant).
		Str("movement", sheet.MovementKind).
		Str("delivered", sheet.DeliveredQuantity.String()).
		Bool("stock_debited", sheet.StockDebited).
		Msg("planilla creada")
	out := dto.NewSheetResponse(sheet)
	return &out, nil
}

// checkMaterial valida el material y resuelve el control de calidad aprobado más reciente.
func (uc *SheetUseCase) checkMaterial(ctx context.Context, repos repository.Repos, sheet *entity.Sheet) error {
	m, err := repos.Materials.GetByID(ctx, sheet.MaterialID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.NewFieldError(domain.ErrNotFound, "material_id", "material no encontrado")
	}
	if m.Kind != entity.MaterialKindForVariant(sheet.Variant) {
		return domain.Invalid("material_id", "el material no corresponde a la variante de planilla")
	}
	qc, err := repos.QualityControls.LatestApprovedForMaterial(ctx, m.ID)
	if err != nil {
		return err
	}
	if qc == nil {
		return domain.NewFieldError(domain.ErrQualityControlNotApproved, "material_id",
			"el material "+m.Name+" no tiene un control de calidad aprobado")
	}
	sheet.QualityControlID = qc.ID
	return nil
}

// buildSheet validaciones que no requieren persistencia.
func buildSheet(in dto.CreateSheetRequest) (*entity.Sheet, error) {
	if !entity.IsValidVariant(in.Variant) {
		return nil, domain.Invalid("variant", "variante de planilla inválida")
	}
	if in.MovementKind != entity.MovementProduction && in.MovementKind != entity.MovementWarehouseOrder {
		return nil, domain.Invalid("movement_kind", "tipo de movimiento inválido")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, domain.Invalid("product_name", "el producto es obligatorio")
	}
	issue, err := time.Parse(dto.DateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.Invalid("issue_date", "formato esperado AAAA-MM-DD")
	}
	expiry, err := time.Parse(dto.DateLayout, in.ExpiryDate)
	if err != nil {
		return nil, domain.Invalid("expiry_date", "formato esperado AAAA-MM-DD")
	}
	if expiry.Before(issue) {
		return nil, domain.Invalid("expiry_date", "la fecha de vencimiento no puede ser anterior a la fecha de emisión")
	}
	delivered := decimal.Zero
	if in.DeliveredQuantity != "" {
		if delivered, err = inventory.ParseQuantity("delivered_quantity", in.DeliveredQuantity.String()); err != nil {
			return nil, err
		}
	}

	s := &entity.Sheet{
		Variant:           in.Variant,
		ProductName:       strings.TrimSpace(in.ProductName),
		Batch:             in.Batch,
		IssueDate:         issue,
		ExpiryDate:        expiry,
		MovementKind:      in.MovementKind,
		MaterialID:        strings.TrimSpace(in.MaterialID),
		DeliveredQuantity: delivered,
		Observations:      in.Observations,
		Slots:             map[string]string{},
	}
	if entity.MaterialKindForVariant(s.Variant) == "" {
		if s.MaterialID != "" {
			return nil, domain.Invalid("material_id", "las planillas de envase no referencian material")
		}
		if s.MovementKind != entity.MovementProduction {
			return nil, domain.Invalid("movement_kind", "las planillas de envase no generan pedidos a bodega")
		}
		return s, nil
	}
	if s.MaterialID == "" {
		return nil, domain.Invalid("material_id", "el material es obligatorio")
	}
	if s.MovementKind == entity.MovementWarehouseOrder && !s.DeliveredQuantity.IsPositive() {
		return nil, domain.Invalid("delivered_quantity", "un pedido a bodega requiere cantidad entregada mayor a cero")
	}
	return s, nil
}

// Get devuelve una planilla por id.
func (uc *SheetUseCase) Get(ctx context.Context, id string) (*dto.SheetResponse, error) {
	s, err := uc.repos.Sheets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewSheetResponse(s)
	return &out, nil
}

// RevokeSlot libera un slot y recalcula el estado. La firma sigue en el libro y el stock
// ya descontado no se revierte.
func (uc *SheetUseCase) RevokeSlot(ctx context.Context, actorID, sheetID, slot string) (*dto.SheetResponse, error) {
	actor, err := uc.repos.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	var sheet *entity.Sheet
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		sheet, err = repos.Sheets.GetForUpdate(ctx, sheetID)
		if err != nil {
			return err
		}
		if sheet == nil {
			return domain.NewFieldError(domain.ErrNotFound, "sheet_id", "planilla no encontrada")
		}
		if !approval.HasSlot(sheet.Variant, slot) {
			return domain.Invalid("slot", "la variante no tiene el slot "+slot)
		}
		if !approval.Clear(sheet, slot) {
			return domain.NewFieldError(domain.ErrConflict, "slot", "el slot ya está vacío")
		}
		sheet.Touch(actor.FullName(), time.Now().UTC())
		tr := approval.Recompute(sheet)
		if err := repos.Sheets.Update(ctx, sheet); err != nil {
			return err
		}
		uc.log.Info().Str("sheet_id", sheet.ID).Str("slot", slot).Str("from", tr.From).Str("status", tr.To).Msg("slot revocado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewSheetResponse(sheet)
	return &out, nil
}

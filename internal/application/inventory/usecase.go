package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// InventoryUseCase registro de materiales y manejo de stock de las bodegas principales.
type InventoryUseCase struct {
	tx     ports.TxRunner
	repos  repository.Repos // atados al pool, para lecturas fuera de transacción
	ledger *StockLedger
	log    zerolog.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(tx ports.TxRunner, repos repository.Repos, ledger *StockLedger, log zerolog.Logger) *InventoryUseCase {
	return &InventoryUseCase{tx: tx, repos: repos, ledger: ledger, log: log}
}

// RegisterMaterial registra una partida y la acredita en la bodega principal del tipo.
// Si la partida nombra un material existente (por material_id o por tipo y código) la
// cantidad se suma a ese material; si no, se crea uno nuevo.
func (uc *InventoryUseCase) RegisterMaterial(ctx context.Context, in dto.RegisterMaterialRequest) (*dto.MaterialResponse, error) {
	if !entity.IsValidMaterialKind(in.Kind) {
		return nil, domain.Invalid("kind", "tipo de material inválido")
	}
	in.Code = strings.TrimSpace(in.Code)
	if in.MaterialID == "" && strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	qty := decimal.Zero
	if in.Kind == entity.MaterialRaw || in.Quantity != "" {
		var err error
		if qty, err = ParseQuantity("quantity", in.Quantity.String()); err != nil {
			return nil, err
		}
	}

	var (
		m       *entity.Material
		level   *entity.StockLevel
		created bool
	)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		existing, err := uc.findExisting(ctx, repos, in)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if existing != nil {
			m = existing
			m.Quantity = m.Quantity.Add(qty)
			if in.Batch != "" {
				m.Batch = in.Batch
			}
			m.UpdatedAt = now
			if err := repos.Materials.Update(ctx, m); err != nil {
				return err
			}
		} else {
			m = newMaterial(in, qty, now)
			if prefix := qualityCodePrefix(m.Kind); prefix != "" {
				n, err := repos.Sequences.Next(ctx, prefix)
				if err != nil {
					return err
				}
				m.QualityCode = entity.FormatCode(prefix, n)
			}
			if err := repos.Materials.Create(ctx, m); err != nil {
				return err
			}
			created = true
		}
		level, err = uc.ledger.Credit(ctx, repos, m, qty)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("material_id", m.ID).
		Str("kind", m.Kind).
		Str("quality_code", m.QualityCode).
		Bool("nuevo", created).
		Msg("partida registrada")
	out := dto.NewMaterialResponse(m, level)
	return &out, nil
}

// findExisting resuelve el material nombrado por la partida, bloqueando su fila.
func (uc *InventoryUseCase) findExisting(ctx context.Context, repos repository.Repos, in dto.RegisterMaterialRequest) (*entity.Material, error) {
	if in.MaterialID != "" {
		m, err := repos.Materials.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		if m.Kind != in.Kind {
			return nil, domain.Invalid("kind", "no coincide con el tipo del material")
		}
		return m, nil
	}
	if in.Code == "" {
		return nil, nil
	}
	return repos.Materials.GetByCodeForUpdate(ctx, in.Kind, in.Code)
}

func newMaterial(in dto.RegisterMaterialRequest, qty decimal.Decimal, now time.Time) *entity.Material {
	return &entity.Material{
		ID:             uuid.New().String(),
		Kind:           in.Kind,
		Name:           strings.TrimSpace(in.Name),
		Code:           in.Code,
		Batch:          in.Batch,
		PackagingType:  in.PackagingType,
		Quantity:       qty,
		ApprovalStatus: entity.MaterialPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// GetMaterial devuelve el material con su stock en la bodega principal.
func (uc *InventoryUseCase) GetMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repos.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	level, err := uc.ledger.Available(ctx, uc.repos, m.Kind, m.ID, false)
	if err != nil {
		return nil, err
	}
	out := dto.NewMaterialResponse(m, level)
	return &out, nil
}

// SetStock fija (sobrescribe) el disponible del material en la bodega principal del tipo.
func (uc *InventoryUseCase) SetStock(ctx context.Context, in dto.SetStockRequest) (*dto.StockLevelResponse, error) {
	if !entity.IsValidMaterialKind(in.Kind) {
		return nil, domain.Invalid("kind", "tipo de bodega inválido")
	}
	if in.MaterialID == "" {
		return nil, domain.Invalid("material_id", "requerido")
	}
	qty, err := ParseQuantity("quantity", in.Quantity.String())
	if err != nil {
		return nil, err
	}
	var level *entity.StockLevel
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		level, err = uc.ledger.Set(ctx, repos, in.Kind, in.MaterialID, qty)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewStockLevelResponse(level)
	return &out, nil
}

// GetStock consulta el disponible del material en la bodega principal del tipo.
func (uc *InventoryUseCase) GetStock(ctx context.Context, q dto.StockQuery) (*dto.StockLevelResponse, error) {
	if !entity.IsValidMaterialKind(q.Kind) {
		return nil, domain.Invalid("kind", "tipo de bodega inválido")
	}
	m, err := uc.repos.Materials.GetByID(ctx, q.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	level, err := uc.ledger.Available(ctx, uc.repos, q.Kind, q.MaterialID, false)
	if err != nil {
		return nil, err
	}
	out := dto.NewStockLevelResponse(level)
	return &out, nil
}

func qualityCodePrefix(kind string) string {
	switch kind {
	case entity.MaterialPrimaryPackaging:
		return entity.PrefixPrimaryPackaging
	case entity.MaterialSecondaryPackaging:
		return entity.PrefixSecondaryPackaging
	}
	return ""
}

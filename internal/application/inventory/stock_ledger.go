package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

// StockLedger mantiene los niveles de stock de las bodegas principales.
// Todas las operaciones reciben los repositorios de la transacción en curso.
type StockLedger struct {
	policy DebitPolicy
	log    zerolog.Logger
}

// NewStockLedger construye el ledger con la política de descuento.
func NewStockLedger(policy DebitPolicy, log zerolog.Logger) *StockLedger {
	return &StockLedger{policy: policy, log: log.With().Str("component", "stock_ledger").Logger()}
}

// Policy política de descuento vigente.
func (l *StockLedger) Policy() DebitPolicy { return l.policy }

// PrincipalWarehouse obtiene (o crea) la bodega principal del tipo.
func (l *StockLedger) PrincipalWarehouse(ctx context.Context, repos repository.Repos, kind string) (*entity.Warehouse, error) {
	name, ok := entity.PrincipalWarehouseNames[kind]
	if !ok {
		return nil, domain.Invalid("kind", fmt.Sprintf("tipo de bodega desconocido: %s", kind))
	}
	wh, err := repos.Warehouses.EnsurePrincipal(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega principal %s no disponible", kind)
	}
	return wh, nil
}

// Credit suma la cantidad de la partida al stock del material en su bodega principal.
// Los materiales de envase acreditan cero: su stock se carga aparte con Set.
func (l *StockLedger) Credit(ctx context.Context, repos repository.Repos, m *entity.Material, batch decimal.Decimal) (*entity.StockLevel, error) {
	wh, err := l.PrincipalWarehouse(ctx, repos, m.Kind)
	if err != nil {
		return nil, err
	}
	level, err := repos.Stock.LockForUpdate(ctx, wh.ID, m.ID)
	if err != nil {
		return nil, err
	}
	credit := decimal.Zero
	if m.Kind == entity.MaterialRaw {
		credit = batch
	}
	level.Available = level.Available.Add(credit)
	level.UpdatedAt = time.Now().UTC()
	if err := repos.Stock.Upsert(ctx, level); err != nil {
		return nil, err
	}
	l.log.Info().
		Str("material_id", m.ID).
		Str("warehouse_id", wh.ID).
		Str("credit", credit.String()).
		Str("available", level.Available.String()).
		Msg("stock acreditado")
	return level, nil
}

// ParseQuantity interpreta una cantidad enviada como texto. Rechaza valores no numéricos o negativos.
func ParseQuantity(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.Invalid(field, "la cantidad es obligatoria")
	}
	q, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.Invalid(field, "la cantidad debe ser numérica")
	}
	if q.IsNegative() {
		return decimal.Zero, domain.Invalid(field, "la cantidad no puede ser negativa")
	}
	return q, nil
}

// Set sobrescribe el stock disponible del material en la bodega principal del tipo.
func (l *StockLedger) Set(ctx context.Context, repos repository.Repos, kind, materialID string, quantity decimal.Decimal) (*entity.StockLevel, error) {
	if quantity.IsNegative() {
		return nil, domain.Invalid("quantity", "la cantidad no puede ser negativa")
	}
	m, err := repos.Materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "material_id", "material no encontrado")
	}
	if m.Kind != kind {
		return nil, domain.Invalid("kind", "el material no corresponde al tipo de bodega")
	}
	wh, err := l.PrincipalWarehouse(ctx, repos, kind)
	if err != nil {
		return nil, err
	}
	level, err := repos.Stock.LockForUpdate(ctx, wh.ID, materialID)
	if err != nil {
		return nil, err
	}
	level.Available = quantity
	level.UpdatedAt = time.Now().UTC()
	if err := repos.Stock.Upsert(ctx, level); err != nil {
		return nil, err
	}
	l.log.Info().Str("material_id", materialID).Str("available", quantity.String()).Msg("stock fijado")
	return level, nil
}

// Available stock actual del material en la bodega principal del tipo. Con lock=true bloquea la fila.
func (l *StockLedger) Available(ctx context.Context, repos repository.Repos, kind, materialID string, lock bool) (*entity.StockLevel, error) {
	wh, err := l.PrincipalWarehouse(ctx, repos, kind)
	if err != nil {
		return nil, err
	}
	if lock {
		return repos.Stock.LockForUpdate(ctx, wh.ID, materialID)
	}
	return repos.Stock.Get(ctx, wh.ID, materialID)
}

// CheckSufficient verifica que haya stock para la cantidad entregada de una planilla nueva.
func (l *StockLedger) CheckSufficient(ctx context.Context, repos repository.Repos, s *entity.Sheet, lock bool) (*entity.StockLevel, error) {
	level, err := l.Available(ctx, repos, entity.MaterialKindForVariant(s.Variant), s.MaterialID, lock)
	if err != nil {
		return nil, err
	}
	if s.DeliveredQuantity.GreaterThan(level.Available) {
		return nil, domain.NewFieldError(domain.ErrInsufficientStock, "delivered_quantity",
			fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", level.Available, s.DeliveredQuantity))
	}
	return level, nil
}

// DebitAtCreation descuenta al crear la planilla si la política lo indica para la variante.
// Recorta a cero. Marca la planilla como descontada; el caller la persiste.
func (l *StockLedger) DebitAtCreation(ctx context.Context, repos repository.Repos, s *entity.Sheet) (bool, error) {
	if !MovesStock(s) || s.StockDebited || !l.policy.DebitsAtCreation(s.Variant) {
		return false, nil
	}
	return l.debit(ctx, repos, s, ShortfallClamp)
}

// DebitOnApproval descuenta cuando la planilla acaba de pasar a APROBADO.
// Según la política omite (solo log) o rechaza con ErrInsufficientStock si no alcanza.
func (l *StockLedger) DebitOnApproval(ctx context.Context, repos repository.Repos, s *entity.Sheet) (bool, error) {
	if !MovesStock(s) || s.StockDebited || l.policy.DebitsAtCreation(s.Variant) {
		return false, nil
	}
	if s.ApprovalStatus != entity.SheetApproved {
		return false, nil
	}
	return l.debit(ctx, repos, s, l.policy.ShortfallFor(s.Variant))
}

func (l *StockLedger) debit(ctx context.Context, repos repository.Repos, s *entity.Sheet, mode Shortfall) (bool, error) {
	level, err := l.Available(ctx, repos, entity.MaterialKindForVariant(s.Variant), s.MaterialID, true)
	if err != nil {
		return false, err
	}
	logEvt := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("sheet_id", s.ID).
			Str("material_id", s.MaterialID).
			Str("available", level.Available.String()).
			Str("delivered", s.DeliveredQuantity.String())
	}
	next := level.Available.Sub(s.DeliveredQuantity)
	if next.IsNegative() {
		switch mode {
		case ShortfallSkip:
			logEvt(l.log.Warn()).Msg("descuento omitido: stock insuficiente")
			return false, nil
		case ShortfallReject:
			return false, domain.NewFieldError(domain.ErrInsufficientStock, "delivered_quantity",
				fmt.Sprintf("stock insuficiente al aprobar: disponible %s, solicitado %s", level.Available, s.DeliveredQuantity))
		default:
			logEvt(l.log.Warn()).Msg("descuento recortado a cero")
			next = decimal.Zero
		}
	}
	level.Available = next
	level.UpdatedAt = time.Now().UTC()
	if err := repos.Stock.Upsert(ctx, level); err != nil {
		return false, err
	}
	s.StockDebited = true
	logEvt(l.log.Info()).Str("remaining", next.String()).Msg("stock descontado")
	return true, nil
}

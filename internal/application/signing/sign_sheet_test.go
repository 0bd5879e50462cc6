package signing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/testutil"
)

func newSignSheet(env *testutil.Env, policy inventory.DebitPolicy) *signing.SignSheetUseCase {
	return signing.NewSignSheetUseCase(env.Store, env.Auth, signing.NewLedger(env.Log), inventory.NewStockLedger(policy, env.Log), env.Log)
}

func signSheet(env *testutil.Env, uc *signing.SignSheetUseCase, s *entity.Sheet, signer *entity.User) (*dto.SignSheetResponse, error) {
	return uc.Execute(env.Ctx, signing.SignSheetInput{SheetID: s.ID, RUT: signer.RUT, Password: testutil.Password})
}

// signAll firma con los tres roles de planilla y devuelve la última respuesta.
func signAll(t *testing.T, env *testutil.Env, uc *signing.SignSheetUseCase, s *entity.Sheet) *dto.SignSheetResponse {
	t.Helper()
	var out *dto.SignSheetResponse
	for _, r := range signing.SheetSignerRoles {
		var err error
		out, err = signSheet(env, uc, s, env.User(r))
		require.NoError(t, err)
	}
	return out
}

func TestSignSheet_RolesNoHabilitados(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")

	_, err := signSheet(env, uc, sheet, env.User(entity.RoleQualityInspector))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = signSheet(env, uc, sheet, env.User(""))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Execute(env.Ctx, signing.SignSheetInput{SheetID: sheet.ID, RUT: "99999999-9", Password: testutil.Password})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Empty(t, env.Signatures(entity.TargetManufacturingSheet, sheet.ID))
}

func TestSignSheet_RUTConFormato(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)
	sheet := env.Sheet(entity.VariantEnvase, entity.MovementProduction, "", "0")
	chief := env.User(entity.RoleSectionChief)

	rut := chief.RUT[:2] + "." + chief.RUT[2:5] + "." + chief.RUT[5:]
	out, err := uc.Execute(env.Ctx, signing.SignSheetInput{SheetID: sheet.ID, RUT: " " + rut + " ", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, entity.SlotSectionChief, out.Slot)
}

func TestSignSheet_PlanillaInexistente(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)

	_, err := signSheet(env, uc, &entity.Sheet{ID: "nope"}, env.User(entity.RoleSectionChief))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(env.Ctx, signing.SignSheetInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── descuento al aprobar ────────────────────────────────────────────────────

func TestSignSheet_EnvaseSecundarioDescuentaAlAprobar(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialSecondaryPackaging, "100")
	sheet := env.Sheet(entity.VariantSecondaryPackaging, entity.MovementWarehouseOrder, m.ID, "30")

	out := signAll(t, env, uc, sheet)
	assert.Equal(t, entity.SheetApproved, out.Sheet.ApprovalStatus)
	assert.True(t, out.Sheet.StockDebited)
	assert.True(t, decimal.NewFromInt(70).Equal(env.Stock(entity.MaterialSecondaryPackaging, m.ID)))
}

func TestSignSheet_EnvaseSecundarioOmiteSiNoAlcanza(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialSecondaryPackaging, "10")
	sheet := env.Sheet(entity.VariantSecondaryPackaging, entity.MovementWarehouseOrder, m.ID, "30")

	out := signAll(t, env, uc, sheet)
	assert.Equal(t, entity.SheetApproved, out.Sheet.ApprovalStatus)
	assert.False(t, out.Sheet.StockDebited)
	assert.True(t, decimal.NewFromInt(10).Equal(env.Stock(entity.MaterialSecondaryPackaging, m.ID)))
}

func TestSignSheet_FabricacionNoDescuentaDosVeces(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialRaw, "100")
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementWarehouseOrder, m.ID, "30")

	out := signAll(t, env, uc, sheet)
	assert.Equal(t, entity.SheetApproved, out.Sheet.ApprovalStatus)
	assert.False(t, out.Sheet.StockDebited, "per_variant descuenta fabricación al crear, no al aprobar")
	assert.True(t, decimal.NewFromInt(100).Equal(env.Stock(entity.MaterialRaw, m.ID)))
}

func TestSignSheet_AlAprobarRechazaYRevierteFirma(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyOnApproval)
	m := env.Material(entity.MaterialRaw, "50")
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementWarehouseOrder, m.ID, "80")

	_, err := signSheet(env, uc, sheet, env.User(entity.RoleSectionChief))
	require.NoError(t, err)
	_, err = signSheet(env, uc, sheet, env.User(entity.RoleProductionChief))
	require.NoError(t, err)

	_, err = signSheet(env, uc, sheet, env.User(entity.RolePharmaceuticChemist))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := env.Repos.Sheets.GetByID(env.Ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SheetInProgress, got.ApprovalStatus)
	assert.Empty(t, got.Slots[entity.SlotChemist])
	assert.Len(t, env.Signatures(entity.TargetManufacturingSheet, sheet.ID), 2, "la tercera firma se revierte con la transacción")
	assert.True(t, decimal.NewFromInt(50).Equal(env.Stock(entity.MaterialRaw, m.ID)))
}

func TestSignSheet_AlAprobarDescuenta(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyOnApproval)
	m := env.Material(entity.MaterialPrimaryPackaging, "50")
	sheet := env.Sheet(entity.VariantPrimaryPackaging, entity.MovementWarehouseOrder, m.ID, "50")

	out := signAll(t, env, uc, sheet)
	assert.True(t, out.Sheet.StockDebited)
	assert.True(t, env.Stock(entity.MaterialPrimaryPackaging, m.ID).IsZero())
}

func TestSignSheet_ProduccionNoMueveStock(t *testing.T) {
	env := testutil.New(t)
	uc := newSignSheet(env, inventory.PolicyOnApproval)
	m := env.Material(entity.MaterialRaw, "10")
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, m.ID, "500")

	out := signAll(t, env, uc, sheet)
	assert.Equal(t, entity.SheetApproved, out.Sheet.ApprovalStatus)
	assert.False(t, out.Sheet.StockDebited)
	assert.True(t, decimal.NewFromInt(10).Equal(env.Stock(entity.MaterialRaw, m.ID)))
}

package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/testutil"
)

func newInventory(env *testutil.Env, policy inventory.DebitPolicy) (*inventory.InventoryUseCase, *inventory.StockLedger) {
	ledger := inventory.NewStockLedger(policy, env.Log)
	return inventory.NewInventoryUseCase(env.Store, env.Repos, ledger, env.Log), ledger
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Política de descuento
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDebitPolicy(t *testing.T) {
	cases := map[string]inventory.DebitPolicy{
		"":             inventory.PolicyPerVariant,
		"per_variant":  inventory.PolicyPerVariant,
		" ON_APPROVAL": inventory.PolicyOnApproval,
	}
	for in, want := range cases {
		got, err := inventory.ParseDebitPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := inventory.ParseDebitPolicy("siempre")
	assert.Error(t, err)
}

func TestDebitPolicy_PorVariante(t *testing.T) {
	p := inventory.PolicyPerVariant
	assert.True(t, p.DebitsAtCreation(entity.VariantManufacturing))
	assert.True(t, p.DebitsAtCreation(entity.VariantPrimaryPackaging))
	assert.False(t, p.DebitsAtCreation(entity.VariantSecondaryPackaging))
	assert.Equal(t, inventory.ShortfallClamp, p.ShortfallFor(entity.VariantManufacturing))
	assert.Equal(t, inventory.ShortfallSkip, p.ShortfallFor(entity.VariantSecondaryPackaging))

	q := inventory.PolicyOnApproval
	assert.False(t, q.DebitsAtCreation(entity.VariantManufacturing))
	assert.Equal(t, inventory.ShortfallReject, q.ShortfallFor(entity.VariantSecondaryPackaging))
}

func TestMovesStock(t *testing.T) {
	assert.True(t, inventory.MovesStock(&entity.Sheet{Variant: entity.VariantManufacturing, MovementKind: entity.MovementWarehouseOrder}))
	assert.False(t, inventory.MovesStock(&entity.Sheet{Variant: entity.VariantManufacturing, MovementKind: entity.MovementProduction}))
	assert.False(t, inventory.MovesStock(&entity.Sheet{Variant: entity.VariantEnvase, MovementKind: entity.MovementWarehouseOrder}))
}

func TestParseQuantity(t *testing.T) {
	q, err := inventory.ParseQuantity("quantity", " 12.50 ")
	require.NoError(t, err)
	assert.True(t, dec("12.5").Equal(q))

	for _, raw := range []string{"", "abc", "-1"} {
		_, err := inventory.ParseQuantity("quantity", raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMaterial_AcumulaStock(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)
	req := dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "Lactosa", Code: "MP-1", Batch: "L-01", Quantity: "100"}

	first, err := uc.RegisterMaterial(env.Ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.Stock)
	assert.True(t, dec("100").Equal(first.Stock.Available))
	assert.Equal(t, entity.MaterialPending, first.ApprovalStatus)
	assert.Empty(t, first.QualityCode)

	wh, err := env.Repos.Warehouses.EnsurePrincipal(env.Ctx, entity.MaterialRaw, entity.PrincipalWarehouseNames[entity.MaterialRaw])
	require.NoError(t, err)
	assert.Equal(t, wh.ID, first.Stock.WarehouseID)

	// segunda partida del mismo material: suma, no sobrescribe
	req.Quantity = "50"
	req.Batch = "L-02"
	second, err := uc.RegisterMaterial(env.Ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, dec("150").Equal(second.Stock.Available))
	assert.True(t, dec("150").Equal(second.Quantity))
	assert.Equal(t, "L-02", second.Batch)

	got, err := uc.GetMaterial(env.Ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(got.Stock.Available))
}

func TestRegisterMaterial_PartidaPorMaterialID(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)

	first, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "Almidón", Quantity: "30"})
	require.NoError(t, err)

	again, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{MaterialID: first.ID, Kind: entity.MaterialRaw, Quantity: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Almidón", again.Name)
	assert.True(t, dec("42.5").Equal(again.Stock.Available))

	_, err = uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{MaterialID: first.ID, Kind: entity.MaterialPrimaryPackaging})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el tipo debe coincidir")

	_, err = uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{MaterialID: "nope", Kind: entity.MaterialRaw, Quantity: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, dec("42.5").Equal(env.Stock(entity.MaterialRaw, first.ID)))
}

func TestRegisterMaterial_MismoCodigoOtroTipo(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)

	mp, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "Lactosa", Code: "X-1", Quantity: "10"})
	require.NoError(t, err)
	ep, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialPrimaryPackaging, Name: "Frasco", Code: "X-1"})
	require.NoError(t, err)
	assert.NotEqual(t, mp.ID, ep.ID)
	assert.Equal(t, "MEP-0001", ep.QualityCode)

	// la segunda partida de envase no consume otro código de calidad
	again, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialPrimaryPackaging, Code: "X-1", Name: "Frasco"})
	require.NoError(t, err)
	assert.Equal(t, ep.ID, again.ID)
	assert.Equal(t, "MEP-0001", again.QualityCode)
	assert.True(t, again.Stock.Available.IsZero())
}

func TestStockLedger_CreditSuma(t *testing.T) {
	env := testutil.New(t)
	_, ledger := newInventory(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialRaw, "40")

	err := env.Store.Run(env.Ctx, func(repos repository.Repos) error {
		level, err := ledger.Credit(env.Ctx, repos, m, dec("25"))
		if err != nil {
			return err
		}
		assert.True(t, dec("65").Equal(level.Available))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, dec("65").Equal(env.Stock(entity.MaterialRaw, m.ID)))
}

func TestRegisterMaterial_EnvaseCodigoYStockCero(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)

	ep1, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialPrimaryPackaging, Name: "Frasco ámbar", Quantity: "500"})
	require.NoError(t, err)
	ep2, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialPrimaryPackaging, Name: "Tapa"})
	require.NoError(t, err)
	es1, err := uc.RegisterMaterial(env.Ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialSecondaryPackaging, Name: "Caja"})
	require.NoError(t, err)

	assert.Equal(t, "MEP-0001", ep1.QualityCode)
	assert.Equal(t, "MEP-0002", ep2.QualityCode)
	assert.Equal(t, "MES-0001", es1.QualityCode)
	assert.True(t, ep1.Stock.Available.IsZero(), "el envase no acredita al registrarse")
}

func TestRegisterMaterial_Validaciones(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)

	cases := []struct {
		name  string
		in    dto.RegisterMaterialRequest
		field string
	}{
		{"tipo inválido", dto.RegisterMaterialRequest{Kind: "PT", Name: "x", Quantity: "1"}, "kind"},
		{"sin nombre", dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "  ", Quantity: "1"}, "name"},
		{"materia prima sin cantidad", dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "x"}, "quantity"},
		{"cantidad negativa", dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "x", Quantity: "-3"}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMaterial(env.Ctx, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStock_Sobrescribe(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialPrimaryPackaging, "0")

	out, err := uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialPrimaryPackaging, MaterialID: m.ID, Quantity: "250"})
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(out.Available))

	out, err = uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialPrimaryPackaging, MaterialID: m.ID, Quantity: "10"})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(out.Available))

	got, err := uc.GetStock(env.Ctx, dto.StockQuery{Kind: entity.MaterialPrimaryPackaging, MaterialID: m.ID})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(got.Available))
}

func TestSetStock_Rechazos(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialPrimaryPackaging, "5")

	_, err := uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialPrimaryPackaging, MaterialID: m.ID, Quantity: "mucho"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialPrimaryPackaging, MaterialID: m.ID, Quantity: "-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialSecondaryPackaging, MaterialID: m.ID, Quantity: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el tipo de bodega debe coincidir con el material")
	_, err = uc.SetStock(env.Ctx, dto.SetStockRequest{Kind: entity.MaterialPrimaryPackaging, MaterialID: "nope", Quantity: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, dec("5").Equal(env.Stock(entity.MaterialPrimaryPackaging, m.ID)))
}

func TestGetStock_MaterialInexistente(t *testing.T) {
	env := testutil.New(t)
	uc, _ := newInventory(env, inventory.PolicyPerVariant)
	_, err := uc.GetStock(env.Ctx, dto.StockQuery{Kind: entity.MaterialRaw, MaterialID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetMaterial(env.Ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockLedger_DescuentoAlCrearRecorta(t *testing.T) {
	env := testutil.New(t)
	_, ledger := newInventory(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialRaw, "20")
	s := &entity.Sheet{
		ID:                "s1",
		Variant:           entity.VariantManufacturing,
		MovementKind:      entity.MovementWarehouseOrder,
		MaterialID:        m.ID,
		DeliveredQuantity: dec("35"),
	}

	err := env.Store.Run(env.Ctx, func(repos repository.Repos) error {
		debited, err := ledger.DebitAtCreation(env.Ctx, repos, s)
		assert.True(t, debited)
		return err
	})
	require.NoError(t, err)
	assert.True(t, s.StockDebited)
	assert.True(t, env.Stock(entity.MaterialRaw, m.ID).IsZero())

	// ya descontada: no vuelve a tocar el stock
	err = env.Store.Run(env.Ctx, func(repos repository.Repos) error {
		debited, err := ledger.DebitAtCreation(env.Ctx, repos, s)
		assert.False(t, debited)
		return err
	})
	require.NoError(t, err)
}

func TestStockLedger_CheckSufficient(t *testing.T) {
	env := testutil.New(t)
	_, ledger := newInventory(env, inventory.PolicyPerVariant)
	m := env.Material(entity.MaterialRaw, "100")
	s := &entity.Sheet{Variant: entity.VariantManufacturing, MaterialID: m.ID, DeliveredQuantity: dec("150")}

	_, err := ledger.CheckSufficient(env.Ctx, env.Repos, s, false)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "delivered_quantity", fe.Field)

	s.DeliveredQuantity = dec("100")
	level, err := ledger.CheckSufficient(env.Ctx, env.Repos, s, false)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(level.Available))
}

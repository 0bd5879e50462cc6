package signing_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/testutil"
)

func sheetTarget(s *entity.Sheet) entity.SignatureTarget {
	return entity.SignatureTarget{Kind: entity.SignatureTargetKind(s.Variant), ID: s.ID}
}

func TestLedger_LigaSlotSegunRol(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")
	chief := env.User(entity.RoleSectionChief)

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: chief, Target: sheetTarget(sheet)})
	require.NoError(t, err)
	assert.Equal(t, entity.SlotSectionChief, res.Slot)
	assert.Equal(t, entity.RoleSectionChief, res.Signature.Kind)
	assert.Len(t, res.Signature.VerificationCode, 6)
	assert.Len(t, res.Signature.Hash, 64)
	assert.False(t, res.Transition.Changed())

	got, err := env.Repos.Sheets.GetByID(env.Ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Signature.ID, got.Slots[entity.SlotSectionChief])
	assert.Equal(t, entity.SheetInProgress, got.ApprovalStatus)
	assert.Equal(t, chief.FullName(), got.LastModifiedBy)
}

func TestLedger_TresFirmasApruebanPlanilla(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantPrimaryPackaging, entity.MovementProduction, "", "0")

	var last *signing.Result
	for _, r := range []string{entity.RoleSectionChief, entity.RoleProductionChief, entity.RolePharmaceuticChemist} {
		var err error
		last, err = ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(r), Target: sheetTarget(sheet)})
		require.NoError(t, err)
	}
	assert.True(t, last.Transition.BecameApproved())
	assert.Equal(t, entity.SheetApproved, last.Sheet.ApprovalStatus)
	assert.Len(t, last.Sheet.Slots, 3)
}

func TestLedger_EnvaseSimpleDosFirmas(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantEnvase, entity.MovementProduction, "", "0")

	_, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(entity.RoleSectionChief), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	chem, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(entity.RolePharmaceuticChemist), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	assert.Empty(t, chem.Slot, "envase simple no tiene slot de químico")

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(entity.RoleProductionChief), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	assert.True(t, res.Transition.BecameApproved())
}

// ── firmas solo de auditoría ────────────────────────────────────────────────

func TestLedger_InspectorEnPlanillaQuedaSoloAuditoria(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(entity.RoleQualityInspector), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	assert.Empty(t, res.Slot)
	assert.Empty(t, res.Sheet.Slots)
	assert.Len(t, env.Signatures(entity.TargetManufacturingSheet, sheet.ID), 1, "la firma queda en el libro")
}

func TestLedger_SlotOcupadoNoSeSobrescribe(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")

	first, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User(entity.RoleProductionChief), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	second, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{Signer: env.User("Jefe de Producción"), Target: sheetTarget(sheet)})
	require.NoError(t, err)
	assert.Empty(t, second.Slot)
	assert.Equal(t, entity.RoleProductionChief, second.Signature.Kind)

	got, err := env.Repos.Sheets.GetByID(env.Ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Signature.ID, got.Slots[entity.SlotProductionChief])
	assert.Len(t, env.Signatures(entity.TargetManufacturingSheet, sheet.ID), 2)
}

func TestLedger_TipoInformadoNoDerivadoNoLiga(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")
	operario := env.User("operario")

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{
		Signer: operario,
		Target: sheetTarget(sheet),
		Meta:   signing.Meta{SuppliedKind: "jefe_seccion"},
	})
	require.NoError(t, err)
	assert.Equal(t, "JEFE_SECCION", res.Signature.Kind)
	assert.Empty(t, res.Slot)
	assert.Empty(t, res.Sheet.Slots)
}

func TestLedger_RolCanonicoIgnoraTipoInformado(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{
		Signer: env.User(entity.RolePharmaceuticChemist),
		Target: sheetTarget(sheet),
		Meta:   signing.Meta{SuppliedKind: entity.RoleSectionChief},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePharmaceuticChemist, res.Signature.Kind)
	assert.Equal(t, entity.SlotChemist, res.Slot)
}

// ── validaciones ────────────────────────────────────────────────────────────

func TestLedger_Validaciones(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())
	chief := env.User(entity.RoleSectionChief)
	sheet := env.Sheet(entity.VariantManufacturing, entity.MovementProduction, "", "0")

	cases := []struct {
		name  string
		in    signing.SignInput
		base  error
		field string
	}{
		{"sin firmante", signing.SignInput{Target: sheetTarget(sheet)}, domain.ErrInvalidInput, "signer"},
		{"código no numérico", signing.SignInput{Signer: chief, Target: sheetTarget(sheet), Meta: signing.Meta{VerificationCode: "12ab56"}}, domain.ErrInvalidInput, "verification_code"},
		{"código corto", signing.SignInput{Signer: chief, Target: sheetTarget(sheet), Meta: signing.Meta{VerificationCode: "123"}}, domain.ErrInvalidInput, "verification_code"},
		{"destino desconocido", signing.SignInput{Signer: chief, Target: entity.SignatureTarget{Kind: "FACTURA", ID: "x"}}, domain.ErrInvalidInput, "target"},
		{"variante no coincide", signing.SignInput{Signer: chief, Target: entity.SignatureTarget{Kind: entity.TargetEnvaseSheet, ID: sheet.ID}}, domain.ErrInvalidInput, "target"},
		{"planilla inexistente", signing.SignInput{Signer: chief, Target: entity.SignatureTarget{Kind: entity.TargetManufacturingSheet, ID: "nope"}}, domain.ErrNotFound, "sheet_id"},
		{"control inexistente", signing.SignInput{Signer: chief, Target: entity.SignatureTarget{Kind: entity.TargetQualityControl, ID: "nope"}}, domain.ErrNotFound, "quality_control_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Create(env.Ctx, env.Repos, tc.in)
			require.ErrorIs(t, err, tc.base)
			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
	assert.Empty(t, env.Signatures(entity.TargetManufacturingSheet, sheet.ID), "ninguna validación fallida persiste firmas")
}

func TestLedger_FirmaLibreSinDocumento(t *testing.T) {
	env := testutil.New(t)
	ledger := signing.NewLedger(zerolog.Nop())

	res, err := ledger.Create(env.Ctx, env.Repos, signing.SignInput{
		Signer: env.User(entity.RoleSectionChief),
		Target: entity.SignatureTarget{Kind: entity.TargetNone, ID: "ignorado"},
		Meta:   signing.Meta{VerificationCode: "123456", IPAddress: "10.0.0.1", UserAgent: "test"},
	})
	require.NoError(t, err)
	assert.Nil(t, res.Sheet)
	assert.Empty(t, res.Signature.Target.ID)
	assert.Equal(t, "123456", res.Signature.VerificationCode)

	got, err := env.Repos.Signatures.GetByID(env.Ctx, res.Signature.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", got.IPAddress)
}

func TestHash_Determinista(t *testing.T) {
	at := time.Date(2026, 5, 4, 10, 30, 0, 123, time.UTC)
	a := signing.Hash("12345678-9", "sheet-1", at)
	assert.Equal(t, a, signing.Hash("12345678-9", "sheet-1", at))
	assert.NotEqual(t, a, signing.Hash("12345678-9", "sheet-2", at))
	assert.NotEqual(t, a, signing.Hash("12345678-9", "sheet-1", at.Add(time.Nanosecond)))
}

func TestNewVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := signing.NewVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

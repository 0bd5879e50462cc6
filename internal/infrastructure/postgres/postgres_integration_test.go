package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/DanySando/Proyecto-GPQ/internal/application/auth"
	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/production"
	"github.com/DanySando/Proyecto-GPQ/internal/application/quality"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/infrastructure/postgres"
)

// Estos tests levantan PostgreSQL con testcontainers; requieren Docker y GPQ_INTEGRATION=1.

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	if os.Getenv("GPQ_INTEGRATION") != "1" {
		os.Exit(m.Run())
	}
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("gpq_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "levantar postgres: %v\n", err)
		os.Exit(1)
	}
	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		testPool, err = postgres.NewPoolFromDSN(ctx, dsn, 20)
	}
	if err == nil {
		err = postgres.Migrate(ctx, testPool)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "preparar base: %v\n", err)
		_ = ctr.Terminate(ctx)
		os.Exit(1)
	}
	code := m.Run()
	testPool.Close()
	_ = ctr.Terminate(ctx)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("GPQ_INTEGRATION=1 para tests contra PostgreSQL")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const password = "clave-segura-123"

var rutSeq int

func newUser(t *testing.T, role string) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	rutSeq++
	rut := fmt.Sprintf("%08d-%d", 10000000+rutSeq, rutSeq%10)
	u := &entity.User{
		ID:           uuid.New().String(),
		RUT:          rut,
		Username:     "u" + rut,
		FirstName:    "Usuario",
		LastName:     role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		Profile:      &entity.Profile{Role: role, Department: "Producción"},
	}
	require.NoError(t, postgres.NewUserRepository(testPool).Create(context.Background(), u))
	return u
}

func newMaterial(t *testing.T, kind string) *entity.Material {
	t.Helper()
	now := time.Now().UTC()
	m := &entity.Material{
		ID:             uuid.New().String(),
		Kind:           kind,
		Name:           "Material " + kind,
		Quantity:       decimal.Zero,
		ApprovalStatus: entity.MaterialPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, postgres.NewMaterialRepository(testPool).Create(context.Background(), m))
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_PerfilYUltimoAcceso(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)
	u := newUser(t, "Jefe de Sección")

	got, err := repo.GetByRUT(ctx, u.RUT)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Jefe de Sección", got.Profile.Role)
	assert.Nil(t, got.LastAccessAt)

	require.NoError(t, repo.TouchLastAccess(ctx, u.ID))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastAccessAt)

	missing, err := repo.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *u
	dup.ID = uuid.New().String()
	err = repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSheetRepo_SlotsSeReemplazanEnUpdate(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	signer := newUser(t, entity.RoleSectionChief)
	sigRepo := postgres.NewSignatureRepository(testPool)
	sheets := postgres.NewSheetRepository(testPool)

	now := time.Now().UTC()
	s := &entity.Sheet{
		ID:                uuid.New().String(),
		Variant:           entity.VariantEnvase,
		ProductName:       "Jarabe",
		IssueDate:         now,
		ExpiryDate:        now.AddDate(1, 0, 0),
		MovementKind:      entity.MovementProduction,
		DeliveredQuantity: decimal.Zero,
		Slots:             map[string]string{},
		ApprovalStatus:    entity.SheetInProgress,
		CreatedAt:         now,
		LastModifiedAt:    now,
	}
	require.NoError(t, sheets.Create(ctx, s))

	sig := &entity.Signature{
		ID:               uuid.New().String(),
		UserID:           signer.ID,
		Target:           entity.SignatureTarget{Kind: entity.TargetEnvaseSheet, ID: s.ID},
		Kind:             entity.RoleSectionChief,
		Hash:             "h",
		VerificationCode: "123456",
		CreatedAt:        now,
	}
	require.NoError(t, sigRepo.Create(ctx, sig))

	s.Slots[entity.SlotSectionChief] = sig.ID
	require.NoError(t, sheets.Update(ctx, s))

	got, err := sheets.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{entity.SlotSectionChief: sig.ID}, got.Slots)

	delete(s.Slots, entity.SlotSectionChief)
	require.NoError(t, sheets.Update(ctx, s))
	got, err = sheets.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Slots)

	list, err := sigRepo.ListByTarget(ctx, sig.Target)
	require.NoError(t, err)
	require.Len(t, list, 1, "la firma queda en el libro aunque se libere el slot")
}

func TestSheetRepo_FechasInvertidasRechazadas(t *testing.T) {
	requireDB(t)
	now := time.Now().UTC()
	s := &entity.Sheet{
		ID:             uuid.New().String(),
		Variant:        entity.VariantEnvase,
		ProductName:    "Jarabe",
		IssueDate:      now,
		ExpiryDate:     now.AddDate(0, 0, -1),
		MovementKind:   entity.MovementProduction,
		ApprovalStatus: entity.SheetInProgress,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
	err := postgres.NewSheetRepository(testPool).Create(context.Background(), s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockRepo_NoPermiteNegativo(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	m := newMaterial(t, entity.MaterialRaw)
	wh, err := postgres.NewWarehouseRepository(testPool).EnsurePrincipal(ctx, entity.MaterialRaw, entity.PrincipalWarehouseNames[entity.MaterialRaw])
	require.NoError(t, err)

	stock := postgres.NewStockRepository(testPool)
	level, err := stock.Get(ctx, wh.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, level.Available.IsZero())

	level.Available = decimal.NewFromInt(-1)
	level.UpdatedAt = time.Now().UTC()
	err = stock.Upsert(ctx, level)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestMaterialRepo_CodigoUnicoPorTipo(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgres.NewMaterialRepository(testPool)
	code := "MP-" + uuid.New().String()[:8]
	now := time.Now().UTC()
	m := &entity.Material{
		ID: uuid.New().String(), Kind: entity.MaterialRaw, Name: "Lactosa", Code: code,
		Quantity: decimal.Zero, ApprovalStatus: entity.MaterialPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByCodeForUpdate(ctx, entity.MaterialRaw, code)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m.ID, got.ID)

	dup := *m
	dup.ID = uuid.New().String()
	err = repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "code", fe.Field)
}

func TestWarehouseRepo_PrincipalEsUnica(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgres.NewWarehouseRepository(testPool)
	a, err := repo.EnsurePrincipal(ctx, entity.MaterialFinishedGood, "Bodega Producto Terminado")
	require.NoError(t, err)
	b, err := repo.EnsurePrincipal(ctx, entity.MaterialFinishedGood, "Bodega Producto Terminado")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestSequenceRepo_ConcurrenteSinDuplicados(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(testPool)
	name := "T" + uuid.New().String()[:8]

	const n = 20
	got := make([]int64, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return tx.Run(gctx, func(repos repository.Repos) error {
				v, err := repos.Sequences.Next(gctx, name)
				got[i] = v
				return err
			})
		})
	}
	require.NoError(t, g.Wait())

	seen := map[int64]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "número repetido %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, n)
}

func TestStockLedger_DescuentosConcurrentesNoSobregiran(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(testPool)
	ledger := inventory.NewStockLedger(inventory.PolicyOnApproval, zerolog.Nop())
	m := newMaterial(t, entity.MaterialRaw)

	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		_, err := ledger.Set(ctx, repos, entity.MaterialRaw, m.ID, decimal.NewFromInt(50))
		return err
	}))

	// Diez aprobaciones de 10 sobre 50: solo cinco pueden descontar.
	const n = 10
	var g errgroup.Group
	results := make([]error, n)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = tx.Run(ctx, func(repos repository.Repos) error {
				s := &entity.Sheet{
					ID:                uuid.New().String(),
					Variant:           entity.VariantManufacturing,
					MovementKind:      entity.MovementWarehouseOrder,
					MaterialID:        m.ID,
					DeliveredQuantity: decimal.NewFromInt(10),
					ApprovalStatus:    entity.SheetApproved,
				}
				_, err := ledger.DebitOnApproval(ctx, repos, s)
				return err
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ok, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, rejected)

	var level *entity.StockLevel
	require.NoError(t, tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		level, err = ledger.Available(ctx, repos, entity.MaterialRaw, m.ID, false)
		return err
	}))
	assert.True(t, level.Available.IsZero(), "disponible final %s", level.Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo sobre PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_Postgres(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	log := zerolog.Nop()
	tx := postgres.NewTxRunner(testPool)
	repos := postgres.NewRepos(testPool)

	inspector := newUser(t, entity.RoleQualityInspector)
	signers := []*entity.User{
		newUser(t, entity.RoleSectionChief),
		newUser(t, entity.RoleProductionChief),
		newUser(t, entity.RolePharmaceuticChemist),
	}

	ledger := inventory.NewStockLedger(inventory.PolicyPerVariant, log)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "t"}, log)
	sigLedger := signing.NewLedger(log)
	invUC := inventory.NewInventoryUseCase(tx, repos, ledger, log)
	qcUC := quality.NewQualityControlUseCase(tx, repos, log)
	qcSign := signing.NewQualityControlSigningUseCase(tx, authUC, repos.Users, signing.NewQualityCascade(sigLedger, log), log)
	sheetUC := production.NewSheetUseCase(tx, repos, ledger, log)
	signSheet := signing.NewSignSheetUseCase(tx, authUC, sigLedger, ledger, log)

	m, err := invUC.RegisterMaterial(ctx, dto.RegisterMaterialRequest{Kind: entity.MaterialRaw, Name: "Paracetamol", Quantity: "60"})
	require.NoError(t, err)
	require.NotNil(t, m.Stock)
	assert.Equal(t, "60", m.Stock.Available.String())
	m, err = invUC.RegisterMaterial(ctx, dto.RegisterMaterialRequest{MaterialID: m.ID, Kind: entity.MaterialRaw, Quantity: "40"})
	require.NoError(t, err)
	assert.Equal(t, "100", m.Stock.Available.String())

	qc, err := qcUC.Create(ctx, dto.CreateQualityControlRequest{VerifiedOn: "2026-01-10", InspectorID: inspector.ID, MaterialID: m.ID})
	require.NoError(t, err)
	signed, err := qcSign.Sign(ctx, signing.SignQualityControlInput{QualityControlID: qc.ID, RUT: inspector.RUT, Password: password})
	require.NoError(t, err)
	assert.True(t, signed.QualityControl.Approved)
	require.NotNil(t, signed.Material)
	assert.Equal(t, entity.MaterialApproved, signed.Material.ApprovalStatus)

	over := dto.CreateSheetRequest{
		Variant: entity.VariantManufacturing, ProductName: "Paracetamol 500 mg",
		IssueDate: "2026-01-15", ExpiryDate: "2028-01-15",
		MovementKind: entity.MovementWarehouseOrder, MaterialID: m.ID, DeliveredQuantity: "150",
	}
	_, err = sheetUC.Create(ctx, signers[1].ID, over)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	ok := over
	ok.DeliveredQuantity = "30"
	sheet, err := sheetUC.Create(ctx, signers[1].ID, ok)
	require.NoError(t, err)
	assert.Equal(t, qc.ID, sheet.QualityControlID)

	stock, err := invUC.GetStock(ctx, dto.StockQuery{Kind: entity.MaterialRaw, MaterialID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, "70", stock.Available.String())

	var last *dto.SignSheetResponse
	for _, u := range signers {
		last, err = signSheet.Execute(ctx, signing.SignSheetInput{SheetID: sheet.ID, RUT: u.RUT, Password: password})
		require.NoError(t, err)
	}
	assert.Equal(t, entity.SheetApproved, last.Sheet.ApprovalStatus)
	assert.Len(t, last.Sheet.Slots, 3)
}

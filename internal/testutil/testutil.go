// Package testutil arma un entorno de pruebas sobre el store en memoria: usuarios con
// perfil, materiales con stock y controles de calidad aprobados.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/DanySando/Proyecto-GPQ/internal/application/auth"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/infrastructure/memory"
	"github.com/DanySando/Proyecto-GPQ/pkg/rut"
)

// Password contraseña de todos los usuarios creados por el entorno.
const Password = "clave-segura-123"

// Env recursos compartidos por una prueba.
type Env struct {
	T     *testing.T
	Ctx   context.Context
	Store *memory.Store
	Repos repository.Repos // autocommit
	Auth  *auth.AuthUseCase
	Log   zerolog.Logger

	hash string
	ruts int
}

// New crea un entorno vacío.
func New(t *testing.T) *Env {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	log := zerolog.Nop()
	return &Env{
		T:     t,
		Ctx:   context.Background(),
		Store: store,
		Repos: repos,
		Auth:  auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "gpq-test"}, log),
		Log:   log,
		hash:  string(hash),
	}
}

// User crea un usuario activo con el rol dado en su perfil. Rol vacío = sin perfil.
func (e *Env) User(roleName string) *entity.User {
	e.T.Helper()
	e.ruts++
	body := fmt.Sprint(10000000 + e.ruts)
	dv, err := rut.ComputeVerificationDigit(body)
	require.NoError(e.T, err)
	u := &entity.User{
		ID:           uuid.New().String(),
		RUT:          body + "-" + string(dv),
		Username:     "user" + body,
		FirstName:    "Usuario",
		LastName:     fmt.Sprint(e.ruts),
		PasswordHash: e.hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if roleName != "" {
		u.Profile = &entity.Profile{Role: roleName}
	}
	require.NoError(e.T, e.Repos.Users.Create(e.Ctx, u))
	got, err := e.Repos.Users.GetByID(e.Ctx, u.ID)
	require.NoError(e.T, err)
	return got
}

// Material crea un material PENDIENTE y fija su stock en la bodega principal del tipo.
func (e *Env) Material(kind, stock string) *entity.Material {
	e.T.Helper()
	now := time.Now().UTC()
	m := &entity.Material{
		ID:             uuid.New().String(),
		Kind:           kind,
		Name:           "Material " + kind,
		Quantity:       decimal.RequireFromString(stock),
		ApprovalStatus: entity.MaterialPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(e.T, e.Repos.Materials.Create(e.Ctx, m))
	wh, err := e.Repos.Warehouses.EnsurePrincipal(e.Ctx, kind, entity.PrincipalWarehouseNames[kind])
	require.NoError(e.T, err)
	require.NoError(e.T, e.Repos.Stock.Upsert(e.Ctx, &entity.StockLevel{
		WarehouseID: wh.ID,
		MaterialID:  m.ID,
		Available:   decimal.RequireFromString(stock),
		UpdatedAt:   now,
	}))
	return m
}

// QualityControl crea un control sin aprobar asignado al inspector.
func (e *Env) QualityControl(materialID string, inspector *entity.User, verifiedOn time.Time) *entity.QualityControl {
	e.T.Helper()
	n, err := e.Repos.Sequences.Next(e.Ctx, entity.PrefixQualityControl)
	require.NoError(e.T, err)
	now := time.Now().UTC()
	qc := &entity.QualityControl{
		ID:          uuid.New().String(),
		Code:        entity.FormatCode(entity.PrefixQualityControl, n),
		Number:      n,
		VerifiedOn:  verifiedOn,
		InspectorID: inspector.ID,
		MaterialID:  materialID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if materialID != "" {
		m, err := e.Repos.Materials.GetByID(e.Ctx, materialID)
		require.NoError(e.T, err)
		require.NotNil(e.T, m)
		qc.MaterialKind = m.Kind
	}
	require.NoError(e.T, e.Repos.QualityControls.Create(e.Ctx, qc))
	return qc
}

// ApprovedQualityControl control aprobado con una firma de inspector ya registrada.
func (e *Env) ApprovedQualityControl(materialID string, inspector *entity.User) *entity.QualityControl {
	e.T.Helper()
	qc := e.QualityControl(materialID, inspector, time.Now().UTC().Truncate(24*time.Hour))
	sig := &entity.Signature{
		ID:               uuid.New().String(),
		UserID:           inspector.ID,
		Target:           entity.SignatureTarget{Kind: entity.TargetQualityControl, ID: qc.ID},
		Kind:             entity.RoleQualityInspector,
		Hash:             "seed",
		VerificationCode: "000000",
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(e.T, e.Repos.Signatures.Create(e.Ctx, sig))
	qc.Approved = true
	qc.SignatureID = sig.ID
	require.NoError(e.T, e.Repos.QualityControls.Update(e.Ctx, qc))
	return qc
}

// Stock disponible del material en la bodega principal del tipo.
func (e *Env) Stock(kind, materialID string) decimal.Decimal {
	e.T.Helper()
	wh, err := e.Repos.Warehouses.EnsurePrincipal(e.Ctx, kind, entity.PrincipalWarehouseNames[kind])
	require.NoError(e.T, err)
	level, err := e.Repos.Stock.Get(e.Ctx, wh.ID, materialID)
	require.NoError(e.T, err)
	return level.Available
}

// Sheet persiste una planilla EN_PROCESO sin slots ocupados.
func (e *Env) Sheet(variant, movement, materialID, delivered string) *entity.Sheet {
	e.T.Helper()
	now := time.Now().UTC()
	s := &entity.Sheet{
		ID:                uuid.New().String(),
		Variant:           variant,
		ProductName:       "Paracetamol 500 mg",
		Batch:             "L-001",
		IssueDate:         now.Truncate(24 * time.Hour),
		ExpiryDate:        now.Truncate(24*time.Hour).AddDate(2, 0, 0),
		MovementKind:      movement,
		MaterialID:        materialID,
		DeliveredQuantity: decimal.RequireFromString(delivered),
		Slots:             map[string]string{},
		ApprovalStatus:    entity.SheetInProgress,
		CreatedAt:         now,
		LastModifiedAt:    now,
	}
	require.NoError(e.T, e.Repos.Sheets.Create(e.Ctx, s))
	return s
}

// Signatures firmas registradas sobre el destino.
func (e *Env) Signatures(kind, id string) []*entity.Signature {
	e.T.Helper()
	list, err := e.Repos.Signatures.ListByTarget(e.Ctx, entity.SignatureTarget{Kind: kind, ID: id})
	require.NoError(e.T, err)
	return list
}

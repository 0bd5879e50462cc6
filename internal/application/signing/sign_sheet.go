package signing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// Authenticator verifica la credencial de firma (RUT + contraseña) y devuelve el usuario con perfil.
type Authenticator interface {
	Verify(ctx context.Context, rut, password string) (*entity.User, error)
}

// SheetSignerRoles roles habilitados para firmar planillas.
var SheetSignerRoles = []string{
	entity.RoleSectionChief,
	entity.RoleProductionChief,
	entity.RolePharmaceuticChemist,
}

// SignSheetInput entrada para firmar una planilla.
type SignSheetInput struct {
	SheetID  string
	RUT      string
	Password string
	Meta     Meta
}

// SignSheetUseCase autentica al firmante, autoriza su rol y registra la firma sobre la planilla.
// Si la planilla pasa a APROBADO se descuenta stock según la política, en la misma transacción.
type SignSheetUseCase struct {
	tx     ports.TxRunner
	auth   Authenticator
	ledger *Ledger
	stock  *inventory.StockLedger
	log    zerolog.Logger
}

// NewSignSheetUseCase construye el caso de uso.
func NewSignSheetUseCase(tx ports.TxRunner, auth Authenticator, ledger *Ledger, stock *inventory.StockLedger, log zerolog.Logger) *SignSheetUseCase {
	return &SignSheetUseCase{tx: tx, auth: auth, ledger: ledger, stock: stock, log: log}
}

// Execute firma la planilla.
func (uc *SignSheetUseCase) Execute(ctx context.Context, in SignSheetInput) (*dto.SignSheetResponse, error) {
	if in.SheetID == "" {
		return nil, domain.Invalid("sheet_id", "requerido")
	}
	signer, err := uc.auth.Verify(ctx, in.RUT, in.Password)
	if err != nil {
		return nil, err
	}
	if err := authorize(signer, SheetSignerRoles...); err != nil {
		return nil, err
	}

	var out *dto.SignSheetResponse
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		sheet, err := repos.Sheets.GetForUpdate(ctx, in.SheetID)
		if err != nil {
			return err
		}
		if sheet == nil {
			return domain.NewFieldError(domain.ErrNotFound, "sheet_id", "planilla no encontrada")
		}
		res, err := uc.ledger.Create(ctx, repos, SignInput{
			Signer: signer,
			Target: entity.SignatureTarget{Kind: entity.SignatureTargetKind(sheet.Variant), ID: sheet.ID},
			Meta:   in.Meta,
		})
		if err != nil {
			return err
		}
		if res.Transition.BecameApproved() {
			debited, err := uc.stock.DebitOnApproval(ctx, repos, res.Sheet)
			if err != nil {
				return err
			}
			if debited {
				if err := repos.Sheets.Update(ctx, res.Sheet); err != nil {
					return err
				}
			}
			uc.log.Info().Str("sheet_id", res.Sheet.ID).Bool("stock_debited", debited).Msg("planilla aprobada")
		}
		out = &dto.SignSheetResponse{
			Signature: dto.NewSignatureResponse(res.Signature),
			Slot:      res.Slot,
			Sheet:     dto.NewSheetResponse(res.Sheet),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// authorize exige perfil con un rol permitido. Sin perfil no hay derecho a firma.
func authorize(u *entity.User, allowed ...string) error {
	tag, ok := role.Resolve(u)
	if !ok {
		return domain.NewFieldError(domain.ErrForbidden, "role", "el usuario no tiene perfil de firma")
	}
	for _, a := range allowed {
		if tag == a {
			return nil
		}
	}
	return domain.NewFieldError(domain.ErrForbidden, "role", "el rol "+tag+" no puede firmar este documento")
}

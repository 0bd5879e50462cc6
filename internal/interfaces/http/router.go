package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/auth"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/production"
	"github.com/DanySando/Proyecto-GPQ/internal/application/quality"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *auth.UserUseCase
	InventoryUC    *inventory.InventoryUseCase
	QualityUC      *quality.QualityControlUseCase
	QualitySigning *signing.QualityControlSigningUseCase
	SheetUC        *production.SheetUseCase
	SignSheet      *signing.SignSheetUseCase
	Signatures     *signing.SignatureQueryUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	materialHandler := NewMaterialHandler(deps.InventoryUC)
	materials := protected.Group("/materials")
	materials.Post("/", materialHandler.Register)
	materials.Get("/:id", materialHandler.GetByID)

	stock := protected.Group("/stock")
	stock.Put("/", materialHandler.SetStock)
	stock.Get("/", materialHandler.GetStock)

	qcHandler := NewQualityControlHandler(deps.QualityUC, deps.QualitySigning)
	qcs := protected.Group("/quality-controls")
	qcs.Post("/", qcHandler.Create)
	qcs.Get("/", qcHandler.List)
	qcs.Get("/:id", qcHandler.GetByID)
	// La credencial del body decide quién firma; el inspector asignado se valida en el caso de uso.
	qcs.Post("/:id/sign", qcHandler.Sign)
	qcs.Delete("/:id/signature", RequireRole(entity.RoleQualityInspector), qcHandler.RevokeSignature)

	sheetHandler := NewSheetHandler(deps.SheetUC, deps.SignSheet)
	sheets := protected.Group("/sheets")
	sheets.Post("/", sheetHandler.Create)
	sheets.Get("/:id", sheetHandler.GetByID)
	sheets.Post("/:id/sign", sheetHandler.Sign)
	sheets.Delete("/:id/slots/:slot",
		RequireRole(entity.RoleProductionChief, entity.RolePharmaceuticChemist),
		sheetHandler.RevokeSlot,
	)

	signatureHandler := NewSignatureHandler(deps.Signatures)
	protected.Get("/signatures/:id", signatureHandler.GetByID)
}

// @title                       GPQ API
// @version                     1.0
// @description                 Firma electrónica, aprobación de planillas e inventario de bodega para producción farmacéutica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/DanySando/Proyecto-GPQ/docs"
	"github.com/DanySando/Proyecto-GPQ/internal/application/auth"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/application/production"
	"github.com/DanySando/Proyecto-GPQ/internal/application/quality"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
	"github.com/DanySando/Proyecto-GPQ/internal/infrastructure/memory"
	"github.com/DanySando/Proyecto-GPQ/internal/infrastructure/postgres"
	httpRouter "github.com/DanySando/Proyecto-GPQ/internal/interfaces/http"
	"github.com/DanySando/Proyecto-GPQ/pkg/config"
	"github.com/DanySando/Proyecto-GPQ/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Str("debit_policy", cfg.Inventory.DebitPolicy).
		Msg("iniciando aplicación")

	policy, err := inventory.ParseDebitPolicy(cfg.Inventory.DebitPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("DEBIT_POLICY")
	}

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.New()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	stockLedger := inventory.NewStockLedger(policy, log.Zerolog())
	signatureLedger := signing.NewLedger(log.Component("signing"))

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	inventoryUC := inventory.NewInventoryUseCase(txRunner, repos, stockLedger, log.Component("inventory"))
	qualityUC := quality.NewQualityControlUseCase(txRunner, repos, log.Component("quality"))
	qualitySigning := signing.NewQualityControlSigningUseCase(
		txRunner, authUC, repos.Users,
		signing.NewQualityCascade(signatureLedger, log.Component("signing")),
		log.Component("signing"),
	)
	sheetUC := production.NewSheetUseCase(txRunner, repos, stockLedger, log.Component("production"))
	signSheetUC := signing.NewSignSheetUseCase(txRunner, authUC, signatureLedger, stockLedger, log.Component("signing"))
	signatureQuery := signing.NewSignatureQueryUseCase(repos.Signatures)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "GPQ API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.StorageDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         auth.NewUserUseCase(repos.Users),
		InventoryUC:    inventoryUC,
		QualityUC:      qualityUC,
		QualitySigning: qualitySigning,
		SheetUC:        sheetUC,
		SignSheet:      signSheetUC,
		Signatures:     signatureQuery,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

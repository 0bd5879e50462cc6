package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/production"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
)

// SheetHandler planillas de fabricación y envase.
type SheetHandler struct {
	uc   *production.SheetUseCase
	sign *signing.SignSheetUseCase
}

// NewSheetHandler construye el handler.
func NewSheetHandler(uc *production.SheetUseCase, sign *signing.SignSheetUseCase) *SheetHandler {
	return &SheetHandler{uc: uc, sign: sign}
}

// Create godoc
// @Summary      Crear planilla
// @Description  Exige control de calidad aprobado del material. PEDIDO_BODEGA valida stock y puede descontarlo al crear.
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSheetRequest  true  "variant, product_name, fechas, movement_kind, material_id, delivered_quantity"
// @Success      201   {object}  dto.SheetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sheets [post]
func (h *SheetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSheetRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener planilla
// @Tags         sheets
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la planilla"
// @Success      200  {object}  dto.SheetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sheets/{id} [get]
func (h *SheetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar planilla
// @Description  Firma con la credencial del firmante (jefe de sección, jefe de producción o químico farmacéutico).
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la planilla"
// @Param        body  body  dto.SignRequest  true  "rut, password, signature_kind opcional"
// @Success      201   {object}  dto.SignSheetResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/sign [post]
func (h *SheetHandler) Sign(c *fiber.Ctx) error {
	var in dto.SignRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.sign.Execute(c.UserContext(), signing.SignSheetInput{
		SheetID:  c.Params("id"),
		RUT:      in.RUT,
		Password: in.Password,
		Meta:     signMeta(c, in),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevokeSlot godoc
// @Summary      Liberar slot de firma
// @Description  La firma queda en el libro; la planilla vuelve a EN_PROCESO.
// @Tags         sheets
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID de la planilla"
// @Param        slot  path  string  true  "jefe_seccion, jefe_produccion o quimico_farmaceutico"
// @Success      200  {object}  dto.SheetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/slots/{slot} [delete]
func (h *SheetHandler) RevokeSlot(c *fiber.Ctx) error {
	out, err := h.uc.RevokeSlot(c.UserContext(), GetUserID(c), c.Params("id"), c.Params("slot"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

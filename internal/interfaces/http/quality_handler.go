package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/quality"
	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
)

// QualityControlHandler controles de calidad y su firma.
type QualityControlHandler struct {
	uc      *quality.QualityControlUseCase
	signing *signing.QualityControlSigningUseCase
}

// NewQualityControlHandler construye el handler.
func NewQualityControlHandler(uc *quality.QualityControlUseCase, signing *signing.QualityControlSigningUseCase) *QualityControlHandler {
	return &QualityControlHandler{uc: uc, signing: signing}
}

// Create godoc
// @Summary      Crear control de calidad
// @Tags         quality-controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQualityControlRequest  true  "verified_on, inspector_id, material_id"
// @Success      201   {object}  dto.QualityControlResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quality-controls [post]
func (h *QualityControlHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQualityControlRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar controles de calidad
// @Description  Solo el inspector de calidad ve registros; otros roles reciben una lista vacía.
// @Tags         quality-controls
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.QualityControlListResponse
// @Router       /api/quality-controls [get]
func (h *QualityControlHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}.WithDefaults()
	if err := check(&page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetRole(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener control de calidad
// @Tags         quality-controls
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del control"
// @Success      200  {object}  dto.QualityControlResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quality-controls/{id} [get]
func (h *QualityControlHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar control de calidad
// @Description  Solo el inspector asignado. Aprueba el control y propaga el estado al material.
// @Tags         quality-controls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del control"
// @Param        body  body  dto.SignRequest  true  "rut, password"
// @Success      201   {object}  dto.SignQualityControlResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quality-controls/{id}/sign [post]
func (h *QualityControlHandler) Sign(c *fiber.Ctx) error {
	var in dto.SignRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.signing.Sign(c.UserContext(), signing.SignQualityControlInput{
		QualityControlID: c.Params("id"),
		RUT:              in.RUT,
		Password:         in.Password,
		Meta:             signMeta(c, in),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevokeSignature godoc
// @Summary      Quitar firma del control
// @Description  El control vuelve a no aprobado y el material se recalcula.
// @Tags         quality-controls
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del control"
// @Success      200  {object}  dto.SignQualityControlResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quality-controls/{id}/signature [delete]
func (h *QualityControlHandler) RevokeSignature(c *fiber.Ctx) error {
	out, err := h.signing.Revoke(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func signMeta(c *fiber.Ctx, in dto.SignRequest) signing.Meta {
	return signing.Meta{
		SuppliedKind:     in.SignatureKind,
		VerificationCode: in.VerificationCode,
		IPAddress:        ClientIP(c),
		UserAgent:        c.Get(fiber.HeaderUserAgent),
	}
}

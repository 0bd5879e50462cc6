package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/signing"
)

// SignatureHandler consulta del libro de firmas.
type SignatureHandler struct {
	uc *signing.SignatureQueryUseCase
}

// NewSignatureHandler construye el handler.
func NewSignatureHandler(uc *signing.SignatureQueryUseCase) *SignatureHandler {
	return &SignatureHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener firma
// @Tags         signatures
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la firma"
// @Success      200  {object}  dto.SignatureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/signatures/{id} [get]
func (h *SignatureHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

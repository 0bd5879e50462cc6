package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/application/inventory"
)

// MaterialHandler alta y consulta de materiales, y niveles de stock.
type MaterialHandler struct {
	uc *inventory.InventoryUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *inventory.InventoryUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar material
// @Description  Materia prima: acredita la cantidad en la bodega principal. Envases: stock inicial cero y código MEP/MES.
// @Description  Con material_id, o con el código de un material del mismo tipo, la partida se suma a ese material.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMaterialRequest  true  "kind, name, quantity; material_id o code para otra partida"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMaterialRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RegisterMaterial(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetMaterial(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetStock godoc
// @Summary      Fijar stock
// @Description  Sobrescribe el disponible del material en la bodega principal del tipo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStockRequest  true  "kind, material_id, quantity"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [put]
func (h *MaterialHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetStock(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Consultar stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        kind         query  string  true  "MP, EP o ES"
// @Param        material_id  query  string  true  "ID del material"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *MaterialHandler) GetStock(c *fiber.Ctx) error {
	var q dto.StockQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetStock(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/role"
)

// RequireRole devuelve un middleware que deja pasar solo a los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 MISSING_ROLE → el token no trae rol.
//   - 403 FORBIDDEN    → el rol no está en la lista.
//
// El rol del token se normaliza con el registro de roles antes de comparar,
// así "Jefe de Sección" y "JEFE_SECCION" son equivalentes.
func RequireRole(allowed ...string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[role.Normalize(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		current := GetRole(c)
		if current == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no contiene rol",
			})
		}
		if _, ok := set[role.Normalize(current)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + current + "' no tiene acceso a este recurso",
			})
		}
		return c.Next()
	}
}

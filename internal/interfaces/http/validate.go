package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Los mensajes usan el nombre json del campo.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{f.Tag.Get("json"), f.Tag.Get("query")} {
			name := strings.SplitN(tag, ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// bindBody parsea el JSON y aplica las reglas `validate`.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("body", "cuerpo inválido")
	}
	return check(out)
}

// bindQuery parsea la query string y aplica las reglas `validate`.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Invalid("query", "parámetros inválidos")
	}
	return check(out)
}

func check(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Invalid(fe.Field(), ruleMessage(fe))
	}
	return domain.Invalid("", err.Error())
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "requerido"
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "len":
		return fmt.Sprintf("debe tener %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("máximo %s", fe.Param())
	case "min":
		return fmt.Sprintf("mínimo %s", fe.Param())
	case "numeric":
		return "debe ser numérico"
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}

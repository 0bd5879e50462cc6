// Package rut normaliza y valida el RUT chileno (dígito verificador módulo 11).
package rut

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos del módulo 11, aplicados de derecha a izquierda sobre el cuerpo y repetidos en ciclo.
var weights = [6]int{2, 3, 4, 5, 6, 7}

// Normalize quita espacios y puntos y deja el dígito verificador en mayúscula (12.345.678-k -> 12345678-K).
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ".", "")
}

// ComputeVerificationDigit calcula el dígito verificador del cuerpo (solo dígitos).
func ComputeVerificationDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	var sum int
	for i := len(body) - 1; i >= 0; i-- {
		c := rune(body[i])
		if !unicode.IsDigit(c) {
			return 0, fmt.Errorf("rut: carácter inválido %q en el cuerpo", c)
		}
		sum += int(c-'0') * weights[(len(body)-1-i)%len(weights)]
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// Validate exige el formato cuerpo-dv (con o sin puntos) y un dígito verificador correcto.
func Validate(s string) error {
	n := Normalize(s)
	body, dv, ok := strings.Cut(n, "-")
	if !ok || len(dv) != 1 {
		return fmt.Errorf("rut: formato esperado 12345678-9, se recibió %q", s)
	}
	if len(body) > 8 {
		return fmt.Errorf("rut: el cuerpo tiene %d dígitos, máximo 8", len(body))
	}
	expected, err := ComputeVerificationDigit(body)
	if err != nil {
		return err
	}
	if dv[0] != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv[0])
	}
	return nil
}

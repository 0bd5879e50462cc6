package dto

import (
	"strconv"
	"strings"
)

// Quantity cantidad recibida como número o como texto JSON. Se valida en el caso de uso
// para responder con un error de campo en vez de un error de parseo del body.
type Quantity string

// UnmarshalJSON acepta 10, 10.5, "10.5" y null.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*q = ""
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*q = Quantity(s)
	return nil
}

func (q Quantity) String() string { return string(q) }

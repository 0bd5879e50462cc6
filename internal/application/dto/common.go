package dto

// DefaultPageLimit tamaño de página cuando el listado no pide uno.
const DefaultPageLimit = 20

// PageRequest ventana pedida de un listado.
type PageRequest struct {
	Limit  int `json:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" validate:"min=0"`
}

// WithDefaults completa un Limit ausente y lleva un Offset negativo a cero.
func (p PageRequest) WithDefaults() PageRequest {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Response eco de la ventana aplicada.
func (p PageRequest) Response() PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset}
}

// PageResponse ventana aplicada a la respuesta.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP. Field acompaña a los errores de validación.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

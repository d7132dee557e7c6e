package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClampLimit normaliza el límite de resultados al rango permitido por
// la API (1–100), con 10 por defecto. Se aplica en el borde HTTP, no
// en los use cases.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

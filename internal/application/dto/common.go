package dto

// ErrorResponse cuerpo de error HTTP. Code es estable: la capa que llama decide
// reintentar o mostrar al usuario según el código, no según el mensaje.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`     // campo ofensor en errores de validación
	Resource string `json:"resource,omitempty"` // id del recurso ausente/inválido
}

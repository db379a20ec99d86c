package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje (borrados, no-op, etc.).
type MessageResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deleted_id,omitempty"`
}

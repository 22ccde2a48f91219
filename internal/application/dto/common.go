package dto

// Response envelope estándar de la API, compatible con el front-end:
// { success, message, data?, errors? }.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// OK construye una respuesta exitosa con datos.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// OKMessage construye una respuesta exitosa sin datos (confirmaciones).
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail construye una respuesta de error sin detalle por campo.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// FailWith construye una respuesta de error con detalle campo → mensajes.
func FailWith(message string, errors map[string][]string) Response {
	return Response{Success: false, Message: message, Errors: errors}
}

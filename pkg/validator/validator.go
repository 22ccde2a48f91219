// Package validator valida los structs de request con go-playground/validator
// y traduce las violaciones al mapa campo → mensajes del envelope de error.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre json, no el nombre del struct
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate valida el struct según sus tags `validate`. Devuelve nil si es
// válido; si no, un mapa campo → mensajes listo para el campo errors de la
// respuesta HTTP.
func Validate(s interface{}) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		out[field] = append(out[field], message(fe))
	}
	return out
}

// message produce un texto legible por violación.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es requerido", fe.Field())
	case "email":
		return fmt.Sprintf("el campo %s debe ser un email válido", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("el campo %s debe tener al menos %s caracteres", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("el campo %s debe ser como mínimo %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("el campo %s debe tener como máximo %s caracteres", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("el campo %s debe ser como máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("el campo %s debe ser uno de: %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("el campo %s debe ser mayor o igual a %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("el campo %s no cumple la regla %s", fe.Field(), fe.Tag())
	}
}

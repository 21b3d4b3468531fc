// Package validator envuelve go-playground/validator con mensajes en español
// y nombres de campo tomados del tag json.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank: requerido y sin ser solo espacios.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// FieldError error de validación de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error agrupa los errores de validación de una petición.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Struct valida s según sus tags `validate`. Devuelve *Error o nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s es obligatorio", field)
	case "required_without":
		return fmt.Sprintf("%s es obligatorio si falta %s", field, param)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, param)
		}
		return fmt.Sprintf("%s debe ser al menos %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, param)
		}
		return fmt.Sprintf("%s debe ser como máximo %s", field, param)
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, param)
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, param)
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", field, param)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s debe ser un UUID válido", field)
	case "datetime":
		return fmt.Sprintf("%s debe tener el formato %s", field, param)
	case "alphanum":
		return fmt.Sprintf("%s solo admite letras y números", field)
	default:
		return fmt.Sprintf("%s no cumple la regla '%s'", field, fe.Tag())
	}
}

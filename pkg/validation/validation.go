// Package validation aplica os esquemas declarados nas tags `validate` dos modelos
// e devolve todas as violações de uma vez.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"minedicas/pkg/models"

	"github.com/go-playground/validator/v10"
)

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("tipcategory", func(fl validator.FieldLevel) bool {
		return models.TipCategory(fl.Field().String()).Valid()
	})
	v.RegisterValidation("tipstatus", func(fl validator.FieldLevel) bool {
		return models.TipStatus(fl.Field().String()).Valid()
	})

	return v
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error lista cada campo que violou o esquema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validação falhou: " + strings.Join(parts, "; ")
}

// Struct valida s e retorna *Error quando algum campo é inválido.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return &Error{Fields: fields}
}

// UUID confere se id é um UUID canônico.
func UUID(id string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return &Error{Fields: []FieldError{{
			Field:   "id",
			Rule:    "uuid",
			Message: "Invalid ID",
		}}}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return fmt.Sprintf("deve ter ao menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "nickname":
		return "Nickname must be alphanumeric or underscore"
	case "tipcategory":
		return "categoria inválida"
	case "tipstatus":
		return "status inválido"
	}
	return "valor inválido"
}

package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"email":    "{field} must be a valid email address",
	"url":      "{field} must be a valid URL",
	"e164":     "{field} must be a valid phone number",
	"oneof":    "{field} must be one of {param}",
	"min":      "{field} must be at least {param} characters",
	"max":      "{field} must be at most {param} characters",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"nefield":  "{field} must differ from {param}",

	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// jsonName reports fields by the name clients send them under.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func describe(fieldErr val.FieldError) string {
	template, ok := templates[fieldErr.Tag()]
	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message turns validation errors into one readable sentence per field,
// joined in declaration order.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		lines = append(lines, describe(fieldErr))
	}

	return strings.Join(lines, "; ")
}

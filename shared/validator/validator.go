// Package validator wraps go-playground/validator with the custom rules used
// by request DTOs and reports failures as 400 responses.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"rkhub/shared/constant"
	"rkhub/shared/failure"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	rules := map[string]val.Func{
		// notblank rejects whitespace-only strings; a nil *string passes.
		"notblank": notBlank,
		// mimetypes=image/png image/jpeg
		"mimetypes": mimeTypeIn,
		// maxfilesize=10 (megabytes)
		"maxfilesize": withinFileSize,
	}

	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("validator: registering %s: %v", tag, err))
		}
	}

	return v
}

func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, file != nil
	default:
		return nil, false
	}
}

func notBlank(field val.FieldLevel) bool {
	switch v := field.Field().Interface().(type) {
	case string:
		return strings.TrimSpace(v) != constant.Empty
	case *string:
		return v == nil || strings.TrimSpace(*v) != constant.Empty
	default:
		return !field.Field().IsZero()
	}
}

// mimeTypeIn accepts a file header or a bare content type string.
func mimeTypeIn(field val.FieldLevel) bool {
	contentType, _ := field.Field().Interface().(string)

	if file, ok := fileHeader(field); ok {
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	}

	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(mediaType)

	return mediaType != constant.Empty && slices.Contains(strings.Fields(field.Param()), mediaType)
}

// withinFileSize checks a file header, a byte count or a byte slice.
func withinFileSize(field val.FieldLevel) bool {
	limitMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	if file, ok := fileHeader(field); ok {
		size = file.Size
	} else {
		switch v := field.Field(); v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			size = v.Int()
		case reflect.Slice, reflect.String:
			size = int64(v.Len())
		default:
			return false
		}
	}

	return float64(size) <= limitMB*bytesPerMB
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err))
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func validateMimetypes(field val.FieldLevel) bool {
	var contentType string

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = v.Header.Get("Content-Type")
	case string:
		contentType = v
	default:
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func validateFileSize(field val.FieldLevel) bool {
	var fileSize int64

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = v.Size
	case int64:
		fileSize = v
	default:
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(fileSize) <= maxSizeMB*1024*1024
}

func validateISODate(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseISO(str)

	return err == nil
}

func validateStaffEmail(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return IsStaffEmail(str)
}

// IsStaffEmail accepts local@domain where the domain contains a dot.
func IsStaffEmail(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}

	dot := strings.LastIndex(domain, ".")

	return dot > 0 && dot < len(domain)-1
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		name, _, _ = strings.Cut(field.Tag.Get("form"), ",")
		if name == "" {
			return field.Name
		}
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]val.Func{
		"mimetypes":   validateMimetypes,
		"maxfilesize": validateFileSize,
		"isodate":     validateISODate,
		"staffemail":  validateStaffEmail,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Unknown keys are ignored.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	return decode(json.NewDecoder(r), data)
}

// ValidateStrict is Validate that rejects keys not declared on T.
func ValidateStrict[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	return decode(decoder, data)
}

func decode[T any](decoder *json.Decoder, data *T) error {
	if err := decoder.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("Request body is required")
		}

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return failure.BadRequestFromString(fmt.Sprintf("Invalid value for %s", typeErr.Field))
		}

		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return failure.BadRequestFromString(fmt.Sprintf("Unknown field %s", field))
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return toFailure(err) //nolint:wrapcheck
	}

	return nil
}
